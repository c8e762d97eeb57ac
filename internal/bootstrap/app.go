// Package bootstrap assembles the attachment service from
// configuration. The HTTP layer is an external collaborator; it is
// expected to call Build once at startup and hold on to the result.
package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"attachments-backend/internal/attachments"
	"attachments-backend/internal/scan"
	"attachments-backend/internal/shared/aead"
	"attachments-backend/internal/shared/config"
	"attachments-backend/internal/shared/storage/blob"
	memorystore "attachments-backend/internal/shared/storage/blob/memory"
	s3store "attachments-backend/internal/shared/storage/blob/s3"
	"attachments-backend/internal/shared/storage/owned"
	"attachments-backend/internal/shared/telemetry"
)

// Build prepares the mediator and its dependencies.
func Build(ctx context.Context, cfg config.Config) (*attachments.Service, error) {
	blobs, err := buildBlobStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	cipher, err := buildCipher(ctx, cfg)
	if err != nil {
		return nil, err
	}

	validators, err := buildValidators(cfg)
	if err != nil {
		return nil, err
	}

	telemetry.Info("attachment service ready", map[string]any{
		"store":      cfg.BlobStoreType,
		"validators": len(validators),
	})

	return &attachments.Service{
		Store:      owned.New(blobs, cipher),
		Validators: validators,
	}, nil
}

func buildBlobStore(ctx context.Context, cfg config.Config) (blob.Store, error) {
	switch cfg.BlobStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		if cfg.Env == "production" {
			return nil, fmt.Errorf("BLOB_STORE=memory is not allowed in production")
		}
		return memorystore.New(), nil
	}
}

func buildCipher(ctx context.Context, cfg config.Config) (aead.Cipher, error) {
	if strings.TrimSpace(cfg.KMSEncryptedDataKey) != "" {
		client, err := aead.NewKMSClient(ctx, cfg.AWSRegion)
		if err != nil {
			return nil, err
		}
		return aead.NewFromKMS(ctx, client, cfg.KMSEncryptedDataKey)
	}
	if strings.TrimSpace(cfg.MasterKey) != "" {
		return aead.NewFromBase64Key(cfg.MasterKey)
	}
	return nil, fmt.Errorf("either KMS_ENCRYPTED_DATA_KEY or MASTER_KEY is required")
}

func buildValidators(cfg config.Config) ([]attachments.Validator, error) {
	validators := []attachments.Validator{
		&attachments.TypeValidator{Allowed: cfg.AllowedContentTypes},
		&attachments.PDFValidator{},
	}
	if strings.TrimSpace(cfg.ScanURL) != "" {
		client, err := scan.NewClient(cfg.ScanURL)
		if err != nil {
			return nil, err
		}
		validators = append(validators, &scan.Validator{Client: client})
	} else if cfg.Env == "production" {
		return nil, fmt.Errorf("SCAN_URL is required in production")
	}
	return validators, nil
}
