package aead

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/kms"
)

// KeyDecrypter is the subset of the KMS client used to unwrap data
// keys.
type KeyDecrypter interface {
	Decrypt(ctx context.Context, params *kms.DecryptInput, optFns ...func(*kms.Options)) (*kms.DecryptOutput, error)
}

// NewKMSClient builds a KMS client from the ambient AWS configuration.
func NewKMSClient(ctx context.Context, region string) (*kms.Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return kms.NewFromConfig(cfg), nil
}

// NewFromKMS unwraps a base64-encoded, KMS-encrypted data key and
// builds a Cipher from the plaintext key. The unwrap happens once at
// process start; the resulting Cipher is passed by reference to every
// consumer.
func NewFromKMS(ctx context.Context, client KeyDecrypter, encryptedKey string) (*XChaCha, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encryptedKey))
	if err != nil {
		return nil, fmt.Errorf("decode encrypted data key: %w", err)
	}
	out, err := client.Decrypt(ctx, &kms.DecryptInput{CiphertextBlob: raw})
	if err != nil {
		return nil, fmt.Errorf("kms decrypt data key: %w", err)
	}
	return New(out.Plaintext)
}

// NewFromBase64Key builds a Cipher from a base64-encoded raw key, for
// local and test use.
func NewFromBase64Key(encoded string) (*XChaCha, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode master key: %w", err)
	}
	return New(raw)
}
