package bootstrap

import (
	"context"
	"encoding/base64"
	"testing"

	"attachments-backend/internal/shared/aead"
	"attachments-backend/internal/shared/config"
)

func testMasterKey() string {
	return base64.StdEncoding.EncodeToString(make([]byte, aead.KeySize))
}

func TestBuildWithMemoryStore(t *testing.T) {
	cfg := config.Config{
		Env:                 "dev",
		BlobStoreType:       "memory",
		MasterKey:           testMasterKey(),
		AllowedContentTypes: []string{"application/pdf"},
	}

	svc, err := Build(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if svc.Store == nil {
		t.Fatalf("service has no store")
	}
	// Type and pdf validators are always present; the scan validator
	// needs a configured URL.
	if len(svc.Validators) != 2 {
		t.Fatalf("validators = %d, want 2", len(svc.Validators))
	}
}

func TestBuildRequiresKeyMaterial(t *testing.T) {
	cfg := config.Config{Env: "dev", BlobStoreType: "memory"}
	if _, err := Build(context.Background(), cfg); err == nil {
		t.Fatalf("expected error without key material")
	}
}

func TestBuildRejectsMemoryStoreInProduction(t *testing.T) {
	cfg := config.Config{
		Env:           "production",
		BlobStoreType: "memory",
		MasterKey:     testMasterKey(),
	}
	if _, err := Build(context.Background(), cfg); err == nil {
		t.Fatalf("expected error for memory store in production")
	}
}

func TestBuildWiresScanValidator(t *testing.T) {
	cfg := config.Config{
		Env:                 "dev",
		BlobStoreType:       "memory",
		MasterKey:           testMasterKey(),
		ScanURL:             "http://localhost:8181",
		AllowedContentTypes: []string{"application/pdf"},
	}

	svc, err := Build(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(svc.Validators) != 3 {
		t.Fatalf("validators = %d, want 3 with scanner configured", len(svc.Validators))
	}
}
