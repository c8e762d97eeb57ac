package config

import (
	"os"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Env                 string
	BlobStoreType       string
	AWSRegion           string
	S3Bucket            string
	S3Prefix            string
	SSEKMSKeyID         string
	KMSEncryptedDataKey string
	MasterKey           string
	ScanURL             string
	AllowedContentTypes []string
}

// Load reads configuration from environment variables with sensible
// defaults.
func Load() Config {
	return Config{
		Env:                 normalizeEnv(getEnv("ENV", "dev")),
		BlobStoreType:       normalizeStoreType(getEnv("BLOB_STORE", "memory")),
		AWSRegion:           getEnv("AWS_REGION", ""),
		S3Bucket:            getEnv("S3_BUCKET", ""),
		S3Prefix:            getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:         getEnv("SSE_KMS_KEY_ID", ""),
		KMSEncryptedDataKey: getEnv("KMS_ENCRYPTED_DATA_KEY", ""),
		MasterKey:           getEnv("MASTER_KEY", ""),
		ScanURL:             getEnv("SCAN_URL", ""),
		AllowedContentTypes: splitAndTrim(getEnv("ALLOWED_CONTENT_TYPES", "application/pdf,image/png,image/jpeg")),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "memory"
	}
}
