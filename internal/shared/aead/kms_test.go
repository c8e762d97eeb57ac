package aead

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/kms"
)

type fakeDecrypter struct {
	plaintext []byte
	err       error
	gotBlob   []byte
}

func (f *fakeDecrypter) Decrypt(ctx context.Context, params *kms.DecryptInput, optFns ...func(*kms.Options)) (*kms.DecryptOutput, error) {
	f.gotBlob = params.CiphertextBlob
	if f.err != nil {
		return nil, f.err
	}
	return &kms.DecryptOutput{Plaintext: f.plaintext}, nil
}

func TestNewFromKMS(t *testing.T) {
	t.Parallel()

	key := make([]byte, KeySize)
	for i := range key {
		key[i] = byte(i + 1)
	}
	wrapped := []byte("wrapped-data-key")
	decrypter := &fakeDecrypter{plaintext: key}

	cipher, err := NewFromKMS(context.Background(), decrypter, base64.StdEncoding.EncodeToString(wrapped))
	if err != nil {
		t.Fatalf("NewFromKMS: %v", err)
	}
	if !bytes.Equal(decrypter.gotBlob, wrapped) {
		t.Fatalf("kms received blob %q, want %q", decrypter.gotBlob, wrapped)
	}

	sealed, err := cipher.Encrypt([]byte("content"), []byte("owner"))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	got, err := cipher.Decrypt(sealed, []byte("owner"))
	if err != nil || string(got) != "content" {
		t.Fatalf("round trip = (%q, %v)", got, err)
	}
}

func TestNewFromKMSErrors(t *testing.T) {
	t.Parallel()

	if _, err := NewFromKMS(context.Background(), &fakeDecrypter{}, "not base64 %%%"); err == nil {
		t.Fatalf("expected error for malformed encrypted key")
	}

	decrypter := &fakeDecrypter{err: errors.New("access denied")}
	if _, err := NewFromKMS(context.Background(), decrypter, base64.StdEncoding.EncodeToString([]byte("x"))); err == nil {
		t.Fatalf("expected error when kms decrypt fails")
	}

	// Unwrapped key of the wrong size must be rejected.
	short := &fakeDecrypter{plaintext: []byte("short")}
	if _, err := NewFromKMS(context.Background(), short, base64.StdEncoding.EncodeToString([]byte("x"))); err == nil {
		t.Fatalf("expected error for short data key")
	}
}

func TestNewFromBase64Key(t *testing.T) {
	t.Parallel()

	key := make([]byte, KeySize)
	cipher, err := NewFromBase64Key(base64.StdEncoding.EncodeToString(key))
	if err != nil {
		t.Fatalf("NewFromBase64Key: %v", err)
	}
	if cipher == nil {
		t.Fatalf("expected cipher")
	}

	if _, err := NewFromBase64Key("???"); err == nil {
		t.Fatalf("expected error for malformed key")
	}
}
