package service

import (
	"errors"
	"testing"
)

func TestValidateAPIKey(t *testing.T) {
	svc := NewAuthService("s3cret")

	if err := svc.ValidateAPIKey("s3cret"); err != nil {
		t.Fatalf("expected matching key to pass, got %v", err)
	}
	for _, key := range []string{"", "S3CRET", "s3cret ", "s3cre"} {
		if err := svc.ValidateAPIKey(key); !errors.Is(err, ErrInvalidAPIKey) {
			t.Fatalf("expected %q to be rejected, got %v", key, err)
		}
	}
}

func TestValidateAPIKeyEmptySecret(t *testing.T) {
	if err := NewAuthService("").ValidateAPIKey(""); !errors.Is(err, ErrInvalidAPIKey) {
		t.Fatalf("expected empty secret to reject everything, got %v", err)
	}
}
