package service

import (
	"crypto/subtle"
	"errors"
)

var ErrInvalidAPIKey = errors.New("invalid api key")

// AuthService checks callers against the static shared secret
type AuthService struct {
	apiKey []byte
}

// NewAuthService creates a new auth service for the given secret
func NewAuthService(apiKey string) *AuthService {
	return &AuthService{
		apiKey: []byte(apiKey),
	}
}

// ValidateAPIKey requires an exact match; an empty key never matches
func (s *AuthService) ValidateAPIKey(key string) error {
	if key == "" || len(s.apiKey) == 0 {
		return ErrInvalidAPIKey
	}
	if subtle.ConstantTimeCompare([]byte(key), s.apiKey) != 1 {
		return ErrInvalidAPIKey
	}
	return nil
}
