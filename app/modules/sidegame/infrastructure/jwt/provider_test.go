package sidegamejwt

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestProvider_GenerateAndValidateToken(t *testing.T) {
	p := NewProvider("test-secret-at-least-32-chars-long!!")

	tests := []struct {
		name        string
		token       func(t *testing.T) string
		validator   Provider
		expectedErr error
	}{
		{
			name: "success",
			token: func(t *testing.T) string {
				tok, err := p.GenerateToken("scorer-1", "Ann", time.Hour)
				if err != nil {
					t.Fatalf("failed to generate token: %v", err)
				}
				return tok
			},
		},
		{
			name: "expired token",
			token: func(t *testing.T) string {
				tok, err := p.GenerateToken("scorer-1", "Ann", -time.Hour)
				if err != nil {
					t.Fatalf("failed to generate token: %v", err)
				}
				return tok
			},
			expectedErr: ErrExpiredToken,
		},
		{
			name: "invalid signature",
			token: func(t *testing.T) string {
				tok, err := p.GenerateToken("scorer-1", "Ann", time.Hour)
				if err != nil {
					t.Fatalf("failed to generate token: %v", err)
				}
				return tok
			},
			validator:   NewProvider("wrong-secret"),
			expectedErr: ErrInvalidSignature,
		},
		{
			name: "unsigned token",
			token: func(t *testing.T) string {
				tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
					Subject:   "scorer-1",
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				}).SignedString(jwt.UnsafeAllowNoneSignatureType)
				if err != nil {
					t.Fatalf("failed to build token: %v", err)
				}
				return tok
			},
			expectedErr: ErrInvalidSignature,
		},
		{
			name:        "malformed token",
			token:       func(t *testing.T) string { return "not.a.jwt" },
			expectedErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := p
			if tt.validator != nil {
				validator = tt.validator
			}

			claims, err := validator.ValidateToken(tt.token(t))

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Errorf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if claims.Subject != "scorer-1" || claims.Name != "Ann" {
				t.Errorf("unexpected claims %+v", claims)
			}
			if claims.ExpiresAt.Before(time.Now()) {
				t.Errorf("expected future expiry, got %v", claims.ExpiresAt)
			}
		})
	}
}
