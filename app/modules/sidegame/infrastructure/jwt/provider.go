package sidegamejwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Every ValidateToken failure is one of these.
var (
	ErrInvalidToken     = errors.New("invalid scorer token")
	ErrExpiredToken     = errors.New("scorer token expired")
	ErrInvalidSignature = errors.New("scorer token signature mismatch")
)

// Claims identifies the scorer behind a request.
type Claims struct {
	Subject   string
	Name      string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// Provider issues and validates scorer tokens.
type Provider interface {
	GenerateToken(subject, name string, ttl time.Duration) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type scorerClaims struct {
	jwt.RegisteredClaims
	Name string `json:"name,omitempty"`
}

type provider struct {
	secret []byte
}

// NewProvider creates an HS256 provider.
func NewProvider(secret string) Provider {
	return &provider{
		secret: []byte(secret),
	}
}

func (p *provider) GenerateToken(subject, name string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &scorerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Name: name,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (p *provider) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &scorerClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return p.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, ErrInvalidSignature) {
			return nil, ErrInvalidSignature
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*scorerClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	out := &Claims{Subject: claims.Subject, Name: claims.Name}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}
