package tokenissuer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/baynana/authserver/internal/models"
)

const (
	defaultTokenTTL      = time.Hour
	defaultSigningMethod = "HS256"
)

type CustomTokenClaims struct {
	jwt.RegisteredClaims
	UID uuid.UUID `json:"uid"`
}

// Token issuer with sensible defaults
type Config struct {
	// Secret key to sign issued tokens
	// Required to be set
	SecretKey string

	// JWT MAC (Message Authentication Code) algorithm
	// If not set than default is used
	Alg string

	// Issued token lifetime
	// If not set than default is used
	TTL time.Duration
}

// Issues signed, short-lived identity tokens asserting a user uid.
// Stands in for the external identity platform behind the same narrow contract.
type TokenIssuer struct {
	key string
	alg jwt.SigningMethod
	ttl time.Duration
}

func New(cfg Config) (*TokenIssuer, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("secret key must not be empty")
	}

	if cfg.Alg == "" {
		cfg.Alg = defaultSigningMethod
	}

	if cfg.TTL == 0 {
		cfg.TTL = defaultTokenTTL
	}

	return &TokenIssuer{
		key: cfg.SecretKey,
		alg: jwt.GetSigningMethod(cfg.Alg),
		ttl: cfg.TTL,
	}, nil
}

// Issue signed token for the given uid
func (i *TokenIssuer) Issue(ctx context.Context, uid uuid.UUID) (models.IssuedToken, error) {
	var token models.IssuedToken

	if uid == uuid.Nil {
		return token, errors.New("subject uid must not be nil")
	}

	now := time.Now().Truncate(time.Second)
	expiresAt := now.Add(i.ttl)

	signed, err := jwt.NewWithClaims(
		i.alg,
		CustomTokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        uuid.NewString(),
				Subject:   uid.String(),
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(expiresAt),
			},
			UID: uid,
		},
	).SignedString([]byte(i.key))
	if err != nil {
		return token, fmt.Errorf("error while signing token. Err: %w", err)
	}

	return models.IssuedToken{Value: signed, ExpiresAt: expiresAt}, nil
}

// Parse and validate an issued token, returning the uid it asserts
func (i *TokenIssuer) Parse(tokenString string) (uuid.UUID, error) {
	claims := &CustomTokenClaims{}

	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (any, error) { return []byte(i.key), nil },
		jwt.WithValidMethods([]string{i.alg.Alg()}),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("error while parsing or validating token. Err: %w", err)
	}

	return claims.UID, nil
}
