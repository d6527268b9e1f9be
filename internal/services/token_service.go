package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken covers bad signatures, malformed payloads and
	// expired tokens.
	ErrInvalidToken = errors.New("invalid token")

	// ErrMissingSubject is returned for an otherwise valid token
	// whose subject claim is absent. Callers deny access either way;
	// the distinction only matters for diagnostics.
	ErrMissingSubject = errors.New("token subject missing")
)

const DefaultAccessTokenTTL = 30 * time.Minute

type TokenService interface {
	// Issue signs a token for the subject expiring ttl from now. A
	// zero or negative ttl produces an already expired token.
	Issue(subject string, ttl time.Duration) (string, time.Time, error)

	// IssueDefault signs a token with the service's configured TTL.
	IssueDefault(subject string) (string, time.Time, error)

	// Decode verifies the token's signature and expiry and returns
	// the subject and expiry claims.
	Decode(token string) (string, time.Time, error)
}

type tokenServiceImpl struct {
	issuer     string
	signingKey []byte
	defaultTTL time.Duration
}

func NewTokenService(issuer string, signingKey []byte, defaultTTL time.Duration) TokenService {
	if defaultTTL <= 0 {
		defaultTTL = DefaultAccessTokenTTL
	}
	return &tokenServiceImpl{
		issuer:     issuer,
		signingKey: signingKey,
		defaultTTL: defaultTTL,
	}
}

func (s *tokenServiceImpl) Issue(subject string, ttl time.Duration) (string, time.Time, error) {
	tokenUUID, err := uuid.NewRandom()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate id: %w", err)
	}

	now := time.Now()
	expiresAt := now.Add(ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        tokenUUID.String(),
		Issuer:    s.issuer,
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *tokenServiceImpl) IssueDefault(subject string) (string, time.Time, error) {
	return s.Issue(subject, s.defaultTTL)
}

func (s *tokenServiceImpl) Decode(token string) (string, time.Time, error) {
	t, err := jwt.ParseWithClaims(
		token,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithIssuer(s.issuer),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := t.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return "", time.Time{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", time.Time{}, ErrMissingSubject
	}
	return claims.Subject, claims.ExpiresAt.Time, nil
}
