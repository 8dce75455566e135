package jwt

import (
	"errors"
	"fmt"
	"time"

	libJWT "github.com/golang-jwt/jwt/v5"
)

const defaultTTL = time.Hour

// Symmetric signs and verifies HS512 tokens with a shared secret.
type Symmetric struct {
	secret []byte
	issuer string
	aud    []string
	ttl    time.Duration
	clock  clocker
	uuid   generator
	parser *libJWT.Parser
}

// NewHS512 returns a Symmetric. The secret must be at least 64 bytes and a
// zero TTL means one hour.
func NewHS512(cfg Config) (*Symmetric, error) {
	if len(cfg.Secret) < 64 {
		return nil, ErrSigningKeyTooShort
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	opts := []libJWT.ParserOption{
		libJWT.WithValidMethods([]string{libJWT.SigningMethodHS512.Alg()}),
		libJWT.WithIssuedAt(),
		libJWT.WithExpirationRequired(),
		libJWT.WithLeeway(cfg.Leeway),
	}
	if cfg.Issuer != "" {
		opts = append(opts, libJWT.WithIssuer(cfg.Issuer))
	}
	if len(cfg.Audiences) > 0 {
		opts = append(opts, libJWT.WithAudience(cfg.Audiences...))
	}
	if cfg.Clock != nil {
		opts = append(opts, libJWT.WithTimeFunc(cfg.Clock.Now))
	}

	return &Symmetric{
		secret: cfg.Secret,
		issuer: cfg.Issuer,
		aud:    cfg.Audiences,
		ttl:    ttl,
		clock:  cfg.Clock,
		uuid:   cfg.UUID,
		parser: libJWT.NewParser(opts...),
	}, nil
}

// Generate issues a token for the user. The subject and user_id claims both
// carry userID.
func (s *Symmetric) Generate(userID, kind string) (string, error) {
	now := s.clock.Now()

	claims := Claims{
		RegisteredClaims: libJWT.RegisteredClaims{
			ID:        s.uuid.Generate(),
			Subject:   userID,
			Issuer:    s.issuer,
			Audience:  s.aud,
			IssuedAt:  libJWT.NewNumericDate(now),
			NotBefore: libJWT.NewNumericDate(now),
			ExpiresAt: libJWT.NewNumericDate(now.Add(s.ttl)),
		},
		UserID: userID,
		Kind:   kind,
	}

	signed, err := libJWT.NewWithClaims(libJWT.SigningMethodHS512, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwt: sign: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token. Failures are ErrTokenExpired or wrap
// ErrInvalidToken. A token whose subject disagrees with its user_id is
// rejected.
func (s *Symmetric) Verify(tokenStr string) (Claims, error) {
	var claims Claims

	_, err := s.parser.ParseWithClaims(tokenStr, &claims, func(*libJWT.Token) (any, error) {
		return s.secret, nil
	})
	switch {
	case errors.Is(err, libJWT.ErrTokenExpired):
		return Claims{}, ErrTokenExpired
	case err != nil:
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.UserID == "" || claims.Subject != claims.UserID {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}
