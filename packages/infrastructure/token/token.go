package token

import (
	"errors"
	"fmt"
	"time"
	Error "warehouse/packages/common/errors"
	"warehouse/packages/common/logger"

	"github.com/golang-jwt/jwt/v5"
)

var tokenLogger = logger.NewSource("TOKEN", logger.Default)

const DefaultTTL = 30 * time.Minute

type Config struct {
	// HMAC key, must be at least 32 bytes long
	Secret []byte
	// Lifetime of tokens issued by IssueDefault
	TTL time.Duration
	// Value of "iss" claim, not checked if empty
	Issuer string
}

type SignedToken struct {
	value     string
	expiresAt time.Time
}

func (t *SignedToken) String() string {
	return t.value
}

func (t *SignedToken) ExpiresAt() time.Time {
	return t.expiresAt
}

// Time left before expiration, can be negative.
func (t *SignedToken) TTL() time.Duration {
	return time.Until(t.expiresAt)
}

// Issues and verifies HS256 signed tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
	parser *jwt.Parser
}

func NewIssuer(cfg Config) (*Issuer, error) {
	if len(cfg.Secret) < 32 {
		return nil, errors.New("token secret must be at least 32 bytes long")
	}
	if cfg.TTL < 0 {
		return nil, errors.New("token TTL can't be negative")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(0),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	return &Issuer{
		secret: cfg.Secret,
		ttl:    ttl,
		issuer: cfg.Issuer,
		parser: jwt.NewParser(opts...),
	}, nil
}

// Issues token for the given subject which expires after ttl.
// Non-positive ttl gives a token that is already expired.
func (i *Issuer) Issue(subject string, ttl time.Duration) (*SignedToken, *Error.Status) {
	return i.IssueWithExpiry(subject, time.Now().Add(ttl))
}

// Issues token with TTL from the config.
func (i *Issuer) IssueDefault(subject string) (*SignedToken, *Error.Status) {
	return i.Issue(subject, i.ttl)
}

// Issues token for the given subject which expires at exp.
func (i *Issuer) IssueWithExpiry(subject string, exp time.Time) (*SignedToken, *Error.Status) {
	if subject == "" {
		tokenLogger.Error("Failed to issue token", "subject is empty", nil)
		return nil, Error.StatusInternalError
	}

	claims := jwt.RegisteredClaims{
		Issuer:    i.issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(exp.UTC()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenStr, err := token.SignedString(i.secret)
	if err != nil {
		tokenLogger.Error("Failed to sign token", err.Error(), nil)
		return nil, Error.StatusInternalError
	}

	return &SignedToken{tokenStr, claims.ExpiresAt.Time}, nil
}

func (i *Issuer) keyFunc(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return i.secret, nil
}

// Parses and validates given token. Returns its subject.
func (i *Issuer) Verify(tokenStr string) (string, *Error.Status) {
	claims := &jwt.RegisteredClaims{}

	if _, err := i.parser.ParseWithClaims(tokenStr, claims, i.keyFunc); err != nil {
		tokenLogger.Trace("Token verification failed: "+err.Error(), nil)

		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return "", TokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", TokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", TokenInvalidSignature
		case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
			return "", TokenMissingRequiredClaims
		default:
			return "", InvalidToken
		}
	}

	if claims.Subject == "" {
		return "", TokenMissingRequiredClaims
	}

	return claims.Subject, nil
}
