package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bookerhq/booker-backend/internal/core/domain"
)

const minSecretLength = 32

// ErrTokenExpired indicates a token whose exp claim is in the past.
var ErrTokenExpired = errors.New("jwt: token expired")

// ErrTokenInvalid indicates a token that failed signature or claim
// validation for any reason other than expiry.
var ErrTokenInvalid = errors.New("jwt: token invalid")

// AccessTokenClaims augments registered claims with the caller's role
// context. Scope carries the role name and drives authorization checks.
type AccessTokenClaims struct {
	Email  string `json:"email"`
	RoleID string `json:"role_id"`
	Scope  string `json:"scope"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and parses HMAC access tokens.
type TokenIssuer struct {
	issuer string
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer constructs a TokenIssuer. The signing secret must be
// at least 32 bytes.
func NewTokenIssuer(issuer, secret string, expirationSeconds int64) (*TokenIssuer, error) {
	issuer = strings.TrimSpace(issuer)
	if issuer == "" {
		return nil, fmt.Errorf("jwt: issuer is required")
	}
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("jwt: secret must be at least %d bytes", minSecretLength)
	}
	if expirationSeconds <= 0 {
		return nil, fmt.Errorf("jwt: expiration must be positive")
	}

	return &TokenIssuer{
		issuer: issuer,
		secret: []byte(secret),
		ttl:    time.Duration(expirationSeconds) * time.Second,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// WithClock overrides the issuer's time source. Intended for tests.
func (t *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	t.now = now
	return t
}

// TTL returns the configured token lifetime.
func (t *TokenIssuer) TTL() time.Duration {
	return t.ttl
}

// Issue signs an access token for the user with the supplied scope.
func (t *TokenIssuer) Issue(user *domain.User, scope string) (string, error) {
	if user == nil {
		return "", fmt.Errorf("jwt: user is required")
	}

	now := t.now()
	claims := AccessTokenClaims{
		Email:  user.Email,
		RoleID: user.RoleID,
		Scope:  scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("jwt: sign token: %w", err)
	}

	return signed, nil
}

// Parse verifies the token signature, issuer and expiry, returning the
// embedded claims. Expired tokens return ErrTokenExpired; every other
// failure maps to ErrTokenInvalid.
func (t *TokenIssuer) Parse(tokenString string) (*AccessTokenClaims, error) {
	claims := &AccessTokenClaims{}

	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("jwt: unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	},
		jwt.WithIssuer(t.issuer),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if !parsed.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
