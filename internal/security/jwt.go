package security

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWT validation errors.
var (
	// ErrInvalidToken indicates a token is malformed or fails validation.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken indicates a token has expired.
	ErrExpiredToken = errors.New("token expired")
)

// AdminClaims defines JWT claims for the storefront administrator.
type AdminClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies admin tokens with a shared HMAC secret.
type TokenIssuer struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewTokenIssuer constructs a TokenIssuer.
func NewTokenIssuer(secret string, expiry time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), expiry: expiry, now: time.Now}
}

// Issue signs an admin JWT valid from now until now+expiry.
func (i *TokenIssuer) Issue(username string) (string, *AdminClaims, error) {
	now := i.now().UTC().Truncate(time.Second)
	claims := &AdminClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// Verify validates an admin JWT and returns its claims.
func (i *TokenIssuer) Verify(tokenString string) (*AdminClaims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, ErrInvalidToken
	}
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid || strings.TrimSpace(claims.Username) == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
