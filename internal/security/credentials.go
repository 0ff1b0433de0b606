package security

import (
	"crypto/subtle"
	"errors"
	"strings"
)

// ErrInvalidCredentials indicates the username or password did not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AdminCredentials is the single administrator principal.
// When PasswordHash is set it takes precedence over the plaintext Password.
type AdminCredentials struct {
	Username     string
	Password     string
	PasswordHash string
}

// Authenticator grants admin tokens for the configured principal.
type Authenticator struct {
	creds  AdminCredentials
	issuer *TokenIssuer
}

// NewAuthenticator constructs an Authenticator.
func NewAuthenticator(creds AdminCredentials, issuer *TokenIssuer) *Authenticator {
	return &Authenticator{creds: creds, issuer: issuer}
}

// Authenticate checks the credential pair and issues a token on an exact match.
func (a *Authenticator) Authenticate(username, password string) (string, error) {
	if !a.matches(username, password) {
		return "", ErrInvalidCredentials
	}
	token, _, err := a.issuer.Issue(a.creds.Username)
	if err != nil {
		return "", err
	}
	return token, nil
}

// Verify validates a bearer token issued by Authenticate.
func (a *Authenticator) Verify(token string) (*AdminClaims, error) {
	return a.issuer.Verify(token)
}

func (a *Authenticator) matches(username, password string) bool {
	if a.creds.Username == "" || username == "" || password == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.creds.Username)) == 1
	var passOK bool
	if hash := strings.TrimSpace(a.creds.PasswordHash); hash != "" {
		passOK = hashMatches(hash, password)
	} else if a.creds.Password != "" {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(a.creds.Password)) == 1
	}
	return userOK && passOK
}
