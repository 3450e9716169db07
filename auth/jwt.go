package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is the only failure Parse reports. Bad signature, wrong
// audience, expiry and malformed input all collapse into it so callers cannot
// leak which check failed.
var ErrInvalidToken = errors.New("invalid token")

// Claims carried inside an access token.
type Claims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies signed access tokens. All knobs come from the
// server config; there is no package-level secret.
type Tokens struct {
	secret   []byte
	audience string
	issuer   string
	lifetime time.Duration
}

func NewTokens(secret, audience, issuer string, lifetime time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), audience: audience, issuer: issuer, lifetime: lifetime}
}

// Issue signs a token for the user with the configured lifetime.
func (t *Tokens) Issue(username, email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: username,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{t.audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(t.lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    t.issuer,
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Parse verifies signature, audience and expiry and returns the username the
// token was issued for.
func (t *Tokens) Parse(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	}, jwt.WithAudience(t.audience), jwt.WithIssuer(t.issuer))
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Username == "" {
		return "", ErrInvalidToken
	}
	return claims.Username, nil
}

// GenerateSalt returns a random hex salt for password hashing.
func GenerateSalt() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GenerateVerificationCode returns a 6 character email verification code.
func GenerateVerificationCode() (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	code := fmt.Sprintf("%06x", b)
	return code[:6], nil
}
