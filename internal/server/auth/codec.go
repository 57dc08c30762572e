// Package auth implements the credential primitives of the server: the signed
// token codec, the RSA key provider protecting login payloads, and the
// deterministic AES cipher for equality-searchable fields.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/parksujin/lifeshare/internal/common"
)

// Claims carries the signed token payload: registered subject/issued-at/expiry
// plus a duplicate userId claim kept for client compatibility.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// Codec mints and verifies signed, time-bound tokens (HS256).
//
// Parse verifies the signature but does not enforce expiry, so callers can
// tell "expired but authentic" apart from "unparseable". Use IsExpired (or
// Claims.ExpiresAt) for the time check.
type Codec struct {
	secret []byte
}

func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret}
}

// Mint builds claims with issuedAt = now and expiresAt = now + ttl and signs
// them with the server secret.
func (c *Codec) Mint(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: subject,
	})
	return token.SignedString(c.secret)
}

// Parse verifies the token signature and returns its claims. Expiry is NOT
// checked here. All failures map to common.ErrMalformedToken or
// common.ErrInvalidSignature; attacker-controlled input never panics.
func (c *Codec) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, common.ErrInvalidSignature
		default:
			return nil, common.ErrMalformedToken
		}
	}

	if claims.ExpiresAt == nil || claims.Subject == "" {
		return nil, common.ErrMalformedToken
	}

	return claims, nil
}

// CheckExpiry returns common.ErrTokenExpired when the claims' expiry is at
// or before now. No leeway window is applied.
func (c *Codec) CheckExpiry(claims *Claims) error {
	if !claims.ExpiresAt.Time.After(time.Now()) {
		return common.ErrTokenExpired
	}
	return nil
}

// IsExpired is the boolean form of CheckExpiry.
func (c *Codec) IsExpired(claims *Claims) bool {
	return c.CheckExpiry(claims) != nil
}

// WellFormed is the cheap structural check applied before any cryptographic
// work: a compact signed token has exactly three dot-separated segments.
func WellFormed(token string) bool {
	return token != "" && strings.Count(token, ".") == 2
}
