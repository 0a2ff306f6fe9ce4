// Package accesskey mints and verifies the bearer keys that guard the row
// store. A key is an HS256-signed JWT carrying a role claim, the same shape
// hosted table stores hand out as "anon" keys.
package accesskey

import (
	"fmt"
	"time"

	"github.com/carnetapp/carnet/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

const issuer = "carnet-store"

// RoleAnon is the role minted for application clients.
const RoleAnon = "anon"

// Claims holds the registered claims plus the key's role.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Mint signs a new access key for the given role. A zero validity produces
// a key without an expiry.
func Mint(secret []byte, role string, validity time.Duration) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   issuer,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		Role: role,
	}
	if validity > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(validity))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("signing access key: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of an access key and returns its
// role. Any failure maps to common.ErrInvalidAccessKey.
func Verify(key string, secret []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(key, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrInvalidAccessKey, err)
	}
	if !token.Valid {
		return "", common.ErrInvalidAccessKey
	}

	return claims.Role, nil
}
