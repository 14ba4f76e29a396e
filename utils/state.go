package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// StateTokenExpiry bounds how long an OAuth handshake may take.
const StateTokenExpiry = 10 * time.Minute

type stateClaims struct {
	Nonce string `json:"nonce"`
	jwt.RegisteredClaims
}

// GenerateStateToken issues a short-lived signed token used as the OAuth
// state parameter. The signature ties the state to this server, the expiry
// keeps abandoned handshakes from being replayed.
func GenerateStateToken(secret string) (string, error) {
	nonce, err := GenerateSessionID()
	if err != nil {
		return "", err
	}

	claims := stateClaims{
		Nonce: nonce,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(StateTokenExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyStateToken checks the signature and expiry of an OAuth state token.
func VerifyStateToken(secret, tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &stateClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return fmt.Errorf("invalid state token: %w", err)
	}
	if !token.Valid {
		return fmt.Errorf("invalid state token")
	}
	return nil
}
