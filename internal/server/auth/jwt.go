// Package auth mints and parses the short-lived API access tokens issued
// once a login reaches the fully authenticated state. The database session
// row stays authoritative; the JWT only spares a DB round-trip on
// authenticated API calls.
package auth

import (
	"strconv"
	"time"

	"github.com/dmitrijs2005/banksim/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims includes the registered claims plus the owning account ID.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string
}

func GenerateToken(accountID int64, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		AccountID: strconv.FormatInt(accountID, 10),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func GetAccountIDFromToken(tokenString string, secretKey []byte) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return 0, err
	}

	if !token.Valid {
		return 0, common.ErrInvalidToken
	}

	accountID, err := strconv.ParseInt(claims.AccountID, 10, 64)
	if err != nil {
		return 0, common.ErrInvalidToken
	}

	return accountID, nil
}
