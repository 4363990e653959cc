package devapi

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/circuitstock/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the user's name and role alongside the standard claims.
type Claims struct {
	jwt.RegisteredClaims
	Name     string `json:"name"`
	UserType string `json:"userType"`
}

// GenerateToken signs an HS256 token for u valid for ttl.
func GenerateToken(u User, secretKey []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Name:     u.Name,
		UserType: u.UserType,
	})
	return token.SignedString(secretKey)
}

// ParseToken verifies tokenString and returns its claims. Every failure,
// including expiry, is reported as common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, errors.Join(common.ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}
