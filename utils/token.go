package utils

import (
	"errors"
	"os"

	"github.com/golang-jwt/jwt/v5"

	models "leaderboard-analytics/app/models/mongodb"
)

// ValidateToken parses and verifies a signed access token. Token issuance
// lives in the identity service; this API only consumes tokens.
func ValidateToken(tokenString string) (*models.TeacherClaims, error) {
	secret := os.Getenv("JWT_SECRET")

	token, err := jwt.ParseWithClaims(
		tokenString,
		&models.TeacherClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secret), nil
		},
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*models.TeacherClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
