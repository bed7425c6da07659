package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rems1212/Employee-Canteen/internal/model"
	"github.com/rems1212/Employee-Canteen/pkg/config"
)

var jwtConfig *config.JWTConfig

// CanteenClaims carries the identity, role and canteen scope of a logged-in
// user. Role and canteen are what the middleware uses to gate and filter.
type CanteenClaims struct {
	Email   string        `json:"email"`
	UserID  uint          `json:"user_id"`
	Name    string        `json:"name,omitempty"`
	Role    model.Role    `json:"role"`
	Canteen model.Canteen `json:"canteen"`
	jwt.RegisteredClaims
}

// Initialize sets up the JWT utility with configuration
func Initialize(config *config.JWTConfig) {
	jwtConfig = config
}

// GenerateToken creates a signed token for the given user
func GenerateToken(user *model.User) (string, error) {
	if jwtConfig == nil {
		return "", errors.New("JWT configuration not initialized")
	}

	signingKey := jwtConfig.SigningKey
	expirationHours := jwtConfig.ExpirationHours

	claims := &CanteenClaims{
		Email:   user.Email,
		UserID:  user.ID,
		Name:    user.Name,
		Role:    user.Role,
		Canteen: user.Canteen,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expirationHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(signingKey))
}

// ValidateToken validates the token and returns the claims
func ValidateToken(tokenString string) (*CanteenClaims, error) {
	if jwtConfig == nil {
		return nil, errors.New("JWT configuration not initialized")
	}

	signingKey := jwtConfig.SigningKey

	token, err := jwt.ParseWithClaims(
		tokenString,
		&CanteenClaims{},
		func(token *jwt.Token) (interface{}, error) {
			// Validate the signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(signingKey), nil
		},
	)

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*CanteenClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
