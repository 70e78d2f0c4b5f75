package auth

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/hrslabs/kiffscore/internal/permissions"
)

var (
	ErrInvalidJWTToken = errors.New("JWT token is invalid")
	ErrExpiredJWTToken = errors.New("JWT token is expired")
)

const defaultJWTDuration = 10 * time.Minute

type AccessTokenClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

type JWTManager struct {
	secret string
}

func NewJWTManager() *JWTManager {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatalf("JWT_SECRET is not set in .env file")
	}
	return &JWTManager{secret: jwtSecret}
}

func (j *JWTManager) GenerateAccessJWT(userID string, role permissions.Role, duration time.Duration) (string, error) {
	if duration == 0 {
		duration = defaultJWTDuration
	}
	claims := &AccessTokenClaims{
		UserID: userID,
		Role:   string(role),
		StandardClaims: jwt.StandardClaims{
			Subject:   userID,
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(duration).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secret))
}

// ValidateAccessToken returns the user ID and role carried by a valid,
// unexpired access token.
func (j *JWTManager) ValidateAccessToken(tokenString string) (string, permissions.Role, error) {
	claims := &AccessTokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidJWTToken
		}
		return []byte(j.secret), nil
	})
	if err != nil {
		var validationErr *jwt.ValidationError
		if errors.As(err, &validationErr) && validationErr.Errors&jwt.ValidationErrorExpired != 0 {
			return "", "", ErrExpiredJWTToken
		}
		return "", "", ErrInvalidJWTToken
	}
	if !token.Valid || claims.UserID == "" {
		return "", "", ErrInvalidJWTToken
	}
	return claims.UserID, permissions.Role(claims.Role), nil
}
