package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"offroad_server_go/models"
)

// jwtKey задается из конфигурации при старте через Init.
// Значение по умолчанию оставлено, чтобы тесты работали без инициализации.
var jwtKey = []byte("offroad_dev_secret_change_me_!@#")

// tokenTTL — срок жизни токена. Обновления токена нет: по истечении срока
// администратор входит заново.
const tokenTTL = 8 * time.Hour

// Init устанавливает ключ подписи токенов.
func Init(secret string) {
	jwtKey = []byte(secret)
}

// Claims — полезная нагрузка JWT: идентификатор, логин и роль пользователя.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken создает новый JWT для пользователя.
func GenerateToken(user models.User) (string, time.Time, error) {
	expirationTime := time.Now().Add(tokenTTL)

	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			Issuer:    "offroad_server_go",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("could not sign token: %w", err)
	}

	return tokenString, expirationTime, nil
}

// ValidateToken проверяет JWT и возвращает claims, если токен валиден.
func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtKey, nil
	})

	if err != nil {
		if ve, ok := err.(*jwt.ValidationError); ok {
			if ve.Errors&jwt.ValidationErrorMalformed != 0 {
				return nil, fmt.Errorf("token is malformed")
			} else if ve.Errors&(jwt.ValidationErrorExpired|jwt.ValidationErrorNotValidYet) != 0 {
				return nil, fmt.Errorf("token is expired or not active yet")
			}
			return nil, fmt.Errorf("couldn't handle this token: %w", err)
		}
		return nil, fmt.Errorf("couldn't handle this token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}

	return claims, nil
}
