package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"offroad_server_go/auth"
	"offroad_server_go/models"
)

type contextKey string

// Ключи для данных токена в контексте запроса.
const (
	UserIDKey   contextKey = "userID"
	UsernameKey contextKey = "username"
	RoleKey     contextKey = "role"
)

// JWTMiddleware проверяет наличие и валидность JWT в заголовке Authorization.
// Отсутствие токена — 401, невалидный или истекший токен — 403.
// При успехе данные токена добавляются в контекст запроса.
func JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Printf("JWTMiddleware: отсутствует заголовок Authorization для %s %s", r.Method, r.URL.Path)
			respondAuthError(w, http.StatusUnauthorized, "Missing Authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Printf("JWTMiddleware: неверный формат заголовка Authorization для %s %s", r.Method, r.URL.Path)
			respondAuthError(w, http.StatusForbidden, "Invalid Authorization header format (expected Bearer {token})")
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			log.Printf("JWTMiddleware: невалидный токен для %s %s: %v", r.Method, r.URL.Path, err)
			respondAuthError(w, http.StatusForbidden, "Invalid token: "+err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, UsernameKey, claims.Username)
		ctx = context.WithValue(ctx, RoleKey, claims.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin пропускает запрос дальше только для роли admin.
// Вешается поверх JWTMiddleware на маршруты управления пользователями.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, _ := r.Context().Value(RoleKey).(string)
		if role != models.RoleAdmin {
			log.Printf("RequireAdmin: отказ для роли %q на %s %s", role, r.Method, r.URL.Path)
			respondAuthError(w, http.StatusForbidden, "Admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserIDFromContext возвращает идентификатор пользователя из контекста запроса.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(UserIDKey).(string)
	return id
}

// respondAuthError пишет JSON-ошибку, не затягивая сюда пакет controllers.
func respondAuthError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		log.Printf("respondAuthError: ошибка кодирования ответа: %v", err)
	}
}
