package controllers

import (
	"log"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"offroad_server_go/auth"
	"offroad_server_go/data"
	"offroad_server_go/models"
)

// SetupStatusHandler сообщает, создан ли уже первый администратор.
// Админка по этому флагу решает, показывать экран настройки или вход.
// Пример URL: GET /api/auth/setup-status
func SetupStatusHandler(w http.ResponseWriter, r *http.Request) {
	initialized, err := data.HasAdmin()
	if err != nil {
		log.Printf("SetupStatusHandler: ошибка чтения пользователей: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to read users")
		return
	}
	respondJSON(w, http.StatusOK, models.SetupStatusResponse{Initialized: initialized})
}

// SetupHandler создает первого администратора. Повторный вызов после
// инициализации отклоняется: дальше учетки заводит сам администратор.
// Пример URL: POST /api/auth/setup
func SetupHandler(w http.ResponseWriter, r *http.Request) {
	var req models.SetupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Password) == "" {
		respondError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	initialized, err := data.HasAdmin()
	if err != nil {
		log.Printf("SetupHandler: ошибка чтения пользователей: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to read users")
		return
	}
	if initialized {
		respondError(w, http.StatusBadRequest, "Admin account already exists")
		return
	}

	user := &models.User{
		Username: req.Username,
		Name:     req.Name,
		Role:     models.RoleAdmin,
		Password: req.Password,
	}
	if err := data.CreateUser(user); err != nil {
		log.Printf("SetupHandler: ошибка создания администратора: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create admin account")
		return
	}

	log.Printf("Первичная настройка завершена, создан администратор %s", user.Username)
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "user": user.PublicInfo()})
}

// LoginHandler обрабатывает вход и выдает JWT.
// Пример URL: POST /api/login
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Password) == "" {
		respondError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := data.GetUserByUsername(req.Username)
	if err != nil {
		log.Printf("LoginHandler: ошибка поиска пользователя %s: %v", req.Username, err)
		respondError(w, http.StatusInternalServerError, "Failed to read users")
		return
	}
	// Одинаковый ответ для "нет пользователя" и "не тот пароль".
	if user == nil || !data.VerifyPassword(user, req.Password) {
		respondError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	tokenString, _, err := auth.GenerateToken(*user)
	if err != nil {
		log.Printf("LoginHandler: ошибка генерации токена для %s: %v", user.Username, err)
		respondError(w, http.StatusInternalServerError, "Failed to generate access token")
		return
	}

	log.Printf("Успешный вход пользователя %s (%s)", user.Username, user.Role)
	respondJSON(w, http.StatusOK, models.AuthResponse{Token: tokenString, User: user.PublicInfo()})
}
