package controllers

import (
	"log"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"offroad_server_go/data"
	"offroad_server_go/middleware"
	"offroad_server_go/models"
)

// ListUsersHandler возвращает все учетки без хешей паролей.
// Пример URL: GET /api/users (только admin)
func ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := data.GetUsers()
	if err != nil {
		log.Printf("ListUsersHandler: ошибка чтения пользователей: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to read users")
		return
	}

	public := make([]models.User, 0, len(users))
	for _, u := range users {
		public = append(public, u.PublicInfo())
	}
	respondJSON(w, http.StatusOK, public)
}

// UpsertUserHandler создает или обновляет учетку. Запись с id обновляет
// существующего пользователя (пустой пароль оставляет прежний), без id —
// создает нового.
// Пример URL: POST /api/users (только admin)
func UpsertUserHandler(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(user.Username) == "" {
		respondError(w, http.StatusBadRequest, "Username is required")
		return
	}
	if user.Role == "" {
		user.Role = models.RoleEditor
	}
	if user.Role != models.RoleAdmin && user.Role != models.RoleEditor {
		respondError(w, http.StatusBadRequest, "Unknown role")
		return
	}

	if user.ID != "" {
		if err := data.UpdateUser(&user); err != nil {
			log.Printf("UpsertUserHandler: ошибка обновления пользователя %s: %v", user.ID, err)
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	} else {
		if strings.TrimSpace(user.Password) == "" {
			respondError(w, http.StatusBadRequest, "Password is required for a new user")
			return
		}
		if err := data.CreateUser(&user); err != nil {
			log.Printf("UpsertUserHandler: ошибка создания пользователя %s: %v", user.Username, err)
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "user": user.PublicInfo()})
}

// DeleteUserHandler удаляет учетку. Свою собственную удалить нельзя,
// иначе последний администратор выпилит сам себя.
// Пример URL: DELETE /api/users/1712345678901 (только admin)
func DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == middleware.UserIDFromContext(r.Context()) {
		respondError(w, http.StatusBadRequest, "Cannot delete your own account")
		return
	}

	if err := data.DeleteUser(id); err != nil {
		log.Printf("DeleteUserHandler: ошибка удаления пользователя %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
