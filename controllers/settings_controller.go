package controllers

import (
	"log"
	"net/http"

	json "github.com/goccy/go-json"

	"offroad_server_go/data"
	"offroad_server_go/models"
)

// GetSettingsHandler отдает объект настроек сайта. Открытый маршрут:
// сайт берет отсюда заголовок, соцсети и бегущую строку.
// Пример URL: GET /api/settings
func GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, data.GetSettings())
}

// UpdateSettingsHandler полностью заменяет объект настроек присланным.
// Замена, не слияние: клиент присылает настройки целиком.
// Пример URL: POST /api/settings (требует авторизации)
func UpdateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var settings models.Record
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	defer r.Body.Close()

	if err := data.SetSettings(settings); err != nil {
		log.Printf("UpdateSettingsHandler: ошибка записи настроек: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to save settings")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "settings": settings})
}
