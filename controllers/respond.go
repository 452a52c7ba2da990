package controllers

import (
	"log"
	"net/http"

	json "github.com/goccy/go-json"

	"offroad_server_go/config"
)

// Настройки, нужные контроллерам напрямую. Заполняются из main при старте.
var (
	uploadsDir      = "./uploads"
	translateAPIURL = "https://libretranslate.com/translate"
)

// Configure передает контроллерам прикладную конфигурацию.
func Configure(cfg config.Config) {
	uploadsDir = cfg.UploadsDir
	translateAPIURL = cfg.TranslateAPIURL
}

// respondJSON пишет успешный JSON-ответ.
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Заголовки уже ушли, http.Error слать поздно — только лог.
		log.Printf("respondJSON: ошибка кодирования ответа: %v", err)
	}
}

// respondError пишет JSON-ошибку вида {"error": "..."}.
func respondError(w http.ResponseWriter, statusCode int, message string) {
	log.Printf("HTTP %d: %s", statusCode, message)
	respondJSON(w, statusCode, map[string]string{"error": message})
}
