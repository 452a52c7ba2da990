package controllers

import (
	"bytes"
	"log"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"offroad_server_go/models"
)

// translateClient — клиент для внешнего сервиса перевода. Таймаут жесткий:
// админка ждет ответ интерактивно.
var translateClient = &http.Client{Timeout: 15 * time.Second}

// TranslateHandler проксирует текст во внешний сервис машинного перевода.
// Админка пользуется этим для черновых переводов строк на AZ/EN/RU.
// Пример URL: POST /api/translate
func TranslateHandler(w http.ResponseWriter, r *http.Request) {
	var req models.TranslateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Text) == "" || strings.TrimSpace(req.TargetLang) == "" {
		respondError(w, http.StatusBadRequest, "Text and targetLang are required")
		return
	}

	upstreamBody, err := json.Marshal(map[string]string{
		"q":      req.Text,
		"source": "auto",
		"target": req.TargetLang,
		"format": "text",
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build translation request")
		return
	}

	resp, err := translateClient.Post(translateAPIURL, "application/json", bytes.NewReader(upstreamBody))
	if err != nil {
		log.Printf("TranslateHandler: ошибка запроса к сервису перевода: %v", err)
		respondError(w, http.StatusInternalServerError, "Translation failed: "+err.Error())
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("TranslateHandler: сервис перевода вернул статус %d", resp.StatusCode)
		respondError(w, http.StatusInternalServerError, "Translation service returned status "+resp.Status)
		return
	}

	var upstream struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&upstream); err != nil {
		log.Printf("TranslateHandler: неразборчивый ответ сервиса перевода: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to parse translation response")
		return
	}

	respondJSON(w, http.StatusOK, models.TranslateResponse{Translation: upstream.TranslatedText})
}
