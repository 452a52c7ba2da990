package controllers

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"offroad_server_go/data"
	"offroad_server_go/models"
)

// maxEntityUploadSize ограничивает размер multipart-запроса на сохранение записи.
const maxEntityUploadSize = 10 * 1024 * 1024 // 10 MB

// ListEntityHandler отдает все записи коллекции. Открытый маршрут:
// эти же данные сайт показывает любому посетителю.
// Пример URL: GET /api/drivers
func ListEntityHandler(w http.ResponseWriter, r *http.Request) {
	entity, ok := data.GetEntity(mux.Vars(r)["entity"])
	if !ok {
		respondError(w, http.StatusNotFound, "Unknown entity")
		return
	}
	respondJSON(w, http.StatusOK, data.ListRecords(entity))
}

// UpsertEntityHandler сохраняет запись коллекции (создание или обновление по id).
// Ожидает multipart-форму: поле data — JSON записи, необязательное поле
// image/file — прикрепленная картинка. Чистый JSON-запрос тоже принимается.
// Пример URL: POST /api/news (требует авторизации)
func UpsertEntityHandler(w http.ResponseWriter, r *http.Request) {
	entity, ok := data.GetEntity(mux.Vars(r)["entity"])
	if !ok {
		respondError(w, http.StatusNotFound, "Unknown entity")
		return
	}

	payload, err := parseEntityPayload(w, r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Прикрепленный файл сохраняем в uploads и подставляем его URL в поле image
	// до записи в хранилище.
	if fileURL, err := bindUploadedImage(r); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	} else if fileURL != "" {
		payload["image"] = fileURL
	}

	// Ссылку на видео нормализуем в идентификатор для встраиваемого плеера.
	if videoURL, ok := payload["videoUrl"].(string); ok && videoURL != "" {
		if videoID := ResolveYouTubeID(videoURL); videoID != "" {
			payload["videoId"] = videoID
		}
	}

	item, created, err := data.UpsertRecord(entity, payload)
	if err != nil {
		if errors.Is(err, data.ErrInvalidRecord) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("UpsertEntityHandler: ошибка сохранения %s: %v", entity.Name, err)
		respondError(w, http.StatusInternalServerError, "Failed to save record")
		return
	}

	if created {
		log.Printf("Коллекция %s: создана запись %v", entity.Name, item["id"])
	} else {
		log.Printf("Коллекция %s: обновлена запись %v", entity.Name, item["id"])
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "item": item})
}

// DeleteEntityHandler удаляет запись по id. Удаление отсутствующей записи
// тоже успех — клиенту важен итог "записи нет", а не история.
// Пример URL: DELETE /api/news/1712345678901 (требует авторизации)
func DeleteEntityHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entity, ok := data.GetEntity(vars["entity"])
	if !ok {
		respondError(w, http.StatusNotFound, "Unknown entity")
		return
	}

	if err := data.DeleteRecord(entity, vars["id"]); err != nil {
		log.Printf("DeleteEntityHandler: ошибка удаления из %s: %v", entity.Name, err)
		respondError(w, http.StatusInternalServerError, "Failed to delete record")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// parseEntityPayload извлекает JSON записи из запроса: либо поле data
// multipart-формы, либо, для запросов без файла, обычное JSON-тело.
func parseEntityPayload(w http.ResponseWriter, r *http.Request) (models.Record, error) {
	var payload models.Record

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			return nil, errors.New("Invalid JSON")
		}
		defer r.Body.Close()
		// null — валидный JSON, но map остается nil; записи из него не выйдет.
		if payload == nil {
			return nil, errors.New("Invalid JSON")
		}
		return payload, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxEntityUploadSize)
	if err := r.ParseMultipartForm(maxEntityUploadSize); err != nil {
		return nil, errors.New("Failed to parse multipart form: " + err.Error())
	}

	raw := r.FormValue("data")
	if raw == "" {
		return nil, errors.New("Missing data field")
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, errors.New("Invalid JSON")
	}
	if payload == nil {
		return nil, errors.New("Invalid JSON")
	}
	return payload, nil
}

// bindUploadedImage сохраняет прикрепленный файл формы (image, запасное имя
// file) и возвращает его URL. Если файла нет — пустая строка без ошибки.
func bindUploadedImage(r *http.Request) (string, error) {
	if r.MultipartForm == nil {
		return "", nil
	}

	file, handler, err := r.FormFile("image")
	if err != nil {
		file, handler, err = r.FormFile("file")
	}
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", errors.New("Failed to read attached file: " + err.Error())
	}
	defer file.Close()

	return saveUploadedFile(file, handler.Filename, imageExtensions)
}

// youtubeIDPattern — 11 символов идентификатора ролика.
var youtubeIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ResolveYouTubeID вытаскивает идентификатор ролика из ссылки в любом ходовом
// виде: watch?v=, youtu.be/, /embed/, /shorts/ или уже готовый id.
// Неопознанная ссылка дает пустую строку.
func ResolveYouTubeID(raw string) string {
	raw = strings.TrimSpace(raw)
	if youtubeIDPattern.MatchString(raw) {
		return raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	host := strings.TrimPrefix(u.Host, "www.")
	switch host {
	case "youtu.be":
		id := strings.Trim(u.Path, "/")
		if youtubeIDPattern.MatchString(id) {
			return id
		}
	case "youtube.com", "m.youtube.com", "youtube-nocookie.com":
		if id := u.Query().Get("v"); youtubeIDPattern.MatchString(id) {
			return id
		}
		for _, prefix := range []string{"/embed/", "/shorts/", "/v/"} {
			if strings.HasPrefix(u.Path, prefix) {
				id := strings.Trim(strings.TrimPrefix(u.Path, prefix), "/")
				if youtubeIDPattern.MatchString(id) {
					return id
				}
			}
		}
	}
	return ""
}
