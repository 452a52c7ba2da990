package controllers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const maxUploadSize = 20 * 1024 * 1024 // 20 MB

// imageExtensions — допустимые расширения для картинок записей.
var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".svg": true,
}

// uploadedFileInfo описывает один файл директории загрузок в ответе API.
type uploadedFileInfo struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
	Modified string `json:"modified"`
}

// saveUploadedFile кладет файл в директорию загрузок под именем
// <метка-времени>-<случайный-суффикс><расширение> и возвращает URL.
// allowed == nil принимает любое расширение (менеджер файлов админки).
func saveUploadedFile(file multipart.File, originalName string, allowed map[string]bool) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if allowed != nil && !allowed[ext] {
		return "", fmt.Errorf("File type %q is not allowed", ext)
	}

	if err := os.MkdirAll(uploadsDir, os.ModePerm); err != nil {
		log.Printf("saveUploadedFile: ошибка создания директории %s: %v", uploadsDir, err)
		return "", errors.New("Failed to prepare upload directory")
	}

	// Метка времени + случайный суффикс: у одновременных загрузок не совпадут имена.
	uniqueName := strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + uuid.New().String()[:8] + ext
	dstPath := filepath.Join(uploadsDir, uniqueName)

	dst, err := os.Create(dstPath)
	if err != nil {
		log.Printf("saveUploadedFile: ошибка создания файла %s: %v", dstPath, err)
		return "", errors.New("Failed to store file")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		log.Printf("saveUploadedFile: ошибка записи файла %s: %v", dstPath, err)
		return "", errors.New("Failed to store file")
	}

	fileURL := "/uploads/" + uniqueName
	log.Printf("Файл загружен: %s, доступен по URL %s", dstPath, fileURL)
	return fileURL, nil
}

// sanitizeFileName отклоняет имена с выходом из директории загрузок.
func sanitizeFileName(name string) error {
	if name == "" {
		return errors.New("File name is required")
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return errors.New("Invalid file name")
	}
	return nil
}

// ListFilesHandler возвращает содержимое директории загрузок для менеджера
// файлов админки, свежие сверху.
// Пример URL: GET /api/files (требует авторизации)
func ListFilesHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(uploadsDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			respondJSON(w, http.StatusOK, []uploadedFileInfo{})
			return
		}
		log.Printf("ListFilesHandler: ошибка чтения директории %s: %v", uploadsDir, err)
		respondError(w, http.StatusInternalServerError, "Failed to list files")
		return
	}

	infos := make([]os.FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		infos = append(infos, info)
	}
	// Свежие сверху. Сортируем по времени, а не по его строковому виду:
	// лексикографический порядок RFC3339 ломается на смене часового пояса.
	sort.Slice(infos, func(i, j int) bool { return infos[i].ModTime().After(infos[j].ModTime()) })

	files := make([]uploadedFileInfo, 0, len(infos))
	for _, info := range infos {
		files = append(files, uploadedFileInfo{
			Name:     info.Name(),
			URL:      "/uploads/" + info.Name(),
			Size:     info.Size(),
			Modified: info.ModTime().Format(time.RFC3339),
		})
	}

	respondJSON(w, http.StatusOK, files)
}

// UploadFileHandler принимает произвольный файл от менеджера файлов админки.
// Пример URL: POST /api/files (требует авторизации)
func UploadFileHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		if err.Error() == "http: request body too large" {
			respondError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("File must not exceed %dMB", maxUploadSize/1024/1024))
		} else {
			respondError(w, http.StatusBadRequest, "Failed to parse multipart form: "+err.Error())
		}
		return
	}

	file, handler, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to read file from request: "+err.Error())
		return
	}
	defer file.Close()

	fileURL, err := saveUploadedFile(file, handler.Filename, nil)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"url": fileURL})
}

// DeleteFileHandler удаляет файл из директории загрузок.
// Пример URL: DELETE /api/files/1712345678901-ab12cd34.jpg (требует авторизации)
func DeleteFileHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if err := sanitizeFileName(name); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := os.Remove(filepath.Join(uploadsDir, name)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// Файла уже нет — результат тот же, что и при удалении.
			respondJSON(w, http.StatusOK, map[string]bool{"success": true})
			return
		}
		log.Printf("DeleteFileHandler: ошибка удаления файла %s: %v", name, err)
		respondError(w, http.StatusInternalServerError, "Failed to delete file")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
