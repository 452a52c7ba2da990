package data

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"

	"offroad_server_go/models"
)

// Хранилище — директория с JSON-файлами: по одному массиву на коллекцию
// и по одному объекту на одиночные записи (настройки). Каждое чтение и запись
// затрагивают файл целиком; коллекции маленькие, это осознанный компромисс.
var (
	dataDir     string
	defaultsDir string

	locksMu   sync.Mutex
	fileLocks = map[string]*sync.Mutex{}
)

// InitStore инициализирует директорию данных и при первом запуске копирует
// недостающие файлы из директории заготовок (стартовый контент сайта).
func InitStore(dir, defaults string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	dataDir = dir
	defaultsDir = defaults

	if defaultsDir != "" {
		if err := seedDefaults(); err != nil {
			return err
		}
	}

	log.Printf("Хранилище данных инициализировано: %s", dataDir)
	return nil
}

// seedDefaults копирует файлы-заготовки, которых еще нет в директории данных.
// Уже существующие файлы не трогаем, чтобы не затереть правки администратора.
func seedDefaults() error {
	entries, err := os.ReadDir(defaultsDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read defaults directory %s: %w", defaultsDir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		dst := filepath.Join(dataDir, entry.Name())
		if _, err := os.Stat(dst); err == nil {
			continue
		}
		if err := copyFile(filepath.Join(defaultsDir, entry.Name()), dst); err != nil {
			return fmt.Errorf("failed to seed %s: %w", entry.Name(), err)
		}
		log.Printf("Файл %s отсутствовал, скопирован из заготовок", entry.Name())
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

// Lock берет блокировку файла коллекции и возвращает функцию снятия.
// Все циклы "прочитал-изменил-записал" обязаны идти под этой блокировкой,
// иначе параллельные записи теряют чужие изменения.
func Lock(file string) func() {
	locksMu.Lock()
	mu, ok := fileLocks[file]
	if !ok {
		mu = &sync.Mutex{}
		fileLocks[file] = mu
	}
	locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

// ReadJSON читает файл хранилища в v. Отсутствующий файл — не ошибка,
// v остается нетронутым.
func ReadJSON(file string, v interface{}) error {
	raw, err := os.ReadFile(filepath.Join(dataDir, file))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", file, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", file, err)
	}
	return nil
}

// WriteJSON сериализует v с отступами и атомарно заменяет файл хранилища
// (запись во временный файл, затем rename — упавшая на середине запись
// не оставит усеченный файл).
func WriteJSON(file string, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", file, err)
	}

	path := filepath.Join(dataDir, file)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", file, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", file, err)
	}
	return nil
}

// ReadCollection возвращает все записи файла коллекции. Отсутствующий или
// битый файл дает пустую коллекцию: публичные страницы должны открываться,
// даже если администратор руками испортил JSON. Ошибка парсинга уходит в лог.
func ReadCollection(file string) []models.Record {
	var records []models.Record
	if err := ReadJSON(file, &records); err != nil {
		log.Printf("ReadCollection: %v — возвращаю пустую коллекцию", err)
		return []models.Record{}
	}
	if records == nil {
		records = []models.Record{}
	}
	return records
}

// WriteCollection перезаписывает файл коллекции целиком.
func WriteCollection(file string, records []models.Record) error {
	if records == nil {
		records = []models.Record{}
	}
	return WriteJSON(file, records)
}

// ReadObject возвращает одиночную запись (настройки). Отсутствующий или битый
// файл дает пустой объект.
func ReadObject(file string) models.Record {
	var record models.Record
	if err := ReadJSON(file, &record); err != nil {
		log.Printf("ReadObject: %v — возвращаю пустой объект", err)
		return models.Record{}
	}
	if record == nil {
		record = models.Record{}
	}
	return record
}
