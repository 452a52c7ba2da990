package config

import (
	"log"
	"os"
	"strings"
)

// Config — конфигурация сервера, собирается из переменных окружения.
type Config struct {
	Addr string

	JWTSecret string

	DataDir     string
	DefaultsDir string
	UploadsDir  string

	TranslateAPIURL string
}

// defaultJWTSecret используется только если JWT_SECRET не задан.
// В бою секрет обязан приходить из окружения.
const defaultJWTSecret = "offroad_dev_secret_change_me_!@#"

// FromEnv читает конфигурацию из окружения и подставляет значения по умолчанию.
func FromEnv() Config {
	var c Config

	c.Addr = strings.TrimSpace(os.Getenv("PORT"))
	if c.Addr == "" {
		c.Addr = ":8080"
	} else if !strings.HasPrefix(c.Addr, ":") {
		c.Addr = ":" + c.Addr
	}

	c.JWTSecret = strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if c.JWTSecret == "" {
		log.Println("ВНИМАНИЕ: JWT_SECRET не задан, используется небезопасный ключ по умолчанию")
		c.JWTSecret = defaultJWTSecret
	}

	c.DataDir = envOr("DATA_DIR", "./data_store")
	c.DefaultsDir = envOr("DEFAULTS_DIR", "./defaults")
	c.UploadsDir = envOr("UPLOADS_DIR", "./uploads")

	c.TranslateAPIURL = envOr("TRANSLATE_API_URL", "https://libretranslate.com/translate")

	return c
}

func envOr(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
