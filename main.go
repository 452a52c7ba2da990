package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"offroad_server_go/auth"
	"offroad_server_go/config"
	"offroad_server_go/controllers"
	"offroad_server_go/data"
	"offroad_server_go/middleware"
)

func main() {
	// .env необязателен: в контейнере конфигурация приходит из окружения.
	if err := godotenv.Load(); err == nil {
		log.Println("Конфигурация дополнена из .env")
	}
	cfg := config.FromEnv()

	auth.Init(cfg.JWTSecret)
	controllers.Configure(cfg)

	// Инициализация хранилища: директория данных + заготовки стартового контента.
	if err := data.InitStore(cfg.DataDir, cfg.DefaultsDir); err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}

	router := NewRouter(cfg)

	log.Printf("Запуск сервера на %s", cfg.Addr)
	// CORS оборачивает маршрутизатор снаружи, чтобы preflight-запросы OPTIONS
	// получали ответ даже без зарегистрированного маршрута.
	if err := http.ListenAndServe(cfg.Addr, middleware.CORSMiddleware(router)); err != nil {
		log.Fatal(err)
	}
}

// NewRouter собирает все маршруты API. Вынесен отдельно, чтобы тесты могли
// поднять полный маршрутизатор без запуска сервера.
func NewRouter(cfg config.Config) *mux.Router {
	router := mux.NewRouter()

	// Открытые маршруты аутентификации.
	// Клиент ожидает /api/login и /api/auth/...
	router.HandleFunc("/api/login", controllers.LoginHandler).Methods(http.MethodPost)
	authRouter := router.PathPrefix("/api/auth").Subrouter()
	authRouter.HandleFunc("/setup-status", controllers.SetupStatusHandler).Methods(http.MethodGet)
	authRouter.HandleFunc("/setup", controllers.SetupHandler).Methods(http.MethodPost)

	// Открытые маршруты чтения: эти данные показывает публичный сайт.
	router.HandleFunc("/api/settings", controllers.GetSettingsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/contact", controllers.ContactHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/translate", controllers.TranslateHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/health", controllers.HealthCheck).Methods(http.MethodGet)

	// Защищенные маршруты: все изменения только с валидным JWT.
	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.Use(middleware.JWTMiddleware)
	apiRouter.HandleFunc("/settings", controllers.UpdateSettingsHandler).Methods(http.MethodPost)

	// Менеджер файлов админки.
	fileRouter := apiRouter.PathPrefix("/files").Subrouter()
	fileRouter.HandleFunc("", controllers.ListFilesHandler).Methods(http.MethodGet)
	fileRouter.HandleFunc("", controllers.UploadFileHandler).Methods(http.MethodPost)
	fileRouter.HandleFunc("/{name}", controllers.DeleteFileHandler).Methods(http.MethodDelete)

	// Управление учетками — только для роли admin.
	userRouter := apiRouter.PathPrefix("/users").Subrouter()
	userRouter.Use(middleware.RequireAdmin)
	userRouter.HandleFunc("", controllers.ListUsersHandler).Methods(http.MethodGet)
	userRouter.HandleFunc("", controllers.UpsertUserHandler).Methods(http.MethodPost)
	userRouter.HandleFunc("/{id}", controllers.DeleteUserHandler).Methods(http.MethodDelete)

	// Обобщенные маршруты коллекций. Регистрируются после именованных маршрутов
	// /api/..., чтобы settings/files/users не попали в {entity}.
	// Чтение открытое, запись и удаление — под JWT.
	router.HandleFunc("/api/{entity}", controllers.ListEntityHandler).Methods(http.MethodGet)
	apiRouter.HandleFunc("/{entity}", controllers.UpsertEntityHandler).Methods(http.MethodPost)
	apiRouter.HandleFunc("/{entity}/{id}", controllers.DeleteEntityHandler).Methods(http.MethodDelete)

	// Статическая раздача загруженных файлов. Без JWT: картинки должны
	// открываться по прямой ссылке на публичном сайте.
	router.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))

	return router
}
