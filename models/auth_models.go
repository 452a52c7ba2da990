package models

// LoginRequest — тело запроса на вход.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SetupRequest — тело запроса первичной настройки (создание первого администратора).
type SetupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// AuthResponse возвращается при успешном входе.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// SetupStatusResponse сообщает клиенту, создан ли уже первый администратор.
type SetupStatusResponse struct {
	Initialized bool `json:"initialized"`
}
