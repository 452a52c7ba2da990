package models

// User представляет учетную запись администратора или редактора.
// Password хранит bcrypt-хеш; в ответах API поле вычищается.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Password  string `json:"password,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Роли пользователей. Проверка жесткая: только admin управляет другими учетками.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// PublicInfo возвращает копию пользователя без хеша пароля.
func (u User) PublicInfo() User {
	u.Password = ""
	return u
}
