package data

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"offroad_server_go/models"
)

const usersFile = "users.json"

// HashPassword генерирует хеш bcrypt для пароля.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash сравнивает пароль с хешем.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// looksHashed отличает bcrypt-хеш от пароля, сохраненного открытым текстом
// (наследие руками заведенных учеток в users.json).
func looksHashed(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$")
}

// GetUsers возвращает всех пользователей.
func GetUsers() ([]models.User, error) {
	var users []models.User
	if err := ReadJSON(usersFile, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// GetUserByUsername извлекает пользователя по логину. Если такого нет — (nil, nil).
func GetUserByUsername(username string) (*models.User, error) {
	users, err := GetUsers()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, nil
}

// HasAdmin сообщает, существует ли хотя бы один администратор.
// От этого зависит, доступна ли первичная настройка.
func HasAdmin() (bool, error) {
	users, err := GetUsers()
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if u.Role == models.RoleAdmin {
			return true, nil
		}
	}
	return false, nil
}

// CreateUser создает пользователя: хеширует пароль, назначает id и дописывает
// запись в users.json. Логин должен быть свободен.
func CreateUser(user *models.User) error {
	unlock := Lock(usersFile)
	defer unlock()

	users, err := GetUsers()
	if err != nil {
		return err
	}

	for _, u := range users {
		if u.Username == user.Username {
			return fmt.Errorf("user %q already exists", user.Username)
		}
	}

	hashed, err := HashPassword(user.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hashed
	user.ID = strconv.FormatInt(time.Now().UnixMilli(), 10)
	user.CreatedAt = time.Now().Format(time.RFC3339)

	users = append(users, *user)
	return WriteJSON(usersFile, users)
}

// UpdateUser перезаписывает пользователя по id. Пустой пароль означает
// "оставить прежний", непустой — хешируется заново.
func UpdateUser(user *models.User) error {
	unlock := Lock(usersFile)
	defer unlock()

	users, err := GetUsers()
	if err != nil {
		return err
	}

	for i := range users {
		if users[i].ID != user.ID {
			continue
		}
		if user.Password == "" {
			user.Password = users[i].Password
		} else if !looksHashed(user.Password) {
			hashed, err := HashPassword(user.Password)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
			user.Password = hashed
		}
		if user.CreatedAt == "" {
			user.CreatedAt = users[i].CreatedAt
		}
		users[i] = *user
		return WriteJSON(usersFile, users)
	}
	return fmt.Errorf("no user found with ID %s", user.ID)
}

// DeleteUser удаляет пользователя по id. Отсутствие записи — не ошибка.
func DeleteUser(id string) error {
	unlock := Lock(usersFile)
	defer unlock()

	users, err := GetUsers()
	if err != nil {
		return err
	}
	filtered := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.ID != id {
			filtered = append(filtered, u)
		}
	}
	if len(filtered) == len(users) {
		return nil
	}
	return WriteJSON(usersFile, filtered)
}

// VerifyPassword проверяет пароль пользователя. Для учеток со старым открытым
// паролем сравнение идет по тексту, и при совпадении пароль тут же
// перехешируется и сохраняется — двойная ветка сравнения сама себя изживает.
func VerifyPassword(user *models.User, password string) bool {
	if looksHashed(user.Password) {
		return CheckPasswordHash(password, user.Password)
	}

	if user.Password != password {
		return false
	}

	hashed, err := HashPassword(password)
	if err != nil {
		log.Printf("VerifyPassword: не удалось перехешировать пароль пользователя %s: %v", user.Username, err)
		return true
	}
	rehashed := *user
	rehashed.Password = hashed
	if err := UpdateUser(&rehashed); err != nil {
		log.Printf("VerifyPassword: не удалось сохранить перехешированный пароль пользователя %s: %v", user.Username, err)
		return true
	}
	user.Password = hashed
	log.Printf("Пароль пользователя %s мигрирован на bcrypt", user.Username)
	return true
}
