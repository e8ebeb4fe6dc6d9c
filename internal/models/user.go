// Package models содержит доменные модели системы голосования:
// пользователей (избирателей и администраторов) и кандидатов.
// Структуры используются в бизнес-логике и при работе с хранилищем.
package models

// Роли пользователей системы.
const (
	RoleVoter = "voter"
	RoleAdmin = "admin"
)

// User представляет зарегистрированного пользователя системы.
type User struct {
	UUID         string `json:"uid"`      // Уникальный идентификатор пользователя
	Username     string `json:"username"` // Имя пользователя (уникальное)
	Email        string `json:"email"`    // Электронная почта
	Age          int    `json:"age"`      // Возраст, неотрицательный
	Mobile       string `json:"mobile"`   // Номер мобильного телефона
	Address      string `json:"address"`  // Адрес
	Role         string `json:"role"`     // Роль пользователя, voter или admin
	PasswordHash string `json:"-"`        // Хэш пароля, никогда не сериализуется
	HasVoted     bool   `json:"has_voted"`
}

// DummyUser — входные данные регистрации нового пользователя.
type DummyUser struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email" validate:"required,email"`
	Age      int    `json:"age" validate:"min=0"`
	Mobile   string `json:"mobile"`
	Address  string `json:"address"`
}
