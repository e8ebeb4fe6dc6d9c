// Package user содержит логику бизнес-уровня для работы с пользователями:
// регистрацию, аутентификацию и смену пароля.
package user

import (
	"context"
	"errors"

	"github.com/aditya-1123/Voting-App/internal/lib/jwt"
	"github.com/aditya-1123/Voting-App/internal/lib/password"
	"github.com/aditya-1123/Voting-App/internal/models"
	"github.com/aditya-1123/Voting-App/internal/storage/repository"
)

// Ошибки бизнес-уровня. HTTP-слой сопоставляет их со статус-кодами.
var (
	// ErrInvalidCredentials — неизвестный пользователь или неверный пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUsernameTaken — имя пользователя уже занято.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrUserNotFound — пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
)

// Repository описывает контракт для работы с пользователями в базе данных.
type Repository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)

	// UpdateUserPassword заменяет хэш пароля пользователя.
	UpdateUserPassword(ctx context.Context, userUID, passwordHash string) error
}

// Service отвечает за регистрацию, авторизацию и профиль пользователя.
type Service struct {
	users    Repository
	jwtMaker jwt.Maker
}

// New создает новый экземпляр Service.
func New(users Repository, jwtMaker jwt.Maker) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля.
// Роль всегда voter: администраторы заводятся только при старте приложения.
func (s *Service) Register(ctx context.Context, req models.DummyUser) (*models.User, error) {
	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		Age:          req.Age,
		Mobile:       req.Mobile,
		Address:      req.Address,
		PasswordHash: hashed,
		Role:         models.RoleVoter, // дефолтная роль при регистрации
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	user.UUID = uid
	user.PasswordHash = ""
	return &user, nil
}

// Login проверяет пароль пользователя и генерирует JWT с его ролью и UID.
func (s *Service) Login(ctx context.Context, username, rawPassword string) (token, role string, err error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", ErrInvalidCredentials
	}
	token, err = s.jwtMaker.GenerateToken(user.Username, user.Role, user.UUID)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}

// Profile возвращает профиль пользователя без хэша пароля.
func (s *Service) Profile(ctx context.Context, userUID string) (*models.User, error) {
	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// UpdatePassword заменяет пароль пользователя новым.
// UID берется из проверенного токена, поэтому сменить можно только свой пароль.
func (s *Service) UpdatePassword(ctx context.Context, userUID, newPassword string) error {
	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdateUserPassword(ctx, userUID, hashed); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
