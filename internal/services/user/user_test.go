package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	customjwt "github.com/aditya-1123/Voting-App/internal/lib/jwt"
	"github.com/aditya-1123/Voting-App/internal/lib/password"
	"github.com/aditya-1123/Voting-App/internal/models"
	userservice "github.com/aditya-1123/Voting-App/internal/services/user"
	"github.com/aditya-1123/Voting-App/internal/storage/repository"
)

// Мок для Repository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UserRepoMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) UpdateUserPassword(ctx context.Context, userUID, passwordHash string) error {
	args := m.Called(ctx, userUID, passwordHash)
	return args.Error(0)
}

// Мок для jwt.Maker
type JwtMakerMock struct {
	mock.Mock
}

func (m *JwtMakerMock) GenerateToken(username, role, useruid string) (string, error) {
	args := m.Called(username, role, useruid)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) ParseToken(token string) (*customjwt.CustomClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customjwt.CustomClaims), args.Error(1)
}

func TestService_Register(t *testing.T) {
	tests := []struct {
		name       string
		req        models.DummyUser
		setupMocks func(r *UserRepoMock)
		wantErr    error
		wantUID    string
	}{
		{
			name: "successful registration",
			req: models.DummyUser{
				Username: "testvoter",
				Password: "password123",
				Email:    "voter@example.com",
				Age:      30,
			},
			setupMocks: func(r *UserRepoMock) {
				r.On("RegisterUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
					return user.Username == "testvoter" &&
						user.Email == "voter@example.com" &&
						user.PasswordHash != "" &&
						user.PasswordHash != "password123" &&
						user.Role == models.RoleVoter
				})).Return("some-uuid-string", nil).Once()
			},
			wantUID: "some-uuid-string",
		},
		{
			name: "duplicate username",
			req: models.DummyUser{
				Username: "taken",
				Password: "password123",
				Email:    "taken@example.com",
			},
			setupMocks: func(r *UserRepoMock) {
				r.On("RegisterUser", mock.Anything, mock.Anything).
					Return("", repository.ErrDuplicateUsername).Once()
			},
			wantErr: userservice.ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			tt.setupMocks(repo)
			svc := userservice.New(repo, new(JwtMakerMock))

			user, err := svc.Register(context.Background(), tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantUID, user.UUID)
				// Хэш не должен утекать наружу
				assert.Empty(t, user.PasswordHash)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Login(t *testing.T) {
	hash, err := password.GetHash("correct_password")
	assert.NoError(t, err)

	storedUser := &models.User{
		UUID:         "uid-1",
		Username:     "testvoter",
		Role:         models.RoleVoter,
		PasswordHash: hash,
	}

	tests := []struct {
		name       string
		username   string
		password   string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantErr    error
		wantToken  string
	}{
		{
			name:     "successful login",
			username: "testvoter",
			password: "correct_password",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByUsername", mock.Anything, "testvoter").
					Return(storedUser, nil).Once()
				j.On("GenerateToken", "testvoter", models.RoleVoter, "uid-1").
					Return("signed-token", nil).Once()
			},
			wantToken: "signed-token",
		},
		{
			name:     "wrong password",
			username: "testvoter",
			password: "wrong_password",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByUsername", mock.Anything, "testvoter").
					Return(storedUser, nil).Once()
			},
			wantErr: userservice.ErrInvalidCredentials,
		},
		{
			name:     "unknown user",
			username: "ghost",
			password: "whatever123",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByUsername", mock.Anything, "ghost").
					Return(nil, repository.ErrNotFound).Once()
			},
			wantErr: userservice.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			maker := new(JwtMakerMock)
			tt.setupMocks(repo, maker)
			svc := userservice.New(repo, maker)

			token, role, err := svc.Login(context.Background(), tt.username, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
				assert.Equal(t, models.RoleVoter, role)
			}
			repo.AssertExpectations(t)
			maker.AssertExpectations(t)
		})
	}
}

func TestService_Profile(t *testing.T) {
	repo := new(UserRepoMock)
	repo.On("GetUser", mock.Anything, "uid-1").
		Return(&models.User{
			UUID:         "uid-1",
			Username:     "testvoter",
			Role:         models.RoleVoter,
			PasswordHash: "stored-hash",
		}, nil).Once()
	svc := userservice.New(repo, new(JwtMakerMock))

	user, err := svc.Profile(context.Background(), "uid-1")
	assert.NoError(t, err)
	assert.Equal(t, "testvoter", user.Username)
	assert.Empty(t, user.PasswordHash)
	repo.AssertExpectations(t)
}

func TestService_Profile_NotFound(t *testing.T) {
	repo := new(UserRepoMock)
	repo.On("GetUser", mock.Anything, "ghost-uid").
		Return(nil, repository.ErrNotFound).Once()
	svc := userservice.New(repo, new(JwtMakerMock))

	user, err := svc.Profile(context.Background(), "ghost-uid")
	assert.ErrorIs(t, err, userservice.ErrUserNotFound)
	assert.Nil(t, user)
}

func TestService_UpdatePassword(t *testing.T) {
	repo := new(UserRepoMock)
	repo.On("UpdateUserPassword", mock.Anything, "uid-1",
		mock.MatchedBy(func(hash string) bool {
			// В хранилище уходит bcrypt-хэш, не исходный пароль
			return hash != "" && hash != "new_password" &&
				password.CompareHash(hash, "new_password") == nil
		})).Return(nil).Once()
	svc := userservice.New(repo, new(JwtMakerMock))

	err := svc.UpdatePassword(context.Background(), "uid-1", "new_password")
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_UpdatePassword_UserGone(t *testing.T) {
	repo := new(UserRepoMock)
	repo.On("UpdateUserPassword", mock.Anything, "ghost-uid", mock.Anything).
		Return(repository.ErrNotFound).Once()
	svc := userservice.New(repo, new(JwtMakerMock))

	err := svc.UpdatePassword(context.Background(), "ghost-uid", "new_password")
	assert.ErrorIs(t, err, userservice.ErrUserNotFound)
}
