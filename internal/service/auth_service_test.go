package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"roomlink/internal/auth"
	"roomlink/internal/model"
)

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		role          model.Role
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:  "successful student registration",
			email: "amine@example.com",
			role:  model.RoleStudent,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "amine@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:  "successful owner registration",
			email: "karim@example.com",
			role:  model.RoleOwner,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "karim@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:  "email already taken",
			email: "taken@example.com",
			role:  model.RoleStudent,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "taken@example.com").
					Return(&model.User{ID: 1, Email: "taken@example.com"}, nil)
			},
			expectedError: ErrUserAlreadyExists,
		},
		{
			name:          "admin cannot be self-registered",
			email:         "root@example.com",
			role:          model.RoleAdmin,
			setupMock:     func(m *MockUserRepository) {},
			expectedError: ErrInvalidRole,
		},
		{
			name:          "unknown role is rejected",
			email:         "odd@example.com",
			role:          model.Role("superuser"),
			setupMock:     func(m *MockUserRepository) {},
			expectedError: ErrInvalidRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mUser := new(MockUserRepository)
			tt.setupMock(mUser)

			svc := NewAuthService(mUser, auth.NewJWTService("test-secret"), new(MockTokenStore))
			user, err := svc.Register(context.Background(), tt.email, "password123", "Test User", tt.role)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				mUser.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, tt.role, user.Role)
				assert.NotEqual(t, "password123", user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
			}

			mUser.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	assert.NoError(t, err)

	stored := &model.User{
		ID:           1,
		Email:        "amine@example.com",
		PasswordHash: string(hash),
		Role:         model.RoleStudent,
	}

	t.Run("successful login", func(t *testing.T) {
		mUser := new(MockUserRepository)
		mUser.On("FindByEmail", mock.Anything, "amine@example.com").Return(stored, nil)

		mStore := new(MockTokenStore)
		mStore.On("StoreRefreshToken", mock.Anything, mock.AnythingOfType("string"), uint(1), "amine@example.com", "student", auth.RefreshTokenExpiry).Return(nil)

		jwtService := auth.NewJWTService("test-secret")
		svc := NewAuthService(mUser, jwtService, mStore)

		accessToken, refreshToken, user, err := svc.Login(context.Background(), "amine@example.com", "password123")

		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)
		assert.Equal(t, stored.ID, user.ID)

		claims, err := jwtService.ValidateToken(accessToken)
		assert.NoError(t, err)
		assert.Equal(t, uint(1), claims.UserID)
		assert.Equal(t, "student", claims.Role)

		mStore.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		mUser := new(MockUserRepository)
		mUser.On("FindByEmail", mock.Anything, "amine@example.com").Return(stored, nil)

		svc := NewAuthService(mUser, auth.NewJWTService("test-secret"), new(MockTokenStore))
		_, _, _, err := svc.Login(context.Background(), "amine@example.com", "nope")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		mUser := new(MockUserRepository)
		mUser.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

		svc := NewAuthService(mUser, auth.NewJWTService("test-secret"), new(MockTokenStore))
		_, _, _, err := svc.Login(context.Background(), "ghost@example.com", "password123")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(1, "amine@example.com", "student")
	assert.NoError(t, err)

	t.Run("successful refresh", func(t *testing.T) {
		mStore := new(MockTokenStore)
		mStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(1), "amine@example.com", "student", nil)

		svc := NewAuthService(new(MockUserRepository), jwtService, mStore)
		accessToken, err := svc.RefreshToken(context.Background(), refreshToken)

		assert.NoError(t, err)
		claims, err := jwtService.ValidateToken(accessToken)
		assert.NoError(t, err)
		assert.Equal(t, uint(1), claims.UserID)
		mStore.AssertExpectations(t)
	})

	t.Run("revoked token", func(t *testing.T) {
		mStore := new(MockTokenStore)
		mStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(0), "", "", assert.AnError)

		svc := NewAuthService(new(MockUserRepository), jwtService, mStore)
		_, err := svc.RefreshToken(context.Background(), refreshToken)

		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepository), jwtService, new(MockTokenStore))
		_, err := svc.RefreshToken(context.Background(), "not-a-jwt")

		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})
}

func TestAuthService_Logout(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(1, "amine@example.com", "student")
	assert.NoError(t, err)

	mStore := new(MockTokenStore)
	mStore.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)

	svc := NewAuthService(new(MockUserRepository), jwtService, mStore)
	assert.NoError(t, svc.Logout(context.Background(), refreshToken))
	mStore.AssertExpectations(t)
}
