package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
	"marketplace/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func TestAuthUsecase_Register_DefaultsToBuyer(t *testing.T) {
	users := new(UserRepoMock)
	uc := usecase.NewAuthUsecase(users, testSecret)

	users.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		u := args.Get(1).(*model.User)
		u.ID = 1
	}).Return(nil)

	out, err := uc.Register(context.Background(), usecase.RegisterInput{
		FullName: "Hanako Sato",
		Email:    "hanako@example.com",
		Password: "password123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "buyer", out.Role)
	assert.Equal(t, int64(1), out.ID)

	//ハッシュが保存されていること（平文ではない）
	created := users.Calls[0].Arguments.Get(1).(*model.User)
	assert.NotEqual(t, "password123", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("password123")))
}

func TestAuthUsecase_Register_DuplicateEmail(t *testing.T) {
	users := new(UserRepoMock)
	uc := usecase.NewAuthUsecase(users, testSecret)

	users.On("Create", mock.Anything, mock.Anything).Return(repo.ErrConflict)

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		FullName: "Hanako Sato",
		Email:    "hanako@example.com",
		Password: "password123",
	})
	assertHTTPError(t, err, http.StatusConflict, usecase.CodeConflict)
}

func TestAuthUsecase_Register_InvalidEmail(t *testing.T) {
	uc := usecase.NewAuthUsecase(new(UserRepoMock), testSecret)

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		FullName: "Hanako Sato",
		Email:    "not-an-email",
		Password: "password123",
	})
	assertHTTPError(t, err, http.StatusBadRequest, usecase.CodeValidation)
}

func TestAuthUsecase_Register_ShortPassword(t *testing.T) {
	uc := usecase.NewAuthUsecase(new(UserRepoMock), testSecret)

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		FullName: "Hanako Sato",
		Email:    "hanako@example.com",
		Password: "short",
	})
	assertHTTPError(t, err, http.StatusBadRequest, usecase.CodeValidation)
}

func TestAuthUsecase_Register_InvalidRole(t *testing.T) {
	uc := usecase.NewAuthUsecase(new(UserRepoMock), testSecret)

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		FullName: "Hanako Sato",
		Email:    "hanako@example.com",
		Password: "password123",
		Role:     "superuser",
	})
	assertHTTPError(t, err, http.StatusBadRequest, usecase.CodeValidation)
}

func TestAuthUsecase_Login_Success(t *testing.T) {
	users := new(UserRepoMock)
	uc := usecase.NewAuthUsecase(users, testSecret)

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	users.On("FindByEmail", mock.Anything, "taro@example.com").Return(model.User{
		ID: 42, Email: "taro@example.com", PasswordHash: string(hash), Role: model.RoleSeller,
	}, nil)

	out, err := uc.Login(context.Background(), "taro@example.com", "password123")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), out.User.ID)

	//トークンにsub/roleが入っていること
	token, err := jwt.Parse(out.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	assert.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "42", claims["sub"])
	assert.Equal(t, "seller", claims["role"])
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	users := new(UserRepoMock)
	uc := usecase.NewAuthUsecase(users, testSecret)

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	users.On("FindByEmail", mock.Anything, "taro@example.com").Return(model.User{
		ID: 42, PasswordHash: string(hash), Role: model.RoleBuyer,
	}, nil)

	_, err := uc.Login(context.Background(), "taro@example.com", "wrong-password")
	assertHTTPError(t, err, http.StatusUnauthorized, usecase.CodeUnauthorized)
}

func TestAuthUsecase_Login_UnknownEmail(t *testing.T) {
	users := new(UserRepoMock)
	uc := usecase.NewAuthUsecase(users, testSecret)

	users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(model.User{}, repo.ErrNotFound)

	_, err := uc.Login(context.Background(), "nobody@example.com", "password123")
	assertHTTPError(t, err, http.StatusUnauthorized, usecase.CodeUnauthorized)
}

func TestAuthUsecase_GetUser_NotFound(t *testing.T) {
	users := new(UserRepoMock)
	uc := usecase.NewAuthUsecase(users, testSecret)

	users.On("FindByID", mock.Anything, int64(9)).Return(model.User{}, repo.ErrNotFound)

	_, err := uc.GetUser(context.Background(), 9)
	assertHTTPError(t, err, http.StatusNotFound, usecase.CodeNotFound)
}
