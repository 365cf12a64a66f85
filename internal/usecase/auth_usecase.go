package usecase

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost = 10
	tokenTTL   = 5 * 24 * time.Hour
)

type AuthUsecase struct {
	users     repo.UserRepository
	jwtSecret []byte
}

func NewAuthUsecase(users repo.UserRepository, jwtSecret string) *AuthUsecase {
	return &AuthUsecase{users: users, jwtSecret: []byte(jwtSecret)}
}

type RegisterInput struct {
	FullName    string
	Email       string
	Password    string
	PhoneNumber string
	Role        string
}

type UserDTO struct {
	ID          int64     `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	PhoneNumber *string   `json:"phone_number"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// 会員登録。roleは未指定ならbuyer
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (UserDTO, error) {
	email := strings.TrimSpace(in.Email)
	if in.FullName == "" || email == "" || in.Password == "" {
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, CodeValidation, "full_name, email and password are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, CodeValidation, "invalid email format")
	}
	if len(in.Password) < 8 {
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, CodeValidation, "password too short")
	}

	role := model.Role(in.Role)
	if in.Role == "" {
		role = model.RoleBuyer
	}
	if !role.Valid() {
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, CodeValidation, "invalid role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, CodeInternal, "hash error")
	}

	user := model.User{
		FullName:     in.FullName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if in.PhoneNumber != "" {
		phone := in.PhoneNumber
		user.PhoneNumber = &phone
	}

	if err := u.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return UserDTO{}, NewHTTPError(http.StatusConflict, CodeConflict, "email or phone number already registered")
		}
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}

	return toUserDTO(user), nil
}

type LoginOutput struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

func (u *AuthUsecase) Login(ctx context.Context, email string, password string) (LoginOutput, error) {
	if email == "" || password == "" {
		return LoginOutput{}, NewHTTPError(http.StatusBadRequest, CodeValidation, "email and password are required")
	}

	user, err := u.users.FindByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, "invalid credentials")
	}
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, "invalid credentials")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(user.ID, 10),
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(tokenTTL).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.jwtSecret)
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, CodeInternal, "token error")
	}

	return LoginOutput{Token: signed, User: toUserDTO(user)}, nil
}

func (u *AuthUsecase) ListUsers(ctx context.Context) ([]UserDTO, error) {
	users, err := u.users.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}
	outs := make([]UserDTO, 0, len(users))
	for _, usr := range users {
		outs = append(outs, toUserDTO(usr))
	}
	return outs, nil
}

func (u *AuthUsecase) GetUser(ctx context.Context, userID int64) (UserDTO, error) {
	if userID <= 0 {
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, CodeValidation, "invalid id")
	}
	user, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return UserDTO{}, NewHTTPError(http.StatusNotFound, CodeNotFound, "user not found")
	}
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}
	return toUserDTO(user), nil
}

func toUserDTO(u model.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		FullName:    u.FullName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        string(u.Role),
		CreatedAt:   u.CreatedAt,
	}
}
