package service

import (
	"context"
	"errors"
	"time"

	"mediabuy/internal/model"
	"mediabuy/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// DTOs for request validation
type LoginUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

var ErrInvalidCredentials = errors.New("invalid email or password")

// UserService authenticates back-office users for the audit-trail and
// event-stream endpoints.
type UserService interface {
	Login(ctx context.Context, req LoginUserRequest) (*TokenResponse, error)
	EnsureDefaultUser(ctx context.Context, email, password string) error
}

type userService struct {
	repo   repository.UserRepository
	secret []byte
}

// NewUserService returns a new instance of UserService
func NewUserService(repo repository.UserRepository, secret []byte) UserService {
	return &userService{repo: repo, secret: secret}
}

func (s *userService) Login(ctx context.Context, req LoginUserRequest) (*TokenResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{Token: signed}, nil
}

// EnsureDefaultUser seeds the back-office account on first boot so the audit
// and websocket surfaces are reachable without a separate provisioning step.
func (s *userService) EnsureDefaultUser(ctx context.Context, email, password string) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.repo.Create(ctx, &model.User{
		Username: "admin",
		Email:    email,
		Password: string(hashed),
	})
}
