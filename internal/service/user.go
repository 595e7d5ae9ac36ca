package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/roydza27/MindEaseLite-sub000/internal"
	"github.com/roydza27/MindEaseLite-sub000/internal/auth"
	"github.com/roydza27/MindEaseLite-sub000/internal/storage"
)

var validate = validator.New()

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SettingsRequest struct {
	Theme         *string `json:"theme" validate:"omitempty,oneof=light dark"`
	Language      *string `json:"language" validate:"omitempty,min=2,max=8"`
	Notifications *bool   `json:"notifications"`
}

// AuthResult is the payload returned by register and login.
type AuthResult struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	User      *internal.User `json:"user"`
}

func ValidateRegisterRequest(req *RegisterRequest) error {
	return validate.Struct(req)
}

func ValidateLoginRequest(req *LoginRequest) error {
	return validate.Struct(req)
}

func ValidateSettingsRequest(req *SettingsRequest) error {
	return validate.Struct(req)
}

func Register(ctx context.Context, users storage.UserRepository, tm *auth.TokenManager, req *RegisterRequest) (*AuthResult, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &internal.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Settings:     internal.DefaultSettings(),
		CreatedAt:    time.Now(),
	}
	if err := users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			return nil, internal.ValidationError("email already registered")
		}
		return nil, err
	}

	token, expiresAt, err := tm.Generate(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func Login(ctx context.Context, users storage.UserRepository, tm *auth.TokenManager, req *LoginRequest) (*AuthResult, error) {
	user, err := users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, internal.UnauthorizedError("invalid email or password")
		}
		return nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, req.Password); err != nil {
		return nil, internal.UnauthorizedError("invalid email or password")
	}

	token, expiresAt, err := tm.Generate(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func UpdateSettings(ctx context.Context, users storage.UserRepository, user *internal.User, req *SettingsRequest) (*internal.User, error) {
	updated := *user
	if req.Theme != nil {
		updated.Settings.Theme = *req.Theme
	}
	if req.Language != nil {
		updated.Settings.Language = *req.Language
	}
	if req.Notifications != nil {
		updated.Settings.Notifications = *req.Notifications
	}
	if err := users.UpdateUser(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
