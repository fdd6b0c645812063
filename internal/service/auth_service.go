package service

import (
	"context"
	"errors"
	"strings"

	"github.com/lisalescano/back-mapp/internal/dto"
	"github.com/lisalescano/back-mapp/internal/model"
	"github.com/lisalescano/back-mapp/internal/repository"
	"github.com/lisalescano/back-mapp/internal/token"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *token.Service
}

func NewAuthService(users repository.UserRepository, tokens *token.Service) AuthService {
	return &authService{users: users, tokens: tokens}
}

// NormalizeEmail trims surrounding spaces and lower-cases the address. Every
// path that stores or looks up an email goes through this.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := NormalizeEmail(req.Email)

	if _, err := s.users.FindByEmailOrUsername(ctx, email, req.Username); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	// Role is always "user" here; administrators are only minted by the
	// seeding CLI (cmd/seedadmin).
	user := &model.User{
		Username:     req.Username,
		Email:        email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         model.RoleUser,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Message: "Usuario registrado exitosamente",
		User:    UserToResponse(user),
		Token:   tok,
	}, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	email := NormalizeEmail(req.Email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Message: "Login exitoso",
		User:    UserToResponse(user),
		Token:   tok,
	}, nil
}
