package services

import (
	"context"
	"errors"
	"strings"

	"github.com/careercompass/api/internal/auth"
	"github.com/careercompass/api/internal/models"
	pgrepo "github.com/careercompass/api/internal/repositories/postgres"
	"github.com/careercompass/api/internal/utils"
	"github.com/google/uuid"
)

const invalidCredentials = "Invalid email or password"

type RegisterInput struct {
	FullName string
	Email    string
	Password string
}

type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

type authService struct {
	users  pgrepo.UserRepository
	tokens *auth.MockTokens
}

func NewAuthService(users pgrepo.UserRepository, tokens *auth.MockTokens) AuthService {
	return &authService{users: users, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	const op = "AuthService.Register"

	email := strings.ToLower(strings.TrimSpace(in.Email))
	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to check email", err)
	}
	if exists {
		return nil, utils.E(utils.CodeConflict, op, "An account with this email already exists", nil)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}

	u := &models.User{
		ID:           uuid.NewString(),
		FullName:     strings.TrimSpace(in.FullName),
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleUser,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create user", err)
	}
	return s.issue(op, u)
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	const op = "AuthService.Login"

	u, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeUnauthorized, op, invalidCredentials, nil)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	if !u.IsActive || !auth.CheckPassword(u.PasswordHash, password) {
		return nil, utils.E(utils.CodeUnauthorized, op, invalidCredentials, nil)
	}
	return s.issue(op, u)
}

func (s *authService) issue(op string, u *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to issue token", err)
	}
	return &AuthResult{Token: token, User: u}, nil
}
