package user

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/chesterOps/ecommerce-backend/internal/apperr"
	"github.com/chesterOps/ecommerce-backend/internal/modules/auth"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service defines the interface for user-related business logic.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, email, password string) (string, *User, error)
	GetUser(ctx context.Context, id string) (*User, error)
	SaveBillingAddress(ctx context.Context, userID string, address json.RawMessage) error
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type service struct {
	repo   Repository
	tokens *auth.Auth
}

// NewService creates a new user service.
func NewService(repo Repository, tokens *auth.Auth) Service {
	return &service{repo: repo, tokens: tokens}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hashed),
		Role:         RoleCustomer,
		Active:       true,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies the credentials and returns a signed token alongside the
// account. Both an unknown email and a wrong password surface the same
// message.
func (s *service) Login(ctx context.Context, email, password string) (string, *User, error) {
	u, err := s.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", nil, apperr.New(apperr.KindUnauthorized, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperr.New(apperr.KindUnauthorized, "invalid credentials")
	}
	token, err := s.tokens.IssueToken(u.ID, u.Role)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *service) SaveBillingAddress(ctx context.Context, userID string, address json.RawMessage) error {
	if len(address) == 0 {
		return apperr.Validation("billing address is required")
	}
	return s.repo.UpdateBillingAddress(ctx, userID, address)
}
