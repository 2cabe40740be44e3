package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rentwheels/service-rental/internal/auth"
	"github.com/rentwheels/service-rental/internal/domain"
	userDomain "github.com/rentwheels/service-rental/internal/domain/user"
)

// RegisterRequest is the request DTO for account registration.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the request DTO for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserDTO is the API response representation of a user account.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse carries the issued token alongside the authenticated user.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserDTO   `json:"user"`
}

// AuthService implements registration and login.
type AuthService struct {
	users  userDomain.Repository
	tokens *auth.JWTManager
	logger *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users userDomain.Repository, tokens *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

// Register creates a new customer account and issues a token for it.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewValidationError("password cannot be hashed")
	}

	u, err := userDomain.NewUser(req.Name, req.Email, string(hash), domain.RoleCustomer)
	if err != nil {
		return nil, err
	}

	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", u.ID().String()))
	return s.issueToken(u)
}

// Login verifies credentials and issues a token. Unknown emails and wrong
// passwords produce the same error so the endpoint does not leak which
// accounts exist.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return nil, domain.NewUnauthorizedError("invalid email or password")
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash()), []byte(req.Password)) != nil {
		return nil, domain.NewUnauthorizedError("invalid email or password")
	}

	return s.issueToken(u)
}

// GetProfile returns the account backing the authenticated actor.
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := toUserDTO(u)
	return &dto, nil
}

func (s *AuthService) issueToken(u *userDomain.User) (*AuthResponse, error) {
	token, expiresAt, err := s.tokens.Generate(u.ID(), u.Role(), u.Name())
	if err != nil {
		s.logger.Error("failed to issue token", zap.Error(err))
		return nil, err
	}
	return &AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      toUserDTO(u),
	}, nil
}

func toUserDTO(u *userDomain.User) UserDTO {
	return UserDTO{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email(),
		Role:      string(u.Role()),
		CreatedAt: u.CreatedAt(),
	}
}
