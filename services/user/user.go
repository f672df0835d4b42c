package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"detailing/database"
	userRepo "detailing/database/repository/user"
	"detailing/models"
	"detailing/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned for an unknown email or wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// AuthResponse contains the user's ID, role and session token.
type AuthResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

// UserService defines business logic for user operations.
type UserService interface {
	// RegisterUser creates a customer account and returns a session token.
	RegisterUser(ctx context.Context, req models.RegisterRequest) (*AuthResponse, error)
	// AuthenticateUser verifies credentials and returns a session token.
	AuthenticateUser(ctx context.Context, email, password string) (*AuthResponse, error)
	// GetUserByID retrieves a user by its unique ID.
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	TokenTTL time.Duration
	// AdminEmails register with the admin role.
	AdminEmails []string
}

func (s *DefaultUserService) roleFor(email string) string {
	for _, e := range s.AdminEmails {
		if strings.EqualFold(strings.TrimSpace(e), email) {
			return models.RoleAdmin
		}
	}
	return models.RoleCustomer
}

func (s *DefaultUserService) ttl() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return 72 * time.Hour
}

// RegisterUser validates required fields, hashes the password, persists the user,
// and returns the user's ID and token.
func (s *DefaultUserService) RegisterUser(ctx context.Context, req models.RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("user email and password are required")
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrEmailTaken, email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         s.roleFor(email),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issue(user)
}

// AuthenticateUser verifies the user's credentials and issues a new token.
func (s *DefaultUserService) AuthenticateUser(ctx context.Context, email, password string) (*AuthResponse, error) {
	user, err := s.Repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user for authentication: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

// GetUserByID retrieves a user by ID.
func (s *DefaultUserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.Repo.GetByID(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", userID, err)
	}
	return user, nil
}

func (s *DefaultUserService) issue(user *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(user.ID, user.Role, s.ttl())
	if err != nil {
		return nil, fmt.Errorf("failed to generate auth token: %w", err)
	}
	return &AuthResponse{ID: user.ID, Name: user.Name, Role: user.Role, Token: token}, nil
}
