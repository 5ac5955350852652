package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/disasterwatch/backend/internal/apperrors"
	"github.com/disasterwatch/backend/internal/auth"
	"github.com/disasterwatch/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the interface that wraps methods for User table data access
type UserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// A duplicate username or email is reported as a Conflict error.
	Create(ctx context.Context, user *models.User) error
	// Method GetByUsername retrieves a user by username.
	//
	// If no user with such username exists, a NotFound error is returned together with "nil" value.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// Method GetByEmail retrieves a user by email.
	//
	// If no user with such email exists, a NotFound error is returned together with "nil" value.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Method GetByID retrieves a user by ID.
	//
	// If no user with such ID exists, a NotFound error is returned together with "nil" value.
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// Method ExistsByEmail checks if a user with such email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Method ExistsByUsername checks if a user with such username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// authService implements AuthService
type authService struct {
	userRepo       UserRepository
	tokenGenerator *auth.TokenGenerator
	logger         *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository, tokenGenerator *auth.TokenGenerator, logger *zap.Logger) *authService {
	return &authService{
		userRepo:       userRepo,
		tokenGenerator: tokenGenerator,
		logger:         logger,
	}
}

// emailRegex validates email format
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Register creates a new user account with the default user role and returns
// a token response carrying the freshly issued access token
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.TokenResponse, error) {
	normalizedEmail := strings.TrimSpace(strings.ToLower(req.Email))
	normalizedUsername := strings.TrimSpace(req.Username)

	if normalizedUsername == "" {
		return nil, apperrors.InvalidInput("username cannot be empty")
	}
	if req.Password == "" {
		return nil, apperrors.InvalidInput("password cannot be empty")
	}
	if !emailRegex.MatchString(normalizedEmail) {
		return nil, apperrors.InvalidInput("invalid email format")
	}

	// Check uniqueness before insert; the unique keys remain the backstop
	// for concurrent registrations.
	usernameExists, err := s.userRepo.ExistsByUsername(ctx, normalizedUsername)
	if err != nil {
		return nil, err
	}
	if usernameExists {
		return nil, apperrors.Conflict("username already registered")
	}

	emailExists, err := s.userRepo.ExistsByEmail(ctx, normalizedEmail)
	if err != nil {
		return nil, err
	}
	if emailExists {
		return nil, apperrors.Conflict("email already registered")
	}

	// Hash password
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     normalizedUsername,
		Email:        normalizedEmail,
		PasswordHash: string(passwordHash),
		Role:         models.RoleUser, // Default role
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.tokenResponse(user)
}

// Login authenticates a user by username and password
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, apperrors.Unauthorized("incorrect username or password")
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		// A missing user and a bad password look identical to the caller
		if errors.Is(err, apperrors.NotFound("")) {
			return nil, apperrors.Unauthorized("incorrect username or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.Unauthorized("incorrect username or password")
	}

	return s.tokenResponse(user)
}

// Me returns the user for the authenticated caller
func (s *authService) Me(ctx context.Context, userID int) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// tokenResponse issues an access token embedding the user's stored role.
// Role changes after issuance are not reflected until the next login.
func (s *authService) tokenResponse(user *models.User) (*models.TokenResponse, error) {
	accessToken, err := s.tokenGenerator.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		s.logger.Error("failed to generate access token", zap.Int("user_id", user.ID), zap.Error(err))
		return nil, err
	}

	return &models.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		User:        user.PublicView(),
	}, nil
}
