package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"fileup/internal/domain"
	"fileup/internal/models"
	"fileup/internal/repository"
)

// AccountService handles sign-up, credential verification and the home view.
type AccountService struct {
	users         repository.UserRepository
	files         repository.FileRepository
	fileListLimit int
	logger        *slog.Logger
}

// NewAccountService creates a new account service
func NewAccountService(users repository.UserRepository, files repository.FileRepository, fileListLimit int, logger *slog.Logger) *AccountService {
	return &AccountService{
		users:         users,
		files:         files,
		fileListLimit: fileListLimit,
		logger:        logger,
	}
}

// SignUp registers a new user. The password is hashed with bcrypt before
// anything is persisted; a duplicate email surfaces as a conflict.
func (s *AccountService) SignUp(ctx context.Context, req *models.SignUpRequest) (*models.User, error) {
	if err := validateSignUp(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         req.Firstname + " " + req.Lastname,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "id", user.ID, "email", user.Email)

	return user, nil
}

// Authenticate verifies credentials and returns the user. Both an unknown
// email and a wrong password produce the same generic unauthorized failure.
func (s *AccountService) Authenticate(ctx context.Context, req *models.LogInRequest) (*models.User, error) {
	if err := validateLogIn(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", domain.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", domain.ErrUnauthorized)
	}

	return user, nil
}

// Home returns the logged-in user and their files across all folders.
func (s *AccountService) Home(ctx context.Context, userID string) (*models.User, []models.File, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	files, err := s.files.ListByUser(ctx, userID, s.fileListLimit)
	if err != nil {
		return nil, nil, err
	}

	return user, files, nil
}

func validateSignUp(req *models.SignUpRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Email, validation.Required, is.Email),
		// bcrypt ignores everything past 72 bytes
		validation.Field(&req.Password, validation.Required, validation.Length(1, 72)),
		validation.Field(&req.Firstname, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Lastname, validation.Required, validation.Length(1, 100)),
	)
}

func validateLogIn(req *models.LogInRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Email, validation.Required),
		validation.Field(&req.Password, validation.Required),
	)
}
