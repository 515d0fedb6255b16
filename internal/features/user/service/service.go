package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"user-admin-backend/internal/auth"
	"user-admin-backend/internal/common/apperr"
	"user-admin-backend/internal/common/logger"
	"user-admin-backend/internal/common/validation"
	"user-admin-backend/internal/features/user/models"
	"user-admin-backend/internal/features/user/repository"
	"user-admin-backend/internal/platform/mailer"
)

// UserService implements registration, login, profile management, the
// OTP password-reset flow and the admin user-management operations.
type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	ResolveUser(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.UserResponse, error)

	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, otp, newPassword string) error

	ListUsers(ctx context.Context, filter ListFilter) ([]*models.UserResponse, Page, error)
	GetUser(ctx context.Context, id string) (*models.UserResponse, error)
	UpdateRole(ctx context.Context, callerID, targetID, role string) (*models.UserResponse, error)
	UpdateStatus(ctx context.Context, callerID, targetID string, isActive bool) (*models.UserResponse, error)
	DeleteUser(ctx context.Context, callerID, targetID string) error
	Statistics(ctx context.Context) (*models.Stats, error)

	EnsureAdmin(ctx context.Context, email, password, phone string) error
}

type userService struct {
	repo          repository.UserRepository
	tokens        *auth.TokenManager
	sender        mailer.OtpSender
	otpTTL        time.Duration
	revealAccount bool
}

func NewUserService(repo repository.UserRepository, tokens *auth.TokenManager, sender mailer.OtpSender, otpTTL time.Duration, revealAccount bool) UserService {
	return &userService{
		repo:          repo,
		tokens:        tokens,
		sender:        sender,
		otpTTL:        otpTTL,
		revealAccount: revealAccount,
	}
}

func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	if !validation.IsValidName(req.Name) {
		return nil, apperr.Validation("Name must be at least 2 characters long")
	}
	if !validation.IsValidEmail(req.Email) {
		return nil, apperr.Validation("Invalid email address")
	}
	if !validation.IsValidPhone(req.Phone) {
		return nil, apperr.Validation("Phone number must contain at least 10 digits")
	}
	if !validation.IsValidAge(req.Age) {
		return nil, apperr.Validation("Invalid age")
	}
	if !validation.IsValidPassword(req.Password) {
		return nil, apperr.Validation("Password must be at least 6 characters long")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Internal("Server error during registration", err)
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        validation.NormalizeEmail(req.Email),
		Phone:        req.Phone,
		Age:          req.Age,
		PasswordHash: hash,
		Role:         models.RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, mapRepoError(err, "registration")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperr.Internal("Server error during registration", err)
	}

	logger.Info().Str("user_id", user.ID).Msg("User registered")
	return &models.AuthResponse{User: user.ToResponse(), Token: token}, nil
}

func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.repo.GetByEmailWithPassword(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Same message as a wrong password, to avoid account enumeration.
			return nil, apperr.Unauthorized("Invalid credentials")
		}
		return nil, apperr.Internal("Server error during login", err)
	}

	if !user.IsActive {
		return nil, apperr.AccountDeactivated()
	}

	ok, err := auth.CheckPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, apperr.Internal("Server error during login", err)
	}
	if !ok {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	now := time.Now()
	user.LastLogin = &now
	user.PasswordHash = ""
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, apperr.Internal("Server error during login", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperr.Internal("Server error during login", err)
	}

	logger.Info().Str("user_id", user.ID).Msg("User logged in")
	return &models.AuthResponse{User: user.ToResponse(), Token: token}, nil
}

// ResolveUser loads a live user by id for the authentication gate. The gate
// re-resolves on every request so deactivation takes effect immediately.
func (s *userService) ResolveUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Unauthorized("Token invalid. User not found.")
		}
		return nil, apperr.Internal("Server error during authentication", err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal("Server error while updating profile", err)
	}

	if req.Name != nil {
		if !validation.IsValidName(*req.Name) {
			return nil, apperr.Validation("Name must be at least 2 characters long")
		}
		user.Name = *req.Name
	}
	if req.Email != nil {
		if !validation.IsValidEmail(*req.Email) {
			return nil, apperr.Validation("Invalid email address")
		}
		user.Email = validation.NormalizeEmail(*req.Email)
	}
	if req.Phone != nil {
		if !validation.IsValidPhone(*req.Phone) {
			return nil, apperr.Validation("Phone number must contain at least 10 digits")
		}
		user.Phone = *req.Phone
	}
	if req.Age != nil {
		if !validation.IsValidAge(*req.Age) {
			return nil, apperr.Validation("Invalid age")
		}
		user.Age = *req.Age
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, mapRepoError(err, "profile update")
	}

	return user.ToResponse(), nil
}

func mapRepoError(err error, op string) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		return apperr.Conflict("User with this email already exists")
	case errors.Is(err, repository.ErrDuplicatePhone):
		return apperr.Conflict("User with this phone already exists")
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound("User not found")
	default:
		return apperr.Internal("Server error during "+op, err)
	}
}
