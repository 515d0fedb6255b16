package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"user-admin-backend/internal/auth"
	"user-admin-backend/internal/common/apperr"
	"user-admin-backend/internal/common/logger"
	"user-admin-backend/internal/common/validation"
	"user-admin-backend/internal/features/user/models"
	"user-admin-backend/internal/features/user/repository"
)

// ListFilter narrows and pages the admin user listing.
type ListFilter struct {
	Role     string
	IsActive *bool
	Search   string
	Page     int
	Limit    int
}

// Page describes the window actually returned.
type Page struct {
	Current    int
	Total      int
	Count      int
	TotalUsers int
}

func (s *userService) ListUsers(ctx context.Context, filter ListFilter) ([]*models.UserResponse, Page, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, Page{}, apperr.Internal("Server error while fetching users", err)
	}

	var matched []*models.User
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	for _, u := range users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.IsActive != nil && u.IsActive != *filter.IsActive {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(u.Name), search) &&
			!strings.Contains(strings.ToLower(u.Email), search) {
			continue
		}
		matched = append(matched, u)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	total := len(matched)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	responses := make([]*models.UserResponse, 0, end-start)
	for _, u := range matched[start:end] {
		responses = append(responses, u.ToResponse())
	}

	return responses, Page{
		Current:    page,
		Total:      (total + limit - 1) / limit,
		Count:      len(responses),
		TotalUsers: total,
	}, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*models.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal("Server error while fetching user", err)
	}
	return user.ToResponse(), nil
}

func (s *userService) UpdateRole(ctx context.Context, callerID, targetID, role string) (*models.UserResponse, error) {
	if !validation.IsValidRole(role) {
		return nil, apperr.Validation("Invalid role. Valid roles: user, moderator, admin")
	}

	// Self-protection: an admin demoting their own account would lock the
	// system out of administration.
	if targetID == callerID && role != models.RoleAdmin {
		return nil, apperr.Forbidden("You cannot change your own admin role")
	}

	user, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal("Server error while updating role", err)
	}

	user.Role = role
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, apperr.Internal("Server error while updating role", err)
	}

	logger.Info().Str("user_id", user.ID).Str("role", role).Msg("User role updated")
	return user.ToResponse(), nil
}

func (s *userService) UpdateStatus(ctx context.Context, callerID, targetID string, isActive bool) (*models.UserResponse, error) {
	if targetID == callerID && !isActive {
		return nil, apperr.Forbidden("You cannot deactivate your own account")
	}

	user, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal("Server error while updating status", err)
	}

	user.IsActive = isActive
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, apperr.Internal("Server error while updating status", err)
	}

	logger.Info().Str("user_id", user.ID).Bool("is_active", isActive).Msg("User status updated")
	return user.ToResponse(), nil
}

func (s *userService) DeleteUser(ctx context.Context, callerID, targetID string) error {
	if targetID == callerID {
		return apperr.Forbidden("You cannot delete your own account")
	}

	if err := s.repo.Delete(ctx, targetID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("User not found")
		}
		return apperr.Internal("Server error while deleting user", err)
	}

	logger.Info().Str("user_id", targetID).Msg("User deleted")
	return nil
}

func (s *userService) Statistics(ctx context.Context) (*models.Stats, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Internal("Server error while fetching statistics", err)
	}

	stats := &models.Stats{
		TotalUsers:  len(users),
		UsersByRole: map[string]int{},
	}
	for _, u := range users {
		if u.IsActive {
			stats.ActiveUsers++
		} else {
			stats.InactiveUsers++
		}
		stats.UsersByRole[u.Role]++
	}

	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	for i, u := range users {
		if i == 5 {
			break
		}
		stats.RecentUsers = append(stats.RecentUsers, models.RecentUser{
			Name:      u.Name,
			Email:     u.Email,
			Role:      u.Role,
			CreatedAt: u.CreatedAt.Format(time.RFC3339),
		})
	}

	return stats, nil
}

// EnsureAdmin creates the seed admin account on first boot. It is a no-op
// when the account already exists or when seeding is not configured.
func (s *userService) EnsureAdmin(ctx context.Context, email, password, phone string) error {
	if email == "" || password == "" {
		return nil
	}

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	now := time.Now()
	admin := &models.User{
		ID:           uuid.NewString(),
		Name:         "Administrator",
		Email:        validation.NormalizeEmail(email),
		Phone:        phone,
		Age:          30,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, admin); err != nil {
		return err
	}

	logger.Info().Str("email", admin.Email).Msg("Seed admin created")
	return nil
}
