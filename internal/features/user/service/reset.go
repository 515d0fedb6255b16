package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"time"

	"user-admin-backend/internal/auth"
	"user-admin-backend/internal/common/apperr"
	"user-admin-backend/internal/common/logger"
	"user-admin-backend/internal/common/validation"
	"user-admin-backend/internal/features/user/repository"
)

var otpMax = big.NewInt(1000000)

// generateOtp returns a uniformly random 6-digit numeric code, leading
// zeros preserved.
func generateOtp() (string, error) {
	n, err := rand.Int(rand.Reader, otpMax)
	if err != nil {
		return "", err
	}

	digits := n.String()
	for len(digits) < 6 {
		digits = "0" + digits
	}
	return digits, nil
}

func (s *userService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			if s.revealAccount {
				return apperr.NotFound("User not found")
			}
			// Hardened mode: acknowledge without confirming the account.
			return nil
		}
		return apperr.Internal("Server error during password reset request", err)
	}

	if !user.IsActive {
		return apperr.AccountDeactivated()
	}

	otp, err := generateOtp()
	if err != nil {
		return apperr.Internal("Server error during password reset request", err)
	}

	// A new request overwrites any pending OTP; only one is valid at a time.
	user.ResetOtp = otp
	user.ResetOtpExpireAt = time.Now().Add(s.otpTTL).UnixMilli()
	if err := s.repo.Update(ctx, user); err != nil {
		return apperr.Internal("Server error during password reset request", err)
	}

	if err := s.sender.SendOtp(ctx, user.Email, otp); err != nil {
		// A failed delivery must never leave a usable pending OTP.
		user.ResetOtp = ""
		user.ResetOtpExpireAt = 0
		if rbErr := s.repo.Update(ctx, user); rbErr != nil {
			logger.Error().Err(rbErr).Str("user_id", user.ID).Msg("Failed to roll back pending OTP")
		}
		return apperr.Internal("Failed to send reset OTP email", err)
	}

	logger.Info().Str("user_id", user.ID).Msg("Password reset OTP issued")
	return nil
}

func (s *userService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	if !validation.IsValidPassword(newPassword) {
		return apperr.Validation("Password must be at least 6 characters long")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("User not found")
		}
		return apperr.Internal("Server error during password reset", err)
	}

	if user.ResetOtp == "" || user.ResetOtpExpireAt < time.Now().UnixMilli() {
		return apperr.New(apperr.CodeInvalidOrExpiredOtp, "Invalid or expired OTP")
	}

	// Exact string match, not numeric: "42137" never matches "042137".
	if strings.TrimSpace(otp) != user.ResetOtp {
		return apperr.New(apperr.CodeInvalidOtp, "Invalid OTP")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperr.Internal("Server error during password reset", err)
	}

	// New hash and OTP clearing land in the same save; the consumed OTP can
	// never stay valid past a successful reset.
	user.PasswordHash = hash
	user.ResetOtp = ""
	user.ResetOtpExpireAt = 0
	if err := s.repo.Update(ctx, user); err != nil {
		return apperr.Internal("Server error during password reset", err)
	}

	logger.Info().Str("user_id", user.ID).Msg("Password reset completed")
	return nil
}
