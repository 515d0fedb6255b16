package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"user-admin-backend/internal/common/logger"
)

// OtpSender delivers a password-reset OTP to a user. Delivery may fail
// independently of persistence; callers roll back pending state on failure.
type OtpSender interface {
	SendOtp(ctx context.Context, email, otp string) error
}

// SMTPSender sends OTP mail over plain SMTP with optional AUTH.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *SMTPSender) SendOtp(ctx context.Context, email, otp string) error {
	msg := buildResetMessage(s.from, email, otp)

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	if err := smtp.SendMail(addr, auth, s.from, []string{email}, msg); err != nil {
		return fmt.Errorf("send reset otp: %w", err)
	}

	logger.Info().Str("to", email).Msg("Reset OTP email sent")
	return nil
}

func buildResetMessage(from, to, otp string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	b.WriteString("Subject: Password Reset OTP\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "Your password reset OTP is: %s. This OTP will expire in 10 minutes.\r\n", otp)
	b.WriteString("If you didn't request this password reset, please ignore this email.\r\n")
	return []byte(b.String())
}
