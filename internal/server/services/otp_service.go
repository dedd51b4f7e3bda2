package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/apiforge/apiforge/internal/server/storage"
	"github.com/apiforge/apiforge/pkg/models"
	"github.com/apiforge/apiforge/pkg/utils"
)

const otpExpiration = 10 * time.Minute

var (
	ErrOtpNotFound = errors.New("Invalid or expired OTP.")
	ErrOtpMismatch = errors.New("Incorrect OTP.")
	ErrOtpExpired  = errors.New("OTP has expired. Request a new one.")
)

type OtpService struct {
	otpRepo      storage.OtpRepository
	emailService *EmailService
}

func NewOtpService(otpRepo storage.OtpRepository, emailService *EmailService) *OtpService {
	return &OtpService{
		otpRepo:      otpRepo,
		emailService: emailService,
	}
}

// Send replaces any live code for the email with a fresh 6-digit one,
// stores it with a 10-minute expiry and mails it.
func (s *OtpService) Send(ctx context.Context, email string) error {
	normalized := utils.NormalizeEmail(email)

	code, err := utils.GenerateOtpCode()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	otp := &models.OtpRecord{
		Email:     normalized,
		Code:      code,
		ExpiresAt: time.Now().UTC().Add(otpExpiration),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.otpRepo.Replace(ctx, otp); err != nil {
		return fmt.Errorf("failed to save OTP: %w", err)
	}

	if err := s.emailService.SendOtpCode(email, code); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// Verify checks the submitted code against the live record. The record
// is not consumed on success: it stays verifiable until it expires or a
// new send replaces it.
func (s *OtpService) Verify(ctx context.Context, email string, code int) error {
	normalized := utils.NormalizeEmail(email)

	otp, err := s.otpRepo.GetByEmail(ctx, normalized)
	if err != nil {
		return err
	}
	if otp == nil {
		return ErrOtpNotFound
	}
	if otp.Code != code {
		return ErrOtpMismatch
	}
	if otp.ExpiresAt.Before(time.Now().UTC()) {
		return ErrOtpExpired
	}
	return nil
}

// CleanupExpired drops expired codes; run periodically from the server.
func (s *OtpService) CleanupExpired(ctx context.Context) error {
	return s.otpRepo.DeleteExpired(ctx)
}
