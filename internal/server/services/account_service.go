package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/apiforge/apiforge/internal/server/storage"
	"github.com/apiforge/apiforge/pkg/models"
	"github.com/apiforge/apiforge/pkg/utils"
)

const sessionTokenExpiration = 7 * 24 * time.Hour

var (
	ErrUserNotFound    = errors.New("User not found. Please sign up first.")
	ErrInvalidPassword = errors.New("Invalid password.")
	ErrNotPlatformUser = errors.New("Unauthorized. Please sign up as a platform user first.")
	ErrAPIUserExists   = errors.New("API user already exists. Please log in.")
	ErrAPIUserNotFound = errors.New("API user not found. Please sign up to generate a custom API.")
)

type AccountService struct {
	platformRepo storage.PlatformUserRepository
	apiUserRepo  storage.APIUserRepository
	emailService *EmailService
	secret       string
}

func NewAccountService(
	platformRepo storage.PlatformUserRepository,
	apiUserRepo storage.APIUserRepository,
	emailService *EmailService,
	secret string,
) *AccountService {
	return &AccountService{
		platformRepo: platformRepo,
		apiUserRepo:  apiUserRepo,
		emailService: emailService,
		secret:       secret,
	}
}

// PlatformSignup creates a platform account and returns its static access
// token. No email gate applies here: this creates the first identity.
func (s *AccountService) PlatformSignup(ctx context.Context, username, email, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	accessToken, err := utils.GenerateAccessToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}

	account := &models.PlatformAccount{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        utils.NormalizeEmail(email),
		PasswordHash: string(hash),
		AccessToken:  accessToken,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.platformRepo.Create(ctx, account); err != nil {
		return "", err
	}
	return accessToken, nil
}

// PlatformLogin verifies credentials, mints a fresh session token, mails it
// and returns it together with the stored account document.
func (s *AccountService) PlatformLogin(ctx context.Context, email, password string) (string, *models.PlatformAccount, error) {
	account, err := s.platformRepo.GetByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return "", nil, err
	}
	if account == nil {
		return "", nil, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidPassword
	}

	token, err := utils.GenerateJWT(account.ID, account.Email, s.secret, sessionTokenExpiration)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	if err := s.emailService.SendSessionToken(account.Email, token); err != nil {
		return "", nil, fmt.Errorf("failed to send email: %w", err)
	}
	return token, account, nil
}

// APIUserSignup creates an API consumer account. It requires a platform
// account with the same email and no prior API account.
func (s *AccountService) APIUserSignup(ctx context.Context, email, password string) error {
	normalized := utils.NormalizeEmail(email)

	platformUser, err := s.platformRepo.GetByEmail(ctx, normalized)
	if err != nil {
		return err
	}
	if platformUser == nil {
		return ErrNotPlatformUser
	}

	existing, err := s.apiUserRepo.GetByEmail(ctx, normalized)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAPIUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	accessToken, err := utils.GenerateAccessToken()
	if err != nil {
		return fmt.Errorf("failed to generate access token: %w", err)
	}

	account := &models.ApiAccount{
		Email:        normalized,
		PasswordHash: string(hash),
		AccessToken:  accessToken,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.apiUserRepo.Create(ctx, account); err != nil {
		return err
	}

	return s.emailService.SendAPIUserToken(normalized, accessToken, true)
}

// APIUserLogin verifies credentials behind the same platform-account gate
// and re-sends the existing, unrotated access token.
func (s *AccountService) APIUserLogin(ctx context.Context, email, password string) error {
	normalized := utils.NormalizeEmail(email)

	platformUser, err := s.platformRepo.GetByEmail(ctx, normalized)
	if err != nil {
		return err
	}
	if platformUser == nil {
		return ErrNotPlatformUser
	}

	account, err := s.apiUserRepo.GetByEmail(ctx, normalized)
	if err != nil {
		return err
	}
	if account == nil {
		return ErrAPIUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidPassword
	}

	return s.emailService.SendAPIUserToken(normalized, account.AccessToken, false)
}

// GetPlatformUserByID loads a platform account by id; (nil, nil) if absent.
func (s *AccountService) GetPlatformUserByID(ctx context.Context, id string) (*models.PlatformAccount, error) {
	return s.platformRepo.GetByID(ctx, id)
}
