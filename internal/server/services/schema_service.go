package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/apiforge/apiforge/internal/server/storage"
	"github.com/apiforge/apiforge/pkg/models"
	"github.com/apiforge/apiforge/pkg/utils"
)

// Access tokens carry a nominal 24h expiry in their claims; CRUD
// authorization compares token text only, so the claim is informational.
const apiTokenExpiration = 24 * time.Hour

type SchemaService struct {
	schemaRepo   storage.SchemaRepository
	emailService *EmailService
	secret       string
	baseURL      string
}

func NewSchemaService(schemaRepo storage.SchemaRepository, emailService *EmailService, secret, baseURL string) *SchemaService {
	return &SchemaService{
		schemaRepo:   schemaRepo,
		emailService: emailService,
		secret:       secret,
		baseURL:      baseURL,
	}
}

// Generate creates a schema config for the owner, issues its access token,
// persists it with an empty records array and mails the owner the link.
func (s *SchemaService) Generate(ctx context.Context, ownerEmail string, fieldNames, fieldTypes []string) (*models.GenerateAPIResponse, error) {
	uniqueID := uuid.New().String()

	apiToken, err := utils.GenerateAPIToken(uniqueID, s.secret, apiTokenExpiration)
	if err != nil {
		return nil, fmt.Errorf("failed to sign API token: %w", err)
	}

	cfg := &models.SchemaConfig{
		ID:          uniqueID,
		Owner:       ownerEmail,
		FieldNames:  fieldNames,
		FieldTypes:  fieldTypes,
		AccessToken: apiToken,
		Records:     models.RecordList{},
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.schemaRepo.Create(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to save API config: %w", err)
	}

	apiURL := s.baseURL + uniqueID

	qrPNG, err := qrcode.Encode(apiURL, qrcode.Medium, 180)
	if err != nil {
		// The link mail is still useful without the QR image.
		log.Printf("Warning: failed to render QR code for %s: %v", uniqueID, err)
		qrPNG = nil
	}

	if err := s.emailService.SendAPIGenerated(ownerEmail, apiURL, apiToken, qrPNG); err != nil {
		return nil, fmt.Errorf("failed to send email: %w", err)
	}

	return &models.GenerateAPIResponse{
		Message: fmt.Sprintf("API link and token sent to %s.", ownerEmail),
		APIURL:  apiURL,
		Headers: map[string]string{"Authorization": apiToken},
	}, nil
}

// GetConfig loads a schema config by id; (nil, nil) when absent.
func (s *SchemaService) GetConfig(ctx context.Context, id string) (*models.SchemaConfig, error) {
	return s.schemaRepo.GetByID(ctx, id)
}
