package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/apiforge/apiforge/pkg/models"
)

// GenerateTestEmail generates a unique test email
func GenerateTestEmail() string {
	return fmt.Sprintf("test-%s@example.com", uuid.New().String()[:8])
}

// CreateTestSchema stores a schema config with the given declared fields
// and a fixed access token, returning the stored config.
func (m *MemoryStore) CreateTestSchema(t *testing.T, fieldNames, fieldTypes []string) *models.SchemaConfig {
	t.Helper()

	cfg := &models.SchemaConfig{
		ID:          uuid.New().String(),
		Owner:       GenerateTestEmail(),
		FieldNames:  fieldNames,
		FieldTypes:  fieldTypes,
		AccessToken: "test-token-" + uuid.New().String(),
		Records:     models.RecordList{},
		CreatedAt:   time.Now().UTC(),
	}
	if err := m.Store().Schemas.Create(context.Background(), cfg); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}
	return cfg
}

// CreateTestPlatformUser stores a platform account with a precomputed
// bcrypt hash of the given password.
func (m *MemoryStore) CreateTestPlatformUser(t *testing.T, email, passwordHash string) *models.PlatformAccount {
	t.Helper()

	account := &models.PlatformAccount{
		ID:           uuid.New().String(),
		Username:     "tester",
		Email:        email,
		PasswordHash: passwordHash,
		AccessToken:  "platform-token-" + uuid.New().String(),
		CreatedAt:    time.Now().UTC(),
	}
	if err := m.Store().PlatformUsers.Create(context.Background(), account); err != nil {
		t.Fatalf("Failed to create test platform user: %v", err)
	}
	return account
}
