// Package storage persists schema configs, accounts and OTP codes.
// Two backends implement the same repository interfaces: Postgres and
// Firestore. Lookups return (nil, nil) when the entity does not exist.
package storage

import (
	"context"

	"github.com/apiforge/apiforge/pkg/models"
)

type SchemaRepository interface {
	Create(ctx context.Context, cfg *models.SchemaConfig) error
	GetByID(ctx context.Context, id string) (*models.SchemaConfig, error)
	// UpdateRecords overwrites the embedded records array of one schema.
	UpdateRecords(ctx context.Context, id string, records models.RecordList) error
}

type PlatformUserRepository interface {
	Create(ctx context.Context, account *models.PlatformAccount) error
	GetByEmail(ctx context.Context, email string) (*models.PlatformAccount, error)
	GetByID(ctx context.Context, id string) (*models.PlatformAccount, error)
	ListAll(ctx context.Context) ([]models.PlatformAccount, error)
}

type APIUserRepository interface {
	Create(ctx context.Context, account *models.ApiAccount) error
	GetByEmail(ctx context.Context, email string) (*models.ApiAccount, error)
}

type OtpRepository interface {
	// Replace deletes any prior code for the record's email before storing,
	// so at most one live code exists per address.
	Replace(ctx context.Context, otp *models.OtpRecord) error
	GetByEmail(ctx context.Context, email string) (*models.OtpRecord, error)
	DeleteExpired(ctx context.Context) error
}

// Store bundles the repositories of one backend.
type Store struct {
	Schemas       SchemaRepository
	PlatformUsers PlatformUserRepository
	APIUsers      APIUserRepository
	Otps          OtpRepository
}
