package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/apiforge/apiforge/internal/server/storage"
	"github.com/apiforge/apiforge/pkg/models"
)

// MemoryStore is an in-memory implementation of the storage interfaces for
// handler and service tests. Values are copied on the way in and out so
// callers never alias stored state.
type MemoryStore struct {
	mu            sync.RWMutex
	schemas       map[string]*models.SchemaConfig
	platformUsers map[string]*models.PlatformAccount // keyed by id
	apiUsers      map[string]*models.ApiAccount      // keyed by email
	otps          map[string]*models.OtpRecord       // keyed by email
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		schemas:       make(map[string]*models.SchemaConfig),
		platformUsers: make(map[string]*models.PlatformAccount),
		apiUsers:      make(map[string]*models.ApiAccount),
		otps:          make(map[string]*models.OtpRecord),
	}
}

// Store exposes the memory store through the storage interfaces.
func (m *MemoryStore) Store() *storage.Store {
	return &storage.Store{
		Schemas:       &memSchemaRepo{m},
		PlatformUsers: &memPlatformUserRepo{m},
		APIUsers:      &memAPIUserRepo{m},
		Otps:          &memOtpRepo{m},
	}
}

func cloneRecords(records models.RecordList) models.RecordList {
	out := make(models.RecordList, len(records))
	for i, rec := range records {
		c := make(models.Record, len(rec))
		for k, v := range rec {
			c[k] = v
		}
		out[i] = c
	}
	return out
}

func cloneSchema(cfg *models.SchemaConfig) *models.SchemaConfig {
	c := *cfg
	c.FieldNames = append([]string(nil), cfg.FieldNames...)
	c.FieldTypes = append([]string(nil), cfg.FieldTypes...)
	c.Records = cloneRecords(cfg.Records)
	return &c
}

type memSchemaRepo struct{ s *MemoryStore }

func (r *memSchemaRepo) Create(_ context.Context, cfg *models.SchemaConfig) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.schemas[cfg.ID] = cloneSchema(cfg)
	return nil
}

func (r *memSchemaRepo) GetByID(_ context.Context, id string) (*models.SchemaConfig, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	cfg, ok := r.s.schemas[id]
	if !ok {
		return nil, nil
	}
	return cloneSchema(cfg), nil
}

func (r *memSchemaRepo) UpdateRecords(_ context.Context, id string, records models.RecordList) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if cfg, ok := r.s.schemas[id]; ok {
		cfg.Records = cloneRecords(records)
	}
	return nil
}

type memPlatformUserRepo struct{ s *MemoryStore }

func (r *memPlatformUserRepo) Create(_ context.Context, account *models.PlatformAccount) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *account
	r.s.platformUsers[account.ID] = &c
	return nil
}

func (r *memPlatformUserRepo) GetByEmail(_ context.Context, email string) (*models.PlatformAccount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, account := range r.s.platformUsers {
		if account.Email == email {
			c := *account
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memPlatformUserRepo) GetByID(_ context.Context, id string) (*models.PlatformAccount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	account, ok := r.s.platformUsers[id]
	if !ok {
		return nil, nil
	}
	c := *account
	return &c, nil
}

func (r *memPlatformUserRepo) ListAll(_ context.Context) ([]models.PlatformAccount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	accounts := make([]models.PlatformAccount, 0, len(r.s.platformUsers))
	for _, account := range r.s.platformUsers {
		accounts = append(accounts, *account)
	}
	return accounts, nil
}

type memAPIUserRepo struct{ s *MemoryStore }

func (r *memAPIUserRepo) Create(_ context.Context, account *models.ApiAccount) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *account
	r.s.apiUsers[account.Email] = &c
	return nil
}

func (r *memAPIUserRepo) GetByEmail(_ context.Context, email string) (*models.ApiAccount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	account, ok := r.s.apiUsers[email]
	if !ok {
		return nil, nil
	}
	c := *account
	return &c, nil
}

type memOtpRepo struct{ s *MemoryStore }

func (r *memOtpRepo) Replace(_ context.Context, otp *models.OtpRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *otp
	r.s.otps[otp.Email] = &c
	return nil
}

func (r *memOtpRepo) GetByEmail(_ context.Context, email string) (*models.OtpRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	otp, ok := r.s.otps[email]
	if !ok {
		return nil, nil
	}
	c := *otp
	return &c, nil
}

func (r *memOtpRepo) DeleteExpired(_ context.Context) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now().UTC()
	for email, otp := range r.s.otps {
		if otp.ExpiresAt.Before(now) {
			delete(r.s.otps, email)
		}
	}
	return nil
}
