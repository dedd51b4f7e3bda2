package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/apiforge/apiforge/internal/server/storage"
	"github.com/apiforge/apiforge/pkg/fields"
	"github.com/apiforge/apiforge/pkg/models"
)

var (
	ErrSchemaNotFound = errors.New("Invalid API link.")
	ErrRecordNotFound = errors.New("Record not found.")
)

// RecordService runs the load-mutate-persist cycle for one schema's
// embedded records array. Writes to the same schema are serialized with a
// per-id mutex so concurrent requests cannot lose each other's updates.
type RecordService struct {
	schemaRepo storage.SchemaRepository

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewRecordService(schemaRepo storage.SchemaRepository) *RecordService {
	return &RecordService{
		schemaRepo: schemaRepo,
		locks:      make(map[string]*sync.Mutex),
	}
}

func (s *RecordService) lockSchema(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

// Create validates body against the declared schema and appends a new
// record. Missing and invalid field names come back as separate lists; the
// record is persisted only when both are empty. Undeclared body fields are
// dropped without error.
func (s *RecordService) Create(ctx context.Context, schemaID string, body map[string]any) (models.Record, []string, []string, error) {
	l := s.lockSchema(schemaID)
	l.Lock()
	defer l.Unlock()

	cfg, err := s.schemaRepo.GetByID(ctx, schemaID)
	if err != nil {
		return nil, nil, nil, err
	}
	if cfg == nil {
		return nil, nil, nil, ErrSchemaNotFound
	}

	newData := models.Record{}
	var missingFields, invalidFields []string

	for i, fieldName := range cfg.FieldNames {
		fieldType := cfg.FieldTypes[i]
		value, ok := body[fieldName]
		if !ok {
			missingFields = append(missingFields, fieldName)
			continue
		}
		if !fields.Validate(value, fieldType) {
			invalidFields = append(invalidFields, invalidFieldMessage(fieldName, fieldType))
			continue
		}
		newData[fieldName] = value
	}

	if len(missingFields) > 0 || len(invalidFields) > 0 {
		return nil, missingFields, invalidFields, nil
	}

	newData["id"] = uuid.New().String()
	records := append(cfg.Records, newData)

	if err := s.schemaRepo.UpdateRecords(ctx, schemaID, records); err != nil {
		return nil, nil, nil, err
	}
	return newData, nil, nil, nil
}

// Update shallow-merges patch onto the record, body fields winning. There
// is no type re-validation here: create validates, update does not.
func (s *RecordService) Update(ctx context.Context, schemaID, recordID string, patch map[string]any) (models.Record, error) {
	l := s.lockSchema(schemaID)
	l.Lock()
	defer l.Unlock()

	cfg, err := s.schemaRepo.GetByID(ctx, schemaID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, ErrSchemaNotFound
	}

	idx := cfg.Records.IndexOf(recordID)
	if idx < 0 {
		return nil, ErrRecordNotFound
	}

	merged := models.Record{}
	for k, v := range cfg.Records[idx] {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	cfg.Records[idx] = merged

	if err := s.schemaRepo.UpdateRecords(ctx, schemaID, cfg.Records); err != nil {
		return nil, err
	}
	return merged, nil
}

// Delete removes the single record with the given id.
func (s *RecordService) Delete(ctx context.Context, schemaID, recordID string) error {
	l := s.lockSchema(schemaID)
	l.Lock()
	defer l.Unlock()

	cfg, err := s.schemaRepo.GetByID(ctx, schemaID)
	if err != nil {
		return err
	}
	if cfg == nil {
		return ErrSchemaNotFound
	}

	idx := cfg.Records.IndexOf(recordID)
	if idx < 0 {
		return ErrRecordNotFound
	}

	records := append(cfg.Records[:idx], cfg.Records[idx+1:]...)
	return s.schemaRepo.UpdateRecords(ctx, schemaID, records)
}

func invalidFieldMessage(fieldName, fieldType string) string {
	if fieldType == "date" {
		return fmt.Sprintf("key name '%s' should be in dd-mm-yyyy format (e.g., 06-11-2005) with realistic values only.", fieldName)
	}
	return fmt.Sprintf("key name '%s' should be a %s.", fieldName, fieldType)
}
