package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/apiforge/apiforge/pkg/models"
)

type postgresSchemaRepository struct {
	db *DB
}

func NewSchemaRepository(db *DB) SchemaRepository {
	return &postgresSchemaRepository{db: db}
}

func (r *postgresSchemaRepository) Create(ctx context.Context, cfg *models.SchemaConfig) error {
	query := `
		INSERT INTO schemas (id, owner, field_names, field_types, access_token, records, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		cfg.ID, cfg.Owner,
		pq.Array(cfg.FieldNames), pq.Array(cfg.FieldTypes),
		cfg.AccessToken, cfg.Records, cfg.CreatedAt,
	)
	return err
}

func (r *postgresSchemaRepository) GetByID(ctx context.Context, id string) (*models.SchemaConfig, error) {
	var cfg models.SchemaConfig
	query := `
		SELECT id, owner, field_names, field_types, access_token, records, created_at
		FROM schemas WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, query, id)
	err := row.Scan(
		&cfg.ID, &cfg.Owner,
		pq.Array(&cfg.FieldNames), pq.Array(&cfg.FieldTypes),
		&cfg.AccessToken, &cfg.Records, &cfg.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}

func (r *postgresSchemaRepository) UpdateRecords(ctx context.Context, id string, records models.RecordList) error {
	query := `UPDATE schemas SET records = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, records)
	return err
}
