package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/apiforge/apiforge/pkg/models"
)

type postgresAPIUserRepository struct {
	db *DB
}

func NewAPIUserRepository(db *DB) APIUserRepository {
	return &postgresAPIUserRepository{db: db}
}

func (r *postgresAPIUserRepository) Create(ctx context.Context, account *models.ApiAccount) error {
	query := `
		INSERT INTO api_users (email, password_hash, access_token, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query,
		account.Email, account.PasswordHash, account.AccessToken, account.CreatedAt,
	)
	return err
}

func (r *postgresAPIUserRepository) GetByEmail(ctx context.Context, email string) (*models.ApiAccount, error) {
	var account models.ApiAccount
	query := `SELECT * FROM api_users WHERE email = $1`
	err := r.db.GetContext(ctx, &account, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}
