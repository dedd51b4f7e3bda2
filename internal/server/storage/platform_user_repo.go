package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/apiforge/apiforge/pkg/models"
)

type postgresPlatformUserRepository struct {
	db *DB
}

func NewPlatformUserRepository(db *DB) PlatformUserRepository {
	return &postgresPlatformUserRepository{db: db}
}

func (r *postgresPlatformUserRepository) Create(ctx context.Context, account *models.PlatformAccount) error {
	query := `
		INSERT INTO platform_users (id, username, email, password_hash, access_token, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		account.ID, account.Username, account.Email,
		account.PasswordHash, account.AccessToken, account.CreatedAt,
	)
	return err
}

func (r *postgresPlatformUserRepository) GetByEmail(ctx context.Context, email string) (*models.PlatformAccount, error) {
	var account models.PlatformAccount
	query := `SELECT * FROM platform_users WHERE email = $1`
	err := r.db.GetContext(ctx, &account, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *postgresPlatformUserRepository) GetByID(ctx context.Context, id string) (*models.PlatformAccount, error) {
	var account models.PlatformAccount
	query := `SELECT * FROM platform_users WHERE id = $1`
	err := r.db.GetContext(ctx, &account, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *postgresPlatformUserRepository) ListAll(ctx context.Context) ([]models.PlatformAccount, error) {
	var accounts []models.PlatformAccount
	query := `SELECT * FROM platform_users ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &accounts, query)
	return accounts, err
}
