package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/apiforge/apiforge/pkg/models"
)

type postgresOtpRepository struct {
	db *DB
}

func NewOtpRepository(db *DB) OtpRepository {
	return &postgresOtpRepository{db: db}
}

func (r *postgresOtpRepository) Replace(ctx context.Context, otp *models.OtpRecord) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM otp_codes WHERE email = $1`, otp.Email); err != nil {
		return err
	}
	query := `
		INSERT INTO otp_codes (email, code, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := tx.ExecContext(ctx, query, otp.Email, otp.Code, otp.ExpiresAt, otp.CreatedAt); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *postgresOtpRepository) GetByEmail(ctx context.Context, email string) (*models.OtpRecord, error) {
	var otp models.OtpRecord
	query := `SELECT * FROM otp_codes WHERE email = $1 ORDER BY created_at DESC LIMIT 1`
	err := r.db.GetContext(ctx, &otp, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &otp, nil
}

func (r *postgresOtpRepository) DeleteExpired(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM otp_codes WHERE expires_at < NOW()`)
	return err
}
