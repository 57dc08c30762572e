package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/parksujin/lifeshare/internal/common"
	"github.com/parksujin/lifeshare/internal/dbx"
	"github.com/parksujin/lifeshare/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT user_id, password_hash, name, email, enabled, last_login_at, last_logout_at
		FROM users
		WHERE user_id = $1
	`
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.PasswordHash, &user.Name, &user.Email,
		&user.Enabled, &user.LastLoginAt, &user.LastLogoutAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (user_id, password_hash, name, email, enabled)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING user_id
	`
	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.PasswordHash, user.Name, user.Email, user.Enabled,
	).Scan(&user.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) UpdateLastLoginAt(ctx context.Context, id string) (int64, error) {
	query := `
		UPDATE users SET last_login_at = now()
		WHERE user_id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return res.RowsAffected()
}

func (r *PostgresRepository) UpdateLastLogoutAt(ctx context.Context, id string) (int64, error) {
	query := `
		UPDATE users SET last_logout_at = now()
		WHERE user_id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return res.RowsAffected()
}
