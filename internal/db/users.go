package db

import (
	"context"
	"fmt"

	"github.com/aptmap/backend/internal/model"
)

const userColumns = `id, login_id, name, email, password_hash, refresh_token, created_at, updated_at`

// CreateUser inserts a new account. The contact email starts out equal to
// the login id.
func (db *Postgres) CreateUser(ctx context.Context, loginID, name, passwordHash string) (int64, error) {
	query := `
		INSERT INTO users (login_id, name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $1, $3, NOW(), NOW())
		RETURNING id
	`
	var id int64
	if err := db.Pool.QueryRow(ctx, query, loginID, name, passwordHash).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: login id %q", ErrDuplicate, loginID)
		}
		return 0, err
	}
	return id, nil
}

func (db *Postgres) GetUserByLoginID(ctx context.Context, loginID string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE login_id = $1`

	var user model.User
	err := db.Pool.QueryRow(ctx, query, loginID).Scan(
		&user.ID,
		&user.LoginID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.RefreshToken,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (db *Postgres) UpdatePasswordHash(ctx context.Context, loginID, passwordHash string) error {
	tag, err := db.Pool.Exec(ctx, `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE login_id = $1
	`, loginID, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *Postgres) UpdateProfile(ctx context.Context, loginID, name, email string) error {
	tag, err := db.Pool.Exec(ctx, `
		UPDATE users
		SET name = $2, email = $3, updated_at = NOW()
		WHERE login_id = $1
	`, loginID, name, email)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SwapRefreshToken replaces the stored refresh token only if it still equals
// prev (nil matches NULL). It reports false when another writer got there
// first.
func (db *Postgres) SwapRefreshToken(ctx context.Context, loginID string, prev, next *string) (bool, error) {
	tag, err := db.Pool.Exec(ctx, `
		UPDATE users
		SET refresh_token = $3, updated_at = NOW()
		WHERE login_id = $1 AND refresh_token IS NOT DISTINCT FROM $2
	`, loginID, prev, next)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
