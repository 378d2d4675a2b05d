// Package accounts provides the PostgreSQL-backed account store.
package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

type PostgresRepository struct {
	db       dbx.DBTX
	comparer SecretComparer
}

func NewPostgresRepository(db dbx.DBTX, comparer SecretComparer) *PostgresRepository {
	return &PostgresRepository{db: db, comparer: comparer}
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	query :=
		`SELECT id, password, role, status, is_deleted, needs_password_change, password_changed_at
		 FROM users
		 WHERE id = $1
		 `

	account := &models.Account{}
	var changedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&account.ID, &account.Password, &account.Role, &account.Status,
		&account.IsDeleted, &account.NeedsPasswordChange, &changedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if changedAt.Valid {
		account.PasswordChangedAt = &changedAt.Time
	}

	return account, nil
}

func (r *PostgresRepository) SecretMatches(plain, hash string) bool {
	return r.comparer.Matches(plain, hash)
}

func (r *PostgresRepository) Update(ctx context.Context, id string, role models.Role, fields models.AccountUpdate) error {
	query :=
		`UPDATE users
		 SET password = $1, needs_password_change = $2, password_changed_at = $3
		 WHERE id = $4 AND role = $5
		 `

	res, err := r.db.ExecContext(ctx, query,
		fields.Password, fields.NeedsPasswordChange, fields.PasswordChangedAt, id, string(role))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}
