package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dairysync/internal/domain/accounts"
)

type AccountsRepo struct {
	s *Store
}

type accountRow struct {
	ID           string `db:"id"`
	Email        string `db:"email"`
	Username     string `db:"username"`
	FirstName    string `db:"first_name"`
	LastName     string `db:"last_name"`
	PasswordHash string `db:"password_hash"`
	CreatedAt    dbTime `db:"created_at"`
}

func (r accountRow) toDomain() accounts.Account {
	return accounts.Account{
		ID:           r.ID,
		Email:        r.Email,
		Username:     r.Username,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt.Time,
	}
}

type profileRow struct {
	AccountID string `db:"account_id"`
	Phone     string `db:"phone"`
	FarmName  string `db:"farm_name"`
	Role      string `db:"role"`
	CreatedAt dbTime `db:"created_at"`
	UpdatedAt dbTime `db:"updated_at"`
}

// CreateWithProfile inserta ambas filas en una transacción.
func (r *AccountsRepo) CreateWithProfile(ctx context.Context, a accounts.Account, p accounts.Profile) error {
	tx, err := r.s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO accounts (id, email, username, first_name, last_name, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`), a.ID, a.Email, a.Username, a.FirstName, a.LastName, a.PasswordHash, r.s.stamp(a.CreatedAt))
	if err != nil {
		if isUniqueViolation(err, "email") {
			return accounts.ErrEmailTaken
		}
		return fmt.Errorf("insert account: %w", err)
	}

	_, err = tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO profiles (account_id, phone, farm_name, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`), a.ID, p.Phone, p.FarmName, string(p.Role), r.s.stamp(p.CreatedAt), r.s.stamp(p.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}

	return tx.Commit()
}

func (r *AccountsRepo) GetByEmail(ctx context.Context, email string) (accounts.Account, error) {
	var row accountRow
	err := r.s.db.GetContext(ctx, &row, r.s.db.Rebind(`
		SELECT id, email, username, first_name, last_name, password_hash, created_at
		FROM accounts
		WHERE email = ?
	`), email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return accounts.Account{}, accounts.ErrNotFound
		}
		return accounts.Account{}, err
	}
	return row.toDomain(), nil
}

func (r *AccountsRepo) GetProfile(ctx context.Context, accountID string) (accounts.Profile, error) {
	var row profileRow
	err := r.s.db.GetContext(ctx, &row, r.s.db.Rebind(`
		SELECT account_id, phone, farm_name, role, created_at, updated_at
		FROM profiles
		WHERE account_id = ?
	`), accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return accounts.Profile{}, accounts.ErrNotFound
		}
		return accounts.Profile{}, err
	}
	return accounts.Profile{
		AccountID: row.AccountID,
		Phone:     row.Phone,
		FarmName:  row.FarmName,
		Role:      accounts.Role(row.Role),
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}, nil
}

func (r *AccountsRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT COUNT(1) FROM accounts WHERE email = ?`, email)
}

func (r *AccountsRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT COUNT(1) FROM accounts WHERE username = ?`, username)
}

// Delete borra la cuenta; el perfil cae en cascada y los logs quedan con created_by NULL.
func (r *AccountsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.s.db.ExecContext(ctx, r.s.db.Rebind(`DELETE FROM accounts WHERE id = ?`), id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return accounts.ErrNotFound
	}
	return nil
}

func (r *AccountsRepo) exists(ctx context.Context, q string, arg any) (bool, error) {
	var n int
	if err := r.s.db.GetContext(ctx, &n, r.s.db.Rebind(q), arg); err != nil {
		return false, err
	}
	return n > 0, nil
}
