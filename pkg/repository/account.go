package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/mpdigest/pkg/domain"
)

// AccountRepository handles account-related database operations
type AccountRepository struct {
	db *sqlx.DB
}

// accountSQL is the database representation of an account
type accountSQL struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// UpsertAccount returns the id of the account with the given name, creating it if needed
func (r *AccountRepository) UpsertAccount(ctx context.Context, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("upsert account: empty name")
	}

	query := `
		INSERT INTO accounts (name) VALUES (?)
		ON CONFLICT(name) DO UPDATE SET updated_at = CURRENT_TIMESTAMP
		RETURNING id
	`
	var id int64
	err := withRetry(ctx, func() error {
		return r.db.GetContext(ctx, &id, query, name)
	})
	if err != nil {
		return 0, fmt.Errorf("upsert account %q: %w", name, err)
	}
	return id, nil
}

// GetAccountByName retrieves an account by its name
func (r *AccountRepository) GetAccountByName(ctx context.Context, name string) (*domain.Account, error) {
	var acc accountSQL
	if err := r.db.GetContext(ctx, &acc, "SELECT * FROM accounts WHERE name = ?", name); err != nil {
		return nil, fmt.Errorf("get account %q: %w", name, err)
	}
	return acc.toDomain(), nil
}

// GetAccountByID retrieves an account by its id
func (r *AccountRepository) GetAccountByID(ctx context.Context, id int64) (*domain.Account, error) {
	var acc accountSQL
	if err := r.db.GetContext(ctx, &acc, "SELECT * FROM accounts WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("get account %d: %w", id, err)
	}
	return acc.toDomain(), nil
}

// ListAccounts returns all accounts ordered by name
func (r *AccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	var rows []accountSQL
	if err := r.db.SelectContext(ctx, &rows, "SELECT * FROM accounts ORDER BY name"); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	res := make([]domain.Account, len(rows))
	for i, acc := range rows {
		res[i] = *acc.toDomain()
	}
	return res, nil
}

func (a *accountSQL) toDomain() *domain.Account {
	return &domain.Account{ID: a.ID, Name: a.Name, CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt}
}
