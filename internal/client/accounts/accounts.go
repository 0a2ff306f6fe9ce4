// Package accounts is the credential store adapter: the three remote
// operations the auth flow needs — insert an account, look an account up by
// email, and read/upsert the associated profile. All calls go through the
// row-store SDK; errors are folded into the shared taxonomy.
package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/carnetapp/carnet/internal/client/validation"
	"github.com/carnetapp/carnet/internal/common"
	"github.com/carnetapp/carnet/internal/tablestore"
)

// Account is a stored identity. The digest never leaves this layer except
// for verification.
type Account struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
}

// Profile carries supplementary, non-authoritative personal details tied
// to an account by email.
type Profile struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// tableClient is the slice of the row-store SDK this adapter uses.
type tableClient interface {
	Insert(ctx context.Context, table string, row tablestore.Row) (tablestore.Row, error)
	SelectSingle(ctx context.Context, table string, columns []string, filters []tablestore.Filter) (tablestore.Row, error)
	Upsert(ctx context.Context, table string, row tablestore.Row, onConflict string) error
}

// Store adapts the remote users/profiles tables.
type Store struct {
	ts tableClient
}

func NewStore(ts tableClient) *Store {
	return &Store{ts: ts}
}

// CreateAccount inserts a new account row with the normalized email and
// the password digest. A uniqueness violation on email maps to
// common.ErrDuplicateEmail; any other store failure maps to
// common.ErrStoreUnavailable.
func (s *Store) CreateAccount(ctx context.Context, email, passwordHash string) error {
	row := tablestore.Row{
		"email":         validation.NormalizeEmail(email),
		"password_hash": passwordHash,
	}

	if _, err := s.ts.Insert(ctx, "users", row); err != nil {
		var tsErr *tablestore.Error
		if errors.As(err, &tsErr) && tsErr.IsUniqueViolation() {
			return common.ErrDuplicateEmail
		}
		return fmt.Errorf("%w: %w", common.ErrStoreUnavailable, err)
	}
	return nil
}

// FindByEmail looks an account up by its normalized email. Zero matches
// return common.ErrorNotFound, not an exception, so the caller can present
// a uniform invalid-credentials message.
func (s *Store) FindByEmail(ctx context.Context, email string) (*Account, error) {
	filters := []tablestore.Filter{
		tablestore.Eq("email", validation.NormalizeEmail(email)),
	}

	row, err := s.ts.SelectSingle(ctx, "users", []string{"id", "email", "password_hash"}, filters)
	if err != nil {
		if errors.Is(err, tablestore.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: %w", common.ErrStoreUnavailable, err)
	}

	account := &Account{}
	if err := tablestore.DecodeRow(row, account); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStoreUnavailable, err)
	}
	return account, nil
}

// UpsertProfile writes the profile keyed on email. Best-effort: callers
// treat a failure as non-fatal.
func (s *Store) UpsertProfile(ctx context.Context, p Profile) error {
	row := tablestore.Row{
		"email":      validation.NormalizeEmail(p.Email),
		"first_name": p.FirstName,
		"last_name":  p.LastName,
		"phone":      p.Phone,
	}

	if err := s.ts.Upsert(ctx, "profiles", row, "email"); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStoreUnavailable, err)
	}
	return nil
}

// FetchProfile reads the profile for an email. Opportunistic: sign-in
// ignores a failure here.
func (s *Store) FetchProfile(ctx context.Context, email string) (*Profile, error) {
	filters := []tablestore.Filter{
		tablestore.Eq("email", validation.NormalizeEmail(email)),
	}

	row, err := s.ts.SelectSingle(ctx, "profiles", []string{"email", "first_name", "last_name", "phone"}, filters)
	if err != nil {
		if errors.Is(err, tablestore.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: %w", common.ErrStoreUnavailable, err)
	}

	profile := &Profile{}
	if err := tablestore.DecodeRow(row, profile); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStoreUnavailable, err)
	}
	return profile, nil
}
