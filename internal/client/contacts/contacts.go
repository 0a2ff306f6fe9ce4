// Package contacts implements the ownership-scoped contact operations.
// Every query and mutation carries the created_by predicate derived from
// the current session; without a session the operation is refused with
// common.ErrNoSession rather than running unscoped.
package contacts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/carnetapp/carnet/internal/common"
	"github.com/carnetapp/carnet/internal/logging"
	"github.com/carnetapp/carnet/internal/tablestore"
)

const table = "contacts"

// ErrRequiredFields is returned when first name, last name, or phone is
// missing from a create/update.
var ErrRequiredFields = errors.New("nom, prénom et téléphone sont obligatoires")

// Contact is a user-owned address-book entry. CreatedBy is assigned at
// creation and never changed afterwards.
type Contact struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
	CreatedBy string `json:"created_by"`
	CreatedAt string `json:"created_at"`
}

// Input is the editable subset of a contact. Email is optional.
type Input struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
}

func (in Input) validate() error {
	if strings.TrimSpace(in.FirstName) == "" ||
		strings.TrimSpace(in.LastName) == "" ||
		strings.TrimSpace(in.Phone) == "" {
		return ErrRequiredFields
	}
	return nil
}

// tableClient is the slice of the row-store SDK this service uses.
type tableClient interface {
	Insert(ctx context.Context, table string, row tablestore.Row) (tablestore.Row, error)
	Select(ctx context.Context, table string, columns []string, filters []tablestore.Filter, order *tablestore.Order) ([]tablestore.Row, error)
	SelectSingle(ctx context.Context, table string, columns []string, filters []tablestore.Filter) (tablestore.Row, error)
	Update(ctx context.Context, table string, patch tablestore.Row, filters []tablestore.Filter) error
	Delete(ctx context.Context, table string, filters []tablestore.Filter) error
}

// sessionSource yields the current authenticated identity.
type sessionSource interface {
	Current() (string, bool)
}

type Service struct {
	ts      tableClient
	session sessionSource
	logger  logging.Logger
}

func NewService(ts tableClient, session sessionSource, logger logging.Logger) *Service {
	return &Service{ts: ts, session: session, logger: logger}
}

// scope derives the created_by predicate from the current session.
func (s *Service) scope() (tablestore.Filter, error) {
	email, ok := s.session.Current()
	if !ok {
		return tablestore.Filter{}, common.ErrNoSession
	}
	return tablestore.Eq("created_by", email), nil
}

// List returns the session owner's contacts, most recent first.
func (s *Service) List(ctx context.Context) ([]Contact, error) {
	scope, err := s.scope()
	if err != nil {
		return nil, err
	}

	order := &tablestore.Order{Column: "created_at", Descending: true}
	rows, err := s.ts.Select(ctx, table, nil, []tablestore.Filter{scope}, order)
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}

	contacts := make([]Contact, 0, len(rows))
	for _, row := range rows {
		var c Contact
		if err := tablestore.DecodeRow(row, &c); err != nil {
			return nil, fmt.Errorf("decoding contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, nil
}

// Get fetches one contact by id, scoped to the owner. A contact owned by
// someone else is indistinguishable from a missing one.
func (s *Service) Get(ctx context.Context, id string) (*Contact, error) {
	scope, err := s.scope()
	if err != nil {
		return nil, err
	}

	row, err := s.ts.SelectSingle(ctx, table, nil, []tablestore.Filter{
		tablestore.Eq("id", id),
		scope,
	})
	if err != nil {
		if errors.Is(err, tablestore.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("fetching contact: %w", err)
	}

	contact := &Contact{}
	if err := tablestore.DecodeRow(row, contact); err != nil {
		return nil, fmt.Errorf("decoding contact: %w", err)
	}
	return contact, nil
}

// Create inserts a contact owned by the current session.
func (s *Service) Create(ctx context.Context, in Input) (*Contact, error) {
	scope, err := s.scope()
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	row := tablestore.Row{
		"first_name": strings.TrimSpace(in.FirstName),
		"last_name":  strings.TrimSpace(in.LastName),
		"phone":      strings.TrimSpace(in.Phone),
		"email":      nullableEmail(in.Email),
		"created_by": scope.Value,
	}

	stored, err := s.ts.Insert(ctx, table, row)
	if err != nil {
		return nil, fmt.Errorf("creating contact: %w", err)
	}

	contact := &Contact{}
	if err := tablestore.DecodeRow(stored, contact); err != nil {
		return nil, fmt.Errorf("decoding contact: %w", err)
	}
	return contact, nil
}

// Update edits a contact's fields. The patch never includes created_by,
// and the filters pin both id and owner, so a cross-owner update is a
// no-op at the store.
func (s *Service) Update(ctx context.Context, id string, in Input) error {
	scope, err := s.scope()
	if err != nil {
		return err
	}
	if err := in.validate(); err != nil {
		return err
	}

	patch := tablestore.Row{
		"first_name": strings.TrimSpace(in.FirstName),
		"last_name":  strings.TrimSpace(in.LastName),
		"phone":      strings.TrimSpace(in.Phone),
		"email":      nullableEmail(in.Email),
	}

	filters := []tablestore.Filter{tablestore.Eq("id", id), scope}
	if err := s.ts.Update(ctx, table, patch, filters); err != nil {
		return fmt.Errorf("updating contact: %w", err)
	}
	return nil
}

// Delete removes a contact by id. The owner predicate is part of the
// request; the store is not trusted to scope deletions.
func (s *Service) Delete(ctx context.Context, id string) error {
	scope, err := s.scope()
	if err != nil {
		return err
	}

	filters := []tablestore.Filter{tablestore.Eq("id", id), scope}
	if err := s.ts.Delete(ctx, table, filters); err != nil {
		return fmt.Errorf("deleting contact: %w", err)
	}
	return nil
}

// nullableEmail maps a blank optional email to SQL NULL.
func nullableEmail(email string) any {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	return email
}
