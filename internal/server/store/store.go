// Package store implements the row-store operations over PostgreSQL.
// Tables and columns are allowlisted in a registry; every identifier that
// reaches SQL comes from the registry, never from the request.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carnetapp/carnet/internal/dbx"
	"github.com/carnetapp/carnet/internal/tablestore"
	"github.com/google/uuid"
)

var (
	ErrUnknownTable  = errors.New("unknown table")
	ErrUnknownColumn = errors.New("unknown column")
	ErrBadRequest    = errors.New("bad request")
)

// Table describes one allowlisted table.
type Table struct {
	Name    string
	Columns []string
	// IDColumn, when set, is filled with a generated uuid on insert if the
	// row does not provide one.
	IDColumn string
	// CreatedAtColumn, when set, is stamped on insert if absent.
	CreatedAtColumn string
	// UpdatedAtColumn, when set, is stamped on insert and upsert if absent,
	// so an ON CONFLICT update refreshes it too.
	UpdatedAtColumn string
}

func (t Table) hasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// defaultTables is the schema the service exposes.
func defaultTables() map[string]Table {
	return map[string]Table{
		"users": {
			Name:            "users",
			Columns:         []string{"id", "email", "password_hash", "created_at"},
			IDColumn:        "id",
			CreatedAtColumn: "created_at",
		},
		"profiles": {
			Name:            "profiles",
			Columns:         []string{"email", "first_name", "last_name", "phone", "updated_at"},
			UpdatedAtColumn: "updated_at",
		},
		"contacts": {
			Name:            "contacts",
			Columns:         []string{"id", "first_name", "last_name", "phone", "email", "created_by", "created_at"},
			IDColumn:        "id",
			CreatedAtColumn: "created_at",
		},
	}
}

// Store executes row operations against a database handle.
type Store struct {
	db     dbx.DBTX
	tables map[string]Table

	now   func() time.Time
	newID func() string
}

func New(db dbx.DBTX) *Store {
	return &Store{
		db:     db,
		tables: defaultTables(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

func (s *Store) table(name string) (Table, error) {
	t, ok := s.tables[name]
	if !ok {
		return Table{}, fmt.Errorf("%w: %s", ErrUnknownTable, name)
	}
	return t, nil
}

// Insert adds a row, generating the id and creation timestamp when the
// table defines them and the row omits them. Returns the row as stored.
func (s *Store) Insert(ctx context.Context, table string, row tablestore.Row) (tablestore.Row, error) {
	t, err := s.table(table)
	if err != nil {
		return nil, err
	}

	row = s.withGenerated(t, row)

	query, args, err := buildInsert(t, row)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	stored, err := scanRows(rows)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if len(stored) == 0 {
		return nil, fmt.Errorf("db error: insert returned no row")
	}
	return stored[0], nil
}

// Select returns the rows matching the request.
func (s *Store) Select(ctx context.Context, table string, req tablestore.SelectRequest) ([]tablestore.Row, error) {
	t, err := s.table(table)
	if err != nil {
		return nil, err
	}

	query, args, err := buildSelect(t, req)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result, err := scanRows(rows)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Update applies a patch to the rows matching the filters. At least one
// filter is required; a blanket update is refused.
func (s *Store) Update(ctx context.Context, table string, patch tablestore.Row, filters []tablestore.Filter) error {
	t, err := s.table(table)
	if err != nil {
		return err
	}

	query, args, err := buildUpdate(t, patch, filters)
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Delete removes the rows matching the filters. At least one filter is
// required; a blanket delete is refused.
func (s *Store) Delete(ctx context.Context, table string, filters []tablestore.Filter) error {
	t, err := s.table(table)
	if err != nil {
		return err
	}

	query, args, err := buildDelete(t, filters)
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Upsert inserts the row or updates the existing one on a conflict with
// the named unique column.
func (s *Store) Upsert(ctx context.Context, table string, row tablestore.Row, onConflict string) error {
	t, err := s.table(table)
	if err != nil {
		return err
	}

	row = s.withGenerated(t, row)

	query, args, err := buildUpsert(t, row, onConflict)
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// withGenerated fills generated columns the row omits. The input row is
// not mutated.
func (s *Store) withGenerated(t Table, row tablestore.Row) tablestore.Row {
	out := make(tablestore.Row, len(row)+2)
	for k, v := range row {
		out[k] = v
	}
	if t.IDColumn != "" {
		if _, ok := out[t.IDColumn]; !ok {
			out[t.IDColumn] = s.newID()
		}
	}
	if t.CreatedAtColumn != "" {
		if _, ok := out[t.CreatedAtColumn]; !ok {
			out[t.CreatedAtColumn] = s.now().UTC()
		}
	}
	if t.UpdatedAtColumn != "" {
		if _, ok := out[t.UpdatedAtColumn]; !ok {
			out[t.UpdatedAtColumn] = s.now().UTC()
		}
	}
	return out
}
