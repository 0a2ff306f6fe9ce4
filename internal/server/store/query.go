package store

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/carnetapp/carnet/internal/tablestore"
)

// sortedColumns returns the row's column names, validated against the
// table, in deterministic order.
func sortedColumns(t Table, row tablestore.Row) ([]string, error) {
	cols := make([]string, 0, len(row))
	for c := range row {
		if !t.hasColumn(c) {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, t.Name, c)
		}
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols, nil
}

func validateFilters(t Table, filters []tablestore.Filter) error {
	for _, f := range filters {
		if f.Op != tablestore.OpEq {
			return fmt.Errorf("%w: unsupported filter op %q", ErrBadRequest, f.Op)
		}
		if !t.hasColumn(f.Column) {
			return fmt.Errorf("%w: %s.%s", ErrUnknownColumn, t.Name, f.Column)
		}
	}
	return nil
}

// whereClause renders the filters as "WHERE a = $n AND b = $n+1", starting
// placeholders at argOffset+1.
func whereClause(filters []tablestore.Filter, argOffset int) (string, []any) {
	if len(filters) == 0 {
		return "", nil
	}
	preds := make([]string, 0, len(filters))
	args := make([]any, 0, len(filters))
	for i, f := range filters {
		preds = append(preds, fmt.Sprintf("%s = $%d", f.Column, argOffset+i+1))
		args = append(args, f.Value)
	}
	return " WHERE " + strings.Join(preds, " AND "), args
}

func buildInsert(t Table, row tablestore.Row) (string, []any, error) {
	if len(row) == 0 {
		return "", nil, fmt.Errorf("%w: empty row", ErrBadRequest)
	}
	cols, err := sortedColumns(t, row)
	if err != nil {
		return "", nil, err
	}

	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = row[c]
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		t.Name,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(t.Columns, ", "),
	)
	return query, args, nil
}

func buildSelect(t Table, req tablestore.SelectRequest) (string, []any, error) {
	cols := req.Columns
	if len(cols) == 0 {
		cols = t.Columns
	}
	for _, c := range cols {
		if !t.hasColumn(c) {
			return "", nil, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, t.Name, c)
		}
	}
	if err := validateFilters(t, req.Filters); err != nil {
		return "", nil, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), t.Name)
	where, args := whereClause(req.Filters, 0)
	query += where

	if req.Order != nil {
		if !t.hasColumn(req.Order.Column) {
			return "", nil, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, t.Name, req.Order.Column)
		}
		dir := "ASC"
		if req.Order.Descending {
			dir = "DESC"
		}
		query += fmt.Sprintf(" ORDER BY %s %s", req.Order.Column, dir)
	}
	if req.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", req.Limit)
	}
	return query, args, nil
}

func buildUpdate(t Table, patch tablestore.Row, filters []tablestore.Filter) (string, []any, error) {
	if len(patch) == 0 {
		return "", nil, fmt.Errorf("%w: empty patch", ErrBadRequest)
	}
	if len(filters) == 0 {
		return "", nil, fmt.Errorf("%w: update requires filters", ErrBadRequest)
	}
	cols, err := sortedColumns(t, patch)
	if err != nil {
		return "", nil, err
	}
	if err := validateFilters(t, filters); err != nil {
		return "", nil, err
	}

	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+len(filters))
	for i, c := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", c, i+1)
		args = append(args, patch[c])
	}

	where, whereArgs := whereClause(filters, len(cols))
	args = append(args, whereArgs...)

	query := fmt.Sprintf("UPDATE %s SET %s%s", t.Name, strings.Join(sets, ", "), where)
	return query, args, nil
}

func buildDelete(t Table, filters []tablestore.Filter) (string, []any, error) {
	if len(filters) == 0 {
		return "", nil, fmt.Errorf("%w: delete requires filters", ErrBadRequest)
	}
	if err := validateFilters(t, filters); err != nil {
		return "", nil, err
	}

	where, args := whereClause(filters, 0)
	query := fmt.Sprintf("DELETE FROM %s%s", t.Name, where)
	return query, args, nil
}

func buildUpsert(t Table, row tablestore.Row, onConflict string) (string, []any, error) {
	if onConflict == "" || !t.hasColumn(onConflict) {
		return "", nil, fmt.Errorf("%w: invalid conflict column %q", ErrBadRequest, onConflict)
	}
	cols, err := sortedColumns(t, row)
	if err != nil {
		return "", nil, err
	}

	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	sets := make([]string, 0, len(cols))
	for i, c := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = row[c]
		if c != onConflict {
			sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
		}
	}
	if len(sets) == 0 {
		return "", nil, fmt.Errorf("%w: upsert row has no updatable columns", ErrBadRequest)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s",
		t.Name,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
		onConflict,
		strings.Join(sets, ", "),
	)
	return query, args, nil
}

// scanRows converts a result set into wire rows. Timestamps become RFC3339
// strings and byte slices become strings, so rows survive a JSON round trip
// unchanged.
func scanRows(rows *sql.Rows) ([]tablestore.Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := make([]tablestore.Row, 0)
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(tablestore.Row, len(cols))
		for i, c := range cols {
			row[c] = normalizeValue(values[i])
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case time.Time:
		return val.UTC().Format(time.RFC3339Nano)
	case []byte:
		return string(val)
	default:
		return v
	}
}
