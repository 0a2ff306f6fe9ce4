// Package tablestore defines the wire contract of the Carnet row store and
// provides the HTTP client SDK used by the application. The contract is a
// small table-store API: insert, select, update, delete, and upsert over
// named tables, with equality filters and optional ordering.
//
// All operations are POST requests to /v1/tables/{table}/{op} carrying JSON
// bodies. Errors cross the wire as {"error": {"code", "message"}}; Postgres
// SQLSTATE codes pass through unchanged, so a uniqueness violation is
// distinguishable by its code (see Error.IsUniqueViolation).
package tablestore

// Row is a single table row keyed by column name. Values are whatever the
// JSON decoder produced (string, float64, bool, nil).
type Row map[string]any

// Filter restricts an operation to rows matching a column predicate.
// OpEq is the only operator the store accepts.
type Filter struct {
	Column string `json:"column"`
	Op     string `json:"op"`
	Value  any    `json:"value"`
}

// OpEq is the equality operator.
const OpEq = "eq"

// Eq builds an equality filter on column.
func Eq(column string, value any) Filter {
	return Filter{Column: column, Op: OpEq, Value: value}
}

// Order describes the sort applied to a select.
type Order struct {
	Column     string `json:"column"`
	Descending bool   `json:"descending,omitempty"`
}

type InsertRequest struct {
	Row Row `json:"row"`
}

type InsertResponse struct {
	Row Row `json:"row"`
}

type SelectRequest struct {
	// Columns projects the result; empty means all registered columns.
	Columns []string `json:"columns,omitempty"`
	Filters []Filter `json:"filters,omitempty"`
	Order   *Order   `json:"order,omitempty"`
	Limit   int      `json:"limit,omitempty"`
}

type SelectResponse struct {
	Rows []Row `json:"rows"`
}

type UpdateRequest struct {
	Patch   Row      `json:"patch"`
	Filters []Filter `json:"filters"`
}

type DeleteRequest struct {
	Filters []Filter `json:"filters"`
}

type UpsertRequest struct {
	Row Row `json:"row"`
	// OnConflict names the unique column that resolves the upsert.
	OnConflict string `json:"on_conflict"`
}

type emptyResponse struct{}
