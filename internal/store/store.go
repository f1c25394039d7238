// Package store defines the relational data access contracts used by the
// chat pipeline. Read and Write absorb execution failures: callers see an
// empty result set or a -1 row count, never an error. A broken query is
// indistinguishable from a legitimately empty one above this layer.
package store

import (
	"context"
	"fmt"
	"strings"
)

// Row is a single result row as an ordered column/value mapping. Column
// order follows the statement's select list.
type Row struct {
	Columns []string
	Values  []any
}

// Get returns the value for a column and whether the column exists.
func (r Row) Get(column string) (any, bool) {
	for i, name := range r.Columns {
		if name == column {
			return r.Values[i], true
		}
	}
	return nil, false
}

// String renders the row as comma-joined "column: value" pairs.
func (r Row) String() string {
	parts := make([]string, 0, len(r.Columns))
	for i, name := range r.Columns {
		parts = append(parts, fmt.Sprintf("%s: %v", name, r.Values[i]))
	}
	return strings.Join(parts, ", ")
}

// Format renders rows one per line in select-list order.
func Format(rows []Row) string {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, row.String())
	}
	return strings.Join(lines, "\n")
}

type Reader interface {
	Read(ctx context.Context, query string, args ...any) []Row
}

type Writer interface {
	Write(ctx context.Context, query string, args ...any) int64
}
