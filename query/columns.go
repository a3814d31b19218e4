package query

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownField marks a filter or sort key that does not resolve to any
// column of the entity. This is a caller configuration error and is
// surfaced as a server failure, never ignored.
var ErrUnknownField = errors.New("unknown field")

// Columns is the closed mapping from client-facing field names to SQL
// columns for one entity type. It is built once at startup and replaces
// runtime reflection: anything not registered here fails resolution.
type Columns struct {
	id         string
	fields     map[string]string
	searchable []string
}

// NewColumns registers the identity column, the filterable/sortable field
// set (field names are matched case-insensitively), and the expressions
// searched by the free-text option.
func NewColumns(id string, fields map[string]string, searchable ...string) Columns {
	normalized := make(map[string]string, len(fields))
	for name, column := range fields {
		normalized[strings.ToLower(name)] = column
	}
	return Columns{
		id:         id,
		fields:     normalized,
		searchable: searchable,
	}
}

// Resolve maps a client-supplied field name to its column.
func (c Columns) Resolve(name string) (string, error) {
	column, ok := c.fields[strings.ToLower(name)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return column, nil
}

func (c Columns) identity() string { return c.id }
