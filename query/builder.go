package query

import (
	"fmt"
	"sort"
	"strings"
)

// sortAscending is the only direction the list contract exposes today.
// orderBy supports both, but descending is deliberately not wired through
// to callers yet.
const sortAscending = true

// Build composes the final SELECT for a list request by applying Params to
// the base query in a fixed precedence order:
//
//  1. Title set: exact case-sensitive match, every other option ignored.
//     Sorting and paging a single-candidate lookup is wasted work, so this
//     is a hard precedence rule of the contract.
//  2. Search, then Filter, then Sort, then pagination. With PageSize set,
//     LastID selects keyset paging (identity > LastID in ascending
//     identity order) and wins over CurrentPage (skip/take). PageSize
//     without either mode is ignored.
//
// Build never mutates p; identical inputs produce identical SQL and args.
func Build(base string, cols Columns, p Params) (string, []any, error) {
	titleColumn, err := cols.Resolve("title")
	if err != nil {
		return "", nil, err
	}

	if p.Title != "" {
		return fmt.Sprintf("%s WHERE %s = $1", base, titleColumn), []any{p.Title}, nil
	}

	var conditions []string
	var args []any
	placeholder := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if p.Search != "" {
		ph := placeholder("%" + escapeLike(p.Search) + "%")
		matches := make([]string, 0, len(cols.searchable))
		for _, expr := range cols.searchable {
			matches = append(matches, fmt.Sprintf(`%s ILIKE %s ESCAPE '\'`, expr, ph))
		}
		conditions = append(conditions, "("+strings.Join(matches, " OR ")+")")
	}

	if len(p.Filter) > 0 {
		// Deterministic condition order regardless of map iteration.
		fields := make([]string, 0, len(p.Filter))
		for field := range p.Filter {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		for _, field := range fields {
			column, err := cols.Resolve(field)
			if err != nil {
				return "", nil, err
			}
			ph := placeholder(p.Filter[field])
			conditions = append(conditions,
				fmt.Sprintf("LOWER(CAST(%s AS TEXT)) = LOWER(%s)", column, ph))
		}
	}

	var orderClause string
	if p.Sort != "" {
		column, err := cols.Resolve(p.Sort)
		if err != nil {
			return "", nil, err
		}
		orderClause = orderBy(column, sortAscending)
	}

	var limitClause string
	if p.PageSize != nil {
		switch {
		case p.LastID != nil:
			conditions = append(conditions,
				fmt.Sprintf("%s > %s", cols.identity(), placeholder(*p.LastID)))
			// Keyset paging is only meaningful over identity order, so it
			// takes over the ordering instead of trusting store defaults.
			orderClause = orderBy(cols.identity(), sortAscending)
			limitClause = fmt.Sprintf(" LIMIT %s", placeholder(*p.PageSize))
		case p.CurrentPage != nil:
			limitClause = fmt.Sprintf(" LIMIT %s OFFSET %s",
				placeholder(*p.PageSize), placeholder(*p.PageSize**p.CurrentPage))
		}
	}

	stmt := base
	if len(conditions) > 0 {
		stmt += " WHERE " + strings.Join(conditions, " AND ")
	}
	stmt += orderClause + limitClause

	return stmt, args, nil
}

func orderBy(column string, ascending bool) string {
	direction := "DESC"
	if ascending {
		direction = "ASC"
	}
	return fmt.Sprintf(" ORDER BY %s %s", column, direction)
}

// escapeLike neutralizes LIKE metacharacters in user-supplied search terms.
func escapeLike(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(term)
}
