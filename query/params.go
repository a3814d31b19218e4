package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Params carries every list option a client may supply on a collection
// endpoint. It is built once from the inbound query string, consumed by
// Build, and discarded with the request.
//
// Title is an exact-match fast path that overrides everything else.
// CurrentPage and LastID select mutually exclusive pagination modes;
// when both are present LastID (keyset) wins.
type Params struct {
	IncludeChildren bool
	Title           string
	Search          string
	Filter          map[string]string
	Sort            string
	PageSize        *int
	CurrentPage     *int
	LastID          *int
}

// ParseParams extracts Params from a request query string. Filter entries
// use the filter[field]=value form. Malformed numeric values are reported
// back to the caller, not silently dropped.
func ParseParams(values url.Values) (Params, error) {
	p := Params{
		Title:  values.Get("title"),
		Search: values.Get("search"),
		Sort:   values.Get("sort"),
	}

	if raw := values.Get("includeChildren"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			return Params{}, fmt.Errorf("invalid includeChildren value %q", raw)
		}
		p.IncludeChildren = include
	}

	var err error
	if p.PageSize, err = parseOptionalInt(values, "pageSize"); err != nil {
		return Params{}, err
	}
	if p.CurrentPage, err = parseOptionalInt(values, "currentPage"); err != nil {
		return Params{}, err
	}
	if p.LastID, err = parseOptionalInt(values, "lastId"); err != nil {
		return Params{}, err
	}

	for key, vals := range values {
		if !strings.HasPrefix(key, "filter[") || !strings.HasSuffix(key, "]") {
			continue
		}
		field := key[len("filter[") : len(key)-1]
		if field == "" || len(vals) == 0 {
			continue
		}
		if p.Filter == nil {
			p.Filter = make(map[string]string)
		}
		p.Filter[field] = vals[0]
	}

	return p, nil
}

func parseOptionalInt(values url.Values, key string) (*int, error) {
	raw := values.Get(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("invalid %s value %q", key, raw)
	}
	return &n, nil
}
