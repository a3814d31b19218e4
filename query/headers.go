package query

import "strconv"

// Response header names for the pagination contract.
const (
	HeaderPageSize    = "Page-Size"
	HeaderCurrentPage = "Current-Page"
	HeaderLastID      = "Last-Id"
)

// PaginationHeaders derives the response headers from the same Params used
// to build the query, so headers always describe the data actually
// returned. Without PageSize no headers are emitted at all; with it,
// at most one of Current-Page and Last-Id is added, and Last-Id wins when
// both are set, mirroring Build's pagination precedence.
func PaginationHeaders(p Params) map[string]string {
	headers := make(map[string]string)
	if p.PageSize == nil {
		return headers
	}

	headers[HeaderPageSize] = strconv.Itoa(*p.PageSize)
	switch {
	case p.LastID != nil:
		headers[HeaderLastID] = strconv.Itoa(*p.LastID)
	case p.CurrentPage != nil:
		headers[HeaderCurrentPage] = strconv.Itoa(*p.CurrentPage)
	}
	return headers
}
