package util

import "strconv"

const DefaultPageLimit = 50

// ResolvePage coerces raw page/limit query parameters into a 1-based page and
// a positive limit. Anything non-numeric or non-positive falls back to the
// defaults rather than erroring.
func ResolvePage(pageStr, limitStr string) (page, limit int) {
	page = 1
	if n, err := strconv.Atoi(pageStr); err == nil && n > 0 {
		page = n
	}
	limit = DefaultPageLimit
	if n, err := strconv.Atoi(limitStr); err == nil && n > 0 {
		limit = n
	}
	return page, limit
}

// ResolveSort maps the sortBy parameter onto an ORDER BY clause. Every
// ordering carries id as a tie-break so that equal keys keep a stable order
// and consecutive pages partition the result set.
func ResolveSort(sortBy string) string {
	switch sortBy {
	case "amount":
		return "t.amount DESC, t.id"
	case "amount_asc":
		return "t.amount ASC, t.id"
	default:
		return "t.date DESC, t.id"
	}
}

// Pages computes the total page count for a result set.
func Pages(total, limit int) int {
	if total == 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
