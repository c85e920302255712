package queries

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	DefaultSortBy = "createdAt"
	OrderAsc      = "asc"
	OrderDesc     = "desc"

	// StatusAll disables the payment status filter.
	StatusAll = "all"
)

var sortFields = map[string]struct{}{
	"createdAt":     {},
	"updatedAt":     {},
	"travelDate":    {},
	"totalAmount":   {},
	"travelerCount": {},
	"name":          {},
	"destination":   {},
	"reference":     {},
	"bookingStatus": {},
	"paymentStatus": {},
}

func IsSortField(field string) bool {
	_, ok := sortFields[field]
	return ok
}

func NormalizePage(page int) int {
	if page < 1 {
		return DefaultPage
	}
	return page
}

// PageInRange reports whether the offset of page fits the int32 OFFSET the store sends.
func PageInRange(page, limit int) bool {
	return page <= math.MaxInt32/limit
}

func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

// PageCount is ceil(total/limit).
func PageCount(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
