package queries

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/infra"
	"travel-booking/internal/pkg/config"
	"travel-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/queries/booking.go -package=queriesmock

var (
	ErrBookingNotFound     = errs.New("booking not found")
	ErrInvalidSearchParams = errs.New("invalid search parameters")
)

type SearchParams struct {
	Query string
	// PaymentStatus filters on payment status; "all" or empty disables it.
	PaymentStatus string
	BookingStatus string
	Page          int
	Limit         int
	SortBy        string
	Order         string
}

// SearchCriteria is SearchParams after validation and defaulting.
type SearchCriteria struct {
	Query         string
	PaymentStatus *booking.PaymentStatus
	BookingStatus *booking.BookingStatus
	SortBy        string
	Desc          bool
	Limit         int
	Offset        int
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByReference(ctx context.Context, reference string) (*BookingView, error)
	Search(ctx context.Context, c SearchCriteria) ([]*BookingView, int64, error)
	Stats(ctx context.Context, r DateRange) (*BookingStats, error)
}

type StatsCache interface {
	GetStats(ctx context.Context, key string) (*BookingStats, bool, error)
	SetStats(ctx context.Context, key string, stats *BookingStats, ttl time.Duration) error
}

type DestinationCatalog interface {
	Destinations() []booking.Destination
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	GetByReference(ctx context.Context, reference string) (*BookingView, error)
	Search(ctx context.Context, p SearchParams) (*BookingPage, error)
	Stats(ctx context.Context, r DateRange) (*BookingStats, error)
	Destinations(ctx context.Context) []booking.Destination
}

type bookingQueriesImpl struct {
	store    BookingReadStore
	cache    StatsCache
	catalog  DestinationCatalog
	statsTTL time.Duration
}

func NewBookingQueries(store BookingReadStore, cache StatsCache, catalog DestinationCatalog, cfg config.Config) BookingQueries {
	return &bookingQueriesImpl{
		store:    store,
		cache:    cache,
		catalog:  catalog,
		statsTTL: cfg.Stats.CacheTTL,
	}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	v, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return v, nil
}

func (q *bookingQueriesImpl) GetByReference(ctx context.Context, reference string) (*BookingView, error) {
	reference = booking.NormalizeReference(reference)
	if !booking.IsValidReference(reference) {
		return nil, ErrBookingNotFound
	}
	v, err := q.store.FindByReference(ctx, reference)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return v, nil
}

func (q *bookingQueriesImpl) Search(ctx context.Context, p SearchParams) (*BookingPage, error) {
	criteria, page, err := BuildSearchCriteria(p)
	if err != nil {
		return nil, err
	}

	items, total, err := q.store.Search(ctx, criteria)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*BookingView{}
	}

	return &BookingPage{
		Items: items,
		Pagination: Pagination{
			Page:  page,
			Limit: criteria.Limit,
			Total: total,
			Pages: PageCount(total, criteria.Limit),
		},
	}, nil
}

// BuildSearchCriteria validates p and fills in defaults. It also returns the effective page.
func BuildSearchCriteria(p SearchParams) (SearchCriteria, int, error) {
	page := NormalizePage(p.Page)
	limit := NormalizeLimit(p.Limit)
	if !PageInRange(page, limit) {
		return SearchCriteria{}, 0, errs.Wrapf(ErrInvalidSearchParams, "page %d out of range", p.Page)
	}

	sortBy := strings.TrimSpace(p.SortBy)
	if sortBy == "" {
		sortBy = DefaultSortBy
	}
	if !IsSortField(sortBy) {
		return SearchCriteria{}, 0, errs.Wrapf(ErrInvalidSearchParams, "unsupported sortBy %q", sortBy)
	}

	var desc bool
	switch strings.ToLower(strings.TrimSpace(p.Order)) {
	case "", OrderDesc:
		desc = true
	case OrderAsc:
		desc = false
	default:
		return SearchCriteria{}, 0, errs.Wrapf(ErrInvalidSearchParams, "unsupported order %q", p.Order)
	}

	c := SearchCriteria{
		Query:  strings.TrimSpace(p.Query),
		SortBy: sortBy,
		Desc:   desc,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	if s := strings.TrimSpace(p.PaymentStatus); s != "" && s != StatusAll {
		ps, err := booking.ParsePaymentStatus(s)
		if err != nil {
			return SearchCriteria{}, 0, errs.Wrapf(ErrInvalidSearchParams, "unsupported status %q", s)
		}
		c.PaymentStatus = &ps
	}
	if s := strings.TrimSpace(p.BookingStatus); s != "" && s != StatusAll {
		bs, err := booking.ParseBookingStatus(s)
		if err != nil {
			return SearchCriteria{}, 0, errs.Wrapf(ErrInvalidSearchParams, "unsupported bookingStatus %q", s)
		}
		c.BookingStatus = &bs
	}

	return c, page, nil
}

func (q *bookingQueriesImpl) Stats(ctx context.Context, r DateRange) (*BookingStats, error) {
	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		return nil, errs.Wrap(ErrInvalidSearchParams, "from must not be after to")
	}

	key := statsCacheKey(r)
	if cached, ok, err := q.cache.GetStats(ctx, key); err != nil {
		slog.Warn("stats cache read failed", "key", key, "error", err.Error())
	} else if ok {
		return cached, nil
	}

	stats, err := q.store.Stats(ctx, r)
	if err != nil {
		return nil, err
	}

	if err := q.cache.SetStats(ctx, key, stats, q.statsTTL); err != nil {
		slog.Warn("stats cache write failed", "key", key, "error", err.Error())
	}
	return stats, nil
}

func statsCacheKey(r DateRange) string {
	bound := func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return fmt.Sprintf("%d", t.Unix())
	}
	return "booking:stats:" + bound(r.From) + ":" + bound(r.To)
}

func (q *bookingQueriesImpl) Destinations(_ context.Context) []booking.Destination {
	return q.catalog.Destinations()
}
