package booking

import (
	"math"
	"strconv"
	"strings"
	"time"
)

type Customer struct {
	name  string
	email string
	phone string
}

func (c Customer) Name() string  { return c.name }
func (c Customer) Email() string { return c.email }
func (c Customer) Phone() string { return c.phone }

type Trip struct {
	destination   string
	travelDate    time.Time
	travelerCount int
}

func (t Trip) Destination() string   { return t.destination }
func (t Trip) TravelDate() time.Time { return t.travelDate }
func (t Trip) TravelerCount() int    { return t.travelerCount }

const (
	// MaxAmount is the largest value total_amount NUMERIC(12,2) holds.
	MaxAmount       = 9_999_999_999.99
	AmountPrecision = 2

	maxWholeAmount = 9_999_999_999
)

// Money is a non-negative, finite amount with at most two decimal places.
type Money struct {
	amount float64
}

func NewMoney(amount float64) (Money, error) {
	switch {
	case math.IsNaN(amount) || math.IsInf(amount, 0):
		return Money{}, ErrNonFiniteAmount
	case amount < 0:
		return Money{}, ErrNegativeAmount
	case amount > MaxAmount:
		return Money{}, ErrAmountTooLarge
	case decimalPlaces(amount) > AmountPrecision:
		return Money{}, ErrAmountPrecision
	}
	return Money{amount: amount}, nil
}

// decimalPlaces counts fractional digits in the shortest representation that round-trips,
// which is what a JSON number like 0.004 decodes back to.
func decimalPlaces(f float64) int {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

func (m Money) Amount() float64 {
	return m.amount
}

func (m Money) Equal(other Money) bool {
	return m.amount == other.amount
}

type Metadata struct {
	Source    string
	IPAddress string
	UserAgent string
}

const DefaultSource = "website"

func (m Metadata) withDefaults() Metadata {
	if m.Source == "" {
		m.Source = DefaultSource
	}
	return m
}

type NotificationState struct {
	ConfirmationSent     bool
	TeamNotificationSent bool
	ReminderSent         bool
}

func (s NotificationState) Sent(kind NotificationKind) bool {
	switch kind {
	case NotificationConfirmation:
		return s.ConfirmationSent
	case NotificationTeamAlert:
		return s.TeamNotificationSent
	case NotificationReminder:
		return s.ReminderSent
	default:
		return false
	}
}

// Pending filters kinds down to those not yet delivered. Untracked kinds are always pending.
func (s NotificationState) Pending(kinds ...NotificationKind) []NotificationKind {
	out := make([]NotificationKind, 0, len(kinds))
	for _, k := range kinds {
		if !s.Sent(k) {
			out = append(out, k)
		}
	}
	return out
}
