package booking

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"travel-booking/internal/pkg/clock"
	"travel-booking/internal/pkg/patch"
)

const (
	MinNameLength            = 2
	MaxNameLength            = 50
	MinDestinationLength     = 2
	MaxDestinationLength     = 100
	MaxEmailLength           = 254
	MaxSourceLength          = 32
	MinPhoneDigits           = 10
	MaxPhoneDigits           = 16
	MinTravelers             = 1
	MaxTravelers             = 20
	MaxSpecialRequestsLength = 500

	dateLayout = "2006-01-02"
)

const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPhone           = "phone"
	FieldDestination     = "destination"
	FieldTravelDate      = "travelDate"
	FieldTravelerCount   = "travelerCount"
	FieldTotalAmount     = "totalAmount"
	FieldSpecialRequests = "specialRequests"
	FieldSource          = "source"
	FieldBookingStatus   = "bookingStatus"
	FieldPaymentStatus   = "paymentStatus"
)

var (
	emailRegex      = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneSeparators = regexp.MustCompile(`[\s\-()]`)
	phoneDigits     = regexp.MustCompile(`^\d+$`)
)

// Submission is the raw, untrusted booking request. Numeric fields are pointers so that
// absence can be told apart from zero.
type Submission struct {
	Name            string
	Email           string
	Phone           string
	Destination     string
	TravelDate      string
	TravelerCount   *float64
	TotalAmount     *float64
	SpecialRequests *string
	Source          *string
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violation found in a submission, in field order.
type ValidationError struct {
	Violations []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Field + ": " + v.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, msg string) {
	e.Violations = append(e.Violations, FieldError{Field: field, Message: msg})
}

func (e *ValidationError) has(field string) bool {
	for _, v := range e.Violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

func (e *ValidationError) orNil() error {
	if len(e.Violations) == 0 {
		return nil
	}
	return e
}

func NewValidationError(violations ...FieldError) *ValidationError {
	return &ValidationError{Violations: violations}
}

// ValidatedSubmission holds normalized values. TotalAmount is nil when the client omitted it,
// which only passes validation for catalog destinations.
type ValidatedSubmission struct {
	Customer        Customer
	Trip            Trip
	TotalAmount     *Money
	SpecialRequests string
	Source          string
}

type Validator struct {
	clock   clock.Clock
	pricing PriceCalculator
}

func NewValidator(clk clock.Clock, pricing PriceCalculator) *Validator {
	return &Validator{clock: clk, pricing: pricing}
}

func (v *Validator) Validate(s Submission) (*ValidatedSubmission, error) {
	verr := &ValidationError{}
	out := &ValidatedSubmission{}

	name := strings.TrimSpace(s.Name)
	switch n := utf8.RuneCountInString(name); {
	case n == 0:
		verr.add(FieldName, "Customer name is required")
	case n < MinNameLength || n > MaxNameLength:
		verr.add(FieldName, fmt.Sprintf("Customer name must be between %d and %d characters", MinNameLength, MaxNameLength))
	}

	email := strings.ToLower(strings.TrimSpace(s.Email))
	switch {
	case email == "":
		verr.add(FieldEmail, "Customer email is required")
	case len(email) > MaxEmailLength:
		verr.add(FieldEmail, fmt.Sprintf("Customer email cannot exceed %d characters", MaxEmailLength))
	case !emailRegex.MatchString(email):
		verr.add(FieldEmail, "Please provide a valid email address")
	}

	phone := strings.TrimSpace(s.Phone)
	cleaned := phoneSeparators.ReplaceAllString(phone, "")
	switch {
	case phone == "":
		verr.add(FieldPhone, "Contact number is required")
	case !phoneDigits.MatchString(cleaned) || len(cleaned) < MinPhoneDigits || len(cleaned) > MaxPhoneDigits:
		verr.add(FieldPhone, fmt.Sprintf("Contact number must be %d-%d digits", MinPhoneDigits, MaxPhoneDigits))
	}

	destination := strings.TrimSpace(s.Destination)
	switch n := utf8.RuneCountInString(destination); {
	case n == 0:
		verr.add(FieldDestination, "Destination is required")
	case n < MinDestinationLength || n > MaxDestinationLength:
		verr.add(FieldDestination, fmt.Sprintf("Destination must be between %d and %d characters", MinDestinationLength, MaxDestinationLength))
	}

	travelDate, dateMsg := v.parseTravelDate(s.TravelDate)
	if dateMsg != "" {
		verr.add(FieldTravelDate, dateMsg)
	}

	var travelers int
	switch {
	case s.TravelerCount == nil:
		verr.add(FieldTravelerCount, "Number of travelers is required")
	case !isWhole(*s.TravelerCount) || *s.TravelerCount < MinTravelers || *s.TravelerCount > MaxTravelers:
		verr.add(FieldTravelerCount, fmt.Sprintf("Number of travelers must be a whole number between %d and %d", MinTravelers, MaxTravelers))
	default:
		travelers = int(*s.TravelerCount)
	}

	if s.TotalAmount != nil {
		m, err := NewMoney(*s.TotalAmount)
		switch {
		case errors.Is(err, ErrAmountTooLarge):
			verr.add(FieldTotalAmount, fmt.Sprintf("Total amount cannot exceed %.2f", MaxAmount))
		case errors.Is(err, ErrAmountPrecision):
			verr.add(FieldTotalAmount, fmt.Sprintf("Total amount cannot have more than %d decimal places", AmountPrecision))
		case err != nil:
			verr.add(FieldTotalAmount, "Total amount must be a non-negative number")
		default:
			out.TotalAmount = &m
		}
	} else if v.pricing != nil && !verr.has(FieldDestination) {
		if _, ok := v.pricing.Price(destination, max(travelers, MinTravelers)); !ok {
			verr.add(FieldTotalAmount, msgTotalAmountRequired)
		}
	}

	if s.SpecialRequests != nil {
		sr := strings.TrimSpace(*s.SpecialRequests)
		if utf8.RuneCountInString(sr) > MaxSpecialRequestsLength {
			verr.add(FieldSpecialRequests, fmt.Sprintf("Special requests cannot exceed %d characters", MaxSpecialRequestsLength))
		}
		out.SpecialRequests = sr
	}

	source := patch.NonBlank(s.Source, DefaultSource)
	if utf8.RuneCountInString(source) > MaxSourceLength {
		verr.add(FieldSource, fmt.Sprintf("Source cannot exceed %d characters", MaxSourceLength))
	}
	out.Source = source

	if err := verr.orNil(); err != nil {
		return nil, err
	}

	out.Customer = Customer{name: name, email: email, phone: cleaned}
	out.Trip = Trip{destination: destination, travelDate: travelDate, travelerCount: travelers}
	return out, nil
}

// parseTravelDate accepts a calendar date (server location) or an RFC 3339 timestamp and
// rejects anything before the start of the current day.
func (v *Validator) parseTravelDate(raw string) (time.Time, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, "Travel date is required"
	}

	now := v.clock.Now()
	t, err := time.ParseInLocation(dateLayout, raw, now.Location())
	if err != nil {
		t, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, "Invalid date format"
		}
	}

	if t.Before(clock.StartOfDay(now)) {
		return time.Time{}, "Travel date cannot be in the past"
	}
	return t, ""
}

func isWhole(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f == math.Trunc(f)
}
