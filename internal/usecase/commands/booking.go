package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/infra"
	"travel-booking/internal/pkg/clock"
	"travel-booking/internal/pkg/config"
	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/usecase/queries"
	"travel-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/commands/booking.go -package=commandsmock

var (
	ErrBookingNotFound             = queries.ErrBookingNotFound
	ErrReferenceCollisionExhausted = errs.New("could not allocate a unique booking reference")
	ErrCancellationNotAllowed      = booking.ErrCancellationNotAllowed
	ErrStatusTransitionNotAllowed  = booking.ErrStatusTransitionNotAllowed
	ErrPaymentNotAllowed           = booking.ErrPaymentNotAllowed
)

const FieldStatus = "status"

type StatusUpdate struct {
	PaymentStatus *string
	BookingStatus *string
}

type CreateBookingResult struct {
	Booking    *queries.BookingView
	Reference  string
	PaymentURL string
}

type PaymentResult struct {
	Booking       *queries.BookingView
	TransactionID string
}

// ValidationResult is the normalized submission plus the price the booking would be created with.
type ValidationResult struct {
	Name            string
	Email           string
	Phone           string
	Destination     string
	TravelDate      string
	TravelerCount   int
	TotalAmount     float64
	CatalogPriced   bool
	SpecialRequests string
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, sub booking.Submission, meta booking.Metadata) (*CreateBookingResult, error)
	ValidateSubmission(ctx context.Context, sub booking.Submission) (*ValidationResult, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, upd StatusUpdate) (*queries.BookingView, error)
	CancelBooking(ctx context.Context, id uuid.UUID) (*queries.BookingView, error)
	PayBooking(ctx context.Context, id uuid.UUID) (*PaymentResult, error)
}

type NotificationDispatcher interface {
	// Dispatch returns immediately; delivery happens in the background.
	Dispatch(ctx context.Context, bookingID uuid.UUID, kinds ...booking.NotificationKind)
}

type bookingUseCaseImpl struct {
	uow              shared.UnitOfWork
	clock            clock.Clock
	services         *booking.Services
	validator        *booking.Validator
	references       booking.ReferenceGenerator
	dispatcher       NotificationDispatcher
	cfg              config.BookingConfig
	clientURL        string
	newTransactionID func() string
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	clk clock.Clock,
	pricing booking.PriceCalculator,
	references booking.ReferenceGenerator,
	dispatcher NotificationDispatcher,
	cfg config.Config,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:   uow,
		clock: clk,
		services: &booking.Services{
			Clock:           clk,
			PriceCalculator: pricing,
			Policy:          booking.NewTransitionPolicy(cfg.Booking.StrictTransitions),
		},
		validator:        booking.NewValidator(clk, pricing),
		references:       references,
		dispatcher:       dispatcher,
		cfg:              cfg.Booking,
		clientURL:        cfg.App.ClientURL,
		newTransactionID: newTransactionID,
	}
}

func (uc *bookingUseCaseImpl) CreateBooking(ctx context.Context, sub booking.Submission, meta booking.Metadata) (*CreateBookingResult, error) {
	v, err := uc.validator.Validate(sub)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= uc.cfg.ReferenceMaxAttempts; attempt++ {
		reference := uc.references.Generate(uc.clock.Now())
		b, derr := booking.NewBooking(uc.services, v, reference, meta)
		if derr != nil {
			return nil, derr
		}

		err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			_, cerr := tx.Bookings().Create(ctx, tx.DB(), b)
			return cerr
		})
		if err == nil {
			slog.Info("booking created",
				"booking_id", b.ID().String(),
				"reference", b.Reference(),
				"destination", b.Trip().Destination())
			uc.dispatcher.Dispatch(ctx, b.ID(), booking.NotificationConfirmation, booking.NotificationTeamAlert)
			return &CreateBookingResult{
				Booking:    queries.NewBookingView(b),
				Reference:  b.Reference(),
				PaymentURL: b.PaymentURL(uc.clientURL),
			}, nil
		}
		if !infra.IsDuplicateOn(err, infra.ConstraintBookingReference) {
			return nil, err
		}
		slog.Warn("booking reference collision, regenerating",
			"reference", reference,
			"attempt", attempt)
	}

	return nil, errs.Wrapf(ErrReferenceCollisionExhausted, "after %d attempts", uc.cfg.ReferenceMaxAttempts)
}

func (uc *bookingUseCaseImpl) ValidateSubmission(_ context.Context, sub booking.Submission) (*ValidationResult, error) {
	v, err := uc.validator.Validate(sub)
	if err != nil {
		return nil, err
	}
	total, err := booking.ResolveTotal(uc.services.PriceCalculator, v)
	if err != nil {
		return nil, err
	}
	_, priced := uc.services.PriceCalculator.Price(v.Trip.Destination(), v.Trip.TravelerCount())

	return &ValidationResult{
		Name:            v.Customer.Name(),
		Email:           v.Customer.Email(),
		Phone:           v.Customer.Phone(),
		Destination:     v.Trip.Destination(),
		TravelDate:      v.Trip.TravelDate().Format("2006-01-02"),
		TravelerCount:   v.Trip.TravelerCount(),
		TotalAmount:     total.Amount(),
		CatalogPriced:   priced,
		SpecialRequests: v.SpecialRequests,
	}, nil
}

func (uc *bookingUseCaseImpl) UpdateStatus(ctx context.Context, id uuid.UUID, upd StatusUpdate) (*queries.BookingView, error) {
	payment, status, err := parseStatusUpdate(upd)
	if err != nil {
		return nil, err
	}

	var updated *booking.Booking
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, derr := tx.Reads().BookingByIDForUpdate(ctx, id)
		if derr != nil {
			return notFoundOr(derr)
		}
		if derr = b.ChangeStatus(uc.services.Policy, payment, status, uc.clock.Now()); derr != nil {
			return derr
		}
		if derr = tx.Bookings().UpdateStatus(ctx, tx.DB(), b); derr != nil {
			return notFoundOr(derr)
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("booking status updated",
		"booking_id", id.String(),
		"booking_status", updated.BookingStatus().String(),
		"payment_status", updated.PaymentStatus().String())
	return queries.NewBookingView(updated), nil
}

func (uc *bookingUseCaseImpl) CancelBooking(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var cancelled *booking.Booking
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, derr := tx.Reads().BookingByIDForUpdate(ctx, id)
		if derr != nil {
			return notFoundOr(derr)
		}
		if derr = b.Cancel(uc.clock.Now(), uc.cancellationWindow()); derr != nil {
			return derr
		}
		if derr = tx.Bookings().UpdateStatus(ctx, tx.DB(), b); derr != nil {
			return notFoundOr(derr)
		}
		cancelled = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("booking cancelled", "booking_id", id.String(), "reference", cancelled.Reference())
	uc.dispatcher.Dispatch(ctx, id, booking.NotificationCancellation)
	return queries.NewBookingView(cancelled), nil
}

func (uc *bookingUseCaseImpl) PayBooking(ctx context.Context, id uuid.UUID) (*PaymentResult, error) {
	var paid *booking.Booking
	txID := uc.newTransactionID()
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, derr := tx.Reads().BookingByIDForUpdate(ctx, id)
		if derr != nil {
			return notFoundOr(derr)
		}
		if derr = b.MarkPaid(txID, uc.clock.Now()); derr != nil {
			return derr
		}
		if derr = tx.Bookings().UpdateStatus(ctx, tx.DB(), b); derr != nil {
			return notFoundOr(derr)
		}
		paid = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("booking paid", "booking_id", id.String(), "transaction_id", txID)
	return &PaymentResult{Booking: queries.NewBookingView(paid), TransactionID: txID}, nil
}

func (uc *bookingUseCaseImpl) cancellationWindow() time.Duration {
	if uc.cfg.CancellationWindow <= 0 {
		return booking.DefaultCancellationWindow
	}
	return uc.cfg.CancellationWindow
}

// parseStatusUpdate rejects unknown enum values before anything is loaded.
func parseStatusUpdate(upd StatusUpdate) (*booking.PaymentStatus, *booking.BookingStatus, error) {
	verr := booking.NewValidationError()
	if upd.PaymentStatus == nil && upd.BookingStatus == nil {
		verr.Violations = append(verr.Violations, booking.FieldError{
			Field:   FieldStatus,
			Message: "Provide paymentStatus and/or bookingStatus",
		})
		return nil, nil, verr
	}

	var (
		payment *booking.PaymentStatus
		status  *booking.BookingStatus
	)
	if upd.PaymentStatus != nil {
		ps, err := booking.ParsePaymentStatus(*upd.PaymentStatus)
		if err != nil {
			verr.Violations = append(verr.Violations, booking.FieldError{
				Field:   booking.FieldPaymentStatus,
				Message: "Invalid payment status",
			})
		} else {
			payment = &ps
		}
	}
	if upd.BookingStatus != nil {
		bs, err := booking.ParseBookingStatus(*upd.BookingStatus)
		if err != nil {
			verr.Violations = append(verr.Violations, booking.FieldError{
				Field:   booking.FieldBookingStatus,
				Message: "Invalid booking status",
			})
		} else {
			status = &bs
		}
	}
	if len(verr.Violations) > 0 {
		return nil, nil, verr
	}
	return payment, status, nil
}

func notFoundOr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return ErrBookingNotFound
	}
	return err
}

func newTransactionID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TXN-" + strings.ToUpper(raw[:16])
}
