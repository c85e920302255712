package booking

type TransitionPolicy interface {
	CanChangeBookingStatus(from, to BookingStatus) bool
	CanChangePaymentStatus(from, to PaymentStatus) bool
}

func NewTransitionPolicy(strict bool) TransitionPolicy {
	if strict {
		return StrictPolicy{}
	}
	return PermissivePolicy{}
}

// PermissivePolicy accepts any enum value, except that a cancelled booking stays cancelled.
type PermissivePolicy struct{}

func (PermissivePolicy) CanChangeBookingStatus(from, to BookingStatus) bool {
	if from == StatusCancelled {
		return to == StatusCancelled
	}
	return true
}

func (PermissivePolicy) CanChangePaymentStatus(_, _ PaymentStatus) bool {
	return true
}

var bookingTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:   {PaymentPaid, PaymentFailed, PaymentCancelled},
	PaymentFailed:    {PaymentPending, PaymentPaid, PaymentCancelled},
	PaymentPaid:      {PaymentRefunded},
	PaymentRefunded:  {},
	PaymentCancelled: {},
}

type StrictPolicy struct{}

func (StrictPolicy) CanChangeBookingStatus(from, to BookingStatus) bool {
	return from == to || contains(bookingTransitions[from], to)
}

func (StrictPolicy) CanChangePaymentStatus(from, to PaymentStatus) bool {
	return from == to || contains(paymentTransitions[from], to)
}

func contains[T comparable](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
