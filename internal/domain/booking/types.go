package booking

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

func (s BookingStatus) String() string {
	return string(s)
}

func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidBookingStatus
	}
	return status, nil
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
	PaymentCancelled PaymentStatus = "cancelled"
)

func (s PaymentStatus) String() string {
	return string(s)
}

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded, PaymentCancelled:
		return true
	default:
		return false
	}
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	status := PaymentStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidPaymentStatus
	}
	return status, nil
}

type NotificationKind string

const (
	NotificationConfirmation NotificationKind = "confirmation"
	NotificationTeamAlert    NotificationKind = "teamAlert"
	NotificationCancellation NotificationKind = "cancellation"
	NotificationReminder     NotificationKind = "reminder"
)

func (k NotificationKind) String() string {
	return string(k)
}

func (k NotificationKind) IsValid() bool {
	switch k {
	case NotificationConfirmation, NotificationTeamAlert, NotificationCancellation, NotificationReminder:
		return true
	default:
		return false
	}
}

// Tracked reports whether delivery of this kind is recorded on the booking.
func (k NotificationKind) Tracked() bool {
	switch k {
	case NotificationConfirmation, NotificationTeamAlert, NotificationReminder:
		return true
	default:
		return false
	}
}
