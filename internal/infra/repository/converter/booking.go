package converter

import (
	"travel-booking/internal/domain/booking"
	"travel-booking/internal/infra/pgquery"
	"travel-booking/internal/pkg/pgconv"
	"travel-booking/internal/usecase/queries"
)

func BookingToInsertParams(b *booking.Booking) (pgquery.InsertBookingParams, error) {
	total, err := pgconv.NumericFromFloat64(b.TotalAmount().Amount())
	if err != nil {
		return pgquery.InsertBookingParams{}, err
	}
	meta := b.Metadata()
	return pgquery.InsertBookingParams{
		ID:              b.ID(),
		Reference:       b.Reference(),
		CustomerName:    b.Customer().Name(),
		CustomerEmail:   b.Customer().Email(),
		CustomerPhone:   b.Customer().Phone(),
		Destination:     b.Trip().Destination(),
		TravelDate:      pgconv.TimeToPgtype(b.Trip().TravelDate()),
		TravelerCount:   int32(b.Trip().TravelerCount()),
		TotalAmount:     total,
		SpecialRequests: pgconv.OptionalStringToPgtype(b.SpecialRequests()),
		BookingStatus:   b.BookingStatus().String(),
		PaymentStatus:   b.PaymentStatus().String(),
		Source:          meta.Source,
		IpAddress:       pgconv.OptionalStringToPgtype(meta.IPAddress),
		UserAgent:       pgconv.OptionalStringToPgtype(meta.UserAgent),
		CreatedAt:       pgconv.TimeToPgtype(b.CreatedAt()),
		UpdatedAt:       pgconv.TimeToPgtype(b.UpdatedAt()),
	}, nil
}

func BookingToUpdateStatusParams(b *booking.Booking) pgquery.UpdateBookingStatusParams {
	return pgquery.UpdateBookingStatusParams{
		ID:            b.ID(),
		BookingStatus: b.BookingStatus().String(),
		PaymentStatus: b.PaymentStatus().String(),
		TransactionID: pgconv.StringPtrToPgtype(b.TransactionID()),
		UpdatedAt:     pgconv.TimeToPgtype(b.UpdatedAt()),
	}
}

func BookingRowToView(row pgquery.Booking) (*queries.BookingView, error) {
	total, err := pgconv.Float64FromNumeric(row.TotalAmount)
	if err != nil {
		return nil, err
	}
	return &queries.BookingView{
		ID:                   row.ID,
		Reference:            row.Reference,
		CustomerName:         row.CustomerName,
		CustomerEmail:        row.CustomerEmail,
		CustomerPhone:        row.CustomerPhone,
		Destination:          row.Destination,
		TravelDate:           pgconv.TimeFromPgtype(row.TravelDate),
		TravelerCount:        int(row.TravelerCount),
		TotalAmount:          total,
		SpecialRequests:      pgconv.StringFromPgtype(row.SpecialRequests),
		BookingStatus:        row.BookingStatus,
		PaymentStatus:        row.PaymentStatus,
		ConfirmationSent:     row.ConfirmationSent,
		TeamNotificationSent: row.TeamNotificationSent,
		ReminderSent:         row.ReminderSent,
		Source:               row.Source,
		IPAddress:            pgconv.StringFromPgtype(row.IpAddress),
		UserAgent:            pgconv.StringFromPgtype(row.UserAgent),
		TransactionID:        pgconv.StringPtrFromPgtype(row.TransactionID),
		CreatedAt:            pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:            pgconv.TimeFromPgtype(row.UpdatedAt),
	}, nil
}

// BookingViewToDomain rehydrates an aggregate. Stored statuses are trusted: the table constrains them.
func BookingViewToDomain(v *queries.BookingView) *booking.Booking {
	return booking.ReconstructBooking(booking.ReconstructParams{
		ID:              v.ID,
		Reference:       v.Reference,
		CustomerName:    v.CustomerName,
		CustomerEmail:   v.CustomerEmail,
		CustomerPhone:   v.CustomerPhone,
		Destination:     v.Destination,
		TravelDate:      v.TravelDate,
		TravelerCount:   v.TravelerCount,
		TotalAmount:     v.TotalAmount,
		SpecialRequests: v.SpecialRequests,
		BookingStatus:   booking.BookingStatus(v.BookingStatus),
		PaymentStatus:   booking.PaymentStatus(v.PaymentStatus),
		Notifications: booking.NotificationState{
			ConfirmationSent:     v.ConfirmationSent,
			TeamNotificationSent: v.TeamNotificationSent,
			ReminderSent:         v.ReminderSent,
		},
		Metadata: booking.Metadata{
			Source:    v.Source,
			IPAddress: v.IPAddress,
			UserAgent: v.UserAgent,
		},
		TransactionID: v.TransactionID,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	})
}
