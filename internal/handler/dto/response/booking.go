package response

import (
	"time"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/usecase/commands"
	"travel-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID                   uuid.UUID `json:"id"`
	Reference            string    `json:"reference"`
	CustomerName         string    `json:"name"`
	CustomerEmail        string    `json:"email"`
	CustomerPhone        string    `json:"phone"`
	Destination          string    `json:"destination"`
	TravelDate           time.Time `json:"travelDate"`
	TravelerCount        int       `json:"travelerCount"`
	TotalAmount          float64   `json:"totalAmount"`
	SpecialRequests      string    `json:"specialRequests,omitempty"`
	BookingStatus        string    `json:"bookingStatus"`
	PaymentStatus        string    `json:"paymentStatus"`
	ConfirmationSent     bool      `json:"confirmationSent"`
	TeamNotificationSent bool      `json:"teamNotificationSent"`
	ReminderSent         bool      `json:"reminderSent"`
	Source               string    `json:"source"`
	TransactionID        *string   `json:"transactionId,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// FromBookingView drops request metadata (ip, user agent); it is kept for audit only.
func FromBookingView(v *queries.BookingView) *BookingResponse {
	var res BookingResponse
	_ = copier.Copy(&res, v)
	return &res
}

func FromBookingViews(items []*queries.BookingView) []*BookingResponse {
	res := make([]*BookingResponse, len(items))
	for i, v := range items {
		res[i] = FromBookingView(v)
	}
	return res
}

type CreateBookingResponse struct {
	Booking    *BookingResponse `json:"booking"`
	Reference  string           `json:"reference"`
	PaymentURL string           `json:"paymentUrl"`
}

func FromCreateBookingResult(r *commands.CreateBookingResult) *CreateBookingResponse {
	return &CreateBookingResponse{
		Booking:    FromBookingView(r.Booking),
		Reference:  r.Reference,
		PaymentURL: r.PaymentURL,
	}
}

type PaymentResponse struct {
	Booking       *BookingResponse `json:"booking"`
	TransactionID string           `json:"transactionId"`
}

func FromPaymentResult(r *commands.PaymentResult) *PaymentResponse {
	return &PaymentResponse{
		Booking:       FromBookingView(r.Booking),
		TransactionID: r.TransactionID,
	}
}

type PaginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type BookingListResponse struct {
	Items      []*BookingResponse `json:"items"`
	Pagination PaginationResponse `json:"pagination"`
}

func FromBookingPage(p *queries.BookingPage) *BookingListResponse {
	var pg PaginationResponse
	_ = copier.Copy(&pg, &p.Pagination)
	return &BookingListResponse{
		Items:      FromBookingViews(p.Items),
		Pagination: pg,
	}
}

type StatsResponse struct {
	TotalBookings   int64            `json:"totalBookings"`
	TotalRevenue    float64          `json:"totalRevenue"`
	AvgBookingValue float64          `json:"avgBookingValue"`
	TotalTravelers  int64            `json:"totalTravelers"`
	ByBookingStatus map[string]int64 `json:"byBookingStatus"`
	ByPaymentStatus map[string]int64 `json:"byPaymentStatus"`
}

func FromBookingStats(s *queries.BookingStats) *StatsResponse {
	var res StatsResponse
	_ = copier.CopyWithOption(&res, s, copier.Option{DeepCopy: true})
	if res.ByBookingStatus == nil {
		res.ByBookingStatus = map[string]int64{}
	}
	if res.ByPaymentStatus == nil {
		res.ByPaymentStatus = map[string]int64{}
	}
	return &res
}

type DestinationResponse struct {
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
}

func FromDestinations(ds []booking.Destination) []DestinationResponse {
	res := make([]DestinationResponse, len(ds))
	for i, d := range ds {
		res[i] = DestinationResponse{Name: d.Name, UnitPrice: d.UnitPrice}
	}
	return res
}

type ValidationResponse struct {
	Valid           bool    `json:"valid"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	Destination     string  `json:"destination"`
	TravelDate      string  `json:"travelDate"`
	TravelerCount   int     `json:"travelerCount"`
	TotalAmount     float64 `json:"totalAmount"`
	CatalogPriced   bool    `json:"catalogPriced"`
	SpecialRequests string  `json:"specialRequests,omitempty"`
}

func FromValidationResult(r *commands.ValidationResult) *ValidationResponse {
	res := ValidationResponse{Valid: true}
	_ = copier.Copy(&res, r)
	return &res
}
