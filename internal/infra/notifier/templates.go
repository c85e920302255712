package notifier

import (
	"fmt"
	"html"
	"strings"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/usecase/shared"
)

var ErrNoRecipient = errs.New("no recipient for notification")

type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// BuildMessage renders a notification. Team alerts go to teamEmail, everything else to the customer.
func BuildMessage(kind booking.NotificationKind, p shared.NotificationPayload, teamEmail string) (Message, error) {
	date := p.TravelDate.Format("Monday, 2 January 2006")
	amount := formatAmount(p.TotalAmount)

	var m Message
	switch kind {
	case booking.NotificationConfirmation:
		m = Message{
			To:      p.CustomerEmail,
			Subject: fmt.Sprintf("Booking Confirmation - %s | WanderWise", p.Reference),
			Text: fmt.Sprintf(
				"Hi %s,\n\nThank you for booking %s with WanderWise.\n\n"+
					"Reference: %s\nTravel date: %s\nTravelers: %d\nTotal: %s\n\n"+
					"Complete your payment here: %s\n",
				p.CustomerName, p.Destination, p.Reference, date, p.TravelerCount, amount, p.PaymentURL),
		}
	case booking.NotificationTeamAlert:
		m = Message{
			To:      teamEmail,
			Subject: fmt.Sprintf("New Booking: %s - %s", p.Destination, p.Reference),
			Text: fmt.Sprintf(
				"New booking received.\n\nReference: %s\nCustomer: %s <%s>\nPhone: %s\n"+
					"Destination: %s\nTravel date: %s\nTravelers: %d\nTotal: %s\nSpecial requests: %s\n",
				p.Reference, p.CustomerName, p.CustomerEmail, p.CustomerPhone,
				p.Destination, date, p.TravelerCount, amount, orNone(p.SpecialRequests)),
		}
	case booking.NotificationCancellation:
		m = Message{
			To:      p.CustomerEmail,
			Subject: fmt.Sprintf("Booking Cancelled - %s | WanderWise", p.Reference),
			Text: fmt.Sprintf(
				"Hi %s,\n\nYour booking %s to %s on %s has been cancelled.\n"+
					"If you did not request this, please contact us.\n",
				p.CustomerName, p.Reference, p.Destination, date),
		}
	case booking.NotificationReminder:
		m = Message{
			To:      p.CustomerEmail,
			Subject: fmt.Sprintf("Your trip to %s is in %d days!", p.Destination, p.DaysUntilTravel),
			Text: fmt.Sprintf(
				"Hi %s,\n\nA reminder that your trip to %s departs on %s (%d days from now).\n"+
					"Reference: %s\nTravelers: %d\n",
				p.CustomerName, p.Destination, date, p.DaysUntilTravel, p.Reference, p.TravelerCount),
		}
	default:
		return Message{}, errs.Newf("unknown notification kind %q", kind)
	}

	if strings.TrimSpace(m.To) == "" {
		return Message{}, errs.Wrapf(ErrNoRecipient, "kind %s", kind)
	}
	m.HTML = textToHTML(m.Subject, m.Text)
	return m, nil
}

func textToHTML(title, text string) string {
	var sb strings.Builder
	sb.WriteString("<!doctype html><html><head><meta charset=\"utf-8\"><title>")
	sb.WriteString(html.EscapeString(title))
	sb.WriteString("</title></head><body style=\"font-family:Arial,Helvetica,sans-serif;color:#222\">")
	for _, para := range strings.Split(strings.TrimSpace(text), "\n\n") {
		sb.WriteString("<p>")
		sb.WriteString(strings.ReplaceAll(html.EscapeString(para), "\n", "<br>"))
		sb.WriteString("</p>")
	}
	sb.WriteString("</body></html>")
	return sb.String()
}

func formatAmount(v float64) string {
	return fmt.Sprintf("INR %.2f", v)
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "None"
	}
	return s
}
