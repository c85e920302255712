package notifier

import (
	"context"
	"log/slog"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// LogNotifier writes messages to the log instead of sending them. Used when no mail
// transport is configured.
type LogNotifier struct {
	teamEmail string
}

func NewLogNotifier(teamEmail string) *LogNotifier {
	return &LogNotifier{teamEmail: teamEmail}
}

func (n *LogNotifier) Send(_ context.Context, kind booking.NotificationKind, payload shared.NotificationPayload) (shared.Receipt, error) {
	msg, err := BuildMessage(kind, payload, n.teamEmail)
	if err != nil {
		return shared.Receipt{}, err
	}
	id := "log-" + uuid.NewString()
	slog.Info("[MOCK EMAIL]",
		"receipt", id,
		"kind", kind.String(),
		"to", msg.To,
		"subject", msg.Subject,
		"reference", payload.Reference)
	return shared.Receipt{ID: id}, nil
}
