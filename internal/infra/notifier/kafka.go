package notifier

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/infra/messaging"
	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// NotificationEvent is the wire format on the notifications topic.
type NotificationEvent struct {
	ID        string                     `json:"id"`
	Kind      booking.NotificationKind   `json:"kind"`
	Payload   shared.NotificationPayload `json:"payload"`
	CreatedAt time.Time                  `json:"createdAt"`
}

type Publisher interface {
	Publish(ctx context.Context, key string, payload any) error
}

// KafkaNotifier hands notifications to the mailer worker. A receipt means the event was
// accepted by the broker, not that mail went out.
type KafkaNotifier struct {
	publisher Publisher
}

func NewKafkaNotifier(publisher Publisher) *KafkaNotifier {
	return &KafkaNotifier{publisher: publisher}
}

func (n *KafkaNotifier) Send(ctx context.Context, kind booking.NotificationKind, payload shared.NotificationPayload) (shared.Receipt, error) {
	event := NotificationEvent{
		ID:        uuid.NewString(),
		Kind:      kind,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}
	if err := n.publisher.Publish(ctx, payload.Reference, event); err != nil {
		return shared.Receipt{}, err
	}
	return shared.Receipt{ID: event.ID}, nil
}

// EventHandler decodes events from the topic and passes them to a mail notifier.
// Malformed events are logged and acknowledged.
func EventHandler(mailer shared.Notifier) messaging.Handler {
	return func(ctx context.Context, msg kafka.Message) error {
		var event NotificationEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			slog.Error("discarding malformed notification event", "offset", msg.Offset, "error", err.Error())
			return nil
		}
		if !event.Kind.IsValid() {
			slog.Error("discarding notification event with unknown kind", "id", event.ID, "kind", string(event.Kind))
			return nil
		}

		receipt, err := mailer.Send(ctx, event.Kind, event.Payload)
		if err != nil {
			if errs.Is(err, ErrNotConfigured) || errs.Is(err, ErrNoRecipient) {
				slog.Warn("notification event not deliverable", "id", event.ID, "error", err.Error())
				return nil
			}
			return err
		}
		slog.Info("notification event delivered",
			"id", event.ID,
			"kind", event.Kind.String(),
			"reference", event.Payload.Reference,
			"receipt", receipt.ID)
		return nil
	}
}

var _ Publisher = (*messaging.Producer)(nil)
