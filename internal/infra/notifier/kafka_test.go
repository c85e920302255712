//go:build unit

package notifier_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/infra/notifier"
	"travel-booking/internal/pkg/config"
	"travel-booking/internal/usecase/shared"
	sharedmock "travel-booking/tests/mock/shared"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func configWithoutCredentials() config.Config {
	cfg := config.NewTestConfig()
	cfg.SMTP = config.SMTPConfig{Host: "smtp.example.com", Port: "587"}
	return cfg
}

type recordingPublisher struct {
	key     string
	payload any
	err     error
}

func (p *recordingPublisher) Publish(_ context.Context, key string, payload any) error {
	p.key = key
	p.payload = payload
	return p.err
}

func TestKafkaNotifier_Send(t *testing.T) {
	t.Run("publishes keyed by reference", func(t *testing.T) {
		pub := &recordingPublisher{}
		n := notifier.NewKafkaNotifier(pub)

		receipt, err := n.Send(t.Context(), booking.NotificationTeamAlert, samplePayload())
		require.NoError(t, err)

		assert.Equal(t, "WW-20261015-4821", pub.key)
		event, ok := pub.payload.(notifier.NotificationEvent)
		require.True(t, ok)
		assert.Equal(t, receipt.ID, event.ID)
		assert.Equal(t, booking.NotificationTeamAlert, event.Kind)
		assert.Equal(t, samplePayload().Reference, event.Payload.Reference)
	})

	t.Run("publish failure", func(t *testing.T) {
		n := notifier.NewKafkaNotifier(&recordingPublisher{err: errors.New("broker down")})
		_, err := n.Send(t.Context(), booking.NotificationConfirmation, samplePayload())
		assert.Error(t, err)
	})
}

func TestEventHandler(t *testing.T) {
	encode := func(t *testing.T, e notifier.NotificationEvent) kafka.Message {
		t.Helper()
		b, err := json.Marshal(e)
		require.NoError(t, err)
		return kafka.Message{Value: b}
	}
	event := notifier.NotificationEvent{ID: "evt-1", Kind: booking.NotificationConfirmation, Payload: samplePayload()}

	t.Run("delivers a valid event", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mailer := sharedmock.NewMockNotifier(ctrl)
		mailer.EXPECT().
			Send(gomock.Any(), booking.NotificationConfirmation, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ booking.NotificationKind, p shared.NotificationPayload) (shared.Receipt, error) {
				assert.Equal(t, "asha@example.com", p.CustomerEmail)
				return shared.Receipt{ID: "smtp-1"}, nil
			})

		assert.NoError(t, notifier.EventHandler(mailer)(t.Context(), encode(t, event)))
	})

	t.Run("acknowledges malformed events", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mailer := sharedmock.NewMockNotifier(ctrl)

		assert.NoError(t, notifier.EventHandler(mailer)(t.Context(), kafka.Message{Value: []byte("{not json")}))
	})

	t.Run("acknowledges unknown kinds", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mailer := sharedmock.NewMockNotifier(ctrl)
		bad := event
		bad.Kind = "fax"

		assert.NoError(t, notifier.EventHandler(mailer)(t.Context(), encode(t, bad)))
	})

	t.Run("acknowledges undeliverable events", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mailer := sharedmock.NewMockNotifier(ctrl)
		mailer.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(shared.Receipt{}, notifier.ErrNotConfigured)

		assert.NoError(t, notifier.EventHandler(mailer)(t.Context(), encode(t, event)))
	})

	t.Run("returns transport errors for retry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mailer := sharedmock.NewMockNotifier(ctrl)
		mailer.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(shared.Receipt{}, errors.New("connection reset"))

		assert.Error(t, notifier.EventHandler(mailer)(t.Context(), encode(t, event)))
	})
}
