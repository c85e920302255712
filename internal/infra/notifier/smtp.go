package notifier

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/pkg/config"
	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrNotConfigured = errs.New("smtp credentials are not configured")

const mimeBoundary = "----=_BOOKING_EMAIL_BOUNDARY"

type SMTPNotifier struct {
	cfg       config.SMTPConfig
	teamEmail string
	timeout   time.Duration
}

func NewSMTPNotifier(cfg config.Config) *SMTPNotifier {
	return &SMTPNotifier{
		cfg:       cfg.SMTP,
		teamEmail: cfg.TeamRecipient(),
		timeout:   cfg.Notifier.Timeout,
	}
}

func (n *SMTPNotifier) Send(ctx context.Context, kind booking.NotificationKind, payload shared.NotificationPayload) (shared.Receipt, error) {
	if !n.cfg.Configured() {
		return shared.Receipt{}, ErrNotConfigured
	}
	msg, err := BuildMessage(kind, payload, n.teamEmail)
	if err != nil {
		return shared.Receipt{}, err
	}

	id := uuid.NewString()
	body := n.compose(id, msg)
	if err := n.deliver(ctx, msg.To, body); err != nil {
		return shared.Receipt{}, errs.Wrapf(err, "failed to send %s email", kind)
	}
	return shared.Receipt{ID: id}, nil
}

func (n *SMTPNotifier) from() string {
	if n.cfg.From != "" {
		return n.cfg.From
	}
	return fmt.Sprintf("WanderWise <%s>", n.cfg.Username)
}

func (n *SMTPNotifier) compose(id string, msg Message) []byte {
	safe := func(s string) string {
		return strings.ReplaceAll(strings.ReplaceAll(strings.TrimSpace(s), "\r", ""), "\n", " ")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "From: %s\r\n", safe(n.from()))
	fmt.Fprintf(&sb, "To: %s\r\n", safe(msg.To))
	fmt.Fprintf(&sb, "Subject: %s\r\n", safe(msg.Subject))
	fmt.Fprintf(&sb, "Message-ID: <%s@%s>\r\n", id, n.cfg.Host)
	sb.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&sb, "Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", mimeBoundary)

	fmt.Fprintf(&sb, "--%s\r\n", mimeBoundary)
	sb.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	sb.WriteString(msg.Text)
	sb.WriteString("\r\n")

	fmt.Fprintf(&sb, "--%s\r\n", mimeBoundary)
	sb.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n\r\n")
	sb.WriteString(msg.HTML)
	sb.WriteString("\r\n")

	fmt.Fprintf(&sb, "--%s--\r\n", mimeBoundary)
	return []byte(sb.String())
}

// deliver is smtp.SendMail with a context-bound connection.
func (n *SMTPNotifier) deliver(ctx context.Context, to string, body []byte) error {
	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	addr := net.JoinHostPort(n.cfg.Host, n.cfg.Port)
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return errs.Wrap(err, "dial smtp")
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, n.cfg.Host)
	if err != nil {
		conn.Close()
		return errs.Wrap(err, "smtp handshake")
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: n.cfg.Host, MinVersion: tls.VersionTLS12}); err != nil {
			return errs.Wrap(err, "smtp starttls")
		}
	}
	if ok, _ := c.Extension("AUTH"); ok {
		if err := c.Auth(smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)); err != nil {
			return errs.Wrap(err, "smtp auth")
		}
	}
	if err := c.Mail(n.cfg.Username); err != nil {
		return errs.Wrap(err, "smtp mail from")
	}
	if err := c.Rcpt(to); err != nil {
		return errs.Wrap(err, "smtp rcpt")
	}
	w, err := c.Data()
	if err != nil {
		return errs.Wrap(err, "smtp data")
	}
	if _, err := w.Write(body); err != nil {
		return errs.Wrap(err, "smtp write")
	}
	if err := w.Close(); err != nil {
		return errs.Wrap(err, "smtp close data")
	}
	return c.Quit()
}
