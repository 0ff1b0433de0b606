// Package notify composes storefront form notifications and delivers them over SMTP.
package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kamaltrader/luxecraft/internal/settings"
	log "github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"
)

// Delivery errors.
var (
	// ErrNotConfigured means no SMTP host or recipient is known.
	ErrNotConfigured = errors.New("notify: smtp not configured")
	// ErrDelivery wraps any composition or relay failure.
	ErrDelivery = errors.New("notify: delivery failed")
)

// Sender delivers a composed message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Notifier turns form submissions into delivered emails.
type Notifier struct {
	sender Sender
}

// NewNotifier constructs a Notifier.
func NewNotifier(sender Sender) *Notifier {
	return &Notifier{sender: sender}
}

// SendContact delivers a contact form submission.
func (n *Notifier) SendContact(ctx context.Context, req ContactRequest) error {
	msg, err := ComposeContact(req)
	if err != nil {
		return fmt.Errorf("%w: compose contact: %v", ErrDelivery, err)
	}
	return n.deliver(ctx, msg)
}

// SendBulkOrder delivers a bulk order form submission.
func (n *Notifier) SendBulkOrder(ctx context.Context, req BulkOrderRequest) error {
	msg, err := ComposeBulkOrder(req)
	if err != nil {
		return fmt.Errorf("%w: compose bulk order: %v", ErrDelivery, err)
	}
	return n.deliver(ctx, msg)
}

func (n *Notifier) deliver(ctx context.Context, msg Message) error {
	if n == nil || n.sender == nil {
		return ErrNotConfigured
	}
	if err := n.sender.Send(ctx, msg); err != nil {
		if errors.Is(err, ErrNotConfigured) || errors.Is(err, ErrDelivery) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	return nil
}

// SMTPSender sends through the relay described by the current settings snapshot.
type SMTPSender struct {
	settings func() settings.SMTPSettings
	timeout  time.Duration
}

// NewSMTPSender returns a sender reading the global SMTP snapshot on every send.
func NewSMTPSender() *SMTPSender {
	return &SMTPSender{settings: settings.SMTP, timeout: 30 * time.Second}
}

// Send implements Sender.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	cfg := s.settings()
	if !cfg.Configured() {
		return ErrNotConfigured
	}

	m := mail.NewMsg()
	from := cfg.User
	if from == "" {
		from = cfg.Recipient
	}
	if err := m.From(from); err != nil {
		return fmt.Errorf("%w: from address: %v", ErrDelivery, err)
	}
	if err := m.To(cfg.Recipient); err != nil {
		return fmt.Errorf("%w: recipient address: %v", ErrDelivery, err)
	}
	if msg.ReplyTo != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return fmt.Errorf("%w: reply-to address: %v", ErrDelivery, err)
		}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)

	client, err := mail.NewClient(cfg.Host, clientOptions(cfg, s.timeout)...)
	if err != nil {
		return fmt.Errorf("%w: client: %v", ErrDelivery, err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		log.WithError(err).WithField("host", cfg.Host).Warn("notify: smtp delivery failed")
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	return nil
}

func clientOptions(cfg settings.SMTPSettings, timeout time.Duration) []mail.Option {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(timeout),
	}
	if cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPortPolicy(mail.TLSOpportunistic))
	}
	if cfg.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.User),
			mail.WithPassword(cfg.Password),
		)
	}
	return opts
}
