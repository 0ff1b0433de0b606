package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kamaltrader/luxecraft/internal/settings"
)

type recordingSender struct {
	sent []Message
	err  error
}

func (r *recordingSender) Send(_ context.Context, msg Message) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func TestSendContactEscapesMarkup(t *testing.T) {
	rec := &recordingSender{}
	n := NewNotifier(rec)

	err := n.SendContact(context.Background(), ContactRequest{
		Name:    "Asha <b>",
		Email:   "asha@example.com",
		Message: "Hi <script>alert('x')</script>\nSecond & \"last\" line",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(rec.sent) != 1 {
		t.Fatalf("expected one message, got %d", len(rec.sent))
	}
	msg := rec.sent[0]
	if msg.Subject != "New Contact Request from Asha <b>" {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
	if msg.ReplyTo != "asha@example.com" {
		t.Fatalf("unexpected reply-to %q", msg.ReplyTo)
	}
	if strings.Contains(msg.HTML, "<script>") || strings.Contains(msg.HTML, "<b>") {
		t.Fatalf("markup leaked into body: %s", msg.HTML)
	}
	for _, want := range []string{
		"&lt;script&gt;alert(&#39;x&#39;)&lt;/script&gt;<br>Second &amp; &#34;last&#34; line",
		"<p><strong>Name:</strong> Asha &lt;b&gt;</p>",
	} {
		if !strings.Contains(msg.HTML, want) {
			t.Fatalf("expected body to contain %q, got %s", want, msg.HTML)
		}
	}
}

func TestSendBulkOrderComposesAllFields(t *testing.T) {
	rec := &recordingSender{}
	n := NewNotifier(rec)

	err := n.SendBulkOrder(context.Background(), BulkOrderRequest{
		CompanyName:     "Acme\r\nBcc: victim@example.com",
		ContactName:     "Ravi",
		Email:           "ravi@acme.test",
		Phone:           "+91 98",
		ProductCategory: "Wallets & Cardholders",
		Quantity:        "500",
		Specifications:  "Embossed\r\nBrown",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	msg := rec.sent[0]
	if msg.Subject != "New Bulk Order Request from Acme Bcc: victim@example.com" {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
	for _, want := range []string{
		"<p><strong>Contact Name:</strong> Ravi</p>",
		"<p><strong>Product Category:</strong> Wallets &amp; Cardholders</p>",
		"<p><strong>Quantity:</strong> 500</p>",
		"<p>Embossed<br>Brown</p>",
	} {
		if !strings.Contains(msg.HTML, want) {
			t.Fatalf("expected body to contain %q, got %s", want, msg.HTML)
		}
	}
}

func TestDeliveryFailuresAreWrapped(t *testing.T) {
	n := NewNotifier(&recordingSender{err: errors.New("connection refused")})
	err := n.SendContact(context.Background(), ContactRequest{Name: "a", Email: "a@example.com", Message: "m"})
	if !errors.Is(err, ErrDelivery) {
		t.Fatalf("expected ErrDelivery, got %v", err)
	}

	var nilNotifier *Notifier
	if err := nilNotifier.SendContact(context.Background(), ContactRequest{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestSMTPSenderRequiresConfiguration(t *testing.T) {
	sender := &SMTPSender{settings: func() settings.SMTPSettings {
		return settings.SMTPSettings{Host: "smtp.example.com", Port: 587}
	}}
	err := sender.Send(context.Background(), Message{Subject: "s", HTML: "<p>x</p>"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestClientOptionsByPort(t *testing.T) {
	implicit := clientOptions(settings.SMTPSettings{Host: "h", Port: 465, User: "u", Password: "p", Recipient: "r"}, 0)
	starttls := clientOptions(settings.SMTPSettings{Host: "h", Port: 587, Recipient: "r"}, 0)
	if len(implicit) != 6 {
		t.Fatalf("expected port, timeout, ssl and three auth options, got %d", len(implicit))
	}
	if len(starttls) != 3 {
		t.Fatalf("expected port, timeout and tls policy options, got %d", len(starttls))
	}
}
