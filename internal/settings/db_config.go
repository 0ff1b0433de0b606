package settings

import (
	"sync/atomic"
	"time"
)

// SMTPSettings is the in-memory view of the email_config row used by the mailer.
type SMTPSettings struct {
	User      string
	Password  string
	Host      string
	Port      int
	Recipient string
	UpdatedAt time.Time
}

// Configured reports whether enough fields are present to attempt delivery.
func (s SMTPSettings) Configured() bool {
	return s.Host != "" && s.Port > 0 && s.Recipient != ""
}

// globalSMTP stores the latest SMTPSettings atomically.
var globalSMTP atomic.Value // stores SMTPSettings

func init() {
	globalSMTP.Store(SMTPSettings{})
}

// StoreSMTP replaces the in-memory snapshot of the email settings.
func StoreSMTP(s SMTPSettings) {
	s.UpdatedAt = s.UpdatedAt.UTC()
	globalSMTP.Store(s)
}

// SMTP returns the current email settings snapshot.
func SMTP() SMTPSettings {
	v, ok := globalSMTP.Load().(SMTPSettings)
	if !ok {
		return SMTPSettings{}
	}
	return v
}
