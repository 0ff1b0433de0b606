package settings

import (
	"context"
	"errors"

	"github.com/kamaltrader/luxecraft/internal/models"
	"gorm.io/gorm"
)

// Fallback supplies environment SMTP values for fields the stored row leaves blank.
type Fallback struct {
	User      string
	Password  string
	Host      string
	Port      int
	Recipient string
}

// RefreshSMTPSnapshot reloads the email_config row and updates the in-memory snapshot.
//
// This is required at process startup and after every admin update; the mailer
// only ever reads the snapshot.
func RefreshSMTPSnapshot(ctx context.Context, db *gorm.DB, fallback Fallback) error {
	if db == nil {
		return errors.New("settings: nil db")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var row models.EmailConfig
	if errFind := db.WithContext(ctx).First(&row, models.SingletonID).Error; errFind != nil {
		return errFind
	}
	StoreSMTP(Merge(row, fallback))
	return nil
}

// Merge overlays a stored row on the fallback values.
func Merge(row models.EmailConfig, fallback Fallback) SMTPSettings {
	out := SMTPSettings{
		User:      firstNonEmpty(row.EmailUser, fallback.User),
		Password:  firstNonEmpty(row.EmailPassword, fallback.Password),
		Host:      firstNonEmpty(row.EmailHost, fallback.Host),
		Port:      row.EmailPort,
		Recipient: firstNonEmpty(row.RecipientEmail, fallback.Recipient),
		UpdatedAt: row.UpdatedAt,
	}
	if out.Port <= 0 {
		out.Port = fallback.Port
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
