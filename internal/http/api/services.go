// Package api holds what the admin and front route groups share.
package api

import (
	"github.com/kamaltrader/luxecraft/internal/cache"
	"github.com/kamaltrader/luxecraft/internal/media"
	"github.com/kamaltrader/luxecraft/internal/notify"
	"github.com/kamaltrader/luxecraft/internal/security"
	"github.com/kamaltrader/luxecraft/internal/settings"
	"github.com/kamaltrader/luxecraft/internal/store"
	"gorm.io/gorm"
)

// Services bundles the components route handlers are built from.
type Services struct {
	DB             *gorm.DB                   // Shared connection, used for health checks.
	Auth           *security.Authenticator    // Admin login and token checks.
	Products       *store.ProductStore        // Product rows.
	Categories     *store.CategoryStore       // Category rows.
	EmailConfig    *store.EmailConfigStore    // SMTP settings singleton.
	ContactDetails *store.ContactDetailsStore // Contact details singleton.
	Media          *media.Store               // Uploaded images.
	Notifier       *notify.Notifier           // Form notifications.
	Cache          cache.ProductCache         // Public product listing cache.
	SMTPFallback   settings.Fallback          // Environment SMTP values.
}

// NewServices builds the stores over db and fills the rest from the arguments.
func NewServices(db *gorm.DB, auth *security.Authenticator, mediaStore *media.Store, notifier *notify.Notifier, productCache cache.ProductCache, fallback settings.Fallback) Services {
	if productCache == nil {
		productCache = cache.Noop{}
	}
	return Services{
		DB:             db,
		Auth:           auth,
		Products:       store.NewProductStore(db),
		Categories:     store.NewCategoryStore(db),
		EmailConfig:    store.NewEmailConfigStore(db),
		ContactDetails: store.NewContactDetailsStore(db),
		Media:          mediaStore,
		Notifier:       notifier,
		Cache:          productCache,
		SMTPFallback:   fallback,
	}
}
