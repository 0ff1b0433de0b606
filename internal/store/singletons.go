package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/kamaltrader/luxecraft/internal/models"
	"gorm.io/gorm"
)

// EmailConfigStore reads and overwrites the email_config singleton.
type EmailConfigStore struct {
	db *gorm.DB
}

// NewEmailConfigStore constructs an EmailConfigStore.
func NewEmailConfigStore(db *gorm.DB) *EmailConfigStore {
	return &EmailConfigStore{db: db}
}

// EmailConfigUpdate carries a full replacement of the email settings.
// An empty Password keeps the stored one.
type EmailConfigUpdate struct {
	User      string
	Password  string
	Host      string
	Port      int
	Recipient string
}

// Get returns the email settings row.
func (s *EmailConfigStore) Get(ctx context.Context) (*models.EmailConfig, error) {
	var row models.EmailConfig
	if errFind := s.db.WithContext(ctx).First(&row, models.SingletonID).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get email config: %w", errFind)
	}
	return &row, nil
}

// Update overwrites the email settings in place.
func (s *EmailConfigStore) Update(ctx context.Context, in EmailConfigUpdate) (*models.EmailConfig, error) {
	updates := map[string]any{
		"email_user":      in.User,
		"email_host":      in.Host,
		"email_port":      in.Port,
		"recipient_email": in.Recipient,
	}
	if in.Password != "" {
		updates["email_password"] = in.Password
	}
	result := s.db.WithContext(ctx).Model(&models.EmailConfig{}).
		Where("id = ?", models.SingletonID).
		Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("update email config: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx)
}

// ContactDetailsStore reads and overwrites the contact_details singleton.
type ContactDetailsStore struct {
	db *gorm.DB
}

// NewContactDetailsStore constructs a ContactDetailsStore.
func NewContactDetailsStore(db *gorm.DB) *ContactDetailsStore {
	return &ContactDetailsStore{db: db}
}

// Get returns the contact details row.
func (s *ContactDetailsStore) Get(ctx context.Context) (*models.ContactDetails, error) {
	var row models.ContactDetails
	if errFind := s.db.WithContext(ctx).First(&row, models.SingletonID).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get contact details: %w", errFind)
	}
	return &row, nil
}

// Update overwrites every contact field in place.
func (s *ContactDetailsStore) Update(ctx context.Context, in models.ContactDetails) (*models.ContactDetails, error) {
	updates := map[string]any{
		"address":   in.Address,
		"phone":     in.Phone,
		"email":     in.Email,
		"facebook":  in.Facebook,
		"instagram": in.Instagram,
		"twitter":   in.Twitter,
		"linkedin":  in.LinkedIn,
		"whatsapp":  in.WhatsApp,
	}
	result := s.db.WithContext(ctx).Model(&models.ContactDetails{}).
		Where("id = ?", models.SingletonID).
		Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("update contact details: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx)
}
