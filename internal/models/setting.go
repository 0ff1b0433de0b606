package models

import "time"

// SingletonID is the fixed primary key of every singleton settings row.
const SingletonID uint64 = 1

// EmailConfig stores the SMTP relay used for outbound form notifications.
type EmailConfig struct {
	ID             uint64 `gorm:"primaryKey;autoIncrement:false"` // Always SingletonID.
	EmailUser      string `gorm:"type:text;not null;default:''"`  // SMTP username and From address.
	EmailPassword  string `gorm:"type:text;not null;default:''"`  // SMTP password, never echoed.
	EmailHost      string `gorm:"type:text;not null;default:''"`  // SMTP host.
	EmailPort      int    `gorm:"not null;default:587"`           // SMTP port.
	RecipientEmail string `gorm:"type:text;not null;default:''"`  // Inbox receiving notifications.

	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// TableName pins the table name to the singular form used by the storefront schema.
func (EmailConfig) TableName() string { return "email_config" }

// ContactDetails stores the public contact information shown in the footer.
type ContactDetails struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement:false" json:"id"` // Always SingletonID.
	Address   string `gorm:"type:text;not null;default:''" json:"address"`
	Phone     string `gorm:"type:text;not null;default:''" json:"phone"`
	Email     string `gorm:"type:text;not null;default:''" json:"email"`
	Facebook  string `gorm:"type:text;not null;default:''" json:"facebook"`
	Instagram string `gorm:"type:text;not null;default:''" json:"instagram"`
	Twitter   string `gorm:"type:text;not null;default:''" json:"twitter"`
	LinkedIn  string `gorm:"column:linkedin;type:text;not null;default:''" json:"linkedin"`
	WhatsApp  string `gorm:"column:whatsapp;type:text;not null;default:''" json:"whatsapp"`

	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"` // Last update timestamp.
}

// TableName pins the table name to the singular form used by the storefront schema.
func (ContactDetails) TableName() string { return "contact_details" }
