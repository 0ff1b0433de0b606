package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/kamaltrader/luxecraft/internal/models"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultCategories are inserted when the categories table is empty.
var DefaultCategories = []string{
	"Bags & Briefcases",
	"Wallets & Cardholders",
	"Belts & Accessories",
	"Journals & Portfolios",
	"Custom Products",
}

// SeedOptions carries environment-derived defaults for the singleton rows.
// The SMTP password is never seeded; a blank stored password falls back to
// the environment at send time.
type SeedOptions struct {
	EmailUser      string
	EmailHost      string
	EmailPort      int
	RecipientEmail string
}

// Migrate creates or updates every table owned by the storefront.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return errors.New("db: nil connection")
	}
	if errMigrate := conn.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.EmailConfig{},
		&models.ContactDetails{},
	); errMigrate != nil {
		return fmt.Errorf("db: migrate: %w", errMigrate)
	}
	return nil
}

// Seed inserts default rows. Each table is only touched while it is empty,
// so running it on every start is safe.
func Seed(ctx context.Context, conn *gorm.DB, opts SeedOptions) error {
	if conn == nil {
		return errors.New("db: nil connection")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	tx := conn.WithContext(ctx)

	if errSeed := seedCategories(tx); errSeed != nil {
		return errSeed
	}
	if errSeed := seedProducts(tx); errSeed != nil {
		return errSeed
	}
	if errSeed := seedEmailConfig(tx, opts); errSeed != nil {
		return errSeed
	}
	return seedContactDetails(tx)
}

func seedCategories(tx *gorm.DB) error {
	var count int64
	if errCount := tx.Model(&models.Category{}).Count(&count).Error; errCount != nil {
		return fmt.Errorf("db: count categories: %w", errCount)
	}
	if count > 0 {
		return nil
	}
	rows := make([]models.Category, 0, len(DefaultCategories))
	for _, name := range DefaultCategories {
		rows = append(rows, models.Category{Name: name})
	}
	if errCreate := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; errCreate != nil {
		return fmt.Errorf("db: seed categories: %w", errCreate)
	}
	log.Infof("seeded %d default categories", len(rows))
	return nil
}

func seedProducts(tx *gorm.DB) error {
	var count int64
	if errCount := tx.Model(&models.Product{}).Count(&count).Error; errCount != nil {
		return fmt.Errorf("db: count products: %w", errCount)
	}
	if count > 0 {
		return nil
	}
	rows := []models.Product{
		{
			Name:          "Ladies Wallet Clutch",
			Price:         decimal.NewFromInt(2499),
			Category:      "Wallets & Cardholders",
			ImageFilename: "default-wallet-ladies.svg",
			Description:   "Premium leather ladies wallet clutch with multiple card slots and coin pocket. Perfect for everyday use.",
		},
		{
			Name:          "Leather Briefcase",
			Price:         decimal.NewFromInt(8999),
			Category:      "Bags & Briefcases",
			ImageFilename: "default-briefcase.svg",
			Description:   "Professional leather briefcase with adjustable shoulder strap. Ideal for business travel and daily commute.",
		},
		{
			Name:          "Leather Journal",
			Price:         decimal.NewFromInt(1599),
			Category:      "Journals & Portfolios",
			ImageFilename: "default-journal.svg",
			Description:   "Hand-stitched leather journal with 200 premium pages. Perfect for notes, sketches, and journaling.",
		},
		{
			Name:          "Leather Belt",
			Price:         decimal.NewFromInt(1299),
			Category:      "Belts & Accessories",
			ImageFilename: "default-belt.svg",
			Description:   "Classic leather belt with adjustable sizing. Versatile design goes with any outfit.",
		},
		{
			Name:          "Card Holder",
			Price:         decimal.NewFromInt(899),
			Category:      "Wallets & Cardholders",
			ImageFilename: "default-cardholder.svg",
			Description:   "Compact leather card holder with RFID protection. Holds up to 12 cards in style.",
		},
	}
	if errCreate := tx.Create(&rows).Error; errCreate != nil {
		return fmt.Errorf("db: seed products: %w", errCreate)
	}
	log.Infof("seeded %d default products", len(rows))
	return nil
}

func seedEmailConfig(tx *gorm.DB, opts SeedOptions) error {
	host := opts.EmailHost
	if host == "" {
		host = "smtp.gmail.com"
	}
	port := opts.EmailPort
	if port <= 0 {
		port = 587
	}
	row := models.EmailConfig{
		ID:             models.SingletonID,
		EmailUser:      opts.EmailUser,
		EmailHost:      host,
		EmailPort:      port,
		RecipientEmail: opts.RecipientEmail,
	}
	if errCreate := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; errCreate != nil {
		return fmt.Errorf("db: seed email config: %w", errCreate)
	}
	return nil
}

func seedContactDetails(tx *gorm.DB) error {
	row := models.ContactDetails{
		ID:        models.SingletonID,
		Address:   "Kamala Trader, New Delhi, India",
		Phone:     "+91 9876543210",
		Email:     "info@kamaltrader.com",
		Facebook:  "https://facebook.com/kamaltrader",
		Instagram: "https://instagram.com/kamaltrader",
		Twitter:   "https://twitter.com/kamaltrader",
		LinkedIn:  "https://linkedin.com/company/kamaltrader",
		WhatsApp:  "https://wa.me/919876543210",
	}
	if errCreate := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; errCreate != nil {
		return fmt.Errorf("db: seed contact details: %w", errCreate)
	}
	return nil
}
