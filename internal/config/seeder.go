package config

import (
	"log"
	"strings"

	"lms-backend/internal/adapters/persistence/models"
	"lms-backend/internal/pkg/password"

	"gorm.io/gorm"
)

// SeedAdmin creates the configured admin account on boot. It does nothing
// when seeding is disabled, the settings are blank, or the email is already
// registered.
func SeedAdmin(db *gorm.DB, seed AdminSeedConfig) error {
	if !seed.Enabled {
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(seed.Email))
	if email == "" || strings.TrimSpace(seed.Password) == "" {
		log.Println("⚠️ Admin seed enabled but email or password is blank, skipping")
		return nil
	}

	var count int64
	if err := db.Model(&models.Student{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := password.Hash(seed.Password)
	if err != nil {
		return err
	}

	fullName := strings.TrimSpace(seed.FullName)
	if fullName == "" {
		fullName = "Admin"
	}

	admin := &models.Student{
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		Role:         "Admin",
	}

	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin account seeded: %s", email)
	return nil
}
