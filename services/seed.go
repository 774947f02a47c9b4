package services

import (
	"errors"
	"fmt"
	"log"

	"legal_crm_go/models"

	"gorm.io/gorm"
)

// SeedFirmProfile creates the firm profile row on first run so that
// profile reads resolve before the firm fills in its own data.
func SeedFirmProfile(gdb *gorm.DB) error {
	var profile models.FirmProfile
	err := gdb.First(&profile, models.FirmProfileID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check firm profile: %w", err)
	}

	profile = models.FirmProfile{
		Name:    "Studio Legale",
		Address: "",
		Email:   "",
		Phone:   "",
	}
	profile.ID = models.FirmProfileID
	if err := gdb.Create(&profile).Error; err != nil {
		return fmt.Errorf("failed to seed firm profile: %w", err)
	}
	log.Println("Seeded default firm profile")
	return nil
}
