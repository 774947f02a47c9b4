package jobs

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"legal_crm_go/config"
	"legal_crm_go/models"
	"legal_crm_go/services"

	"gorm.io/gorm"
)

// DueReminderWindow is how far ahead the sweep looks for deadlines
const DueReminderWindow = 24 * time.Hour

// SendDueReminderAlerts emails the firm a digest of reminders falling due
// within the next day. Returns the number of reminders included.
func SendDueReminderAlerts(gdb *gorm.DB, cfg *config.Config) (int, error) {
	today := time.Now().Format("2006-01-02")
	horizon := time.Now().Add(DueReminderWindow).Format("2006-01-02")

	var reminders []models.Reminder
	err := gdb.Where("due_date >= ? AND due_date <= ?", today, horizon).
		Order("due_date ASC").
		Find(&reminders).Error
	if err != nil {
		return 0, fmt.Errorf("failed to load due reminders: %w", err)
	}
	if len(reminders) == 0 {
		return 0, nil
	}

	var profile models.FirmProfile
	if err := gdb.First(&profile, models.FirmProfileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("firm profile not configured, cannot deliver reminder digest")
		}
		return 0, fmt.Errorf("failed to load firm profile: %w", err)
	}
	if profile.Email == "" {
		return 0, fmt.Errorf("firm profile has no email address")
	}

	email := &services.Email{
		To:       []string{profile.Email},
		Subject:  fmt.Sprintf("Scadenze in arrivo: %d promemoria", len(reminders)),
		TextBody: buildDigestBody(gdb, reminders),
	}
	if err := services.SendEmail(cfg, email); err != nil {
		return 0, err
	}
	return len(reminders), nil
}

func buildDigestBody(gdb *gorm.DB, reminders []models.Reminder) string {
	var b strings.Builder
	b.WriteString("Promemoria in scadenza entro 24 ore:\n\n")
	for _, r := range reminders {
		line := fmt.Sprintf("- %s (scadenza %s, priorità %s)", r.Title, r.DueDate, r.Priority)
		if r.PracticeID != nil {
			var practice models.Practice
			if err := gdb.First(&practice, *r.PracticeID).Error; err == nil {
				line += fmt.Sprintf(" - pratica: %s", practice.Title)
			}
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// StartReminderJob runs the due-reminder sweep once a day until stop is
// closed. The first sweep runs immediately.
func StartReminderJob(gdb *gorm.DB, cfg *config.Config, stop <-chan struct{}) {
	run := func() {
		sent, err := SendDueReminderAlerts(gdb, cfg)
		if err != nil {
			log.Printf("[WARNING] Reminder digest failed: %v", err)
			return
		}
		if sent > 0 {
			log.Printf("Reminder digest sent (%d reminders due)", sent)
		}
	}

	go func() {
		run()
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				run()
			case <-stop:
				return
			}
		}
	}()
}
