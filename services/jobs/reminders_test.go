package jobs

import (
	"testing"
	"time"

	"legal_crm_go/config"
	"legal_crm_go/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupJobTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)
	assert.NoError(t, gdb.AutoMigrate(&models.Reminder{}, &models.Practice{}, &models.FirmProfile{}))
	return gdb
}

func testConfig() *config.Config {
	return &config.Config{EmailTestMode: true}
}

func seedProfile(t *testing.T, gdb *gorm.DB, email string) {
	t.Helper()
	profile := models.FirmProfile{Name: "Studio", Email: email}
	profile.ID = models.FirmProfileID
	assert.NoError(t, gdb.Create(&profile).Error)
}

func TestSendDueReminderAlerts(t *testing.T) {
	today := time.Now().Format("2006-01-02")
	tomorrow := time.Now().Add(24 * time.Hour).Format("2006-01-02")
	nextWeek := time.Now().Add(7 * 24 * time.Hour).Format("2006-01-02")
	yesterday := time.Now().Add(-24 * time.Hour).Format("2006-01-02")

	t.Run("Only reminders inside the window are included", func(t *testing.T) {
		gdb := setupJobTestDB(t)
		seedProfile(t, gdb, "studio@example.it")
		gdb.Create(&models.Reminder{Title: "Udienza", DueDate: today, Priority: models.PriorityHigh})
		gdb.Create(&models.Reminder{Title: "Deposito", DueDate: tomorrow, Priority: models.PriorityMedium})
		gdb.Create(&models.Reminder{Title: "Archivio", DueDate: nextWeek, Priority: models.PriorityLow})
		gdb.Create(&models.Reminder{Title: "Passata", DueDate: yesterday, Priority: models.PriorityLow})

		sent, err := SendDueReminderAlerts(gdb, testConfig())
		assert.NoError(t, err)
		assert.Equal(t, 2, sent)
	})

	t.Run("No due reminders means no email", func(t *testing.T) {
		gdb := setupJobTestDB(t)
		seedProfile(t, gdb, "studio@example.it")
		gdb.Create(&models.Reminder{Title: "Archivio", DueDate: nextWeek, Priority: models.PriorityLow})

		sent, err := SendDueReminderAlerts(gdb, testConfig())
		assert.NoError(t, err)
		assert.Equal(t, 0, sent)
	})

	t.Run("Missing firm profile fails the sweep", func(t *testing.T) {
		gdb := setupJobTestDB(t)
		gdb.Create(&models.Reminder{Title: "Udienza", DueDate: today, Priority: models.PriorityHigh})

		_, err := SendDueReminderAlerts(gdb, testConfig())
		assert.Error(t, err)
	})

	t.Run("Profile without email fails the sweep", func(t *testing.T) {
		gdb := setupJobTestDB(t)
		seedProfile(t, gdb, "")
		gdb.Create(&models.Reminder{Title: "Udienza", DueDate: today, Priority: models.PriorityHigh})

		_, err := SendDueReminderAlerts(gdb, testConfig())
		assert.Error(t, err)
	})
}

func TestBuildDigestBody(t *testing.T) {
	gdb := setupJobTestDB(t)
	practice := models.Practice{ClientID: 1, Title: "Causa Rossi", Type: "Civile Immobiliare", Status: models.PracticeStatusOpen}
	assert.NoError(t, gdb.Create(&practice).Error)

	linked := models.Reminder{PracticeID: &practice.ID, Title: "Memoria", DueDate: "2026-09-01", Priority: models.PriorityHigh}
	loose := models.Reminder{Title: "Chiamare cliente", DueDate: "2026-09-01", Priority: models.PriorityLow}

	body := buildDigestBody(gdb, []models.Reminder{linked, loose})
	assert.Contains(t, body, "Memoria")
	assert.Contains(t, body, "pratica: Causa Rossi")
	assert.Contains(t, body, "Chiamare cliente")
}
