package store

import (
	"errors"
	"fmt"
	"strconv"

	"legal_crm_go/models"

	"gorm.io/gorm"
)

// Mutation gateway errors
var (
	ErrMissingID   = errors.New("update requires an id")
	ErrLawyerInUse = errors.New("lawyer is still assigned to one or more practices")
)

// The gateway is one explicit function per (entity, operation) pair.
// Creates return the generated identifier; updates are partial and must
// include the id; deletes take the id. None of these touch the cache:
// invalidation is the caller's responsibility. The gateway performs no
// pre-validation; constraint violations surface as storage errors.

// --- Clients ---

func CreateClient(gdb *gorm.DB, client *models.Client) (uint, error) {
	if err := gdb.Create(client).Error; err != nil {
		return 0, err
	}
	return client.ID, nil
}

func UpdateClient(gdb *gorm.DB, rec Record) error {
	return updateRecord(gdb, ResourceClients, rec)
}

// --- Practices ---

func CreatePractice(gdb *gorm.DB, practice *models.Practice) (uint, error) {
	if err := gdb.Create(practice).Error; err != nil {
		return 0, err
	}
	return practice.ID, nil
}

func UpdatePractice(gdb *gorm.DB, rec Record) error {
	return updateRecord(gdb, ResourcePractices, rec)
}

// --- Lawyers ---

func CreateLawyer(gdb *gorm.DB, lawyer *models.Lawyer) (uint, error) {
	if err := gdb.Create(lawyer).Error; err != nil {
		return 0, err
	}
	return lawyer.ID, nil
}

func UpdateLawyer(gdb *gorm.DB, rec Record) error {
	return updateRecord(gdb, ResourceLawyers, rec)
}

// DeleteLawyer refuses to delete a lawyer who is still referenced by any
// practice. The referential check lives here rather than at every call
// site, so no caller can forget it.
func DeleteLawyer(gdb *gorm.DB, id uint) error {
	var refs int64
	if err := gdb.Model(&models.Practice{}).Where("lawyer_id = ?", id).Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return fmt.Errorf("%w (id %d, %d practices)", ErrLawyerInUse, id, refs)
	}
	return gdb.Delete(&models.Lawyer{}, id).Error
}

// --- Reminders ---

func CreateReminder(gdb *gorm.DB, reminder *models.Reminder) (uint, error) {
	if err := gdb.Create(reminder).Error; err != nil {
		return 0, err
	}
	return reminder.ID, nil
}

func DeleteReminder(gdb *gorm.DB, id uint) error {
	return gdb.Delete(&models.Reminder{}, id).Error
}

// --- Documents ---

func CreateDocument(gdb *gorm.DB, doc *models.Document) (uint, error) {
	if err := gdb.Create(doc).Error; err != nil {
		return 0, err
	}
	return doc.ID, nil
}

func DeleteDocument(gdb *gorm.DB, id uint) error {
	return gdb.Delete(&models.Document{}, id).Error
}

// --- Letters ---

func CreateLetter(gdb *gorm.DB, letter *models.Letter) (uint, error) {
	if err := gdb.Create(letter).Error; err != nil {
		return 0, err
	}
	return letter.ID, nil
}

func DeleteLetter(gdb *gorm.DB, id uint) error {
	return gdb.Delete(&models.Letter{}, id).Error
}

// --- Quotes ---

func CreateQuote(gdb *gorm.DB, quote *models.Quote) (uint, error) {
	if err := gdb.Create(quote).Error; err != nil {
		return 0, err
	}
	return quote.ID, nil
}

func DeleteQuote(gdb *gorm.DB, id uint) error {
	return gdb.Delete(&models.Quote{}, id).Error
}

// --- Time entries ---

func CreateTimeEntry(gdb *gorm.DB, entry *models.TimeEntry) (uint, error) {
	if err := gdb.Create(entry).Error; err != nil {
		return 0, err
	}
	return entry.ID, nil
}

func DeleteTimeEntry(gdb *gorm.DB, id uint) error {
	return gdb.Delete(&models.TimeEntry{}, id).Error
}

// --- Firm profile ---

// UpsertFirmProfile writes the singleton letterhead record. The fixed
// identifier is forced so a caller can never create a second profile.
func UpsertFirmProfile(gdb *gorm.DB, profile *models.FirmProfile) error {
	profile.ID = models.FirmProfileID
	return gdb.Save(profile).Error
}

// updateRecord maps the supplied fields to storage convention and performs
// a partial update: fields absent from the input are left untouched.
func updateRecord(gdb *gorm.DB, res Resource, rec Record) error {
	id, ok := recordID(rec)
	if !ok {
		return fmt.Errorf("%w (resource %s)", ErrMissingID, res)
	}

	row := MapOutbound(res, rec)
	delete(row, "id")
	if len(row) == 0 {
		return nil
	}

	return gdb.Table(resources[res].table).Where("id = ?", id).Updates(row).Error
}

// recordID extracts the target identifier from a partial record. JSON
// decoding yields float64 for numbers, so several shapes are accepted.
func recordID(rec Record) (uint, bool) {
	switch v := rec["id"].(type) {
	case uint:
		return v, v != 0
	case int:
		return uint(v), v > 0
	case int64:
		return uint(v), v > 0
	case float64:
		return uint(v), v > 0
	case string:
		n, err := strconv.ParseUint(v, 10, 64)
		return uint(n), err == nil && n != 0
	default:
		return 0, false
	}
}
