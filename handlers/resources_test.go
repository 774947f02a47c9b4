package handlers

import (
	"net/http"
	"testing"

	"legal_crm_go/models"
	"legal_crm_go/store"

	"github.com/stretchr/testify/assert"
)

func TestGetResource(t *testing.T) {
	testDB := setupTestDB(t)
	api := NewAPI()
	testDB.Create(&models.Client{Name: "Mario Rossi", Email: "mr@x.it", TaxCode: "RSSMRA", Priority: models.PriorityMedium})

	t.Run("Collection read", func(t *testing.T) {
		rec, err := doJSON(t, api.GetResource, http.MethodGet, "/api/clients", "", map[string]string{"resource": "clients"})
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var rows []map[string]any
		decodeJSON(t, rec, &rows)
		assert.Len(t, rows, 1)
		assert.Equal(t, "Mario Rossi", rows[0]["name"])
		assert.Equal(t, "RSSMRA", rows[0]["taxcode"])
	})

	t.Run("Single item read", func(t *testing.T) {
		rec, err := doJSON(t, api.GetResource, http.MethodGet, "/api/clients/1", "", nil)
		assert.NoError(t, err)

		var row map[string]any
		decodeJSON(t, rec, &row)
		assert.Equal(t, "Mario Rossi", row["name"])
	})

	t.Run("Unknown resource is 404", func(t *testing.T) {
		rec, err := doJSON(t, api.GetResource, http.MethodGet, "/api/invoices", "", nil)
		assertStatus(t, rec, err, http.StatusNotFound)
	})

	t.Run("Missing row is 404", func(t *testing.T) {
		rec, err := doJSON(t, api.GetResource, http.MethodGet, "/api/clients/99", "", nil)
		assertStatus(t, rec, err, http.StatusNotFound)
	})

	t.Run("Malformed key is 400", func(t *testing.T) {
		rec, err := doJSON(t, api.GetResource, http.MethodGet, "/api/clients/abc", "", nil)
		assertStatus(t, rec, err, http.StatusBadRequest)
	})
}

// Full client-and-practice flow: create, filtered read, partial update,
// and the refreshed reads that follow invalidation.
func TestClientPracticeFlow(t *testing.T) {
	setupTestDB(t)
	api := NewAPI()

	rec, err := doJSON(t, api.CreateClient, http.MethodPost, "/api/clients",
		`{"name":"ACME Srl","email":"acme@x.it","taxcode":"ACM123","priority":"Alta"}`, nil)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	var createRes map[string]uint
	decodeJSON(t, rec, &createRes)
	assert.Equal(t, uint(1), createRes["id"])

	rec, err = doJSON(t, api.CreatePractice, http.MethodPost, "/api/practices",
		`{"clientId":1,"title":"Recupero crediti","type":"Commerciale","status":"Aperta","fee":1000,"paidAmount":500,"priority":"Media","openedAt":"2026-01-10"}`, nil)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	decodeJSON(t, rec, &createRes)
	assert.Equal(t, uint(1), createRes["id"])

	rec, err = doJSON(t, api.GetResource, http.MethodGet, "/api/practices?clientId=1", "", nil)
	assert.NoError(t, err)
	var rows []map[string]any
	decodeJSON(t, rec, &rows)
	assert.Len(t, rows, 1)
	assert.Equal(t, "Recupero crediti", rows[0]["title"])
	assert.Equal(t, float64(500), rows[0]["paidAmount"])

	rec, err = doJSON(t, api.UpdatePractice, http.MethodPut, "/api/practices/1",
		`{"paidAmount":1000}`, map[string]string{"id": "1"})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Both the filtered collection and the single item reflect the write,
	// and untouched fields survive the partial update.
	rec, err = doJSON(t, api.GetResource, http.MethodGet, "/api/practices?clientId=1", "", nil)
	assert.NoError(t, err)
	decodeJSON(t, rec, &rows)
	assert.Equal(t, float64(1000), rows[0]["paidAmount"])

	rec, err = doJSON(t, api.GetResource, http.MethodGet, "/api/practices/1", "", nil)
	assert.NoError(t, err)
	var row map[string]any
	decodeJSON(t, rec, &row)
	assert.Equal(t, float64(1000), row["paidAmount"])
	assert.Equal(t, float64(1000), row["fee"])
	assert.Equal(t, "Recupero crediti", row["title"])
	assert.Equal(t, "Aperta", row["status"])
}

func TestUpdateTargetsPathID(t *testing.T) {
	testDB := setupTestDB(t)
	api := NewAPI()
	testDB.Create(&models.Client{Name: "Primo", Email: "a@x.it", TaxCode: "A", Priority: models.PriorityMedium})
	testDB.Create(&models.Client{Name: "Secondo", Email: "b@x.it", TaxCode: "B", Priority: models.PriorityMedium})

	// A body id pointing elsewhere must not redirect the write
	rec, err := doJSON(t, api.UpdateClient, http.MethodPut, "/api/clients/1",
		`{"id":2,"notes":"aggiornato"}`, map[string]string{"id": "1"})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	var first, second models.Client
	testDB.First(&first, 1)
	testDB.First(&second, 2)
	assert.Equal(t, "aggiornato", first.Notes)
	assert.Empty(t, second.Notes)
}

func TestDeleteLawyer(t *testing.T) {
	testDB := setupTestDB(t)
	api := NewAPI()
	lawyer := models.Lawyer{FirstName: "Laura", LastName: "Bianchi", Email: "lb@x.it", BillingType: models.BillingTypeHourly, BillingRate: 150}
	testDB.Create(&lawyer)
	testDB.Create(&models.Client{Name: "ACME", Email: "a@x.it", TaxCode: "A", Priority: models.PriorityMedium})
	practice := models.Practice{ClientID: 1, LawyerID: &lawyer.ID, Title: "Causa", Type: "Commerciale", Status: models.PracticeStatusOpen, OpenedAt: "2026-01-10", Priority: models.PriorityMedium}
	testDB.Create(&practice)

	t.Run("Assigned lawyer cannot be deleted", func(t *testing.T) {
		rec, err := doJSON(t, api.DeleteLawyer, http.MethodDelete, "/api/lawyers/1", "", map[string]string{"id": "1"})
		assertStatus(t, rec, err, http.StatusConflict)
	})

	t.Run("Unassigned lawyer is deleted", func(t *testing.T) {
		testDB.Delete(&models.Practice{}, practice.ID)
		rec, err := doJSON(t, api.DeleteLawyer, http.MethodDelete, "/api/lawyers/1", "", map[string]string{"id": "1"})
		assert.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		var count int64
		testDB.Model(&models.Lawyer{}).Count(&count)
		assert.Equal(t, int64(0), count)
	})
}

func TestDeleteRefreshesReads(t *testing.T) {
	setupTestDB(t)
	api := NewAPI()

	rec, err := doJSON(t, api.CreateReminder, http.MethodPost, "/api/reminders",
		`{"title":"Udienza","dueDate":"2026-09-15","priority":"Alta"}`, nil)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec, err = doJSON(t, api.GetResource, http.MethodGet, "/api/reminders", "", nil)
	assert.NoError(t, err)
	var rows []map[string]any
	decodeJSON(t, rec, &rows)
	assert.Len(t, rows, 1)

	rec, err = doJSON(t, api.DeleteReminder, http.MethodDelete, "/api/reminders/1", "", map[string]string{"id": "1"})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, err = doJSON(t, api.GetResource, http.MethodGet, "/api/reminders", "", nil)
	assert.NoError(t, err)
	decodeJSON(t, rec, &rows)
	assert.Len(t, rows, 0)
}

func TestUpsertFirmProfile(t *testing.T) {
	testDB := setupTestDB(t)
	api := NewAPI()

	rec, err := doJSON(t, api.UpsertFirmProfile, http.MethodPut, "/api/firm-profile",
		`{"name":"Studio Bianchi","address":"Via Roma 1","vatNumber":"IT123","email":"info@bianchi.it","phone":"02 1234"}`, nil)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	t.Run("Profile resolves without an id segment", func(t *testing.T) {
		rec, err := doJSON(t, api.GetResource, http.MethodGet, "/api/firm-profile", "", nil)
		assert.NoError(t, err)
		var row map[string]any
		decodeJSON(t, rec, &row)
		assert.Equal(t, "Studio Bianchi", row["name"])
		assert.Equal(t, "IT123", row["vatNumber"])
	})

	t.Run("Second upsert stays a single row", func(t *testing.T) {
		rec, err := doJSON(t, api.UpsertFirmProfile, http.MethodPut, "/api/firm-profile",
			`{"id":7,"name":"Studio Bianchi e Associati"}`, nil)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var count int64
		testDB.Model(&models.FirmProfile{}).Count(&count)
		assert.Equal(t, int64(1), count)

		rec, err = doJSON(t, api.GetResource, http.MethodGet, "/api/firm-profile", "", nil)
		assert.NoError(t, err)
		var row map[string]any
		decodeJSON(t, rec, &row)
		assert.Equal(t, "Studio Bianchi e Associati", row["name"])
	})
}

func TestProfilesReadHidesPassword(t *testing.T) {
	testDB := setupTestDB(t)
	api := NewAPI()
	testDB.Create(&models.User{Username: "avv.rossi", Password: "hash", Name: "Avv. Rossi", Role: models.RoleAdmin})

	rec, err := doJSON(t, api.GetResource, http.MethodGet, "/api/profiles", "", nil)
	assert.NoError(t, err)
	var rows []map[string]any
	decodeJSON(t, rec, &rows)
	assert.Len(t, rows, 1)
	assert.Equal(t, "avv.rossi", rows[0]["username"])
	assert.NotContains(t, rows[0], "password")
}

func TestCreateInvalidatesOnlyItsResource(t *testing.T) {
	testDB := setupTestDB(t)
	api := NewAPI()
	testDB.Create(&models.Client{Name: "ACME", Email: "a@x.it", TaxCode: "A", Priority: models.PriorityMedium})

	_, err := doJSON(t, api.GetResource, http.MethodGet, "/api/clients", "", nil)
	assert.NoError(t, err)
	_, err = doJSON(t, api.GetResource, http.MethodGet, "/api/reminders", "", nil)
	assert.NoError(t, err)
	assert.Equal(t, 2, api.Cache().Size())

	_, err = doJSON(t, api.CreateReminder, http.MethodPost, "/api/reminders",
		`{"title":"X","dueDate":"2026-09-15","priority":"Bassa"}`, nil)
	assert.NoError(t, err)

	// Clients entry survives, reminders entry is gone
	assert.Equal(t, 1, api.Cache().Size())
	got, err := api.Cache().Get("/api/clients")
	assert.NoError(t, err)
	assert.Len(t, got.([]store.Record), 1)
}
