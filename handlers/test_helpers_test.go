package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"legal_crm_go/config"
	"legal_crm_go/db"
	"legal_crm_go/models"
	"legal_crm_go/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Unique shared memory name isolates tests from each other
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	if services.Storage == nil {
		services.Storage = services.NewLocalStorage(t.TempDir())
	}

	err = testDB.AutoMigrate(
		&models.Client{},
		&models.Practice{},
		&models.Lawyer{},
		&models.Document{},
		&models.Reminder{},
		&models.Letter{},
		&models.Quote{},
		&models.TimeEntry{},
		&models.FirmProfile{},
		&models.User{},
		&models.Session{},
	)
	assert.NoError(t, err)

	// Set the global DB variable used by handlers
	db.DB = testDB
	return testDB
}

func testConfig() *config.Config {
	return &config.Config{Environment: "development", EmailTestMode: true}
}

// doJSON runs one handler with an optional JSON body and path params
func doJSON(t *testing.T, handler echo.HandlerFunc, method, target, body string, params map[string]string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	names := make([]string, 0, len(params))
	values := make([]string, 0, len(params))
	for k, v := range params {
		names = append(names, k)
		values = append(values, v)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return rec, handler(c)
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return httpErr.Code
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, err error, want int) {
	t.Helper()
	if err != nil {
		assert.Equal(t, want, httpStatus(t, err))
		return
	}
	assert.Equal(t, want, rec.Code)
}
