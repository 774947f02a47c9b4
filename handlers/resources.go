package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"legal_crm_go/db"
	"legal_crm_go/models"
	"legal_crm_go/store"

	"github.com/labstack/echo/v4"
)

// API serves the data-access surface: one generic cached read endpoint
// keyed by the request URI, and explicit per-entity mutation endpoints
// that write through the gateway and invalidate by resource.
type API struct {
	cache *store.Cache
}

// NewAPI creates the API surface backed by the global database handle
func NewAPI() *API {
	return &API{
		cache: store.NewCache(func(key string) (any, error) {
			return store.Fetch(db.DB, key)
		}),
	}
}

// Cache exposes the fetch cache for jobs and tests
func (a *API) Cache() *store.Cache {
	return a.cache
}

// GetResource serves GET /api/:resource and GET /api/:resource/:id. The
// request URI is the cache key, so repeated reads of the same logical
// request never touch storage until a mutation invalidates the resource.
func (a *API) GetResource(c echo.Context) error {
	value, err := a.cache.Get(c.Request().URL.RequestURI())
	if err != nil {
		return storeHTTPError(err)
	}
	return c.JSON(http.StatusOK, value)
}

// storeHTTPError maps data-layer errors onto HTTP statuses
func storeHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, store.ErrMalformedKey):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrUnknownResource):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrMissingID):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrLawyerInUse):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "storage operation failed")
	}
}

func created(c echo.Context, id uint) error {
	return c.JSON(http.StatusCreated, map[string]uint{"id": id})
}

// pathID reads the numeric :id path parameter
func pathID(c echo.Context) (uint, error) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || n == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(n), nil
}

// bindUpdate decodes a partial update body and forces the target id from
// the path, so the body cannot redirect the write to another row.
func bindUpdate(c echo.Context) (store.Record, error) {
	var rec store.Record
	if err := c.Bind(&rec); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	id, err := pathID(c)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		rec = store.Record{}
	}
	rec["id"] = id
	return rec, nil
}

// --- Clients ---

func (a *API) CreateClient(c echo.Context) error {
	var client models.Client
	if err := c.Bind(&client); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	id, err := store.CreateClient(db.DB, &client)
	if err != nil {
		return storeHTTPError(err)
	}
	a.cache.InvalidateFor(store.ResourceClients)
	return created(c, id)
}

func (a *API) UpdateClient(c echo.Context) error {
	rec, err := bindUpdate(c)
	if err != nil {
		return err
	}
	if err := store.UpdateClient(db.DB, rec); err != nil {
		return storeHTTPError(err)
	}
	a.cache.InvalidateFor(store.ResourceClients)
	return c.NoContent(http.StatusNoContent)
}

// --- Practices ---

func (a *API) CreatePractice(c echo.Context) error {
	var practice models.Practice
	if err := c.Bind(&practice); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	id, err := store.CreatePractice(db.DB, &practice)
	if err != nil {
		return storeHTTPError(err)
	}
	a.cache.InvalidateFor(store.ResourcePractices)
	return created(c, id)
}

func (a *API) UpdatePractice(c echo.Context) error {
	rec, err := bindUpdate(c)
	if err != nil {
		return err
	}
	if err := store.UpdatePractice(db.DB, rec); err != nil {
		return storeHTTPError(err)
	}
	a.cache.InvalidateFor(store.ResourcePractices)
	return c.NoContent(http.StatusNoContent)
}

// --- Lawyers ---

func (a *API) CreateLawyer(c echo.Context) error {
	var lawyer models.Lawyer
	if err := c.Bind(&lawyer); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	id, err := store.CreateLawyer(db.DB, &lawyer)
	if err != nil {
		return storeHTTPError(err)
	}
	a.cache.InvalidateFor(store.ResourceLawyers)
	return created(c, id)
}

func (a *API) UpdateLawyer(c echo.Context) error {
	rec, err := bindUpdate(c)
	if err != nil {
		return err
	}
	if err := store.UpdateLawyer(db.DB, rec); err != nil {
		return storeHTTPError(err)
	}
	a.cache.InvalidateFor(store.ResourceLawyers)
	return c.NoContent(http.StatusNoContent)
}

func (a *API) DeleteLawyer(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := store.DeleteLawyer(db.DB, id); err != nil {
		return storeHTTPError(err)
	}
	a.cache.InvalidateFor(store.ResourceLawyers)
	return c.NoContent(http.StatusNoContent)
}

// --- Reminders ---

func (a *API) CreateReminder(c echo.Context) error {
	var reminder models.Reminder
	if err := c.Bind(&reminder); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	id, err := store.CreateReminder(db.DB, &reminder)
	if err != nil {
		return storeHTTPError(err)
	}
	a.cache.InvalidateFor(store.ResourceReminders)
	return created(c, id)
}

func (a *API) DeleteReminder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := store.DeleteReminder(db.DB, id); err != nil {
		return storeHTTPError(err)
	}
	a.cache.InvalidateFor(store.ResourceReminders)
	return c.NoContent(http.StatusNoContent)
}

// --- Documents ---

func (a *API) CreateDocument(c echo.Context) error {
	var doc models.Document
	if err := c.Bind(&doc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	id, err := store.CreateDocument(db.DB, &doc)
	if err != nil {
		return storeHTTPError(err)
	}
	a.cache.InvalidateFor(store.ResourceDocuments)
	return created(c, id)
}

func (a *API) DeleteDocument(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := store.DeleteDocument(db.DB, id); err != nil {
		return storeHTTPError(err)
	}
	a.cache.InvalidateFor(store.ResourceDocuments)
	return c.NoContent(http.StatusNoContent)
}

// --- Letters ---

func (a *API) CreateLetter(c echo.Context) error {
	var letter models.Letter
	if err := c.Bind(&letter); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	id, err := store.CreateLetter(db.DB, &letter)
	if err != nil {
		return storeHTTPError(err)
	}
	a.cache.InvalidateFor(store.ResourceLetters)
	return created(c, id)
}

func (a *API) DeleteLetter(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := store.DeleteLetter(db.DB, id); err != nil {
		return storeHTTPError(err)
	}
	a.cache.InvalidateFor(store.ResourceLetters)
	return c.NoContent(http.StatusNoContent)
}

// --- Quotes ---

func (a *API) CreateQuote(c echo.Context) error {
	var quote models.Quote
	if err := c.Bind(&quote); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	id, err := store.CreateQuote(db.DB, &quote)
	if err != nil {
		return storeHTTPError(err)
	}
	a.cache.InvalidateFor(store.ResourceQuotes)
	return created(c, id)
}

func (a *API) DeleteQuote(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := store.DeleteQuote(db.DB, id); err != nil {
		return storeHTTPError(err)
	}
	a.cache.InvalidateFor(store.ResourceQuotes)
	return c.NoContent(http.StatusNoContent)
}

// --- Time entries ---

func (a *API) CreateTimeEntry(c echo.Context) error {
	var entry models.TimeEntry
	if err := c.Bind(&entry); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	id, err := store.CreateTimeEntry(db.DB, &entry)
	if err != nil {
		return storeHTTPError(err)
	}
	a.cache.InvalidateFor(store.ResourceTimeEntries)
	return created(c, id)
}

func (a *API) DeleteTimeEntry(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := store.DeleteTimeEntry(db.DB, id); err != nil {
		return storeHTTPError(err)
	}
	a.cache.InvalidateFor(store.ResourceTimeEntries)
	return c.NoContent(http.StatusNoContent)
}

// --- Firm profile ---

func (a *API) UpsertFirmProfile(c echo.Context) error {
	var profile models.FirmProfile
	if err := c.Bind(&profile); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := store.UpsertFirmProfile(db.DB, &profile); err != nil {
		return storeHTTPError(err)
	}
	a.cache.InvalidateFor(store.ResourceFirmProfile)
	return c.JSON(http.StatusOK, profile)
}
