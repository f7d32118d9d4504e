package handlers

import (
	"io"
	"net/http/httptest"
	"testing"

	"softmatrices_site_go/config"
	"softmatrices_site_go/db"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Unique shared-memory name isolates tests while letting the async recorder share the cache
	database, err := db.OpenMemory("mem_" + uuid.New().String())
	require.NoError(t, err)
	return database
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	c.Set("config", &config.Config{
		Environment: "test",
		AppURL:      "https://softmatrices.com",
	})

	return e, c, rec
}
