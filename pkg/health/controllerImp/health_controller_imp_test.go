package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrieye/database"
	"agrieye/pkg/optimizer"
)

func runHealth(t *testing.T, h *HealthCtrl) (int, map[string]any) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
	require.NoError(t, h.Health(c))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHealthOK(t *testing.T) {
	db, err := database.Open(":memory:")
	require.NoError(t, err)

	code, body := runHealth(t, NewHealthCtrl(db, optimizer.New(optimizer.DefaultConfig())))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["status"].(map[string]any)["ok"])
}

func TestHealthWithoutDB(t *testing.T) {
	code, body := runHealth(t, NewHealthCtrl(nil, optimizer.New(optimizer.DefaultConfig())))
	assert.Equal(t, http.StatusServiceUnavailable, code)

	checks := body["checks"].(map[string]any)
	assert.Equal(t, false, checks["database"].(map[string]any)["ok"])
	assert.Equal(t, true, checks["optimizer"].(map[string]any)["ok"])
}
