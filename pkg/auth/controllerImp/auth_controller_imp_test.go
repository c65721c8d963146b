package controllerImp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"agrieye/pkg/middleware"
)

func TestDevLoginSetsCookie(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/devlogin?uid=grower-1", nil), rec)

	assert.NoError(t, NewAuthController().DevLogin(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"uid":"grower-1"}`, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Set-Cookie"), middleware.UIDCookie+"=grower-1")
}

func TestWhoAmI(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/whoami", nil), rec)
	c.Set("uid", "grower-2")

	assert.NoError(t, NewAuthController().WhoAmI(c))
	assert.JSONEq(t, `{"uid":"grower-2"}`, rec.Body.String())
}
