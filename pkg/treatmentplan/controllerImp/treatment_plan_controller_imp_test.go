package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrieye/database"
	"agrieye/pkg/middleware"
	"agrieye/pkg/treatmentplan/repositoryImp"
)

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)

	h := New(repositoryImp.New(db), nil)
	e := echo.New()
	g := e.Group("/api/treatment-plans", middleware.RequireUser())
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.DELETE("/:id", h.Delete)
	g.PUT("/:id/tasks", h.UpdateTask)
	return e
}

func call(t *testing.T, e *echo.Echo, method, path, uid, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if uid != "" {
		req.Header.Set(middleware.UIDHeader, uid)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code, rec.Body.Bytes()
}

const planBody = `{
	"disease": "Late Blight",
	"severity": "high",
	"treatmentType": "organic",
	"strategy": "low_cost",
	"duration": 7,
	"schedule": [{"day": 1, "tasks": ["spray neem"]}],
	"naturalTreatments": ["neem oil"]
}`

func createPlan(t *testing.T, e *echo.Echo, uid string) uint {
	t.Helper()
	code, b := call(t, e, http.MethodPost, "/api/treatment-plans", uid, planBody)
	require.Equal(t, http.StatusCreated, code, string(b))
	var p struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(b, &p))
	require.NotZero(t, p.ID)
	return p.ID
}

func TestCreateAndGet(t *testing.T) {
	e := newServer(t)
	id := createPlan(t, e, "U1")

	code, b := call(t, e, http.MethodGet, "/api/treatment-plans/"+itoa(id), "U1", "")
	require.Equal(t, http.StatusOK, code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "Late Blight", got["disease"])
	assert.Equal(t, "high", got["severity"])
	assert.Equal(t, "organic", got["treatment_type"])
	assert.Equal(t, "low_cost", got["strategy"])
	assert.Equal(t, float64(7), got["duration"])
	assert.Equal(t, []any{"neem oil"}, got["natural_treatments"])
	assert.Nil(t, got["medicines"])
	assert.Equal(t, map[string]any{}, got["completedTasks"])
}

func TestPlansAreScopedToUser(t *testing.T) {
	e := newServer(t)
	id := createPlan(t, e, "U1")

	code, _ := call(t, e, http.MethodGet, "/api/treatment-plans/"+itoa(id), "U2", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, b := call(t, e, http.MethodGet, "/api/treatment-plans", "U2", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(b))

	code, _ = call(t, e, http.MethodDelete, "/api/treatment-plans/"+itoa(id), "U2", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestListNewestFirst(t *testing.T) {
	e := newServer(t)
	first := createPlan(t, e, "U1")
	second := createPlan(t, e, "U1")

	code, b := call(t, e, http.MethodGet, "/api/treatment-plans", "U1", "")
	require.Equal(t, http.StatusOK, code)
	var ps []struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(b, &ps))
	require.Len(t, ps, 2)
	assert.Equal(t, second, ps[0].ID)
	assert.Equal(t, first, ps[1].ID)
}

func TestUpdateTaskMarks(t *testing.T) {
	e := newServer(t)
	id := createPlan(t, e, "U1")
	path := "/api/treatment-plans/" + itoa(id)

	code, _ := call(t, e, http.MethodPut, path+"/tasks", "U1", `{"dayNumber":1,"taskIndex":0,"completed":true}`)
	require.Equal(t, http.StatusOK, code)
	code, _ = call(t, e, http.MethodPut, path+"/tasks", "U1", `{"dayNumber":2,"taskIndex":1,"completed":true}`)
	require.Equal(t, http.StatusOK, code)
	// unmark the first one; the slot is updated in place
	code, _ = call(t, e, http.MethodPut, path+"/tasks", "U1", `{"dayNumber":1,"taskIndex":0,"completed":false}`)
	require.Equal(t, http.StatusOK, code)

	_, b := call(t, e, http.MethodGet, path, "U1", "")
	var got struct {
		CompletedTasks map[string]bool `json:"completedTasks"`
	}
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, map[string]bool{"1-0": false, "2-1": true}, got.CompletedTasks)
}

func TestUpdateTaskValidation(t *testing.T) {
	e := newServer(t)
	id := createPlan(t, e, "U1")

	code, _ := call(t, e, http.MethodPut, "/api/treatment-plans/"+itoa(id)+"/tasks", "U1", `{"completed":true}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = call(t, e, http.MethodPut, "/api/treatment-plans/999/tasks", "U1", `{"dayNumber":1,"taskIndex":0,"completed":true}`)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestDeleteRemovesTasks(t *testing.T) {
	e := newServer(t)
	id := createPlan(t, e, "U1")
	path := "/api/treatment-plans/" + itoa(id)
	call(t, e, http.MethodPut, path+"/tasks", "U1", `{"dayNumber":1,"taskIndex":0,"completed":true}`)

	code, _ := call(t, e, http.MethodDelete, path, "U1", "")
	require.Equal(t, http.StatusOK, code)

	code, _ = call(t, e, http.MethodGet, path, "U1", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCreateRejectsBadInput(t *testing.T) {
	e := newServer(t)

	cases := map[string]string{
		"no disease":   `{"duration": 3}`,
		"bad strategy": `{"disease": "rust", "strategy": "cheapest"}`,
		"negative":     `{"disease": "rust", "duration": -1}`,
		"not json":     `{`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			code, _ := call(t, e, http.MethodPost, "/api/treatment-plans", "U1", body)
			assert.Equal(t, http.StatusBadRequest, code)
		})
	}
}

func TestAnonymousRejected(t *testing.T) {
	e := newServer(t)
	code, _ := call(t, e, http.MethodGet, "/api/treatment-plans", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }
