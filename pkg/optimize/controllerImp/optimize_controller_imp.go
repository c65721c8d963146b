package controllerImp

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"agrieye/entities"
	"agrieye/pkg/optimize/controller"
	"agrieye/pkg/optimize/service"
	"agrieye/pkg/optimize/serviceImp"
	"agrieye/pkg/optimize/types"
	"agrieye/pkg/optimizer"
)

type OptimizeCtrl struct{ svc service.OptimizeService }

var _ controller.OptimizeController = (*OptimizeCtrl)(nil)

func New(svc service.OptimizeService) *OptimizeCtrl { return &OptimizeCtrl{svc: svc} }

type optimizeReq struct {
	Disease    string          `json:"disease"`
	Severity   types.Severity  `json:"severity"`
	Treatments json.RawMessage `json:"treatments"`
}

func uidOf(c echo.Context) string {
	uid, _ := c.Get("uid").(string)
	return uid
}

func (h *OptimizeCtrl) Optimize(c echo.Context) error {
	var body optimizeReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	raw := bytes.TrimSpace(body.Treatments)
	if len(raw) == 0 || raw[0] != '[' {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid input: treatments array required"})
	}
	var items []types.TreatmentIn
	if err := json.Unmarshal(raw, &items); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid input: treatments must be objects"})
	}

	res, run, err := h.svc.Optimize(types.OptimizeRequest{
		UserID:     uidOf(c),
		Disease:    body.Disease,
		Severity:   body.Severity,
		Treatments: types.Inputs(items),
	})
	if errors.Is(err, optimizer.ErrInvalidInput) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error", "details": err.Error()})
	}
	if run != nil {
		c.Response().Header().Set("X-Run-Id", strconv.FormatUint(uint64(run.RunID), 10))
	}
	return c.JSON(http.StatusOK, res)
}

func (h *OptimizeCtrl) Runs(c echo.Context) error {
	limit := 20
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		limit = v
	}
	runs, err := h.svc.Runs(uidOf(c), limit)
	if errors.Is(err, serviceImp.ErrHistoryDisabled) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if runs == nil {
		runs = []entities.OptimizationRun{}
	}
	return c.JSON(http.StatusOK, runs)
}

func (h *OptimizeCtrl) Run(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	run, res, err := h.svc.Run(uint(id), uidOf(c))
	switch {
	case errors.Is(err, serviceImp.ErrHistoryDisabled), errors.Is(err, gorm.ErrRecordNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "run not found"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"run": run, "result": res})
}
