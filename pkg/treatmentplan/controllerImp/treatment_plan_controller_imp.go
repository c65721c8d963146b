package controllerImp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"agrieye/entities"
	"agrieye/pkg/optimize/types"
	"agrieye/pkg/optimizer"
	"agrieye/pkg/treatmentplan/controller"
	"agrieye/pkg/treatmentplan/repository"
)

type TreatmentPlanCtrl struct {
	repo repository.TreatmentPlanRepository
	log  *zap.Logger
}

func New(repo repository.TreatmentPlanRepository, log *zap.Logger) *TreatmentPlanCtrl {
	if log == nil {
		log = zap.NewNop()
	}
	return &TreatmentPlanCtrl{repo: repo, log: log.Named("treatmentplan")}
}

var _ controller.TreatmentPlanController = (*TreatmentPlanCtrl)(nil)

type createBody struct {
	Disease            string            `json:"disease"`
	Severity           types.LooseString `json:"severity"`
	TreatmentType      string            `json:"treatmentType"`
	Strategy           string            `json:"strategy"`
	RunID              *uint             `json:"runId"`
	Duration           int               `json:"duration"`
	Schedule           json.RawMessage   `json:"schedule"`
	Medicines          json.RawMessage   `json:"medicines"`
	NaturalTreatments  json.RawMessage   `json:"naturalTreatments"`
	PreventiveMeasures json.RawMessage   `json:"preventiveMeasures"`
}

// planView is a stored plan plus its task marks keyed "day-index".
type planView struct {
	entities.TreatmentPlan
	CompletedTasks map[string]bool `json:"completedTasks"`
}

func uidOf(c echo.Context) string {
	uid, _ := c.Get("uid").(string)
	return uid
}

func planID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return uint(id), err == nil
}

func (h *TreatmentPlanCtrl) List(c echo.Context) error {
	ps, err := h.repo.ListByUser(uidOf(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if ps == nil {
		ps = []entities.TreatmentPlan{}
	}
	return c.JSON(http.StatusOK, ps)
}

func (h *TreatmentPlanCtrl) Get(c echo.Context) error {
	id, ok := planID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid plan id"})
	}
	p, err := h.repo.FindByID(id, uidOf(c))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Treatment plan not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	tasks, err := h.repo.Tasks(p.PlanID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	done := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		done[fmt.Sprintf("%d-%d", t.DayNumber, t.TaskIndex)] = t.Completed
	}
	return c.JSON(http.StatusOK, planView{TreatmentPlan: *p, CompletedTasks: done})
}

func (h *TreatmentPlanCtrl) Create(c echo.Context) error {
	var body createBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	body.Disease = strings.TrimSpace(body.Disease)
	if body.Disease == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "disease required"})
	}
	if body.Duration < 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "duration must be >= 0"})
	}
	if body.Strategy != "" {
		if _, err := optimizer.ParseStrategy(body.Strategy); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
	}
	tt := strings.ToLower(strings.TrimSpace(body.TreatmentType))
	if tt == "" {
		tt = "medicine"
	}

	p := &entities.TreatmentPlan{
		UserID:             uidOf(c),
		Disease:            body.Disease,
		Severity:           string(body.Severity),
		TreatmentType:      tt,
		Strategy:           body.Strategy,
		RunID:              body.RunID,
		Duration:           body.Duration,
		Schedule:           orNull(body.Schedule),
		Medicines:          orNull(body.Medicines),
		NaturalTreatments:  orNull(body.NaturalTreatments),
		PreventiveMeasures: orNull(body.PreventiveMeasures),
	}
	if err := h.repo.Create(p); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	h.log.Info("plan created", zap.Uint("plan_id", p.PlanID), zap.String("uid", p.UserID), zap.String("disease", p.Disease))
	return c.JSON(http.StatusCreated, p)
}

// orNull keeps absent sections as a JSON null rather than an empty blob.
func orNull(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("null")
	}
	return raw
}

func (h *TreatmentPlanCtrl) Delete(c echo.Context) error {
	id, ok := planID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid plan id"})
	}
	n, err := h.repo.Delete(id, uidOf(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if n == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Treatment plan not found"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Treatment plan deleted successfully"})
}

func (h *TreatmentPlanCtrl) UpdateTask(c echo.Context) error {
	id, ok := planID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid plan id"})
	}
	var body struct {
		DayNumber *int `json:"dayNumber"`
		TaskIndex *int `json:"taskIndex"`
		Completed bool `json:"completed"`
	}
	if err := c.Bind(&body); err != nil || body.DayNumber == nil || body.TaskIndex == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "dayNumber and taskIndex required"})
	}
	if _, err := h.repo.FindByID(id, uidOf(c)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Treatment plan not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if err := h.repo.SetTask(id, *body.DayNumber, *body.TaskIndex, body.Completed); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Task updated successfully"})
}
