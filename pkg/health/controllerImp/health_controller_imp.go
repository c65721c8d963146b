package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"agrieye/pkg/optimizer"
)

var appStart = time.Now()

type HealthCtrl struct {
	db  *gorm.DB
	opt *optimizer.Optimizer
}

func NewHealthCtrl(db *gorm.DB, opt *optimizer.Optimizer) *HealthCtrl {
	return &HealthCtrl{db: db, opt: opt}
}

// probe is one treatment per category; every plan must come back non-empty.
var probe = []optimizer.Input{
	{ID: "probe-c", Category: "chemical"},
	{ID: "probe-n", Category: "natural"},
	{ID: "probe-p", Category: "prevention"},
}

type sub struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

func (h *HealthCtrl) checkDB(ctx context.Context) sub {
	if h.db == nil {
		return sub{Err: "gorm db is nil"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return sub{Err: "db.DB(): " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return sub{Err: "ping: " + err.Error()}
	}
	return sub{OK: true}
}

func (h *HealthCtrl) checkOptimizer() sub {
	if h.opt == nil {
		return sub{Err: "optimizer not wired"}
	}
	res, err := h.opt.OptimizeAll(probe, 0.9)
	if err != nil {
		return sub{Err: err.Error()}
	}
	for _, s := range optimizer.AllStrategies {
		if len(res.Strategies.Get(s).Details) == 0 {
			return sub{Err: s.String() + " plan empty"}
		}
	}
	return sub{OK: true}
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	dbCheck := h.checkDB(ctx)
	optCheck := h.checkOptimizer()

	allOK := dbCheck.OK && optCheck.OK
	status := http.StatusOK
	if !allOK {
		status = http.StatusServiceUnavailable
	}

	resp := map[string]any{
		"status":     map[string]any{"ok": allOK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": map[string]any{
			"database":  dbCheck,
			"optimizer": optCheck,
		},
		"time": time.Now().Format(time.RFC3339),
	}

	return c.JSON(status, resp)
}
