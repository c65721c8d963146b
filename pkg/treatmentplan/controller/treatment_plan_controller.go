package controller

import "github.com/labstack/echo/v4"

type TreatmentPlanController interface {
	List(c echo.Context) error
	Get(c echo.Context) error
	Create(c echo.Context) error
	Delete(c echo.Context) error
	UpdateTask(c echo.Context) error
}
