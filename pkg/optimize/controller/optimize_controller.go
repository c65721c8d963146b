package controller

import "github.com/labstack/echo/v4"

type OptimizeController interface {
	Optimize(c echo.Context) error
	Runs(c echo.Context) error
	Run(c echo.Context) error
}
