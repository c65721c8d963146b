package controller

import "github.com/labstack/echo/v4"

type CatalogController interface {
	Import(c echo.Context) error
	List(c echo.Context) error
	Diseases(c echo.Context) error
	Delete(c echo.Context) error
	Optimize(c echo.Context) error
}
