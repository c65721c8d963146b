package controllerImp

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"agrieye/entities"
	"agrieye/pkg/catalog"
	"agrieye/pkg/catalog/controller"
	"agrieye/pkg/catalog/service"
	"agrieye/pkg/catalog/serviceImp"
	"agrieye/pkg/optimize/types"
	"agrieye/pkg/optimizer"
)

type CatalogCtrl struct{ s service.CatalogService }

var _ controller.CatalogController = (*CatalogCtrl)(nil)

func New(s service.CatalogService) *CatalogCtrl { return &CatalogCtrl{s: s} }

// Import takes either a multipart "file" or a JSON body {"url": "..."}.
func (h *CatalogCtrl) Import(c echo.Context) error {
	disease := c.Param("disease")
	ct := c.Request().Header.Get(echo.HeaderContentType)

	if strings.HasPrefix(ct, echo.MIMEMultipartForm) {
		fh, err := c.FormFile("file")
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "file required"})
		}
		format, err := catalog.FormatOf(fh.Filename)
		if err != nil {
			return c.JSON(http.StatusUnsupportedMediaType, map[string]string{"error": err.Error()})
		}
		f, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		defer f.Close()
		rep, err := h.s.Import(disease, format, f, "upload:"+fh.Filename)
		if err != nil {
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, rep)
	}

	var body struct {
		URL string `json:"url"`
	}
	if err := c.Bind(&body); err != nil || strings.TrimSpace(body.URL) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "url or file required"})
	}
	rep, err := h.s.ImportURL(c.Request().Context(), disease, strings.TrimSpace(body.URL))
	switch {
	case errors.Is(err, catalog.ErrDomainNotAllowed):
		return c.JSON(http.StatusForbidden, map[string]string{"error": err.Error()})
	case errors.Is(err, catalog.ErrUnsupportedFormat):
		return c.JSON(http.StatusUnsupportedMediaType, map[string]string{"error": err.Error()})
	case errors.Is(err, catalog.ErrTooLarge):
		return c.JSON(http.StatusRequestEntityTooLarge, map[string]string{"error": err.Error()})
	case err != nil:
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, rep)
}

func (h *CatalogCtrl) List(c echo.Context) error {
	rows, err := h.s.List(c.Param("disease"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if rows == nil {
		rows = []entities.CatalogTreatment{}
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *CatalogCtrl) Diseases(c echo.Context) error {
	ds, err := h.s.Diseases()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if ds == nil {
		ds = []string{}
	}
	return c.JSON(http.StatusOK, ds)
}

func (h *CatalogCtrl) Delete(c echo.Context) error {
	n, err := h.s.Delete(c.Param("disease"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]int64{"deleted": n})
}

func (h *CatalogCtrl) Optimize(c echo.Context) error {
	var body struct {
		Severity types.Severity `json:"severity"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	uid, _ := c.Get("uid").(string)
	res, _, err := h.s.Optimize(uid, c.Param("disease"), body.Severity)
	switch {
	case errors.Is(err, serviceImp.ErrEmptyCatalog):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, optimizer.ErrInvalidInput):
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, res)
}
