// Package catalog reads upstream treatment attribute estimates from
// spreadsheets and web tables.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"

	"agrieye/entities"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatHTML Format = "html"
)

var ErrUnsupportedFormat = errors.New("unsupported catalog format")

// FormatOf guesses the format from a file name or a Content-Type.
func FormatOf(nameOrType string) (Format, error) {
	s := strings.ToLower(strings.TrimSpace(nameOrType))
	switch {
	case strings.Contains(s, "text/csv"), path.Ext(s) == ".csv":
		return FormatCSV, nil
	case strings.Contains(s, "spreadsheetml"), path.Ext(s) == ".xlsx":
		return FormatXLSX, nil
	case strings.Contains(s, "text/html"), path.Ext(s) == ".html", path.Ext(s) == ".htm":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, nameOrType)
}

// Parse reads catalog rows. Disease is only set when the source has a
// disease column.
func Parse(f Format, r io.Reader) ([]entities.CatalogTreatment, error) {
	switch f {
	case FormatCSV:
		return ParseCSV(r)
	case FormatXLSX:
		return ParseXLSX(r)
	case FormatHTML:
		return ParseHTML(r)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

func ParseCSV(r io.Reader) ([]entities.CatalogTreatment, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(recs) == 0 {
		return nil, errors.New("csv is empty")
	}
	return fromRecords(recs[0], recs[1:])
}

// ParseXLSX reads the "Treatments" sheet, else the first sheet.
func ParseXLSX(r io.Reader) ([]entities.CatalogTreatment, error) {
	x, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer x.Close()

	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("xlsx has no sheets")
	}
	sheet := sheets[0]
	for _, s := range sheets {
		if strings.EqualFold(s, "Treatments") {
			sheet = s
			break
		}
	}
	rows, err := x.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheet)
	}
	return fromRecords(rows[0], rows[1:])
}

// ParseHTML uses the first table whose header names a treatment column.
func ParseHTML(r io.Reader) ([]entities.CatalogTreatment, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	var (
		out   []entities.CatalogTreatment
		found bool
		perr  error
	)
	doc.Find("table").EachWithBreak(func(_ int, tbl *goquery.Selection) bool {
		var recs [][]string
		tbl.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			var cells []string
			tr.Find("th,td").Each(func(_ int, td *goquery.Selection) {
				cells = append(cells, strings.TrimSpace(td.Text()))
			})
			if len(cells) > 0 {
				recs = append(recs, cells)
			}
		})
		if len(recs) == 0 || newColumns(recs[0]).name < 0 {
			return true
		}
		found = true
		out, perr = fromRecords(recs[0], recs[1:])
		return false
	})
	if perr != nil {
		return nil, perr
	}
	if !found {
		return nil, errors.New("no treatment table found")
	}
	return out, nil
}

// columns maps header aliases to record positions; -1 means absent.
type columns struct {
	name, category, disease                      int
	effectiveness, cost, sideEffects, prevention int
}

func normHeader(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF") // BOM
	s = strings.ToLower(s)
	for _, sep := range []string{" ", "-", "_"} {
		s = strings.ReplaceAll(s, sep, "")
	}
	return s
}

func newColumns(head []string) columns {
	hmap := map[string]int{}
	for i, h := range head {
		hmap[normHeader(h)] = i
	}
	findAny := func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := hmap[normHeader(k)]; ok {
				return idx
			}
		}
		return -1
	}
	return columns{
		name:          findAny("name", "treatment", "treatment_name", "product"),
		category:      findAny("category", "type", "kind"),
		disease:       findAny("disease", "ailment"),
		effectiveness: findAny("effectiveness", "efficacy", "eff"),
		cost:          findAny("cost", "cost_index", "price_index"),
		sideEffects:   findAny("side_effects", "environmental_impact", "impact", "toxicity"),
		prevention:    findAny("prevention_value", "prevention", "preventive_value"),
	}
}

func fromRecords(head []string, recs [][]string) ([]entities.CatalogTreatment, error) {
	cols := newColumns(head)
	if cols.name == -1 || cols.category == -1 {
		return nil, fmt.Errorf("catalog missing required columns. Found headers: %v; need at least name and category", head)
	}
	out := make([]entities.CatalogTreatment, 0, len(recs))
	for _, rec := range recs {
		// guard against short rows
		get := func(idx int) string {
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}
		name := get(cols.name)
		if name == "" {
			continue
		}
		out = append(out, entities.CatalogTreatment{
			Disease:         get(cols.disease),
			Name:            name,
			Category:        strings.ToLower(get(cols.category)),
			Effectiveness:   parseUnit(get(cols.effectiveness)),
			Cost:            parseUnit(get(cols.cost)),
			SideEffects:     parseUnit(get(cols.sideEffects)),
			PreventionValue: parseUnit(get(cols.prevention)),
		})
	}
	return out, nil
}

// parseUnit reads "0.8", "80%" or blank. Range checks are the optimizer's job.
func parseUnit(s string) *float64 {
	if s == "" {
		return nil
	}
	pct := strings.HasSuffix(s, "%")
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	if pct {
		v /= 100
	}
	return &v
}
