package types

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"agrieye/pkg/optimizer"
)

// LooseFloat accepts a JSON number or a numeric string. Anything else
// decodes as invalid instead of failing the request, so the optimizer can
// substitute its default.
type LooseFloat struct {
	Value float64
	Valid bool
}

func (l *LooseFloat) UnmarshalJSON(b []byte) error {
	*l = LooseFloat{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
	} else {
		s = string(b)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	l.Value, l.Valid = v, true
	return nil
}

func (l LooseFloat) MarshalJSON() ([]byte, error) {
	if !l.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(l.Value)
}

func (l LooseFloat) Ptr() *float64 {
	if !l.Valid {
		return nil
	}
	v := l.Value
	return &v
}

// LooseString accepts a JSON string or number; ids from the web client
// arrive as either.
type LooseString string

func (l *LooseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*l = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = LooseString(s)
		return nil
	}
	*l = LooseString(b)
	return nil
}

// Severity accepts a number, a numeric string, or a label the diagnosis
// step emits (low, medium, high).
type Severity struct {
	LooseFloat
}

var severityLabels = map[string]float64{
	"low":      0.2,
	"mild":     0.2,
	"medium":   0.5,
	"moderate": 0.5,
	"high":     0.8,
	"severe":   0.8,
	"critical": 0.95,
}

func (s *Severity) UnmarshalJSON(b []byte) error {
	if err := s.LooseFloat.UnmarshalJSON(b); err != nil || s.Valid {
		return err
	}
	var label string
	if json.Unmarshal(b, &label) == nil {
		if v, ok := severityLabels[strings.ToLower(strings.TrimSpace(label))]; ok {
			s.Value, s.Valid = v, true
		}
	}
	return nil
}

// TreatmentIn is one element of the optimize payload. Category may arrive
// under the legacy "type" key.
type TreatmentIn struct {
	ID              LooseString `json:"id"`
	Name            string      `json:"name"`
	Category        string      `json:"category"`
	Type            string      `json:"type"`
	Effectiveness   LooseFloat  `json:"effectiveness"`
	Cost            LooseFloat  `json:"cost"`
	SideEffects     LooseFloat  `json:"side_effects"`
	PreventionValue LooseFloat  `json:"prevention_value"`
}

func (t TreatmentIn) Input() optimizer.Input {
	cat := t.Category
	if strings.TrimSpace(cat) == "" {
		cat = t.Type
	}
	return optimizer.Input{
		ID:              string(t.ID),
		Name:            t.Name,
		Category:        cat,
		Effectiveness:   t.Effectiveness.Ptr(),
		Cost:            t.Cost.Ptr(),
		SideEffects:     t.SideEffects.Ptr(),
		PreventionValue: t.PreventionValue.Ptr(),
	}
}

// OptimizeRequest is the service-level request after decoding.
type OptimizeRequest struct {
	UserID     string
	Disease    string
	Severity   Severity
	Treatments []optimizer.Input
}

func Inputs(ts []TreatmentIn) []optimizer.Input {
	out := make([]optimizer.Input, len(ts))
	for i, t := range ts {
		out[i] = t.Input()
	}
	return out
}
