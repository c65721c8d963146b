package optimizer

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func testNormalizer() Normalizer {
	return Normalizer{Base: DefaultDefaults(), DefaultSeverity: 0.5}
}

func TestNormalizeClampsAndDefaults(t *testing.T) {
	n := testNormalizer()
	cases := []struct {
		name string
		in   float64
		want float64
	}{
		{"inside", 0.42, 0.42},
		{"below", -3, 0},
		{"above", 7.5, 1},
		{"nan", math.NaN(), 0.3},
		{"posinf", math.Inf(1), 0.3},
		{"neginf", math.Inf(-1), 0.3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, n.Normalize(tc.in, 0.3))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := testNormalizer()
	for _, v := range []float64{-1, 0, 0.1, 0.5, 0.999, 1, 2, math.NaN()} {
		once := n.Normalize(v, 0.5)
		assert.Equal(t, once, n.Normalize(once, 0.5))
	}
}

func TestTreatmentsFillsDefaults(t *testing.T) {
	n := testNormalizer()
	out, err := n.Treatments([]Input{{Name: "Neem oil", Category: "Natural"}})
	require.NoError(t, err)
	require.Len(t, out, 1)

	got := out[0]
	assert.Equal(t, "Neem oil", got.ID)
	assert.Equal(t, Natural, got.Category)
	assert.Equal(t, 0.5, got.Effectiveness)
	assert.Equal(t, 0.5, got.Cost)
	assert.Equal(t, 0.1, got.SideEffects)
	assert.Equal(t, 0.0, got.PreventionValue)
}

func TestTreatmentsCategoryOverride(t *testing.T) {
	n := testNormalizer()
	n.PerCategory = map[Category]Defaults{
		Prevention: {Effectiveness: 0.3, Cost: 0.1, SideEffects: 0, PreventionValue: 0.8},
	}
	out, err := n.Treatments([]Input{
		{ID: "p", Category: "prevention"},
		{ID: "c", Category: "chemical"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0.8, out[0].PreventionValue)
	assert.Equal(t, 0.3, out[0].Effectiveness)
	assert.Equal(t, 0.5, out[1].Effectiveness)
}

func TestTreatmentsAnonymousIDsAreStableAndUnique(t *testing.T) {
	n := testNormalizer()
	in := []Input{{Category: "chemical"}, {Category: "chemical"}, {Category: "natural"}}

	a, err := n.Treatments(in)
	require.NoError(t, err)
	b, err := n.Treatments(in)
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := range a {
		assert.NotEmpty(t, a[i].ID)
		assert.Equal(t, a[i].ID, b[i].ID)
		assert.False(t, seen[a[i].ID], "duplicate id %s", a[i].ID)
		seen[a[i].ID] = true
	}
}

func TestTreatmentsSharedNameGetsDistinctIDs(t *testing.T) {
	n := testNormalizer()
	in := []Input{
		{Name: "Neem oil", Category: "natural"},
		{Name: "Neem oil", Category: "natural"},
		{ID: "Neem oil#2", Name: "Copper", Category: "chemical"},
		{Name: "Neem oil", Category: "natural"},
	}

	ts, err := n.Treatments(in)
	require.NoError(t, err)
	assert.Equal(t, "Neem oil", ts[0].ID)
	assert.Equal(t, "Neem oil#1", ts[1].ID)
	assert.Equal(t, "Neem oil#2", ts[2].ID)
	assert.NotEqual(t, "Neem oil#2", ts[3].ID)

	seen := map[string]bool{}
	for _, tr := range ts {
		assert.False(t, seen[tr.ID], "duplicate id %s", tr.ID)
		seen[tr.ID] = true
	}

	again, err := n.Treatments(in)
	require.NoError(t, err)
	assert.Equal(t, ts, again)
}

func TestDefaultsValidate(t *testing.T) {
	assert.NoError(t, DefaultDefaults().Validate())
	assert.Error(t, Defaults{Effectiveness: 2.5}.Validate())
	assert.Error(t, Defaults{Cost: -1}.Validate())
	assert.Error(t, Defaults{SideEffects: math.NaN()}.Validate())
	assert.Error(t, Defaults{PreventionValue: math.Inf(1)}.Validate())
}

func TestNewClampsConfiguredDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultSeverity = 4
	cfg.Defaults = Defaults{Effectiveness: 2.5, Cost: -1, SideEffects: math.NaN(), PreventionValue: 0.3}
	cfg.CategoryDefault = map[Category]Defaults{Prevention: {Effectiveness: math.Inf(-1), Cost: 3}}
	o := New(cfg)

	res, err := o.OptimizeAll([]Input{
		{ID: "n", Category: "natural"},
		{ID: "p", Category: "prevention"},
	}, math.NaN())
	require.NoError(t, err)

	nat := res.Strategies.Balanced.Details[0].Treatment
	if nat.ID != "n" {
		nat = res.Strategies.Balanced.Details[1].Treatment
	}
	assert.Equal(t, 1.0, nat.Effectiveness)
	assert.Equal(t, 0.0, nat.Cost)
	assert.Equal(t, DefaultDefaults().SideEffects, nat.SideEffects)
	assert.Equal(t, 1.0, o.Normalizer().Severity(math.NaN()))

	prev := o.Normalizer().PerCategory[Prevention]
	assert.Equal(t, 1.0, prev.Effectiveness)
	assert.Equal(t, 1.0, prev.Cost)

	_, err = json.Marshal(res)
	assert.NoError(t, err)
}

func TestTreatmentsDoesNotMutateInput(t *testing.T) {
	n := testNormalizer()
	in := []Input{{Category: "chemical", Effectiveness: f(4)}}
	_, err := n.Treatments(in)
	require.NoError(t, err)
	assert.Equal(t, 4.0, *in[0].Effectiveness)
	assert.Empty(t, in[0].ID)
}

func TestTreatmentsRejectsMissingCategory(t *testing.T) {
	n := testNormalizer()
	_, err := n.Treatments([]Input{{ID: "ok", Category: "natural"}, {ID: "bad"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, 1, ve.Index)

	_, err = n.Treatments([]Input{{Category: "biological"}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSeverityNormalization(t *testing.T) {
	n := testNormalizer()
	assert.Equal(t, 0.5, n.Severity(math.NaN()))
	assert.Equal(t, 1.0, n.Severity(3))
	assert.Equal(t, 0.0, n.Severity(0))
	assert.Equal(t, 0.9, n.Severity(0.9))
}
