package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrieye/pkg/optimizer"
)

func TestParseOptimizerOverrides(t *testing.T) {
	cfg, err := ParseOptimizer([]byte(`
default_severity: 0.4
defaults:
  side_effects: 0.2
categories:
  Prevention:
    prevention_value: 0.8
`))
	require.NoError(t, err)

	assert.Equal(t, 0.4, cfg.DefaultSeverity)
	assert.Equal(t, 0.5, cfg.Defaults.Effectiveness)
	assert.Equal(t, 0.2, cfg.Defaults.SideEffects)

	prev := cfg.CategoryDefault[optimizer.Prevention]
	assert.Equal(t, 0.8, prev.PreventionValue)
	assert.Equal(t, 0.2, prev.SideEffects)
	assert.NotNil(t, cfg.Now)
}

func TestParseOptimizerUnknownCategory(t *testing.T) {
	_, err := ParseOptimizer([]byte("categories:\n  fungal: {cost: 0.2}\n"))
	assert.Error(t, err)
}

func TestLoadOptimizerFile(t *testing.T) {
	cfg, err := LoadOptimizer("")
	require.NoError(t, err)
	assert.Equal(t, optimizer.DefaultDefaults(), cfg.Defaults)

	path := filepath.Join(t.TempDir(), "optimizer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("defaults:\n  cost: 0.7\n"), 0o600))
	cfg, err = LoadOptimizer(path)
	require.NoError(t, err)
	assert.Equal(t, 0.7, cfg.Defaults.Cost)

	_, err = LoadOptimizer(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("REQUIRE_AUTH", "true")
	t.Setenv("CATALOG_ALLOWED_DOMAINS", "Extension.example.org, ,plantwise.org")
	t.Setenv("CATALOG_MAX_BYTES", "nope")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.RequireAuth)
	assert.Equal(t, []string{"extension.example.org", "plantwise.org"}, cfg.CatalogAllow)
	assert.Equal(t, 1500000, cfg.CatalogMaxBytes)
}

func TestParseOptimizerRejectsOutOfRange(t *testing.T) {
	cases := map[string]string{
		"severity above one":    "default_severity: 4\n",
		"severity negative":     "default_severity: -0.1\n",
		"severity nan":          "default_severity: .nan\n",
		"effectiveness above":   "defaults: {effectiveness: 2.5}\n",
		"cost negative":         "defaults: {cost: -1}\n",
		"side effects nan":      "defaults: {side_effects: .nan}\n",
		"prevention inf":        "defaults: {prevention_value: .inf}\n",
		"category out of range": "categories:\n  natural: {cost: 1.5}\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseOptimizer([]byte(src))
			assert.Error(t, err)
		})
	}
}

func TestParseOptimizerAcceptsBounds(t *testing.T) {
	cfg, err := ParseOptimizer([]byte("default_severity: 0\ndefaults: {effectiveness: 1, cost: 0}\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.DefaultSeverity)
	assert.Equal(t, 1.0, cfg.Defaults.Effectiveness)
	assert.Equal(t, 0.0, cfg.Defaults.Cost)
}
