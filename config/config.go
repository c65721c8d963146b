package config

import (
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"agrieye/pkg/optimizer"
)

type AppConfig struct {
	Port            string
	DBPath          string
	LogLevel        string
	LogFormat       string
	RequireAuth     bool
	PersistRuns     bool
	OptimizerConfig string
	CatalogAllow    []string
	CatalogMaxBytes int
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	maxBytes, err := strconv.Atoi(get("CATALOG_MAX_BYTES", "1500000"))
	if err != nil || maxBytes <= 0 {
		maxBytes = 1500000
	}
	var allow []string
	for _, h := range strings.Split(get("CATALOG_ALLOWED_DOMAINS", ""), ",") {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			allow = append(allow, h)
		}
	}
	return AppConfig{
		Port:            get("PORT", "5000"),
		DBPath:          get("DB_PATH", "agrieye.db"),
		LogLevel:        get("LOG_LEVEL", "info"),
		LogFormat:       get("LOG_FORMAT", "json"),
		RequireAuth:     get("REQUIRE_AUTH", "false") == "true",
		PersistRuns:     get("PERSIST_RUNS", "true") == "true",
		OptimizerConfig: get("OPTIMIZER_CONFIG", ""),
		CatalogAllow:    allow,
		CatalogMaxBytes: maxBytes,
	}
}

// partialDefaults lets the YAML file override single attributes.
type partialDefaults struct {
	Effectiveness   *float64 `yaml:"effectiveness"`
	Cost            *float64 `yaml:"cost"`
	SideEffects     *float64 `yaml:"side_effects"`
	PreventionValue *float64 `yaml:"prevention_value"`
}

func (p partialDefaults) over(base optimizer.Defaults) optimizer.Defaults {
	if p.Effectiveness != nil {
		base.Effectiveness = *p.Effectiveness
	}
	if p.Cost != nil {
		base.Cost = *p.Cost
	}
	if p.SideEffects != nil {
		base.SideEffects = *p.SideEffects
	}
	if p.PreventionValue != nil {
		base.PreventionValue = *p.PreventionValue
	}
	return base
}

type optimizerFile struct {
	Severity   *float64                   `yaml:"default_severity"`
	Defaults   partialDefaults            `yaml:"defaults"`
	Categories map[string]partialDefaults `yaml:"categories"`
}

// ParseOptimizer reads normalizer defaults from YAML on top of
// optimizer.DefaultConfig.
//
//	default_severity: 0.5
//	defaults: {effectiveness: 0.5, cost: 0.5, side_effects: 0.1}
//	categories:
//	  prevention: {prevention_value: 0.8}
func ParseOptimizer(b []byte) (optimizer.Config, error) {
	cfg := optimizer.DefaultConfig()
	var f optimizerFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return cfg, fmt.Errorf("optimizer config: %w", err)
	}
	if f.Severity != nil {
		v := *f.Severity
		if math.IsNaN(v) || v < 0 || v > 1 {
			return cfg, fmt.Errorf("optimizer config: default_severity must be within [0,1], got %v", v)
		}
		cfg.DefaultSeverity = v
	}
	cfg.Defaults = f.Defaults.over(cfg.Defaults)
	if err := cfg.Defaults.Validate(); err != nil {
		return cfg, fmt.Errorf("optimizer config: %w", err)
	}
	if len(f.Categories) > 0 {
		cfg.CategoryDefault = make(map[optimizer.Category]optimizer.Defaults, len(f.Categories))
		for name, p := range f.Categories {
			cat, err := optimizer.ParseCategory(name)
			if err != nil {
				return cfg, fmt.Errorf("optimizer config: %w", err)
			}
			d := p.over(cfg.Defaults)
			if err := d.Validate(); err != nil {
				return cfg, fmt.Errorf("optimizer config: %s: %w", cat, err)
			}
			cfg.CategoryDefault[cat] = d
		}
	}
	return cfg, nil
}

// LoadOptimizer reads path; an empty path yields the built-in defaults.
func LoadOptimizer(path string) (optimizer.Config, error) {
	if path == "" {
		return optimizer.DefaultConfig(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return optimizer.DefaultConfig(), fmt.Errorf("optimizer config: %w", err)
	}
	return ParseOptimizer(b)
}
