// Package config resolves rfpwatch settings from defaults, an optional YAML
// file and RFPWATCH_* environment variables, in that order of precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/rfpwatch/internal/aggregator"
	"github.com/alexanderramin/rfpwatch/internal/domain"
	"gopkg.in/yaml.v3"
)

// Source selects where dashboard records come from.
type Source string

const (
	SourceSample  Source = "sample"
	SourceFile    Source = "file"
	SourceCatalog Source = "catalog"
)

// Sources lists every accepted record source.
var Sources = []Source{SourceSample, SourceFile, SourceCatalog}

// Valid reports whether s is a known source.
func (s Source) Valid() bool {
	for _, v := range Sources {
		if s == v {
			return true
		}
	}
	return false
}

const (
	EnvConfig        = "RFPWATCH_CONFIG"
	EnvDB            = "RFPWATCH_DB"
	EnvRecords       = "RFPWATCH_RECORDS"
	EnvSource        = "RFPWATCH_SOURCE"
	EnvLogLevel      = "RFPWATCH_LOG_LEVEL"
	EnvLogUseCases   = "RFPWATCH_LOG_USECASES"
	EnvDueWindowDays = "RFPWATCH_DUE_WINDOW_DAYS"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all rfpwatch settings.
type Config struct {
	DBPath        string   `yaml:"db_path"`
	RecordsFile   string   `yaml:"records_file"`
	Source        Source   `yaml:"source"`
	Stages        []string `yaml:"stages"`
	DueWindowDays int      `yaml:"due_window_days"`
	VendorTopN    int      `yaml:"vendor_top_n"`
	DueSoonLimit  int      `yaml:"due_soon_limit"`
	LogLevel      string   `yaml:"log_level"`
	LogUseCases   bool     `yaml:"log_use_cases"`
}

// DefaultConfig returns the built-in settings: sample records, the
// seven-stage workflow and the catalog under ~/.rfpwatch.
func DefaultConfig() Config {
	stages := make([]string, 0, len(domain.DefaultStages))
	for _, s := range domain.DefaultStages {
		stages = append(stages, string(s))
	}
	return Config{
		DBPath:        defaultDBPath(),
		Source:        SourceSample,
		Stages:        stages,
		DueWindowDays: aggregator.DefaultDueWindowDays,
		VendorTopN:    aggregator.DefaultVendorTopN,
		DueSoonLimit:  aggregator.DefaultDueSoonLimit,
		LogLevel:      "warn",
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".rfpwatch", "catalog.db")
	}
	return filepath.Join(home, ".rfpwatch", "catalog.db")
}

// LoadConfig builds the effective configuration. path names an optional YAML
// file; when empty, RFPWATCH_CONFIG is consulted. Environment variables
// override file values. The result is validated.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := decodeYAML(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", filepath.Base(path), err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// decodeYAML overlays data on cfg, rejecting unknown keys.
func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvDB); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(EnvRecords); v != "" {
		cfg.RecordsFile = v
	}
	if v := os.Getenv(EnvSource); v != "" {
		cfg.Source = Source(strings.ToLower(v))
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogUseCases); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidConfig, EnvLogUseCases, v)
		}
		cfg.LogUseCases = b
	}
	if v := os.Getenv(EnvDueWindowDays); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, EnvDueWindowDays, v)
		}
		cfg.DueWindowDays = n
	}
	return nil
}

// Validate checks source, stages and list sizes.
func (c Config) Validate() error {
	if !c.Source.Valid() {
		return fmt.Errorf("%w: unknown source %q (want sample, file or catalog)", ErrInvalidConfig, c.Source)
	}
	if c.Source == SourceFile && c.RecordsFile == "" {
		return fmt.Errorf("%w: source %q needs records_file or %s", ErrInvalidConfig, SourceFile, EnvRecords)
	}
	if _, err := c.AggregatorConfig(); err != nil {
		return err
	}
	return nil
}

// AggregatorConfig converts the stage list and list sizes.
func (c Config) AggregatorConfig() (aggregator.Config, error) {
	statuses := make([]domain.Status, 0, len(c.Stages))
	for _, s := range c.Stages {
		statuses = append(statuses, domain.Status(strings.TrimSpace(s)))
	}
	stages, err := domain.NewStageSet(statuses)
	if err != nil {
		return aggregator.Config{}, fmt.Errorf("%w: stages: %v", ErrInvalidConfig, err)
	}
	ac := aggregator.Config{
		Stages:        stages,
		DueWindowDays: c.DueWindowDays,
		VendorTopN:    c.VendorTopN,
		DueSoonLimit:  c.DueSoonLimit,
	}
	if err := ac.Validate(); err != nil {
		return aggregator.Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return ac, nil
}
