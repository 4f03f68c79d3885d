package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gyeh/claimstats/internal/model"
	"github.com/gyeh/claimstats/internal/normalize"
	"github.com/gyeh/claimstats/internal/tabular"
)

// DefaultListen is the HTTP listen address used when none is configured.
const DefaultListen = ":8080"

// DefaultReportName is the download name of the exported workbook.
const DefaultReportName = "Insurance_Claims_Report.xlsx"

// Config holds all runtime configuration for a claimsreport run.
type Config struct {
	FilePath   string
	Format     string // "" = detect from extension
	ConfigPath string
	LogFormat  string // "text" or "json"
	LogLevel   string
	OutPath    string
	Listen     string
	// MaxUploadBytes caps multipart uploads on the HTTP surface.
	MaxUploadBytes int64
	Years          []string          // raw year selection, may include "ALL"
	Payers         []string          // raw payer selection, may include "ALL"
	Columns        map[string]string // field key -> source header override
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	Columns map[string]string `yaml:"columns"`
	Years   []string          `yaml:"years"`
	Payers  []string          `yaml:"payers"`
	Listen  string            `yaml:"listen"`
}

// LoadFromFile reads a YAML config file and merges its values into Config.
// Values already set from flags win over the file.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if len(yc.Columns) > 0 {
		if c.Columns == nil {
			c.Columns = make(map[string]string, len(yc.Columns))
		}
		for k, v := range yc.Columns {
			if _, set := c.Columns[k]; !set {
				c.Columns[k] = v
			}
		}
	}
	if len(c.Years) == 0 {
		c.Years = yc.Years
	}
	if len(c.Payers) == 0 {
		c.Payers = yc.Payers
	}
	if c.Listen == "" {
		c.Listen = yc.Listen
	}
	return c.validateColumns()
}

// validateColumns checks that every override key names a known field.
func (c *Config) validateColumns() error {
	for key, header := range c.Columns {
		if _, ok := model.FieldByKey(key); !ok {
			return fmt.Errorf("unknown column key %q in config", key)
		}
		if normalize.NormalizeHeader(header) == "" {
			return fmt.Errorf("empty header for column %q in config", key)
		}
	}
	return nil
}

// Headers resolves field keys to the source headers to read.
func (c *Config) Headers() map[string]string {
	return model.HeaderMap(c.Columns)
}

// ListenAddr returns the configured listen address or DefaultListen.
func (c *Config) ListenAddr() string {
	if c.Listen == "" {
		return DefaultListen
	}
	return c.Listen
}

// Load merges the optional config file, if one is set, and validates the
// shared settings. It does not require an input file.
func (c *Config) Load() error {
	if c.ConfigPath != "" {
		if err := c.LoadFromFile(c.ConfigPath); err != nil {
			return err
		}
	}
	if c.Format != "" {
		if _, err := tabular.ParseFormat(c.Format); err != nil {
			return err
		}
	}
	return c.validateColumns()
}

// Validate checks required fields and returns an error if the config is invalid.
func (c *Config) Validate() error {
	if err := c.Load(); err != nil {
		return err
	}
	if c.FilePath == "" {
		return fmt.Errorf("--file is required")
	}
	if _, err := os.Stat(c.FilePath); err != nil {
		return fmt.Errorf("file not accessible: %w", err)
	}
	return nil
}

// ValidateWithOutput checks the input file and the export destination.
func (c *Config) ValidateWithOutput() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.OutPath == "" {
		return fmt.Errorf("--out is required")
	}
	return nil
}

// InputFormat returns the explicit input format, or "" to detect.
func (c *Config) InputFormat() tabular.Format {
	if c.Format == "" {
		return ""
	}
	f, _ := tabular.ParseFormat(c.Format)
	return f
}
