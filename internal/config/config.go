// internal/config/config.go
//
// This package handles configuration and the .winstrategy directory.
// Every project directory the tracker runs in gets a .winstrategy/ folder
// holding config.yaml and the log files. Strategies themselves are never
// written here; they live only for the session.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kingrea/win-strategy/internal/strategy"
)

const (
	// StateDir is the name of the directory we create in each project
	StateDir = ".winstrategy"

	defaultTitle    = "Win Strategy Prototype - AreteDom"
	defaultTagline  = "This prototype aligns with AreteDom's strategy alignment principles from Corporate to Plant levels."
	defaultLogLines = 6
	maxLogLines     = 50
)

var defaultFooter = []string{
	"Adept Transformation Partners, LLC - AreteDom",
	"Strategy alignment tool prototype.",
}

const defaultProjectConfigYAML = `# win strategy tracker configuration
version: 1

branding:
  title: Win Strategy Prototype - AreteDom
  tagline: This prototype aligns with AreteDom's strategy alignment principles from Corporate to Plant levels.
  footer:
    - Adept Transformation Partners, LLC - AreteDom
    - Strategy alignment tool prototype.

form:
  # Level selected when the tracker opens: Corporate, Business Unit or Plant.
  default_level: Corporate
  # Empty the six inputs after a strategy is added.
  clear_on_submit: false

log_panel:
  enabled: true
  lines: 6
`

// BrandingConfig holds the static text around the dashboard.
type BrandingConfig struct {
	Title   string   `yaml:"title"`
	Tagline string   `yaml:"tagline"`
	Footer  []string `yaml:"footer"`
}

// FormConfig tunes the strategy input form.
type FormConfig struct {
	DefaultLevel  string `yaml:"default_level"`
	ClearOnSubmit *bool  `yaml:"clear_on_submit,omitempty"`
}

// LogPanelConfig controls the journal tail rendered under the dashboard.
type LogPanelConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`
	Lines   int   `yaml:"lines"`
}

// ProjectConfig models .winstrategy/config.yaml.
type ProjectConfig struct {
	Version  int            `yaml:"version"`
	Branding BrandingConfig `yaml:"branding"`
	Form     FormConfig     `yaml:"form"`
	LogPanel LogPanelConfig `yaml:"log_panel"`
}

// Config holds the runtime configuration for the tracker.
type Config struct {
	// ProjectDir is the directory the tracker was started in
	ProjectDir string

	// StateProjectDir is ProjectDir/.winstrategy
	StateProjectDir string

	Project ProjectConfig
}

// InitDir creates the .winstrategy directory structure in the given project
// directory and writes a default config.yaml when none exists.
//
// Structure created:
// .winstrategy/
// ├── config.yaml
// └── logs/         <- journey.log (session journal) and winstrategy.log
func InitDir(projectDir string) error {
	stateDir := filepath.Join(projectDir, StateDir)
	if err := os.MkdirAll(filepath.Join(stateDir, "logs"), 0o755); err != nil {
		return fmt.Errorf("config: create %s: %w", stateDir, err)
	}
	return ensureProjectConfig(filepath.Join(stateDir, "config.yaml"))
}

// NewConfig creates a Config populated from ProjectDir/.winstrategy/config.yaml.
// A missing file yields the defaults.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:      projectDir,
		StateProjectDir: filepath.Join(projectDir, StateDir),
		Project:         defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns an in-memory configuration that touches no files.
func Default() *Config {
	return &Config{Project: defaultProjectConfig()}
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.StateProjectDir, "logs")
}

// JournalPath returns the session journal location.
func (c *Config) JournalPath() string {
	return filepath.Join(c.LogsDir(), "journey.log")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.StateProjectDir, "config.yaml")
}

// Title returns the application heading.
func (c *Config) Title() string {
	return c.Project.Branding.Title
}

// Tagline returns the line printed under the title.
func (c *Config) Tagline() string {
	return c.Project.Branding.Tagline
}

// Footer returns the attribution lines.
func (c *Config) Footer() []string {
	return c.Project.Branding.Footer
}

// DefaultLevel returns the level selected at startup. The value was checked
// when the config loaded, so anything unparseable falls back to Corporate.
func (c *Config) DefaultLevel() strategy.Level {
	level, err := strategy.ParseLevel(c.Project.Form.DefaultLevel)
	if err != nil {
		return strategy.LevelCorporate
	}
	return level
}

// ClearOnSubmit reports whether the form empties after a successful add.
// Off by default: the inputs keep their text.
func (c *Config) ClearOnSubmit() bool {
	return boolOr(c.Project.Form.ClearOnSubmit, false)
}

// LogPanelEnabled reports whether the journal tail is rendered.
func (c *Config) LogPanelEnabled() bool {
	return boolOr(c.Project.LogPanel.Enabled, true)
}

// LogPanelLines returns how many journal lines the panel shows.
func (c *Config) LogPanelLines() int {
	return c.Project.LogPanel.Lines
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	pc := ProjectConfig{}
	pc.applyDefaults()
	return pc
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if strings.TrimSpace(pc.Branding.Title) == "" {
		pc.Branding.Title = defaultTitle
	}
	if pc.Branding.Footer == nil {
		pc.Branding.Footer = append([]string(nil), defaultFooter...)
	}
	if pc.Branding.Tagline == "" {
		pc.Branding.Tagline = defaultTagline
	}
	if strings.TrimSpace(pc.Form.DefaultLevel) == "" {
		pc.Form.DefaultLevel = strategy.LevelCorporate.String()
	}
	if pc.LogPanel.Lines == 0 {
		pc.LogPanel.Lines = defaultLogLines
	}
}

func (pc *ProjectConfig) normalize() {
	pc.Branding.Title = strings.TrimSpace(pc.Branding.Title)
	pc.Branding.Tagline = strings.TrimSpace(pc.Branding.Tagline)
	footer := pc.Branding.Footer[:0]
	for _, line := range pc.Branding.Footer {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			footer = append(footer, trimmed)
		}
	}
	pc.Branding.Footer = footer
	if level, err := strategy.ParseLevel(pc.Form.DefaultLevel); err == nil {
		pc.Form.DefaultLevel = level.String()
	}
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if _, err := strategy.ParseLevel(pc.Form.DefaultLevel); err != nil {
		return fmt.Errorf("form.default_level: %w", err)
	}
	if pc.LogPanel.Lines < 0 || pc.LogPanel.Lines > maxLogLines {
		return fmt.Errorf("log_panel.lines must be between 1 and %d", maxLogLines)
	}
	return nil
}

func boolOr(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0644)
}
