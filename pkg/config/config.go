// Package config defines the YAML configuration for a capture run: the
// declarative task list plus browser, output, authentication, filter,
// and export settings.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/entrhq/snapdoc/pkg/capture"
)

// Config represents the configuration for a capture run.
type Config struct {
	// Artifact output
	OutputDir string `yaml:"output_dir" json:"output_dir"`
	Format    string `yaml:"format" json:"format"` // png or jpeg
	FullPage  bool   `yaml:"full_page" json:"full_page"`

	// Browser settings
	Headless bool           `yaml:"headless" json:"headless"`
	Viewport ViewportConfig `yaml:"viewport" json:"viewport"`

	// Navigation settings
	Navigation NavigationConfig `yaml:"navigation" json:"navigation"`

	// MetadataPath is the location of the JSON session store
	MetadataPath string `yaml:"metadata_path" json:"metadata_path"`

	// Auth describes the login flow for tasks that require it
	Auth *AuthConfig `yaml:"auth" json:"auth,omitempty"`

	// Filters select which tasks run by id glob patterns
	Filters FilterConfig `yaml:"filters" json:"filters"`

	// Export configures post-run exports
	Export ExportConfig `yaml:"export" json:"export"`

	// Tasks is the declarative capture task list
	Tasks []TaskConfig `yaml:"tasks" json:"tasks"`
}

// ViewportConfig sets the browser viewport dimensions.
type ViewportConfig struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// NavigationConfig controls page navigation behavior.
type NavigationConfig struct {
	// WaitUntil: "load", "domcontentloaded", or "networkidle"
	WaitUntil string `yaml:"wait_until" json:"wait_until"`

	// Timeout for navigation and element waits
	Timeout time.Duration `yaml:"-" json:"timeout"`
}

// UnmarshalYAML decodes the timeout as a duration string ("30s", "2m")
// and leaves absent fields at their current (default) values.
func (n *NavigationConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		WaitUntil *string `yaml:"wait_until"`
		Timeout   *string `yaml:"timeout"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	if raw.WaitUntil != nil {
		n.WaitUntil = *raw.WaitUntil
	}
	if raw.Timeout != nil {
		timeout, err := time.ParseDuration(*raw.Timeout)
		if err != nil {
			return fmt.Errorf("invalid navigation timeout %q: %w", *raw.Timeout, err)
		}
		n.Timeout = timeout
	}
	return nil
}

// AuthConfig describes the login form and where credentials come from.
// Credentials are read from the named environment variables, never from
// the config file itself.
type AuthConfig struct {
	LoginURL         string `yaml:"login_url" json:"login_url"`
	UsernameSelector string `yaml:"username_selector" json:"username_selector"`
	PasswordSelector string `yaml:"password_selector" json:"password_selector"`
	SubmitSelector   string `yaml:"submit_selector" json:"submit_selector"`
	ProbeSelector    string `yaml:"probe_selector" json:"probe_selector"`
	UsernameEnv      string `yaml:"username_env" json:"username_env"`
	PasswordEnv      string `yaml:"password_env" json:"password_env"`
}

// ExportConfig configures post-run exports.
type ExportConfig struct {
	// PDF merges per-page PDF renderings into one session PDF
	PDF bool `yaml:"pdf" json:"pdf"`
}

// TaskConfig is one task entry in the declarative list.
type TaskConfig struct {
	ID           string          `yaml:"id" json:"id"`
	URL          string          `yaml:"url" json:"url"`
	Description  string          `yaml:"description" json:"description"`
	RequiresAuth bool            `yaml:"requires_auth" json:"requires_auth"`
	Action       *capture.Action `yaml:"action" json:"action,omitempty"`
}

// DefaultConfig returns a default configuration suitable for most runs.
func DefaultConfig() *Config {
	return &Config{
		OutputDir: "screenshots",
		Format:    "png",
		FullPage:  true,
		Headless:  true,
		Viewport: ViewportConfig{
			Width:  1440,
			Height: 900,
		},
		Navigation: NavigationConfig{
			WaitUntil: "networkidle",
			Timeout:   30 * time.Second,
		},
	}
}

// LoadFromFile loads configuration from a YAML file on top of defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}

	if c.Format != "png" && c.Format != "jpeg" {
		return fmt.Errorf("invalid format: %s (must be 'png' or 'jpeg')", c.Format)
	}

	if c.Navigation.Timeout < 0 {
		return fmt.Errorf("navigation timeout cannot be negative")
	}

	if len(c.Tasks) == 0 {
		return fmt.Errorf("at least one task is required")
	}

	seen := make(map[string]bool, len(c.Tasks))
	needsAuth := false
	for i, task := range c.Tasks {
		if task.ID == "" {
			return fmt.Errorf("task %d: id is required", i)
		}
		if seen[task.ID] {
			return fmt.Errorf("duplicate task id: %q", task.ID)
		}
		seen[task.ID] = true

		parsed, err := url.Parse(task.URL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("task %q: invalid url: %q", task.ID, task.URL)
		}

		if task.Action != nil {
			if err := task.Action.Validate(); err != nil {
				return fmt.Errorf("task %q: %w", task.ID, err)
			}
		}

		if task.RequiresAuth {
			needsAuth = true
		}
	}

	if needsAuth && c.Auth == nil {
		return fmt.Errorf("tasks require authentication but no auth configuration is present")
	}

	if c.Auth != nil {
		if err := c.Auth.validate(); err != nil {
			return err
		}
	}

	// Filters must compile even when no task matches them yet
	if _, err := c.Filters.Compile(); err != nil {
		return err
	}

	return nil
}

func (a *AuthConfig) validate() error {
	if a.LoginURL == "" {
		return fmt.Errorf("auth: login_url is required")
	}

	selectors := []struct {
		name  string
		value string
	}{
		{"username_selector", a.UsernameSelector},
		{"password_selector", a.PasswordSelector},
		{"submit_selector", a.SubmitSelector},
		{"probe_selector", a.ProbeSelector},
	}
	for _, s := range selectors {
		if s.value == "" {
			return fmt.Errorf("auth: %s is required", s.name)
		}
	}

	if a.UsernameEnv == "" || a.PasswordEnv == "" {
		return fmt.Errorf("auth: username_env and password_env are required")
	}
	return nil
}

// Definitions converts the task list into tracker task definitions.
func (c *Config) Definitions() []capture.TaskDefinition {
	defs := make([]capture.TaskDefinition, 0, len(c.Tasks))
	for _, task := range c.Tasks {
		defs = append(defs, capture.TaskDefinition{
			ID: task.ID,
			Target: capture.Target{
				URL:         task.URL,
				Description: task.Description,
				Action:      task.Action,
			},
			RequiresAuth: task.RequiresAuth,
		})
	}
	return defs
}
