// Package config handles YAML config file loading for the heicbridge CLI.
package config

import (
	"fmt"
	"time"

	"github.com/heiftools/heicbridge/format"
	"github.com/heiftools/heicbridge/preview"
	"github.com/heiftools/heicbridge/upload"
	"github.com/heiftools/heicbridge/widgetsync"
)

// Config represents a heicbridge.yaml configuration file.
// All values are optional and act as defaults for CLI flags.
// CLI flags always override config values.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Formats FormatsConfig `yaml:"formats"`
	Upload  UploadConfig  `yaml:"upload"`
	Preview PreviewConfig `yaml:"preview"`
	Node    NodeConfig    `yaml:"node"`
}

// ServerConfig holds host server and proxy defaults.
type ServerConfig struct {
	// BaseURL is the host server base URL the bridge talks to.
	BaseURL string `yaml:"base_url"`
	// Listen is the sidecar proxy listen address.
	Listen string `yaml:"listen"`
}

// FormatsConfig holds the unsupported-format set.
type FormatsConfig struct {
	Extensions []string `yaml:"extensions"`
	MIMETypes  []string `yaml:"mime_types"`
}

// UploadConfig holds storage endpoint defaults.
type UploadConfig struct {
	Path    string   `yaml:"path"`
	Field   string   `yaml:"field"`
	Timeout Duration `yaml:"timeout"`
}

// PreviewConfig holds preview and view endpoint defaults.
type PreviewConfig struct {
	Path     string `yaml:"path"`
	ViewPath string `yaml:"view_path"`
}

// NodeConfig holds the node-type and widget-name defaults.
type NodeConfig struct {
	Type   string `yaml:"type"`
	Widget string `yaml:"widget"`
}

// Duration wraps time.Duration for YAML string parsing (e.g. "10s", "5m").
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses a duration string like "10s" or "5m30s".
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// Default returns a config with every default filled in, targeting a local
// host server.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL: "http://127.0.0.1:8188",
			Listen:  ":8189",
		},
	}
}

// Classifier builds the format classifier from the configured sets.
// Empty lists select the HEIC/HEIF defaults.
func (c *Config) Classifier() *format.Classifier {
	exts := c.Formats.Extensions
	mimes := c.Formats.MIMETypes
	if len(exts) == 0 {
		exts = nil
	}
	if len(mimes) == 0 {
		mimes = nil
	}
	return format.New(exts, mimes)
}

// Rewriter builds the view-to-preview rewriter from the configured paths.
func (c *Config) Rewriter() *preview.Rewriter {
	return preview.NewRewriter(c.Preview.ViewPath, c.Classifier(), preview.NewResolver(c.Preview.Path))
}

// UploadClient builds an upload client for the configured host server.
func (c *Config) UploadClient() (*upload.Client, error) {
	return upload.New(upload.Config{
		BaseURL:    c.Server.BaseURL,
		UploadPath: c.Upload.Path,
		Field:      c.Upload.Field,
		Timeout:    c.Upload.Timeout.Duration,
	})
}

// SyncConfig builds the widget synchronizer configuration.
func (c *Config) SyncConfig() widgetsync.Config {
	return widgetsync.Config{
		NodeType:   c.Node.Type,
		WidgetName: c.Node.Widget,
	}
}

// Merge overlays non-zero values from other onto c and returns c.
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}
	if other.Server.BaseURL != "" {
		c.Server.BaseURL = other.Server.BaseURL
	}
	if other.Server.Listen != "" {
		c.Server.Listen = other.Server.Listen
	}
	if len(other.Formats.Extensions) > 0 {
		c.Formats.Extensions = other.Formats.Extensions
	}
	if len(other.Formats.MIMETypes) > 0 {
		c.Formats.MIMETypes = other.Formats.MIMETypes
	}
	if other.Upload.Path != "" {
		c.Upload.Path = other.Upload.Path
	}
	if other.Upload.Field != "" {
		c.Upload.Field = other.Upload.Field
	}
	if other.Upload.Timeout.Duration != 0 {
		c.Upload.Timeout = other.Upload.Timeout
	}
	if other.Preview.Path != "" {
		c.Preview.Path = other.Preview.Path
	}
	if other.Preview.ViewPath != "" {
		c.Preview.ViewPath = other.Preview.ViewPath
	}
	if other.Node.Type != "" {
		c.Node.Type = other.Node.Type
	}
	if other.Node.Widget != "" {
		c.Node.Widget = other.Node.Widget
	}
	return c
}
