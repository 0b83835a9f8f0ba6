// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package config loads the settings file for the jview command-line tool.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// FileName is the name of the config file.
	FileName = "config.yaml"

	// DirName is the name of the directory holding the config file, beneath
	// the user configuration directory.
	DirName = "jview"
)

// Config holds the settings for the command-line tool. Command-line flags
// override the values loaded from the file.
type Config struct {
	// Spaces per nesting level in text output.
	Indent int `yaml:"indent" validate:"gte=0,lte=16"`

	// When to color text output: auto, always, or never.
	Color string `yaml:"color" validate:"oneof=auto always never"`

	// Levels of the tree expanded initially; 0 collapses the root, and a
	// negative value expands everything.
	ExpandDepth int `yaml:"expand_depth" validate:"gte=-1"`

	// Indentation per nesting level in HTML output, in pixels.
	HTMLIndentPx int `yaml:"html_indent_px" validate:"gte=0,lte=200"`

	// Whether to minify HTML output.
	MinifyHTML bool `yaml:"minify_html"`

	// Listen address for the web viewer.
	Addr string `yaml:"addr" validate:"required,hostname_port"`
}

// Default returns a new Config with default values.
func Default() *Config {
	return &Config{
		Indent:       2,
		Color:        "auto",
		ExpandDepth:  1,
		HTMLIndentPx: 20,
		Addr:         "localhost:8080",
	}
}

// Path returns the default location of the config file,
// $XDG_CONFIG_HOME/jview/config.yaml or its platform equivalent.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config directory: %w", err)
	}
	return filepath.Join(dir, DirName, FileName), nil
}

// Load reads the config file at path. If path is empty, Load uses the
// default location. A missing file at the default location is not an error:
// Load returns the defaults. A missing file named explicitly is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return Default(), nil
	} else if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Parse parses and validates the YAML text of a config file. Settings not
// mentioned in data keep their default values.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate reports an error if any setting of c is out of range.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) != 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid %s: %v fails %q", fe.Field(), fe.Value(), fe.Tag())
		}
		return err
	}
	return nil
}
