// Package config loads penv settings from a TOML file.
//
// A missing file is not an error: every setting has a default, and values
// present in the file override those defaults key by key.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/penv/internal/logging"
	"github.com/dshills/penv/internal/project/vfs"
)

// FileName is the conventional configuration file name.
const FileName = "penv.toml"

// Config holds penv configuration.
type Config struct {
	Document DocumentConfig `toml:"document"`
	Logging  logging.Config `toml:"logging"`
}

// DocumentConfig controls how project and workspace documents are written
// and recognized.
type DocumentConfig struct {
	// Indent is the number of spaces per nesting level in written documents.
	Indent int `toml:"indent"`

	// ProjectExt is the file extension of project documents.
	ProjectExt string `toml:"project_ext"`

	// WorkspaceExt is the file extension of workspace documents.
	WorkspaceExt string `toml:"workspace_ext"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Document: DocumentConfig{
			Indent:       2,
			ProjectExt:   ".penvprj",
			WorkspaceExt: ".penvws",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Validate checks config for errors.
func (c *Config) Validate() error {
	if c.Document.Indent < 1 || c.Document.Indent > 8 {
		return fmt.Errorf("document.indent must be between 1 and 8, got %d", c.Document.Indent)
	}
	for key, ext := range map[string]string{
		"document.project_ext":   c.Document.ProjectExt,
		"document.workspace_ext": c.Document.WorkspaceExt,
	} {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("%s must start with '.', got %q", key, ext)
		}
	}
	if c.Document.ProjectExt == c.Document.WorkspaceExt {
		return fmt.Errorf("project and workspace extensions must differ, both are %q", c.Document.ProjectExt)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

// Load reads configuration from path on fsys.
// A missing file yields Default().
func Load(fsys vfs.VFS, path string) (*Config, error) {
	if !fsys.Exists(path) {
		return Default(), nil
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return parse(path, data)
}

// Parse parses TOML data on top of the defaults.
func Parse(data []byte) (*Config, error) {
	return parse("<bytes>", data)
}

func parse(source string, data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return cfg, nil
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
