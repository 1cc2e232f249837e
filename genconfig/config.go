// Package genconfig holds the configuration for one generator run:
// which schema to read, which backend to target, which codec pair to
// wire together. Grounded on
// system/logd/server/fileconfig.go — same shape (a struct with
// sensible zero-value-aware defaults, LoadConfig/DefaultConfig/Validate
// as free functions and a method), with YAML instead of Tony as the
// config file's own encoding, since a generator run's config is a tool
// input, not a dessser-schema-shaped value itself.
package genconfig

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// CodecOption is one (name, value) pair handed to a codec's functional
// option constructor by name — genconfig itself doesn't know the set
// of options any given codec package accepts; cmd/dessserc's wiring
// layer resolves these against the chosen codec package's own Option
// functions (e.g. codec/sexpr.WithListPrefixLength).
type CodecOption struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// CodecConfig names a concrete codec package and its options.
type CodecConfig struct {
	Name    string        `yaml:"name"` // e.g. "sexpr"
	Options []CodecOption `yaml:"options,omitempty"`
}

// Config is the full generator run configuration (SPEC_FULL.md §4.7).
//
//dessser:config
type Config struct {
	// SchemaPath is the file holding the schema term text (§6).
	SchemaPath string `yaml:"schemaPath"`
	// ExprPath optionally names a file holding hand-written IR
	// expression text (§6) to compile verbatim instead of the
	// generic driver's desser() body — the escape hatch for a
	// custom converter the generic recursion can't express. When
	// empty, the generator wires driver.Desser between Src and Dst
	// itself (the "often desser(schema, src, dst)" case spec.md §1
	// describes).
	ExprPath string `yaml:"exprPath,omitempty"`
	// Backend names the target backend; "golang" is the only one this
	// repository ships a concrete Printer for.
	Backend string `yaml:"backend"`
	// PackageName is passed through to the Go backend's Printer.
	PackageName string `yaml:"packageName,omitempty"`
	// Src and Dst name the codec pair desser() runs between.
	Src CodecConfig `yaml:"src"`
	Dst CodecConfig `yaml:"dst"`
	// OutputDir is where generated source is written.
	OutputDir string `yaml:"outputDir"`
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("genconfig: failed to read config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("genconfig: failed to parse config file: %w", err)
	}
	return cfg, nil
}

// DefaultConfig returns a Config with sensible defaults: the Go
// backend, the S-expression codec on both sides (a no-op identity
// conversion useful for round-trip testing), writing next to the
// current directory.
func DefaultConfig() *Config {
	return &Config{
		Backend:     "golang",
		PackageName: "generated",
		Src:         CodecConfig{Name: "sexpr"},
		Dst:         CodecConfig{Name: "sexpr"},
		OutputDir:   ".",
	}
}

// Validate checks the configuration for errors a generator run cannot
// recover from later — the same remit as logd's Config.Validate,
// extended here since unlike logd's config (which has no required
// fields) a generator run is meaningless without a schema.
func (c *Config) Validate() error {
	if c.SchemaPath == "" {
		return fmt.Errorf("genconfig: schemaPath is required")
	}
	if c.Backend == "" {
		return fmt.Errorf("genconfig: backend is required")
	}
	if c.Src.Name == "" || c.Dst.Name == "" {
		return fmt.Errorf("genconfig: both src and dst codecs must be named")
	}
	return nil
}

// Logger builds the slog.Logger a generator run threads through
// driver/backend construction, matching cmd/o/log.go's text handler
// with timestamps suppressed — a build-time tool's diagnostics are read
// in a terminal or a CI log, never correlated across a fleet, so a
// wall-clock timestamp on every line is noise rather than signal.
func Logger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}
