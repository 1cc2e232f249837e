package genconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rixed/dessser/genconfig"
)

func TestDefaultConfigIsInvalidWithoutSchemaPath(t *testing.T) {
	cfg := genconfig.DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected DefaultConfig() to fail Validate without a schema path")
	}
}

func TestValidateAcceptsAConfigWithNoExprPath(t *testing.T) {
	cfg := genconfig.DefaultConfig()
	cfg.SchemaPath = "schema.dessser"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoadConfigParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	contents := "schemaPath: s.dessser\nexprPath: e.dessser\nbackend: golang\nsrc:\n  name: sexpr\ndst:\n  name: sexpr\noutputDir: out\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := genconfig.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.SchemaPath != "s.dessser" || cfg.Backend != "golang" || cfg.Src.Name != "sexpr" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoggerSuppressesTimestamp(t *testing.T) {
	logger := genconfig.Logger(true)
	if logger == nil {
		t.Fatalf("Logger returned nil")
	}
}
