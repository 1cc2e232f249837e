package main

import (
	"strings"
	"testing"

	"github.com/rixed/dessser/backend"
	"github.com/rixed/dessser/genconfig"
	"github.com/rixed/dessser/schema"
)

func TestResolveCodecsDefaultToSexpr(t *testing.T) {
	if _, err := resolveDeserializer(genconfig.CodecConfig{Name: "sexpr"}); err != nil {
		t.Fatalf("resolveDeserializer: %v", err)
	}
	if _, err := resolveSerializer(genconfig.CodecConfig{}); err != nil {
		t.Fatalf("resolveSerializer: %v", err)
	}
	if _, err := resolveDeserializer(genconfig.CodecConfig{Name: "no-such-codec"}); err == nil {
		t.Fatalf("expected an error for an unknown codec name")
	}
}

func TestResolvePrinterDefaultsToGolang(t *testing.T) {
	p, err := resolvePrinter("", "generated")
	if err != nil {
		t.Fatalf("resolvePrinter: %v", err)
	}
	if p.PreferredDefExtension() != ".go" {
		t.Fatalf("unexpected extension: %q", p.PreferredDefExtension())
	}
	if _, err := resolvePrinter("cpp", "generated"); err == nil {
		t.Fatalf("expected an error for an unsupported backend")
	}
}

func TestBuildConverterWiresDriverBySchema(t *testing.T) {
	root := schema.NotNullable(schema.NewScalar(schema.I32))
	D, err := resolveDeserializer(genconfig.CodecConfig{Name: "sexpr"})
	if err != nil {
		t.Fatalf("resolveDeserializer: %v", err)
	}
	S, err := resolveSerializer(genconfig.CodecConfig{Name: "sexpr"})
	if err != nil {
		t.Fatalf("resolveSerializer: %v", err)
	}
	cfg := genconfig.DefaultConfig()
	cfg.SchemaPath = "unused.dessser"

	fn, typ, err := buildConverter(cfg, root, D, S)
	if err != nil {
		t.Fatalf("buildConverter: %v", err)
	}
	if fn == nil || typ == nil {
		t.Fatalf("buildConverter returned nil")
	}
	if typ.FuncResult == nil {
		t.Fatalf("converter type has no result: %v", typ)
	}
}

func TestGenerateProducesCompilableSource(t *testing.T) {
	root := schema.NotNullable(schema.NewScalar(schema.Bool))
	D, err := resolveDeserializer(genconfig.CodecConfig{Name: "sexpr"})
	if err != nil {
		t.Fatalf("resolveDeserializer: %v", err)
	}
	S, err := resolveSerializer(genconfig.CodecConfig{Name: "sexpr"})
	if err != nil {
		t.Fatalf("resolveSerializer: %v", err)
	}
	cfg := genconfig.DefaultConfig()
	fn, _, err := buildConverter(cfg, root, D, S)
	if err != nil {
		t.Fatalf("buildConverter: %v", err)
	}

	st := backend.NewState()
	if _, _, err := st.IdentifierOfExpression("Convert", fn); err != nil {
		t.Fatalf("IdentifierOfExpression: %v", err)
	}
	ordered, err := st.Ordered()
	if err != nil {
		t.Fatalf("Ordered: %v", err)
	}
	printer, err := resolvePrinter(cfg.Backend, cfg.PackageName)
	if err != nil {
		t.Fatalf("resolvePrinter: %v", err)
	}
	src, err := printer.PrintDefinitions(ordered)
	if err != nil {
		t.Fatalf("PrintDefinitions: %v", err)
	}
	if !strings.Contains(src, "Convert") {
		t.Fatalf("output missing converter declaration:\n%s", src)
	}
}
