package golang_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rixed/dessser/backend"
	"github.com/rixed/dessser/backend/golang"
	"github.com/rixed/dessser/irx"
	"github.com/rixed/dessser/schema"
)

func TestPrintDefinitionsProducesFormattedGo(t *testing.T) {
	st := backend.NewState()
	leaf, _, err := st.IdentifierOfExpression("Leaf", irx.Int(schema.I32, "41"))
	if err != nil {
		t.Fatalf("Leaf: %v", err)
	}
	if _, _, err := st.IdentifierOfExpression("Answer", irx.Add(leaf, irx.Int(schema.I32, "1"))); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	ordered, err := st.Ordered()
	if err != nil {
		t.Fatalf("Ordered: %v", err)
	}
	p := golang.New("generated")
	src, err := p.PrintDefinitions(ordered)
	if err != nil {
		t.Fatalf("PrintDefinitions: %v", err)
	}
	if !strings.Contains(src, "package generated") {
		t.Fatalf("output missing package clause:\n%s", src)
	}
	if !strings.Contains(src, "Answer") || !strings.Contains(src, "Leaf") {
		t.Fatalf("output missing declarations:\n%s", src)
	}
}

// TestPrintDefinitionsIsDeterministic regenerates from the same
// declarations twice and requires byte-identical output — a generator
// whose output depends on map iteration order or a clock would be
// unusable for a build system that caches by content hash. Uses
// cmp.Diff, in fs_test.go's style, so a future regression shows exactly
// which line drifted rather than just "not equal".
func TestPrintDefinitionsIsDeterministic(t *testing.T) {
	st := backend.NewState()
	if _, _, err := st.IdentifierOfExpression("Leaf", irx.Int(schema.I32, "41")); err != nil {
		t.Fatalf("Leaf: %v", err)
	}
	ordered, err := st.Ordered()
	if err != nil {
		t.Fatalf("Ordered: %v", err)
	}
	p := golang.New("generated")
	first, err := p.PrintDefinitions(ordered)
	if err != nil {
		t.Fatalf("PrintDefinitions: %v", err)
	}
	second, err := p.PrintDefinitions(ordered)
	if err != nil {
		t.Fatalf("PrintDefinitions: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("PrintDefinitions is not deterministic:\n%s", diff)
	}
}

func TestCompileCmdIncludesGoBuild(t *testing.T) {
	p := golang.New("generated")
	cmd := p.CompileCmd(false, nil, "generated.go", "converter")
	if !strings.HasPrefix(cmd, "go build ") {
		t.Fatalf("CompileCmd = %q, want a go build invocation", cmd)
	}
}

func TestPreferredExtensionsAreGo(t *testing.T) {
	p := golang.New("generated")
	if p.PreferredDeclExtension() != ".go" || p.PreferredDefExtension() != ".go" {
		t.Fatalf("unexpected extensions: %q %q", p.PreferredDeclExtension(), p.PreferredDefExtension())
	}
}
