package backend_test

import (
	"testing"

	"github.com/rixed/dessser/backend"
	"github.com/rixed/dessser/irx"
	"github.com/rixed/dessser/schema"
)

func TestIdentifierOfExpressionRecordsDeclaration(t *testing.T) {
	st := backend.NewState()
	expr := irx.Int(schema.I32, "42")
	id, name, err := st.IdentifierOfExpression("Answer", expr)
	if err != nil {
		t.Fatalf("IdentifierOfExpression: %v", err)
	}
	if name != "Answer" {
		t.Fatalf("name = %q, want Answer", name)
	}
	if id.Op != irx.OpIdentifier || id.Name != "Answer" {
		t.Fatalf("id = %+v, want an Identifier(Answer)", id)
	}
}

func TestIdentifierOfExpressionGensymsWhenNameEmpty(t *testing.T) {
	st := backend.NewState()
	_, name1, err := st.IdentifierOfExpression("", irx.Int(schema.I32, "1"))
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	_, name2, err := st.IdentifierOfExpression("", irx.Int(schema.I32, "2"))
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if name1 == name2 {
		t.Fatalf("gensym produced duplicate names: %q", name1)
	}
}

func TestIdentifierOfExpressionRejectsDuplicateName(t *testing.T) {
	st := backend.NewState()
	if _, _, err := st.IdentifierOfExpression("X", irx.Int(schema.I32, "1")); err != nil {
		t.Fatalf("first: %v", err)
	}
	if _, _, err := st.IdentifierOfExpression("X", irx.Int(schema.I32, "2")); err == nil {
		t.Fatalf("expected an error for a duplicate declaration name")
	}
}

func TestIdentifierOfExpressionRejectsTopLevelNullable(t *testing.T) {
	st := backend.NewState()
	mn := schema.Nullable(schema.NewScalar(schema.I32))
	nullExpr := irx.Null(mn)
	if _, _, err := st.IdentifierOfExpression("N", nullExpr); err == nil {
		t.Fatalf("expected an error for a top-level Value(Nullable _) declaration")
	}
}

func TestOrderedIsLeavesFirst(t *testing.T) {
	st := backend.NewState()
	leaf, _, err := st.IdentifierOfExpression("Leaf", irx.Int(schema.I32, "1"))
	if err != nil {
		t.Fatalf("Leaf: %v", err)
	}
	if _, _, err := st.IdentifierOfExpression("Root", irx.Add(leaf, irx.Int(schema.I32, "1"))); err != nil {
		t.Fatalf("Root: %v", err)
	}
	ordered, err := st.Ordered()
	if err != nil {
		t.Fatalf("Ordered: %v", err)
	}
	if len(ordered) != 2 || ordered[0].Name != "Leaf" || ordered[1].Name != "Root" {
		t.Fatalf("Ordered() = %v, want [Leaf, Root]", names(ordered))
	}
}

func names(decls []*backend.Declaration) []string {
	out := make([]string, len(decls))
	for i, d := range decls {
		out[i] = d.Name
	}
	return out
}
