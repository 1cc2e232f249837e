// Package backend defines the target-language-agnostic contract a
// concrete backend (backend/golang, say) satisfies to turn typed IR
// expressions into compilable source (spec §4.6). State tracks an
// ordered declaration table the way gomap/codegen's schema generator
// tracks accumulated struct definitions before writing them out in one
// pass (gomap/codegen/schema_generator.go's GenerateSchema building up
// a slice of *ir.Node before WriteSchema ever touches a file).
package backend

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/rixed/dessser/irx"
)

// Declaration is one named, typed binding a backend has recorded.
type Declaration struct {
	Name       string
	Type       *irx.Type
	Expr       *irx.Expr
	Exported   bool
	dependsOn  []string // names of declarations this one's Expr references
}

// State is the mutable, per-generator-run bookkeeping spec §4.6
// describes: an ordered table of declarations plus a gensym counter.
// The counter lives here, not on package irx, so that two concurrent
// generator runs (e.g. one per schema file in a batch) do not share
// it. It only names declarations; function identifiers come from the
// process-wide irx.NextFid.
type State struct {
	decls   []*Declaration
	byName  map[string]*Declaration
	counter atomic.Uint64
}

func NewState() *State {
	return &State{byName: make(map[string]*Declaration)}
}

func (s *State) gensym(prefix string) string {
	return fmt.Sprintf("%s%d", prefix, s.counter.Add(1))
}

// IdentifierOfExpression allocates a name (name, if non-empty, else a
// gensym), type-checks expr, records the declaration and returns an
// irx.Identifier expression referencing it plus the printed name (spec
// §4.6). Expressions of type Value(Nullable _) are rejected at top
// level — there is no sensible printed form for "maybe nothing" as a
// standalone declaration.
func (s *State) IdentifierOfExpression(name string, expr *irx.Expr) (*irx.Expr, string, error) {
	// Type-check expr inside Lets binding every earlier declaration, so
	// it may reference them by name.
	check := expr
	for i := len(s.decls) - 1; i >= 0; i-- {
		check = irx.Let(s.decls[i].Name, s.decls[i].Expr, check)
	}
	typ, err := irx.TypeOf(nil, check)
	if err != nil {
		return nil, "", fmt.Errorf("backend: %w", err)
	}
	if typ.Kind == irx.ValueKind && typ.MN.Nullable {
		return nil, "", fmt.Errorf("backend: top-level declaration %q has type %s, nullable values have no top-level printed form", name, typ)
	}
	if name == "" {
		name = s.gensym("dsx")
	}
	if _, exists := s.byName[name]; exists {
		return nil, "", fmt.Errorf("backend: duplicate declaration name %q", name)
	}
	d := &Declaration{Name: name, Type: typ, Expr: expr, Exported: isExported(name), dependsOn: freeIdentifiers(expr)}
	s.decls = append(s.decls, d)
	s.byName[name] = d
	slog.Debug("backend: recorded declaration", "name", name, "type", typ.String(), "exported", d.Exported)
	return irx.Identifier(name), name, nil
}

func isExported(name string) bool {
	return len(name) > 0 && name[0] >= 'A' && name[0] <= 'Z'
}

// freeIdentifiers collects the names an expression's OpIdentifier leaves
// reference, so Ordered can compute a leaves-first topological order
// without a caller having to declare dependencies by hand.
func freeIdentifiers(e *irx.Expr) []string {
	seen := map[string]bool{}
	var out []string
	var walk func(*irx.Expr)
	walk = func(e *irx.Expr) {
		if e == nil {
			return
		}
		if e.Op == irx.OpIdentifier && !seen[e.Name] {
			seen[e.Name] = true
			out = append(out, e.Name)
		}
		for _, k := range e.Kids {
			walk(k)
		}
	}
	walk(e)
	return out
}

// Ordered returns the recorded declarations in topological order,
// leaves first, as spec §4.6 requires of print_declarations and
// print_definitions. A cycle (which a well-typed IR should never
// produce, since Let/Function bind fresh names rather than referencing
// forward) is reported rather than silently truncated.
func (s *State) Ordered() ([]*Declaration, error) {
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(s.decls))
	var out []*Declaration
	var visit func(d *Declaration) error
	visit = func(d *Declaration) error {
		switch color[d.Name] {
		case black:
			return nil
		case gray:
			return fmt.Errorf("backend: dependency cycle at declaration %q", d.Name)
		}
		color[d.Name] = gray
		for _, dep := range d.dependsOn {
			if depDecl, ok := s.byName[dep]; ok {
				if err := visit(depDecl); err != nil {
					return err
				}
			}
		}
		color[d.Name] = black
		out = append(out, d)
		return nil
	}
	for _, d := range s.decls {
		if err := visit(d); err != nil {
			slog.Error("backend: Ordered failed", "error", err)
			return nil, err
		}
	}
	slog.Debug("backend: ordered declarations", "count", len(out))
	return out, nil
}

// Printer is what a concrete backend implements to turn a State's
// declarations into target-language source (spec §4.6). Declarations
// and definitions are printed separately so a backend targeting a
// language with header/implementation separation (or, for Go, a
// single file with exported vs. unexported bindings) can decide how to
// split the two.
type Printer interface {
	PrintDeclarations(decls []*Declaration) (string, error)
	PrintDefinitions(decls []*Declaration) (string, error)
	PreferredDeclExtension() string
	PreferredDefExtension() string
	CompileCmd(optim bool, link []string, src, out string) string
}
