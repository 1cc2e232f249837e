// Package golang is the one concrete backend.Printer this repository
// ships (spec §4.6): it lowers a backend.State's declarations to a
// single gofmt'd Go source file. Grounded on
// gomap/codegen/schema_generator.go, which assembles a slice of IR
// nodes before ever touching a writer, and on its use of
// golang.org/x/tools (there go/packages, for type-checking a source
// package; here x/tools/imports, for tidying the generated file's
// import block) plus go/format to gofmt the result rather than
// hand-emitting already-formatted text.
package golang

import (
	"bytes"
	"fmt"
	"go/format"
	"log/slog"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/rixed/dessser/backend"
)

// Printer implements backend.Printer for a single Go package.
type Printer struct {
	PackageName string
}

func New(packageName string) *Printer {
	if packageName == "" {
		packageName = "generated"
	}
	return &Printer{PackageName: packageName}
}

var fileTemplate = template.Must(template.New("file").Parse(`// Code generated by dessserc. DO NOT EDIT.

package {{.Package}}

import (
	"fmt"
	"strconv"

	"github.com/rixed/dessser/backend/golang/dessserrt"
)
{{.Preamble}}
{{range .Decls}}
{{if .Doc}}// {{.Doc}}
{{end}}var {{.Name}} {{.Type}} = {{.Body}}
{{end}}
`))

type declView struct {
	Name string
	Type string
	Body string
	Doc  string
}

// PrintDeclarations emits the exported, type-only view of the
// package's top-level bindings. Go has no header/implementation
// split, so each declaration is rendered as a `// var Name Type`
// comment line; PrintDefinitions below renders the bindings in full.
func (p *Printer) PrintDeclarations(decls []*backend.Declaration) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "// Package %s declarations (see the generated .go file for definitions).\n", p.PackageName)
	for _, d := range decls {
		goT, err := goType(d.Type)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "// var %s %s\n", d.Name, goT)
	}
	return b.String(), nil
}

// PrintDefinitions renders every declaration, in the topological order
// State.Ordered already computed, as a top-level `var` binding
// initialised by the emitted expression, then runs the result through
// go/format and golang.org/x/tools/imports (spec §4.8's domain-stack
// wiring) so the emitted file is never handed to a caller unformatted.
func (p *Printer) PrintDefinitions(decls []*backend.Declaration) (string, error) {
	slog.Debug("golang backend: printing definitions", "package", p.PackageName, "count", len(decls))
	views := make([]declView, len(decls))
	for i, d := range decls {
		goT, err := goType(d.Type)
		if err != nil {
			return "", fmt.Errorf("golang backend: declaration %q: %w", d.Name, err)
		}
		body, err := emitExpr(d.Expr)
		if err != nil {
			return "", fmt.Errorf("golang backend: declaration %q: %w", d.Name, err)
		}
		views[i] = declView{Name: d.Name, Type: goT, Body: body}
	}

	var raw bytes.Buffer
	err := fileTemplate.Execute(&raw, struct {
		Package  string
		Preamble string
		Decls    []declView
	}{Package: p.PackageName, Preamble: helperPreamble, Decls: views})
	if err != nil {
		return "", fmt.Errorf("golang backend: template: %w", err)
	}

	formatted, err := format.Source(raw.Bytes())
	if err != nil {
		return "", fmt.Errorf("golang backend: go/format: %w (input:\n%s)", err, raw.String())
	}
	tidied, err := imports.Process("generated.go", formatted, nil)
	if err != nil {
		return "", fmt.Errorf("golang backend: imports.Process: %w", err)
	}
	slog.Debug("golang backend: definitions printed", "bytes", len(tidied))
	return string(tidied), nil
}

func (p *Printer) PreferredDeclExtension() string { return ".go" }
func (p *Printer) PreferredDefExtension() string  { return ".go" }

// CompileCmd shells out to the standard toolchain, mirroring the
// compile_cmd equivalent for a generated tony schema
// package: `go build` needs no separate link step, unlike a C++
// backend's cc/ld pair, so link is folded into the same invocation.
func (p *Printer) CompileCmd(optim bool, link []string, src, out string) string {
	flags := ""
	if optim {
		flags = " -ldflags=\"-s -w\""
	}
	return fmt.Sprintf("go build%s -o %s %s", flags, out, strings.Join(append([]string{src}, link...), " "))
}
