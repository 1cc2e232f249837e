package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/scott-cotton/cli"

	"github.com/rixed/dessser/backend"
	"github.com/rixed/dessser/backend/golang"
	"github.com/rixed/dessser/codec"
	"github.com/rixed/dessser/codec/sexpr"
	"github.com/rixed/dessser/driver"
	"github.com/rixed/dessser/genconfig"
	"github.com/rixed/dessser/irx"
	"github.com/rixed/dessser/schema"
)

// resolveDeserializer and resolveSerializer map a genconfig.CodecConfig's
// name to a concrete codec.Deserializer/Serializer. codec/sexpr is the only codec
// this repository ships (spec §4.3's reference codec), so it is the
// only name resolved here; a second backend-specific codec (e.g. a
// binary wire format) would add a case rather than change this
// function's shape.
func resolveDeserializer(cc genconfig.CodecConfig) (codec.Deserializer, error) {
	switch cc.Name {
	case "sexpr", "":
		return sexpr.NewDeserializer(sexprOptions(cc)...), nil
	default:
		return nil, fmt.Errorf("dessserc: unknown codec %q", cc.Name)
	}
}

func resolveSerializer(cc genconfig.CodecConfig) (codec.Serializer, error) {
	switch cc.Name {
	case "sexpr", "":
		return sexpr.NewSerializer(sexprOptions(cc)...), nil
	default:
		return nil, fmt.Errorf("dessserc: unknown codec %q", cc.Name)
	}
}

// sexprOptions resolves a CodecConfig's generic (name, value) option
// pairs against codec/sexpr's own functional options — the
// cmd/dessserc wiring layer genconfig's doc comment defers this to.
func sexprOptions(cc genconfig.CodecConfig) []sexpr.Option {
	var opts []sexpr.Option
	for _, o := range cc.Options {
		switch o.Name {
		case "listPrefixLength":
			opts = append(opts, sexpr.WithListPrefixLength(o.Value == "true"))
		}
	}
	return opts
}

// resolvePrinter maps a genconfig.Config's Backend name to a concrete
// backend.Printer. "golang" is the only backend this repository ships
// (spec §4.6).
func resolvePrinter(name, packageName string) (backend.Printer, error) {
	switch name {
	case "golang", "":
		return golang.New(packageName), nil
	default:
		return nil, fmt.Errorf("dessserc: unknown backend %q", name)
	}
}

// buildConverter produces the single top-level IR expression the
// generated program is built from: either the generic driver.Desser
// recursion between Src and Dst (the common case, spec.md §1's
// "desser(schema, src, dst)"), or — when ExprPath is set — a
// hand-written expression compiled verbatim, for the cases the generic
// recursion can't express.
func buildConverter(cfg *genconfig.Config, root *schema.MaybeNullable, D codec.Deserializer, S codec.Serializer) (*irx.Expr, *irx.Type, error) {
	fid := irx.NextFid()
	src := irx.Param(fid, 0)
	dst := irx.Param(fid, 1)

	var body *irx.Expr
	if cfg.ExprPath != "" {
		text, err := os.ReadFile(cfg.ExprPath)
		if err != nil {
			return nil, nil, fmt.Errorf("dessserc: reading expr file: %w", err)
		}
		body, err = irx.Parse(string(text))
		if err != nil {
			return nil, nil, fmt.Errorf("dessserc: parsing expr file: %w", err)
		}
	} else {
		var err error
		body, err = driver.Desser(D, S, root, src, dst)
		if err != nil {
			return nil, nil, fmt.Errorf("dessserc: building converter: %w", err)
		}
	}

	fn := irx.Function(fid, []*irx.Type{irx.DataPtr(), irx.DataPtr()}, body)
	typ, err := irx.TypeOf(nil, fn)
	if err != nil {
		return nil, nil, fmt.Errorf("dessserc: type-checking converter: %w", err)
	}
	return fn, typ, nil
}

// runGenerate is the "generate" verb's implementation: load the config,
// parse the schema, resolve the codec pair and backend, build the
// converter expression, lower it through backend.State, print it, and
// write the result under OutputDir. Mirrors cmd/o's oMain/tonyEval
// split: the *cli.Command plumbing lives in commands.go, the actual
// work lives here so it stays testable without a *cli.Context.
func runGenerate(cfg *RunConfig, cc *cli.Context, args []string) error {
	if cfg.ConfigPath == "" {
		return fmt.Errorf("%w: -c config.yaml is required", cli.ErrUsage)
	}

	gcfg, err := genconfig.LoadConfig(cfg.ConfigPath)
	if err != nil {
		return err
	}
	if err := gcfg.Validate(); err != nil {
		return err
	}

	logger := genconfig.Logger(cfg.Debug)
	slog.SetDefault(logger)
	logger.Info("loaded generator config", "path", cfg.ConfigPath, "schema", gcfg.SchemaPath)

	schemaText, err := os.ReadFile(gcfg.SchemaPath)
	if err != nil {
		return fmt.Errorf("dessserc: reading schema file: %w", err)
	}
	root, err := schema.Parse(string(schemaText))
	if err != nil {
		return fmt.Errorf("dessserc: parsing schema: %w", err)
	}

	D, err := resolveDeserializer(gcfg.Src)
	if err != nil {
		return err
	}
	S, err := resolveSerializer(gcfg.Dst)
	if err != nil {
		return err
	}

	cfg.diagf("building converter: %s -> %s", gcfg.Src.Name, gcfg.Dst.Name)
	fn, typ, err := buildConverter(gcfg, root, D, S)
	if err != nil {
		cfg.errf("%v", err)
		return err
	}
	logger.Debug("converter type-checked", "type", typ.String())

	st := backend.NewState()
	if _, _, err := st.IdentifierOfExpression("Convert", fn); err != nil {
		return fmt.Errorf("dessserc: recording converter: %w", err)
	}
	ordered, err := st.Ordered()
	if err != nil {
		return fmt.Errorf("dessserc: ordering declarations: %w", err)
	}

	printer, err := resolvePrinter(gcfg.Backend, gcfg.PackageName)
	if err != nil {
		return err
	}
	src, err := printer.PrintDefinitions(ordered)
	if err != nil {
		return fmt.Errorf("dessserc: printing output: %w", err)
	}

	if err := os.MkdirAll(gcfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("dessserc: creating output dir: %w", err)
	}
	outPath := filepath.Join(gcfg.OutputDir, "generated"+printer.PreferredDefExtension())
	cfg.logRegenerationDiff(outPath, src)
	if err := os.WriteFile(outPath, []byte(src), 0o644); err != nil {
		return fmt.Errorf("dessserc: writing output: %w", err)
	}
	logger.Info("wrote generated source", "path", outPath)
	cfg.diagf("wrote %s", outPath)
	return nil
}
