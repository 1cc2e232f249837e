// dessserc is the generator CLI (SPEC_FULL.md §4.7): given a config
// file naming a schema and a src/dst codec pair, it wires driver.Desser
// between them, lowers the result through a backend.Printer, and writes
// the generated source to disk. Grounded on the cmd/o package's shape
// — a *cli.Command tree built from struct-tagged config types (here
// RunConfig, there MainConfig) plus github.com/scott-cotton/cli's
// StructOpts/NamedFuncOpt reflection-based flag binding.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// RunConfig holds the flags of the "generate" command. Unlike
// cmd/o's MainConfig (whose fields configure ad-hoc encoding of
// whatever object is piped through), every dessserc run is driven by a
// single config file — so RunConfig stays small: the file to read plus
// a couple of flags that override it or control the tool's own output.
type RunConfig struct {
	ConfigPath string `cli:"name=c aliases=config desc='generator config file (YAML)'"`
	Debug      bool   `cli:"name=v aliases=verbose desc='log at debug level'"`
	NoColor    bool   `cli:"name=no-color desc='disable colorized diagnostics'"`

	Run *cli.Command
}

// useColor mirrors cmd/o/configs.go's encOpts: color is forced off by
// -no-color, forced on by nothing (dessserc has no -color flag, since
// its output is diagnostics, not an encoded object, so "always ask the
// terminal" is the only sensible default), and otherwise follows
// isatty.IsTerminal on stderr, the stream diagnostics are written to.
func (cfg *RunConfig) useColor() bool {
	if cfg.NoColor {
		return false
	}
	return isatty.IsTerminal(os.Stderr.Fd())
}

// diagf prints one colorized diagnostic line to stderr, in the
// encode_colors.go idiom of reaching for a color.*String
// function rather than wrapping every print call in an if-terminal
// branch at the call site.
func (cfg *RunConfig) diagf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if cfg.useColor() {
		msg = color.CyanString(msg)
	}
	fmt.Fprintln(os.Stderr, msg)
}

func (cfg *RunConfig) errf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if cfg.useColor() {
		msg = color.RedString(msg)
	}
	fmt.Fprintln(os.Stderr, msg)
}

// logRegenerationDiff shows, at debug verbosity, what a regeneration
// run would change in an already-existing output file — grounded on
// libdiff/object.go's use of diffmatchpatch for a text-level diff
// (there between two tony objects' field text, here between two
// generated-source runs). A first-ever run with nothing to compare
// against is silently skipped.
func (cfg *RunConfig) logRegenerationDiff(path, newSrc string) {
	if !cfg.Debug {
		return
	}
	old, err := os.ReadFile(path)
	if err != nil {
		return
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(old), newSrc, false)
	if len(diffs) == 1 && diffs[0].Type == diffmatchpatch.DiffEqual {
		cfg.diagf("%s: unchanged", path)
		return
	}
	cfg.diagf("%s: regenerating with changes:\n%s", path, dmp.DiffPrettyText(diffs))
}
