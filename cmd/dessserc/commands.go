package main

import (
	"github.com/scott-cotton/cli"
)

// MainCommand builds the dessserc command tree: a single "generate"
// subcommand under the root, following cmd/o/commands.go's shape of a
// root *cli.Command carrying shared opts plus one cli.NewCommand per
// verb. dessserc only has the one verb today, but the shape leaves room
// for a future "check" (validate a config without writing output) or
// "schema" (print a parsed schema back out) the way o grew Get/List/
// Match/Patch alongside its original View/Eval.
func MainCommand() *cli.Command {
	cfg := &RunConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}

	return cli.NewCommandAt(&cfg.Run, "dessserc").
		WithSynopsis("dessserc -c config.yaml [generate]").
		WithDescription("dessserc generates (de)serialization code from a dessser schema.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runGenerate(cfg, cc, args)
		}).
		WithSubs(
			GenerateCommand(cfg),
		)
}

// GenerateCommand is split out from the root so "dessserc generate -c
// x.yaml" and the bare "dessserc -c x.yaml" both work, mirroring how o's
// root command itself runs oMain while also dispatching to named subs.
func GenerateCommand(cfg *RunConfig) *cli.Command {
	cmd := cli.NewCommand("generate").
		WithAliases("gen", "g").
		WithSynopsis("generate [-c config.yaml]").
		WithDescription("Read a generator config, produce the target backend's source.").
		WithRun(func(cc *cli.Context, args []string) error {
			return runGenerate(cfg, cc, args)
		})
	return cmd
}
