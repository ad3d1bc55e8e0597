package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "replica").
		WithSynopsis("replica [opts] command [opts]").
		WithDescription("replica keeps an in-memory copy of a remote document and reports its changes.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return replicaMain(cfg, cc, args)
		}).
		WithSubs(
			ExecCommand(cfg),
			ReplayCommand(cfg),
			GetCommand(cfg),
			ServeCommand(cfg))
}

func ExecCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ExecConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Exec, "exec").
		WithAliases("x").
		WithSynopsis("exec [opts] [scripts]").
		WithDescription(execDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return execScripts(cfg, cc, args)
		})
}

const execDescription = `exec runs scripts of mutations against a new, empty replica and prints
the resulting events.

Each line of a script is one of

  [origin] put <path> [payload]
  [origin] patch <path> [payload]
  [origin] delete <path>
  get <path>

where origin is local or remote. The payload is the rest of the line: text
starting with '{' is a JSON object, other text is a string, and an empty
payload or null deletes. Lines starting with '#' are comments.`

func ReplayCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ReplayConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Replay, "replay").
		WithAliases("r").
		WithSynopsis("replay [opts] [feeds]").
		WithDescription("replay applies server-sent event change feeds to a new replica and prints the resulting events.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return replay(cfg, cc, args)
		})
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get <path> [feeds]").
		WithDescription("get replays change feeds and prints the value at a path").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func ServeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ServeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Serve, "serve").
		WithSynopsis("serve [-gops] [-feed file] [-filter expr]").
		WithDescription("serve a replica over JSON-RPC on stdin and stdout").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return serve(cfg, cc, args)
		})
}
