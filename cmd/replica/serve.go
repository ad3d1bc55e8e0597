package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/signadot/tony-format/replica"
	"github.com/signadot/tony-format/replica/eval"
	"github.com/signadot/tony-format/replica/feed"
	"github.com/signadot/tony-format/replica/system/replicad"

	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"
)

func serve(cfg *ServeConfig, cc *cli.Context, args []string) error {
	_, err := cfg.Serve.Parse(cc, args)
	if err != nil {
		return err
	}

	// stdout carries the protocol
	if cfg.Gops || cfg.File.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			cfg.Log.Warn("gops agent failed", "error", err)
		}
		defer agent.Close()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	spec := &replicad.Spec{
		Replica: cfg.newReplica(),
		Log:     cfg.Log,
	}
	filter := cfg.Filter
	if filter == "" {
		filter = cfg.File.Filter
	}
	if filter != "" {
		f, err := eval.Compile(filter)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		spec.Events = []replica.SubscribeOption{f.Option(func(err error) {
			cfg.Log.Warn("filter failed", "error", err)
		})}
	}
	srv := replicad.New(spec)

	if cfg.Feed != "" {
		fd, err := os.Open(cfg.Feed)
		if err != nil {
			return fmt.Errorf("could not open feed %q: %w", cfg.Feed, err)
		}
		defer fd.Close()
		go func() {
			stats, err := feed.Apply(ctx, srv, fd, cfg.Log)
			if err != nil {
				cfg.Log.Error("feed stopped", "feed", cfg.Feed, "error", err)
				return
			}
			cfg.Log.Info("feed done", "feed", cfg.Feed, "puts", stats.Puts, "patches", stats.Patches)
		}()
	}

	cfg.Log.Info("serving", "in", "stdin", "out", "stdout")
	return srv.Serve(ctx, &replicad.Stdio{In: cc.In, Out: cc.Out})
}
