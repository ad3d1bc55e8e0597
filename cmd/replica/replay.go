package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/signadot/tony-format/replica/encode"
	"github.com/signadot/tony-format/replica/feed"

	"github.com/scott-cotton/cli"
)

func replay(cfg *ReplayConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Replay.Parse(cc, args)
	if err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	r := cfg.newReplica()
	ec := cfg.events()
	p, err := cfg.subscribe(r, ec, cc.Out)
	if err != nil {
		return err
	}
	err = eachInput(cc, args, func(name string, in io.Reader) error {
		stats, err := feed.Apply(ctx, r, in, cfg.Log)
		cfg.Log.Info("replayed", "feed", name, "puts", stats.Puts, "patches", stats.Patches, "keepAlives", stats.KeepAlives)
		return err
	})
	if err != nil {
		return err
	}
	if p.err != nil {
		return p.err
	}
	if ec.resolve(cfg.File).Dump {
		return encode.Encode(r.Root(), cc.Out, cfg.encOpts(cc.Out)...)
	}
	return nil
}
