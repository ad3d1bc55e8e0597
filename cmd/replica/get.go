package main

import (
	"context"
	"fmt"
	"io"

	"github.com/signadot/tony-format/replica/encode"
	"github.com/signadot/tony-format/replica/feed"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires a path", cli.ErrUsage)
	}
	path := args[0]
	r := cfg.newReplica()
	err = eachInput(cc, args[1:], func(_ string, in io.Reader) error {
		_, err := feed.Apply(context.Background(), r, in, cfg.Log)
		return err
	})
	if err != nil {
		return err
	}
	v, ok := r.Get(path)
	if !ok {
		return cli.ExitCodeErr(1)
	}
	return encode.Encode(v, cc.Out, cfg.encOpts(cc.Out)...)
}
