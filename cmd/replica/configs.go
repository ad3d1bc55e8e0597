package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/signadot/tony-format/replica"
	"github.com/signadot/tony-format/replica/encode"
	"github.com/signadot/tony-format/replica/eval"
	"github.com/signadot/tony-format/replica/format"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='encode with color'"`
	WireOut bool `cli:"name=wire desc='output in compact format'"`

	J bool `cli:"name=j aliases=json desc='output events and values in json'"`
	Y bool `cli:"name=y aliases=yaml desc='output events and values in yaml'"`

	ConfigFile string `cli:"name=config desc='configuration file (yaml)'"`
	Verbose    bool   `cli:"name=v desc='log mutations to stderr'"`

	OutFormat *format.Format

	Out      string
	CloseOut func() error

	File *FileConfig
	Log  *slog.Logger

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

// setup loads the configuration file and sets up logging. It is called once
// the main options are parsed.
func (cfg *MainConfig) setup() error {
	cfg.File = DefaultConfig()
	if cfg.ConfigFile != "" {
		file, err := LoadConfig(cfg.ConfigFile)
		if err != nil {
			return err
		}
		cfg.File = file
	}
	level := cfg.File.level()
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	cfg.Log = newLog(os.Stderr, level)
	return nil
}

// outFormat returns the structured output format, or nil for line output.
func (cfg *MainConfig) outFormat() *format.Format {
	switch {
	case cfg.OutFormat != nil:
		return cfg.OutFormat
	case cfg.Y:
		f := format.YAMLFormat
		return &f
	case cfg.J:
		f := format.JSONFormat
		return &f
	}
	return cfg.File.outFormat()
}

func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color || cfg.File.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return false
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	fmat := format.JSONFormat
	if f := cfg.outFormat(); f != nil {
		fmat = *f
	}
	res := []encode.EncodeOption{
		encode.EncodeFormat(fmat),
		encode.EncodeWire(cfg.WireOut),
	}
	if cfg.useColor(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

func (cfg *MainConfig) newReplica() *replica.Replica {
	return replica.New(replica.WithLogger(cfg.Log))
}

// EventConfig holds the settings of commands which print events.
type EventConfig struct {
	Quiet  bool
	Filter string
	Diff   bool
	Delta  bool
	Dump   bool
}

// resolve fills unset settings from the configuration file.
func (ec EventConfig) resolve(file *FileConfig) EventConfig {
	if ec.Filter == "" {
		ec.Filter = file.Filter
	}
	ec.Diff = ec.Diff || file.Diff
	ec.Delta = ec.Delta || file.Delta
	ec.Dump = ec.Dump || file.Dump
	return ec
}

// subscribe makes r print events to w as configured.
func (cfg *MainConfig) subscribe(r *replica.Replica, ec EventConfig, w io.Writer) (*printer, error) {
	ec = ec.resolve(cfg.File)
	p := &printer{
		w:      w,
		format: cfg.outFormat(),
		opts:   cfg.encOpts(w),
		colors: cfg.useColor(w),
		diff:   ec.Diff,
		delta:  ec.Delta,
	}
	if ec.Quiet {
		return p, nil
	}
	var opts []replica.SubscribeOption
	if ec.Filter != "" {
		f, err := eval.Compile(ec.Filter)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		opts = append(opts, f.Option(func(err error) {
			cfg.Log.Warn("filter failed", "error", err)
		}))
	}
	r.Subscribe(p, opts...)
	return p, nil
}

type ExecConfig struct {
	*MainConfig

	Origin string `cli:"name=origin desc='origin of mutations without one: local or remote'"`
	Quiet  bool   `cli:"name=q desc='do not print events'"`
	Filter string `cli:"name=filter desc='only print events matching an expr filter'"`
	Diff   bool   `cli:"name=diff desc='show a text diff of changes'"`
	Delta  bool   `cli:"name=delta desc='show a merge patch of changes'"`
	Dump   bool   `cli:"name=dump desc='print the document when done'"`

	Exec *cli.Command
}

func (cfg *ExecConfig) events() EventConfig {
	return EventConfig{Quiet: cfg.Quiet, Filter: cfg.Filter, Diff: cfg.Diff, Delta: cfg.Delta, Dump: cfg.Dump}
}

func (cfg *ExecConfig) origin() (replica.Origin, error) {
	if cfg.Origin == "" {
		return cfg.File.origin(), nil
	}
	o, err := replica.ParseOrigin(cfg.Origin)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return o, nil
}

type ReplayConfig struct {
	*MainConfig

	Quiet  bool   `cli:"name=q desc='do not print events'"`
	Filter string `cli:"name=filter desc='only print events matching an expr filter'"`
	Diff   bool   `cli:"name=diff desc='show a text diff of changes'"`
	Delta  bool   `cli:"name=delta desc='show a merge patch of changes'"`
	Dump   bool   `cli:"name=dump desc='print the document when done'"`

	Replay *cli.Command
}

func (cfg *ReplayConfig) events() EventConfig {
	return EventConfig{Quiet: cfg.Quiet, Filter: cfg.Filter, Diff: cfg.Diff, Delta: cfg.Delta, Dump: cfg.Dump}
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type ServeConfig struct {
	*MainConfig

	Gops   bool   `cli:"name=gops desc='start the gops diagnostics agent'"`
	Feed   string `cli:"name=feed desc='change feed file to apply while serving'"`
	Filter string `cli:"name=filter desc='only notify events matching an expr filter'"`

	Serve *cli.Command
}
