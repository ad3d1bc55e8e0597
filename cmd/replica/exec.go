package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/tony-format/replica"
	"github.com/signadot/tony-format/replica/encode"
	"github.com/signadot/tony-format/replica/ir/kpath"

	"github.com/scott-cotton/cli"
)

var errScript = errors.New("bad script line")

func execScripts(cfg *ExecConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Exec.Parse(cc, args)
	if err != nil {
		return err
	}
	origin, err := cfg.origin()
	if err != nil {
		return err
	}
	r := cfg.newReplica()
	ec := cfg.events()
	p, err := cfg.subscribe(r, ec, cc.Out)
	if err != nil {
		return err
	}
	s := &script{r: r, origin: origin, out: cc.Out, opts: cfg.encOpts(cc.Out)}
	err = eachInput(cc, args, func(name string, in io.Reader) error {
		return s.run(in)
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

// script runs lines of mutations against a replica.
type script struct {
	r      *replica.Replica
	origin replica.Origin
	out    io.Writer
	opts   []encode.EncodeOption
}

func (s *script) run(in io.Reader) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	n := 0
	for sc.Scan() {
		n++
		if err := s.line(sc.Text()); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	return sc.Err()
}

func (s *script) line(ln string) error {
	ln = strings.TrimSuffix(ln, "\r")
	trim := strings.TrimSpace(ln)
	if trim == "" || strings.HasPrefix(trim, "#") {
		return nil
	}
	word, rest := next(ln)
	origin := s.origin
	if o, err := replica.ParseOrigin(word); err == nil {
		origin = o
		word, rest = next(rest)
	}
	path, payload := next(rest)
	switch word {
	case "put":
		return s.r.Put(origin, path, payload)
	case "patch":
		return s.r.Patch(origin, path, payload)
	case "delete":
		if payload != "" {
			return fmt.Errorf("%w: delete takes only a path", errScript)
		}
		s.r.Delete(origin, path)
		return nil
	case "get":
		if payload != "" {
			return fmt.Errorf("%w: get takes only a path", errScript)
		}
		v, ok := s.r.Get(path)
		if !ok {
			_, err := fmt.Fprintf(s.out, "/%s: <absent>\n", kpath.Normalize(path))
			return err
		}
		return encode.Encode(v, s.out, s.opts...)
	}
	return fmt.Errorf("%w: unknown command %q", errScript, word)
}

// next splits off the first blank separated word of ln, skipping leading
// blanks. The rest is returned without the single separating blank but
// otherwise untouched.
func next(ln string) (word, rest string) {
	ln = strings.TrimLeft(ln, " \t")
	i := strings.IndexAny(ln, " \t")
	if i < 0 {
		return ln, ""
	}
	return ln[:i], ln[i+1:]
}
