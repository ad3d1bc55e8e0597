package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/tony-format/replica"
	"github.com/signadot/tony-format/replica/format"
)

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "replica.yaml")
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `origin: remote
format: yaml
filter: kind == "changed"
diff: true
log:
  level: debug
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	want := &FileConfig{
		Origin: "remote",
		Format: "yaml",
		Filter: `kind == "changed"`,
		Diff:   true,
		Log:    LogConfig{Level: "debug"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
	if cfg.origin() != replica.Remote {
		t.Errorf("origin %s", cfg.origin())
	}
	if cfg.level() != slog.LevelDebug {
		t.Errorf("level %s", cfg.level())
	}
	if f := cfg.outFormat(); f == nil || *f != format.YAMLFormat {
		t.Errorf("format %v", f)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "dump: true\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.origin() != replica.Local || cfg.level() != slog.LevelWarn || !cfg.Dump || cfg.outFormat() != nil {
		t.Errorf("got %+v", cfg)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	for _, text := range []string{
		"origin: sideways\n",
		"format: xml\n",
		"filter: kind ==\n",
		"log:\n  level: loud\n",
		"unknown: 1\n",
	} {
		if _, err := LoadConfig(writeConfig(t, text)); err == nil {
			t.Errorf("%q: expected error", text)
		}
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
