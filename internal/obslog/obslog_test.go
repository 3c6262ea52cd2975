package obslog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestOptionsFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"LOG_LEVEL", "LOG_TO_CONSOLE", "LOG_TO_FILE", "LOG_FILE", "LOG_FORMAT", "LOG_CALLER"} {
		t.Setenv(k, "")
	}
	opts := OptionsFromEnv()
	if opts.Console {
		t.Fatalf("console logging must default to off")
	}
	if !opts.ToFile || opts.File != filepath.Join("logs", "checkers.log") {
		t.Fatalf("unexpected file defaults: %+v", opts)
	}
	if opts.Level != "info" || opts.Format != "legacy" {
		t.Fatalf("unexpected level/format defaults: %+v", opts)
	}
}

func TestOptionsFromEnvOverrides(t *testing.T) {
	t.Setenv("LOG_TO_CONSOLE", "TRUE")
	t.Setenv("LOG_TO_FILE", "false")
	t.Setenv("LOG_FORMAT", " JSON ")
	t.Setenv("LOG_LEVEL", "debug")
	opts := OptionsFromEnv()
	if !opts.Console || opts.ToFile || opts.Format != "json" || opts.Level != "debug" {
		t.Fatalf("overrides not applied: %+v", opts)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" WARN ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestBuildWritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "checkers.log")
	logger, err := Build(Options{Level: "info", ToFile: true, File: path, Format: "json"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	logger.Info("checkers_action", zap.String("team", "BLACK"))
	logger.Debug("checkers_select_ignored")
	_ = logger.Sync()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(raw)
	if !strings.Contains(out, `"msg":"checkers_action"`) || !strings.Contains(out, `"team":"BLACK"`) {
		t.Fatalf("missing entry in %q", out)
	}
	if strings.Contains(out, "checkers_select_ignored") {
		t.Fatalf("debug entry written at info level: %q", out)
	}
}

func TestBuildWithoutSinksIsNop(t *testing.T) {
	logger, err := Build(Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if logger.Core().Enabled(zapcore.ErrorLevel) {
		t.Fatalf("expected a no-op logger")
	}
}
