package logplugin

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/options"

	"projgp/internal/shell"
)

func register(t *testing.T, b *Builder) (*Plugin, *options.App) {
	t.Helper()
	p := b.Build()
	opts := &options.App{}
	if _, err := shell.New(opts).Plugin(p).Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(func() { _ = p.Logger().Close() })
	return p, opts
}

func readLog(t *testing.T, p *Plugin) string {
	t.Helper()
	path, err := p.Path()
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	bt, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return string(bt)
}

func TestRegisterSetsLoggerAndBinds(t *testing.T) {
	dir := t.TempDir()
	p, opts := register(t, NewBuilder().Dir(dir).Stdout(false).Webview(false))

	if opts.Logger != logger.Logger(p.Logger()) {
		t.Fatalf("options.Logger not set to plugin logger")
	}
	if opts.LogLevel != logger.INFO || opts.LogLevelProduction != logger.INFO {
		t.Fatalf("LogLevel=%v LogLevelProduction=%v; want INFO", opts.LogLevel, opts.LogLevelProduction)
	}
	bridges := 0
	for _, b := range opts.Bind {
		if _, ok := b.(*Bridge); ok {
			bridges++
		}
	}
	if bridges != 1 {
		t.Fatalf("Bridge bound %d times; want 1", bridges)
	}
	if path, _ := p.Path(); path != filepath.Join(dir, "projgp.log") {
		t.Fatalf("Path()=%q", path)
	}
}

func TestInfoThreshold(t *testing.T) {
	p, opts := register(t, NewBuilder().Dir(t.TempDir()).Stdout(false).Webview(false))

	opts.Logger.Debug("hidden-debug")
	opts.Logger.Trace("hidden-trace")
	opts.Logger.Info("visible-info")
	opts.Logger.Warning("visible-warning")
	opts.Logger.Error("visible-error")

	got := readLog(t, p)
	for _, s := range []string{"visible-info", "visible-warning", "visible-error"} {
		if !strings.Contains(got, s) {
			t.Fatalf("log missing %q:\n%s", s, got)
		}
	}
	for _, s := range []string{"hidden-debug", "hidden-trace"} {
		if strings.Contains(got, s) {
			t.Fatalf("log contains %q below INFO:\n%s", s, got)
		}
	}
}

func TestLevelOption(t *testing.T) {
	p, opts := register(t, NewBuilder().Dir(t.TempDir()).Stdout(false).Webview(false).Level(logger.DEBUG))
	opts.Logger.Debug("now-visible")
	if !strings.Contains(readLog(t, p), "now-visible") {
		t.Fatalf("debug message dropped at DEBUG level")
	}
	if p.Logger().Logrus().GetLevel() != logrus.DebugLevel {
		t.Fatalf("logrus level=%v", p.Logger().Logrus().GetLevel())
	}
}

func TestBridgeLog(t *testing.T) {
	p, opts := register(t, NewBuilder().Dir(t.TempDir()).Stdout(false).Webview(false))
	var br *Bridge
	for _, b := range opts.Bind {
		if v, ok := b.(*Bridge); ok {
			br = v
		}
	}
	if err := br.Log("warn", "from-frontend"); err != nil {
		t.Fatalf("Log: %v", err)
	}
	if err := br.Log("debug", "frontend-debug"); err != nil {
		t.Fatalf("Log: %v", err)
	}
	if err := br.Log("nope", "x"); err == nil {
		t.Fatalf("unknown level accepted")
	}
	if err := br.Log("fatal", "x"); err == nil {
		t.Fatalf("fatal level accepted from webview")
	}
	got := readLog(t, p)
	if !strings.Contains(got, "from-frontend") || !strings.Contains(got, "source=webview") {
		t.Fatalf("bridge message missing:\n%s", got)
	}
	if strings.Contains(got, "frontend-debug") {
		t.Fatalf("debug message from bridge should be filtered:\n%s", got)
	}
}

func TestRegisterFailsWhenDirUnavailable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	p := NewBuilder().Dir(filepath.Join(blocker, "logs")).Build()
	opts := &options.App{}
	_, err := shell.New(opts).Setup(func(app *shell.App) error { return app.Plugin(p) }).Build()
	if err == nil {
		t.Fatalf("expected registration error")
	}
	if opts.Logger != nil || len(opts.Bind) != 0 {
		t.Fatalf("failed registration modified options: %+v", opts)
	}
}

func TestShutdownClosesFile(t *testing.T) {
	p, opts := register(t, NewBuilder().Dir(t.TempDir()).Stdout(false))
	opts.OnShutdown(context.Background())
	if err := p.Logger().Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestLogrusLevel(t *testing.T) {
	cases := map[logger.LogLevel]logrus.Level{
		logger.TRACE:   logrus.TraceLevel,
		logger.DEBUG:   logrus.DebugLevel,
		logger.INFO:    logrus.InfoLevel,
		logger.WARNING: logrus.WarnLevel,
		logger.ERROR:   logrus.ErrorLevel,
	}
	for in, want := range cases {
		if got := logrusLevel(in); got != want {
			t.Fatalf("logrusLevel(%v)=%v; want %v", in, got, want)
		}
	}
}
