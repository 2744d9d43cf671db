package logplugin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/wailsapp/wails/v2/pkg/logger"

	"projgp/internal/shell"
)

const Name = "log"

// Builder は Plugin を組み立てる。既定は INFO 以上・標準出力+ファイル。
type Builder struct {
	level   logger.LogLevel
	stdout  bool
	webview bool
	dir     string
	file    string
}

func NewBuilder() *Builder {
	return &Builder{level: logger.INFO, stdout: true, webview: true, file: "projgp.log"}
}

func (b *Builder) Level(lv logger.LogLevel) *Builder { b.level = lv; return b }
func (b *Builder) Stdout(on bool) *Builder           { b.stdout = on; return b }
func (b *Builder) Webview(on bool) *Builder          { b.webview = on; return b }

// Dir はログディレクトリ。空なら <UserConfigDir>/projgp/logs。
func (b *Builder) Dir(dir string) *Builder { b.dir = dir; return b }

func (b *Builder) File(name string) *Builder {
	if strings.TrimSpace(name) != "" {
		b.file = name
	}
	return b
}

func (b *Builder) Build() *Plugin {
	cp := *b
	return &Plugin{cfg: cp}
}

// Plugin はロガーを wails に設定し、フロントエンド用 Bridge をバインドする。
type Plugin struct {
	cfg    Builder
	logger *Logger
}

func (p *Plugin) Name() string { return Name }

// Logger は登録済みのロガー（Register 前は nil）。
func (p *Plugin) Logger() *Logger { return p.logger }

// Path はログファイルのパス。
func (p *Plugin) Path() (string, error) {
	dir := p.cfg.dir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(base, "projgp", "logs")
	}
	return filepath.Join(dir, p.cfg.file), nil
}

func (p *Plugin) Register(app *shell.App) error {
	path, err := p.Path()
	if err != nil {
		return fmt.Errorf("log dir: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	var out io.Writer = f
	if p.cfg.stdout {
		out = io.MultiWriter(os.Stdout, f)
	}
	lg := newLogger(p.cfg.level, out, f)
	if p.cfg.webview {
		hook := &webviewHook{}
		lg.l.AddHook(hook)
		app.OnStartup(hook.attach)
		app.OnShutdown(hook.detach)
	}
	p.logger = lg

	app.SetLogger(lg, p.cfg.level)
	app.Bind(&Bridge{lg: lg})
	app.OnShutdown(func(_ context.Context) { _ = lg.Close() })
	lg.l.WithFields(logrus.Fields{"path": path, "level": lg.l.GetLevel().String()}).Info("logging enabled")
	return nil
}

// Bridge はフロントエンドから同じロガーへ書き込むための API。
type Bridge struct {
	lg *Logger
}

// Log は level（trace|debug|info|warn|error）で message を記録する。
func (b *Bridge) Log(level, message string) error {
	lv, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return err
	}
	if lv < logrus.ErrorLevel {
		return errors.New("fatal/panic level is not allowed from webview")
	}
	b.lg.l.WithField("source", "webview").Log(lv, message)
	return nil
}
