// Package shell は wails の options.App をプラグイン単位で組み立てるビルダー。
//
// プラグインは登録順に Register され、その後セットアップフックが一度だけ呼ばれる。
// いずれかが失敗した場合、ランループ（wails.Run）には入らない。
package shell

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/options"
)

var (
	ErrDuplicatePlugin = errors.New("plugin already registered")
	ErrAlreadyBuilt    = errors.New("shell already built")
)

// Plugin はランタイムに登録される機能モジュール（HTTP、ログなど）。
type Plugin interface {
	Name() string
	Register(app *App) error
}

// SetupFunc は構築途中の App を受け取る一度きりのセットアップフック。
type SetupFunc func(app *App) error

// Runner はランループ。本番では wails.Run。
type Runner func(opts *options.App) error

// SetupError はセットアップフックの失敗。
type SetupError struct {
	Err error
}

func (e *SetupError) Error() string { return "setup: " + e.Err.Error() }
func (e *SetupError) Unwrap() error { return e.Err }

// App は構築途中のアプリケーションへのハンドル。
type App struct {
	opts     *options.App
	plugins  []string
	startup  []func(ctx context.Context)
	shutdown []func(ctx context.Context)
}

func newApp(opts *options.App) *App {
	if opts == nil {
		opts = &options.App{}
	}
	return &App{opts: opts}
}

// Options は構築中の options.App を返す。
func (a *App) Options() *options.App { return a.opts }

// Plugin は p を登録する。同名プラグインの二重登録はエラー。
func (a *App) Plugin(p Plugin) error {
	name := p.Name()
	if a.Has(name) {
		return fmt.Errorf("%w: %s", ErrDuplicatePlugin, name)
	}
	if err := p.Register(a); err != nil {
		return fmt.Errorf("plugin %s: %w", name, err)
	}
	a.plugins = append(a.plugins, name)
	log.WithField("plugin", name).Debug("plugin registered")
	return nil
}

// Has は name のプラグインが登録済みかどうか。
func (a *App) Has(name string) bool {
	for _, n := range a.plugins {
		if n == name {
			return true
		}
	}
	return false
}

// Plugins は登録済みプラグイン名を登録順に返す。
func (a *App) Plugins() []string {
	out := make([]string, len(a.plugins))
	copy(out, a.plugins)
	return out
}

// Bind はフロントエンドへ公開するオブジェクトを追加する。
func (a *App) Bind(v any) { a.opts.Bind = append(a.opts.Bind, v) }

// OnStartup / OnShutdown は wails のライフサイクルフックを追加する。
func (a *App) OnStartup(fn func(ctx context.Context))  { a.startup = append(a.startup, fn) }
func (a *App) OnShutdown(fn func(ctx context.Context)) { a.shutdown = append(a.shutdown, fn) }

// SetLogger は wails 本体のロガーとログレベルを差し替える。
func (a *App) SetLogger(l logger.Logger, level logger.LogLevel) {
	a.opts.Logger = l
	a.opts.LogLevel = level
	a.opts.LogLevelProduction = level
}

// finalize はプラグインのフックを options.App のフックに連結する。
// startup は既存フック→登録順、shutdown は既存フック→登録の逆順。
func (a *App) finalize() {
	if len(a.startup) > 0 {
		base := a.opts.OnStartup
		hooks := a.startup
		a.opts.OnStartup = func(ctx context.Context) {
			if base != nil {
				base(ctx)
			}
			for _, fn := range hooks {
				fn(ctx)
			}
		}
	}
	if len(a.shutdown) > 0 {
		base := a.opts.OnShutdown
		hooks := a.shutdown
		a.opts.OnShutdown = func(ctx context.Context) {
			if base != nil {
				base(ctx)
			}
			for i := len(hooks) - 1; i >= 0; i-- {
				hooks[i](ctx)
			}
		}
	}
}

// Builder はプラグインとセットアップフックを順に適用して App を組み立てる。
type Builder struct {
	opts    *options.App
	plugins []Plugin
	setup   SetupFunc
	built   bool
}

func New(opts *options.App) *Builder { return &Builder{opts: opts} }

// Plugin は p を登録リストの末尾に追加する。
func (b *Builder) Plugin(p Plugin) *Builder {
	b.plugins = append(b.plugins, p)
	return b
}

// Setup はセットアップフックを設定する（後勝ち）。
func (b *Builder) Setup(fn SetupFunc) *Builder {
	b.setup = fn
	return b
}

// Build はプラグインを登録順に Register し、セットアップフックを一度だけ実行する。
func (b *Builder) Build() (*App, error) {
	if b.built {
		return nil, ErrAlreadyBuilt
	}
	b.built = true
	app := newApp(b.opts)
	for _, p := range b.plugins {
		if err := app.Plugin(p); err != nil {
			return nil, err
		}
	}
	if b.setup != nil {
		if err := b.setup(app); err != nil {
			return nil, &SetupError{Err: err}
		}
	}
	app.finalize()
	return app, nil
}

// Run は Build の後、run にランループを委ねる。Build が失敗した場合 run は呼ばれない。
func (b *Builder) Run(run Runner) error {
	app, err := b.Build()
	if err != nil {
		return err
	}
	log.WithField("plugins", app.Plugins()).Info("starting run loop")
	if err := run(app.opts); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
