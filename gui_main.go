package main

import (
	"embed"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/windows"

	"projgp/internal/buildinfo"
	"projgp/internal/config"
	"projgp/internal/httpplugin"
	"projgp/internal/logplugin"
	"projgp/internal/shell"
	"projgp/internal/webview2"
)

// フロントエンド静的ファイル（frontend/dist）をバンドル
//go:embed all:frontend/dist
var assets embed.FS

func main() {
	if err := run(buildinfo.Current(), config.Default(), wails.Run); err != nil {
		log.Fatalf("error while running application: %v", err)
	}
}

// run は起動処理の全体: 環境変数の設定（Windows のみ）→ プラグイン登録 → ランループ。
func run(target buildinfo.Target, cfg *config.Config, runner shell.Runner) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	// WebView2 生成前に設定しておく必要がある
	changed, err := webview2.ConfigureAutoplay(webview2.OSEnv{}, target)
	if err != nil {
		return err
	}
	if changed {
		log.WithField("env", webview2.EnvBrowserArgs).Debug("autoplay policy configured")
	}
	log.WithFields(log.Fields{"version": buildinfo.Version, "os": target.OS, "mode": target.Mode()}).Info("starting")
	return newShell(target, cfg, NewApp(cfg)).Run(runner)
}

// newShell は HTTP プラグインを常に、ログプラグインをデバッグビルドのみ登録するビルダーを返す。
func newShell(target buildinfo.Target, cfg *config.Config, app *App) *shell.Builder {
	opts := &options.App{
		Title:            cfg.Window.Title,
		Width:            cfg.Window.Width,
		Height:           cfg.Window.Height,
		MinWidth:         cfg.Window.MinWidth,
		MinHeight:        cfg.Window.MinHeight,
		AssetServer:      &assetserver.Options{Assets: assets},
		BackgroundColour: &options.RGBA{R: 17, G: 17, B: 27, A: 1},
		OnStartup:        app.startup,
		OnShutdown:       app.shutdown,
		Bind:             []any{app},

		// リリースビルドはエラーのみ
		LogLevelProduction: logger.ERROR,

		Windows: &windows.Options{
			WebviewIsTransparent: false,
			WindowIsTranslucent:  false,
		},
	}
	return shell.New(opts).
		Plugin(httpplugin.New(httpplugin.Options{
			Allow:        cfg.HTTP.Allow,
			UserAgent:    cfg.HTTP.UserAgent,
			Timeout:      time.Duration(cfg.HTTP.TimeoutMs) * time.Millisecond,
			MaxBodyBytes: cfg.HTTP.MaxBodyBytes,
		})).
		Setup(func(a *shell.App) error {
			if !target.Debug {
				return nil
			}
			return a.Plugin(logplugin.NewBuilder().
				Level(logger.INFO).
				Dir(cfg.Log.Dir).
				File(cfg.Log.File).
				Build())
		})
}
