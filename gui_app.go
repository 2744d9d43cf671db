package main

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"projgp/internal/buildinfo"
	"projgp/internal/config"
)

// App はフロントエンドにバインドされるアプリ本体。
type App struct {
	ctx context.Context
	cfg *config.Config
}

func NewApp(cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	return &App{cfg: cfg}
}

func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	a.emitLog("info", "起動しました")
}

func (a *App) shutdown(ctx context.Context) {
	log.Info("shutdown")
	a.ctx = nil
}

// Version はバージョン文字列を返す。
func (a *App) Version() string { return buildinfo.String() }

// BuildMode は "debug" または "release"。
func (a *App) BuildMode() string { return buildinfo.Current().Mode() }

// OpenExternalURL は既定ブラウザでURLを開く。
func (a *App) OpenExternalURL(url string) error {
	if a.ctx == nil {
		return errors.New("no context")
	}
	runtime.BrowserOpenURL(a.ctx, url)
	return nil
}

// ログイベント
func (a *App) emitLog(level, msg string) {
	lv, err := log.ParseLevel(level)
	if err != nil {
		lv = log.InfoLevel
	}
	log.StandardLogger().Log(lv, msg)
	if a.ctx != nil {
		runtime.EventsEmit(a.ctx, "log", map[string]any{"level": level, "msg": msg, "time": time.Now().Format(time.RFC3339)})
	}
}
