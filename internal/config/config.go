// Package config はシェルの組み込み設定。設定ファイルや CLI フラグは読まない。
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Config はウィンドウと各プラグインの設定です。
type Config struct {
	Window Window
	HTTP   HTTP
	Log    Log
}

type Window struct {
	Title     string
	Width     int
	Height    int
	MinWidth  int
	MinHeight int
}

// HTTP はフロントエンドから使う HTTP プラグインのスコープと制限。
type HTTP struct {
	// 許可ホスト（"api.example.com" / "*.example.com" / "*"）
	Allow        []string
	UserAgent    string
	TimeoutMs    int
	MaxBodyBytes int64
}

// Log はデバッグビルドのログプラグイン設定。
type Log struct {
	Dir  string // 空ならユーザー設定ディレクトリ配下の projgp/logs
	File string
}

func Default() *Config {
	return &Config{
		Window: Window{Title: "projgp", Width: 1280, Height: 800, MinWidth: 960, MinHeight: 600},
		HTTP: HTTP{
			Allow: []string{
				"shikimori.one", "shikimori.me",
				"graphql.anilist.co", "anilist.co",
				"api.jikan.moe",
				"api.anilibria.tv", "www.anilibria.tv",
				"anilib.me", "anilib.co", "anilib.one",
				"v2.animelib.org",
				"r.jina.ai",
				"webtor.io", "test-streams.mux.dev",
			},
			UserAgent:    "projgp/0.1.0 (wails)",
			TimeoutMs:    15000,
			MaxBodyBytes: 8 << 20,
		},
		Log: Log{File: "projgp.log"},
	}
}

// Validate は明らかに不正な値を検出する。
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("nil config")
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	for i, h := range c.HTTP.Allow {
		if strings.TrimSpace(h) == "" {
			return fmt.Errorf("http.allow[%d] is empty", i)
		}
	}
	if c.HTTP.TimeoutMs < 0 {
		return fmt.Errorf("http timeout must not be negative: %d", c.HTTP.TimeoutMs)
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		return fmt.Errorf("http max body must be positive: %d", c.HTTP.MaxBodyBytes)
	}
	if strings.TrimSpace(c.Log.File) == "" {
		return errors.New("log file name is empty")
	}
	return nil
}
