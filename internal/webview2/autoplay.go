// Package webview2 は Windows の WebView2 ランタイムに渡す追加ブラウザ引数を扱う。
package webview2

import (
	"fmt"
	"os"

	"projgp/internal/buildinfo"
)

const (
	// EnvBrowserArgs は WebView2 が起動時に読む環境変数。
	EnvBrowserArgs = "WEBVIEW2_ADDITIONAL_BROWSER_ARGUMENTS"
	// AutoplayFlags はユーザー操作なしの動画/HLS 自動再生を許可するフラグ。
	AutoplayFlags = "--autoplay-policy=no-user-gesture-required --disable-features=AutoplayIgnoreWebAudio"
)

// Env はプロセス環境変数へのアクセス。
type Env interface {
	LookupEnv(key string) (string, bool)
	Setenv(key, value string) error
}

// OSEnv は os パッケージの環境変数を使う Env。
type OSEnv struct{}

func (OSEnv) LookupEnv(key string) (string, bool) { return os.LookupEnv(key) }
func (OSEnv) Setenv(key, value string) error      { return os.Setenv(key, value) }

// BrowserArgs は既存値 prior（ok=false なら未設定）に AutoplayFlags を連結した値を返す。
// 空文字で設定済みの場合も「設定あり」として扱う。
func BrowserArgs(prior string, ok bool) string {
	if !ok {
		return AutoplayFlags
	}
	return prior + " " + AutoplayFlags
}

// ConfigureAutoplay は Windows の場合のみ EnvBrowserArgs に AutoplayFlags を追加する。
// WebView2 の生成より前（wails.Run より前）に一度だけ呼ぶこと。
// 他プラットフォームでは環境変数に触れず (false, nil) を返す。
func ConfigureAutoplay(env Env, t buildinfo.Target) (bool, error) {
	if !t.Windows() {
		return false, nil
	}
	prior, ok := env.LookupEnv(EnvBrowserArgs)
	if err := env.Setenv(EnvBrowserArgs, BrowserArgs(prior, ok)); err != nil {
		return false, fmt.Errorf("%s の設定に失敗: %w", EnvBrowserArgs, err)
	}
	return true, nil
}
