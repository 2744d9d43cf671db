package buildinfo

import (
	"fmt"
	"runtime"
)

// これらは ldflags で上書き可能:
// wails build -ldflags "-X projgp/internal/buildinfo.Version=1.2.3 -X projgp/internal/buildinfo.Commit=abcd123"
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Target は起動時に一度だけ決定されるプラットフォームとビルドモード。
type Target struct {
	OS    string // runtime.GOOS
	Debug bool
}

// Current は実行中バイナリの Target を返す。
func Current() Target {
	return Target{OS: runtime.GOOS, Debug: Debug}
}

// Windows は WebView2 を使うプラットフォームかどうか。
func (t Target) Windows() bool { return t.OS == "windows" }

func (t Target) Mode() string {
	if t.Debug {
		return "debug"
	}
	return "release"
}

// String は "projgp 1.2.3 (commit abcd123, built ...)" 形式のバージョン文字列。
func String() string {
	return fmt.Sprintf("projgp %s (commit %s, built %s)", Version, Commit, Date)
}
