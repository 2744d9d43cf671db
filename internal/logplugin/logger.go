// Package logplugin は wails の logger.Logger を logrus で実装したログ機能（デバッグビルド用）。
//
// 出力先は標準出力・ログファイル・WebView（"log" イベント）の三つ。
package logplugin

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// Logger は wails の logger.Logger を満たす。
type Logger struct {
	l    *logrus.Logger
	file *os.File
	once sync.Once
}

var _ logger.Logger = (*Logger)(nil)

func (l *Logger) Print(message string)   { l.l.Print(message) }
func (l *Logger) Trace(message string)   { l.l.Trace(message) }
func (l *Logger) Debug(message string)   { l.l.Debug(message) }
func (l *Logger) Info(message string)    { l.l.Info(message) }
func (l *Logger) Warning(message string) { l.l.Warn(message) }
func (l *Logger) Error(message string)   { l.l.Error(message) }
func (l *Logger) Fatal(message string)   { l.l.Fatal(message) }

// Logrus は下層の logrus.Logger を返す。
func (l *Logger) Logrus() *logrus.Logger { return l.l }

// Close はログファイルを閉じる（複数回呼んでよい）。
func (l *Logger) Close() error {
	var err error
	l.once.Do(func() {
		if l.file != nil {
			err = l.file.Close()
		}
	})
	return err
}

// logrusLevel は wails のログレベルを logrus のレベルに変換する。
func logrusLevel(lv logger.LogLevel) logrus.Level {
	switch lv {
	case logger.TRACE:
		return logrus.TraceLevel
	case logger.DEBUG:
		return logrus.DebugLevel
	case logger.WARNING:
		return logrus.WarnLevel
	case logger.ERROR:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

func newLogger(level logger.LogLevel, out io.Writer, file *os.File) *Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrusLevel(level))
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	return &Logger{l: l, file: file}
}

// webviewHook は起動後のログをフロントエンドへ "log" イベントとして流す。
type webviewHook struct {
	mu  sync.RWMutex
	ctx context.Context
}

func (h *webviewHook) attach(ctx context.Context) {
	h.mu.Lock()
	h.ctx = ctx
	h.mu.Unlock()
}

func (h *webviewHook) detach(context.Context) { h.attach(nil) }

func (h *webviewHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *webviewHook) Fire(e *logrus.Entry) error {
	h.mu.RLock()
	ctx := h.ctx
	h.mu.RUnlock()
	if ctx == nil {
		return nil
	}
	msg := e.Message
	if src, ok := e.Data["source"]; ok {
		msg = fmt.Sprintf("[%v] %s", src, msg)
	}
	runtime.EventsEmit(ctx, "log", map[string]any{"level": e.Level.String(), "msg": msg, "time": e.Time.Format(time.RFC3339)})
	return nil
}
