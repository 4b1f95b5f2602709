package debug

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	enabled bool
	mu      sync.RWMutex
	logger  = newLogger(os.Stderr)
)

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// Enable はデバッグモードを有効化する
func Enable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
}

// Disable はデバッグモードを無効化する
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
}

// SetOutput はログの出力先を変更する
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w)
}

// IsEnabled はデバッグモードが有効かどうかを返す
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// Log はデバッグモード時にログを出力する
// パスワードやトークンを args に渡さないこと
func Log(msg string, args ...any) {
	mu.RLock()
	l, on := logger, enabled
	mu.RUnlock()
	if !on {
		return
	}
	l.Debug(msg, args...)
}
