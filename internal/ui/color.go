package ui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

var colorEnabled = true

// Stdout / Stderr はメッセージの出力先（テストで差し替える）
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

func init() {
	// 色が使えるかチェック
	colorEnabled = term.IsTerminal(int(os.Stdout.Fd()))
}

// SetColorEnabled は色の有効/無効を設定する
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

// IsColorEnabled は色が有効かどうかを返す
func IsColorEnabled() bool {
	return colorEnabled
}

// IsInteractive は標準入力が端末かどうかを返す
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
	gray   = "\033[90m"
)

func paint(code, s string) string {
	if !colorEnabled {
		return s
	}
	return code + s + reset
}

// Bold は太字にする
func Bold(s string) string { return paint(bold, s) }

// Red は赤色にする
func Red(s string) string { return paint(red, s) }

// Green は緑色にする
func Green(s string) string { return paint(green, s) }

// Yellow は黄色にする
func Yellow(s string) string { return paint(yellow, s) }

// Cyan はシアン色にする
func Cyan(s string) string { return paint(cyan, s) }

// Gray はグレーにする
func Gray(s string) string { return paint(gray, s) }

// PermissionColor は権限レベルに応じた色を返す
func PermissionColor(level string) string {
	switch level {
	case "own":
		return Red(level)
	case "manage":
		return Yellow(level)
	case "view":
		return Green(level)
	default:
		return level
	}
}

// Success は成功メッセージを出力する
func Success(format string, args ...any) {
	_, _ = fmt.Fprintf(Stdout, Green("✓ ")+format+"\n", args...)
}

// Error はエラーメッセージを出力する
func Error(format string, args ...any) {
	_, _ = fmt.Fprintf(Stderr, Red("✗ ")+format+"\n", args...)
}

// Warning は警告メッセージを標準エラーに出力する
func Warning(format string, args ...any) {
	_, _ = fmt.Fprintf(Stderr, Yellow("! ")+format+"\n", args...)
}
