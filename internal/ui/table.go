package ui

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"text/tabwriter"
	"unicode/utf8"
)

// Table はテーブル出力
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable は新しいテーブルを作成する
func NewTable(headers ...string) *Table {
	return &Table{
		headers: headers,
		rows:    make([][]string, 0),
	}
}

// AddRow は行を追加する
func (t *Table) AddRow(values ...string) {
	t.rows = append(t.rows, values)
}

// Len は行数を返す
func (t *Table) Len() int {
	return len(t.rows)
}

// Render はテーブルを出力する
// 色が有効な場合はエスケープシーケンスを除いた幅で揃える
func (t *Table) Render(w io.Writer) {
	if w == nil {
		w = Stdout
	}
	if colorEnabled {
		t.renderColored(w)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, strings.Join(t.headers, "\t"))
	for _, row := range t.rows {
		_, _ = fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	_ = tw.Flush()
}

func (t *Table) renderColored(w io.Writer) {
	widths := t.columnWidths()

	for i, h := range t.headers {
		if i > 0 {
			_, _ = fmt.Fprint(w, "  ")
		}
		_, _ = fmt.Fprint(w, padRight(Bold(h), widths[i], displayWidth(h)))
	}
	_, _ = fmt.Fprintln(w)

	for _, row := range t.rows {
		for i, cell := range row {
			if i > 0 {
				_, _ = fmt.Fprint(w, "  ")
			}
			if i < len(widths) {
				_, _ = fmt.Fprint(w, padRight(cell, widths[i], displayWidth(cell)))
			} else {
				_, _ = fmt.Fprint(w, cell)
			}
		}
		_, _ = fmt.Fprintln(w)
	}
}

// columnWidths は各カラムの最大表示幅を計算する
func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = displayWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], displayWidth(cell))
			}
		}
	}
	return widths
}

var ansiEscapeRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// displayWidth はANSIエスケープシーケンスを除いた表示幅を返す
// 全角文字は幅2としてカウント
func displayWidth(s string) int {
	clean := ansiEscapeRegex.ReplaceAllString(s, "")

	width := 0
	for _, r := range clean {
		// 簡易判定: UTF-8で3バイト以上の文字を全角とみなす
		if utf8.RuneLen(r) >= 3 {
			width += 2
		} else {
			width++
		}
	}
	return width
}

func padRight(s string, targetWidth, currentWidth int) string {
	if currentWidth >= targetWidth {
		return s
	}
	return s + strings.Repeat(" ", targetWidth-currentWidth)
}
