package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestTableRenderPlain(t *testing.T) {
	SetColorEnabled(false)

	table := NewTable("ID", "NAME")
	table.AddRow("5f1b2c", "developer")
	table.AddRow("1", "All Pandas")

	var buf bytes.Buffer
	table.Render(&buf)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "ID      NAME") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "5f1b2c  developer") {
		t.Errorf("row = %q", lines[1])
	}
	if table.Len() != 2 {
		t.Errorf("Len() = %d, want 2", table.Len())
	}
}

func TestTableRenderColoredAlignment(t *testing.T) {
	SetColorEnabled(true)
	defer SetColorEnabled(false)

	table := NewTable("GRN", "CAPABILITY")
	table.AddRow("grn::::team:a", PermissionColor("view"))
	table.AddRow("grn::::user:admin", PermissionColor("own"))

	var buf bytes.Buffer
	table.Render(&buf)

	clean := ansiEscapeRegex.ReplaceAllString(buf.String(), "")
	lines := strings.Split(strings.TrimRight(clean, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	col := strings.Index(lines[0], "CAPABILITY")
	for _, line := range lines[1:] {
		if idx := strings.IndexAny(line[col:], "vo"); idx != 0 {
			t.Errorf("column misaligned in %q", line)
		}
	}
}

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{in: "abc", want: 3},
		{in: "\033[32mview\033[0m", want: 4},
		{in: "開発", want: 4},
	}
	for _, tt := range tests {
		if got := displayWidth(tt.in); got != tt.want {
			t.Errorf("displayWidth(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
