package ui

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"abcdef", 3, "abc"},
		{"  padded  ", 0, "padded"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestTruncateMiddle(t *testing.T) {
	got := truncateMiddle("1712000000-abcdef12", 9)
	if got != "1712…ef12" {
		t.Fatalf("truncateMiddle = %q, want %q", got, "1712…ef12")
	}
	if got := truncateMiddle("short", 10); got != "short" {
		t.Fatalf("truncateMiddle(short) = %q", got)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{-1, "?"},
		{0, "0 B"},
		{1023, "1023 B"},
		{1536, "1.5 KB"},
		{3 * 1024 * 1024, "3.0 MB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestParsePaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.png", "b.png", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}

	got := parsePaths(filepath.Join(dir, "*.png") + "  " + filepath.Join(dir, "missing.jpg"))
	want := []string{
		filepath.Join(dir, "a.png"),
		filepath.Join(dir, "b.png"),
		filepath.Join(dir, "missing.jpg"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("parsePaths = %v, want %v", got, want)
	}

	if got := parsePaths("   "); len(got) != 0 {
		t.Fatalf("parsePaths(blank) = %v, want none", got)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := expandHome("~/pics/a.png"); got != filepath.Join(home, "pics/a.png") {
		t.Fatalf("expandHome = %q", got)
	}
	if got := expandHome("/abs/a.png"); got != "/abs/a.png" {
		t.Fatalf("expandHome(abs) = %q", got)
	}
	if got := expandHome("~other/a.png"); got != "~other/a.png" {
		t.Fatalf("expandHome(~other) = %q", got)
	}
}
