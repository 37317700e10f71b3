package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestBgStyle_KeepsTextWidth(t *testing.T) {
	bg := NewBgStyle("#112233")
	plain := lipgloss.NewStyle()

	if got := lipgloss.Width(bg.Render("a  b", plain)); got != 4 {
		t.Fatalf("Render width = %d, want 4", got)
	}
	if got := bg.Render("", plain); got != "" {
		t.Fatalf("Render(\"\") = %q, want empty", got)
	}
	if got := lipgloss.Width(bg.Hint("x", "remove", plain, plain)); got != len("x remove") {
		t.Fatalf("Hint width = %d, want %d", got, len("x remove"))
	}
	if got := lipgloss.Width(bg.Join([]string{"a", "b", "c"}, "  ")); got != 7 {
		t.Fatalf("Join width = %d, want 7", got)
	}
}

func TestBgStyle_FillLine(t *testing.T) {
	bg := NewBgStyle("#112233")
	if got := lipgloss.Width(bg.FillLine("folio", 30)); got != 30 {
		t.Fatalf("FillLine width = %d, want 30", got)
	}
	if got := bg.FillLine("folio", 0); got != "folio" {
		t.Fatalf("FillLine with no width = %q, want content unchanged", got)
	}
}

func TestModel_HeaderAndFooterSpanWidth(t *testing.T) {
	m, _ := newTestModel(t)
	if got := lipgloss.Width(m.renderHeader()); got != m.width {
		t.Fatalf("header width = %d, want %d", got, m.width)
	}
	if got := lipgloss.Width(m.renderFooter()); got != m.width {
		t.Fatalf("footer width = %d, want %d", got, m.width)
	}
}
