package ui

import "testing"

func TestThemeFor(t *testing.T) {
	dark := ThemeFor(true)
	if dark.Name != "Dark" || dark.Markdown != "dark" {
		t.Fatalf("ThemeFor(true) = %q/%q, want Dark/dark", dark.Name, dark.Markdown)
	}
	light := ThemeFor(false)
	if light.Name != "Light" || light.Markdown != "light" {
		t.Fatalf("ThemeFor(false) = %q/%q, want Light/light", light.Name, light.Markdown)
	}
	if dark.Background == light.Background || dark.Text == light.Text {
		t.Fatal("light and dark themes should differ")
	}
}

func TestThemesDefineEveryColor(t *testing.T) {
	for _, th := range []Theme{ThemeFor(true), ThemeFor(false)} {
		colors := map[string]string{
			"Background": th.Background, "Surface": th.Surface, "SurfaceAlt": th.SurfaceAlt,
			"SelectionBg": th.SelectionBg, "SelectionText": th.SelectionText,
			"Border": th.Border, "BorderFocus": th.BorderFocus,
			"Text": th.Text, "Muted": th.Muted, "Faint": th.Faint, "Accent": th.Accent,
			"Success": th.Success, "Warning": th.Warning, "Danger": th.Danger, "Info": th.Info,
		}
		for name, c := range colors {
			if len(c) != 7 || c[0] != '#' {
				t.Errorf("%s theme %s = %q, want #rrggbb", th.Name, name, c)
			}
		}
	}
}

func TestRenderMarkdown_EmptyAndFallback(t *testing.T) {
	if got := renderMarkdown("   ", "dark", 40); got != "" {
		t.Fatalf("renderMarkdown(blank) = %q, want empty", got)
	}
	if got := renderMarkdown("hello", "dark", 40); got == "" {
		t.Fatal("renderMarkdown(hello) returned empty output")
	}
}
