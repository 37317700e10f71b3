package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/folio/internal/imageref"
	"github.com/five82/folio/internal/logtail"
	"github.com/five82/folio/internal/model"
)

// renderMain renders the header, profile card, gallery and footer.
func (m Model) renderMain() string {
	header := m.renderHeader()
	footer := m.renderFooter()
	profile := m.renderProfile()

	used := lipgloss.Height(header) + lipgloss.Height(footer) + lipgloss.Height(profile)
	gallery := m.renderGallery(max(m.height-used-1, 3))

	body := lipgloss.JoinVertical(lipgloss.Left, header, profile, gallery)
	gap := max(m.height-lipgloss.Height(body)-lipgloss.Height(footer), 0)
	return body + strings.Repeat("\n", gap) + "\n" + footer
}

// renderHeader renders the title bar with the display mode and storage state.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{
		bg.Render("folio", styles.Logo),
		bg.Render(strings.ToLower(m.theme.Name)+" mode", styles.MutedText),
		bg.Render(fmt.Sprintf("%d wallpaper%s", len(m.snapshot.Wallpapers), ternary(len(m.snapshot.Wallpapers) == 1, "", "s")), styles.MutedText),
	}
	if m.adding > 0 {
		parts = append(parts, bg.Render("adding…", styles.WarningText))
	}
	if err := m.snapshot.LastPersistError; err != nil {
		text := fmt.Sprintf("NOT SAVED (%d failed write%s) %s", m.snapshot.ConsecutiveFailures,
			ternary(m.snapshot.ConsecutiveFailures == 1, "", "s"), truncate(err.Error(), 40))
		parts = append(parts, bg.Render(text, styles.DangerText))
	}

	return bg.FillLine(styles.Header.Render(bg.Join(parts, "  ")), m.width)
}

// renderProfile renders the committed profile card.
func (m Model) renderProfile() string {
	styles := m.theme.Styles()
	p := m.snapshot.Profile
	width := min(max(m.width-2, 20), ProfileCardMaxWidth)

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(p.Username))
	b.WriteString("  ")
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("%s · %d · %s", p.Gender, p.Age, p.Location)))
	b.WriteString("\n")
	if p.HasPicture() {
		b.WriteString(styles.FaintText.Render("picture: " + pictureLabel(p.ProfilePicture)))
	} else {
		b.WriteString(styles.FaintText.Render("no picture"))
	}
	if about := renderMarkdown(p.About, m.theme.Markdown, width-4); about != "" {
		b.WriteString("\n")
		b.WriteString(about)
	}
	return styles.Card.Width(width).Render(b.String())
}

// renderGallery renders up to height rows of the wallpaper list, keeping the
// selection visible.
func (m Model) renderGallery(height int) string {
	styles := m.theme.Styles()
	wps := m.snapshot.Wallpapers

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Wallpapers"))
	b.WriteString("\n")
	if len(wps) == 0 {
		b.WriteString(styles.FaintText.Render("No wallpapers yet. Press a to add some."))
		return b.String()
	}

	rows := max(height-1, 1)
	start := 0
	if m.selected >= rows {
		start = m.selected - rows + 1
	}
	end := min(start+rows, len(wps))

	compact := m.width < LayoutCompactWidth
	for i := start; i < end; i++ {
		line := galleryLine(i, wps[i], compact)
		if i == m.selected {
			b.WriteString(styles.Selected.Width(max(m.width, 1)).Render("› " + line))
		} else {
			b.WriteString(styles.Text.Render("  " + line))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func galleryLine(idx int, wp model.Wallpaper, compact bool) string {
	line := fmt.Sprintf("%3d  %s", idx+1, padRight(truncateMiddle(wp.ID, 28), 28))
	if compact {
		return line
	}
	mime := imageref.MediaType(wp.URL)
	if mime == "" {
		mime = "unknown"
	}
	return line + "  " + padRight(mime, 12) + "  " + formatBytes(imageref.Size(wp.URL))
}

// renderFooter renders the status line or the key hints.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	if m.status != "" {
		style := styles.SuccessText
		if m.statusErr {
			style = styles.DangerText
		}
		return bg.FillLine(styles.Footer.Render(bg.Render(m.status, style)), m.width)
	}

	hints := make([]string, 0, len(m.keys.ShortHelp())+1)
	hints = append(hints, bg.Hint("⚙", "s settings", styles.AccentText, styles.MutedText))
	for _, k := range m.keys.ShortHelp()[1:] {
		h := k.Help()
		hints = append(hints, bg.Hint(h.Key, strings.ToLower(h.Desc), styles.AccentText, styles.MutedText))
	}
	return bg.FillLine(styles.Footer.Render(bg.Join(hints, "  ")), m.width)
}

// renderLogs renders the log overlay.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	title := styles.Header.Width(m.width).Render(
		styles.Logo.Render("folio") + "  " + styles.MutedText.Render("log "+truncateMiddle(m.logPath, max(m.width-20, 10))),
	)
	footer := styles.Footer.Width(m.width).Render("j/k scroll · L/esc close")
	return title + "\n" + m.logViewport.View() + "\n" + footer
}

func (m Model) renderLogLines() string {
	if len(m.logLines) == 0 {
		return m.theme.Styles().FaintText.Render("Log is empty.")
	}
	styles := m.theme.Styles()
	out := make([]string, len(m.logLines))
	for i, line := range m.logLines {
		level := logtail.Level(line)
		if level == "" {
			out[i] = styles.Text.Render(line)
			continue
		}
		out[i] = styles.LevelStyle(level).Render(padRight(level, 5)) + " " + styles.Text.Render(line)
	}
	return strings.Join(out, "\n")
}

func (m Model) selectedWallpaper() (model.Wallpaper, bool) {
	wps := m.snapshot.Wallpapers
	if m.selected < 0 || m.selected >= len(wps) {
		return model.Wallpaper{}, false
	}
	return wps[m.selected], true
}
