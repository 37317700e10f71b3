package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// promptModal asks for one line of text and hands it to submit on enter.
type promptModal struct {
	title  string
	hint   string
	input  textinput.Model
	submit func(value string) tea.Cmd
}

func newPromptModal(title, hint, initial string, submit func(string) tea.Cmd) *promptModal {
	in := textinput.New()
	in.Prompt = "› "
	in.CharLimit = 4096
	in.Width = 56
	in.SetValue(initial)
	in.CursorEnd()
	in.Focus()
	return &promptModal{title: title, hint: hint, input: in, submit: submit}
}

func (p *promptModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, keys.Escape):
			return p, nil, true
		case key.Matches(km, keys.Confirm):
			value := strings.TrimSpace(p.input.Value())
			if value == "" {
				return p, nil, true
			}
			return p, p.submit(value), true
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd, false
}

func (p *promptModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(p.title))
	b.WriteString("\n\n")
	b.WriteString(p.input.View())
	if p.hint != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.FaintText.Render(p.hint))
	}
	return placeModal(theme, width, height, styles.Modal.Width(64).Render(b.String()))
}

// pickerModal browses the filesystem for a single image file.
type pickerModal struct {
	picker filepicker.Model
	pick   func(path string) tea.Cmd
}

func newPickerModal(theme Theme, startDir string, height int, pick func(string) tea.Cmd) (*pickerModal, tea.Cmd) {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}
	fp.FileAllowed = true
	fp.DirAllowed = false
	fp.ShowPermissions = false
	fp.ShowSize = true
	fp.AutoHeight = false
	fp.Height = pickerHeight(height)
	fp.Cursor = "›"

	styles := theme.Styles()
	fp.Styles.Cursor = styles.AccentText
	fp.Styles.Selected = styles.AccentText.Bold(true)
	fp.Styles.Directory = styles.AccentText
	fp.Styles.Symlink = styles.InfoText
	fp.Styles.DisabledFile = styles.FaintText
	fp.Styles.DisabledSelected = styles.FaintText
	fp.Styles.FileSize = styles.MutedText.Width(fp.Styles.FileSize.GetWidth()).Align(lipgloss.Right)

	if strings.TrimSpace(startDir) == "" {
		if home, err := os.UserHomeDir(); err == nil {
			startDir = home
		} else {
			startDir = "."
		}
	}
	fp.CurrentDirectory = startDir

	return &pickerModal{picker: fp, pick: pick}, fp.Init()
}

func pickerHeight(screenH int) int {
	h := screenH - 12
	if h < 6 {
		h = 6
	}
	if h > 18 {
		h = 18
	}
	return h
}

func (p *pickerModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, keys.Escape) {
		return p, nil, true
	}
	var cmd tea.Cmd
	p.picker, cmd = p.picker.Update(msg)
	if ok, path := p.picker.DidSelectFile(msg); ok {
		return p, p.pick(path), true
	}
	return p, cmd, false
}

func (p *pickerModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Add wallpaper"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(truncateMiddle(p.picker.CurrentDirectory, 60)))
	b.WriteString("\n\n")
	b.WriteString(p.picker.View())
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("enter select · esc cancel"))
	return placeModal(theme, width, height, styles.Modal.Width(70).Render(b.String()))
}

// placeModal centers content over the full screen.
func placeModal(theme Theme, width, height int, content string) string {
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		content,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
