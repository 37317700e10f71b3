package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/folio/internal/imageref"
	"github.com/five82/folio/internal/model"
	"github.com/five82/folio/internal/state"
)

// settingsField is one row of the settings form. The last row is the picture
// path, which feeds the encoder instead of the draft directly.
type settingsField struct {
	label string
	field model.Field // empty for the picture path row
	input textinput.Model
	err   string
}

// settingsForm edits the store's draft profile. Every keystroke that changes
// a text field is written to the draft; nothing reaches the committed
// profile until Commit.
type settingsForm struct {
	ctx     context.Context
	store   *state.Store
	encoder imageref.Encoder
	gen     uint64

	fields  []settingsField
	focus   int
	picture string // draft picture reference, for the preview line
	busy    bool   // picture encode in flight
}

var settingsLabels = map[model.Field]string{
	model.FieldUsername: "Username",
	model.FieldGender:   "Gender",
	model.FieldAge:      "Age",
	model.FieldLocation: "Location",
	model.FieldAbout:    "About",
}

func newSettingsForm(ctx context.Context, store *state.Store, encoder imageref.Encoder, snap state.Snapshot) *settingsForm {
	f := &settingsForm{
		ctx:     ctx,
		store:   store,
		encoder: encoder,
		gen:     snap.DraftGeneration,
		picture: snap.Draft.ProfilePicture,
	}
	for _, field := range model.Fields() {
		if field == model.FieldProfilePicture {
			continue
		}
		value, _ := snap.Draft.Get(field)
		f.fields = append(f.fields, settingsField{
			label: settingsLabels[field],
			field: field,
			input: newFieldInput(value, ""),
		})
	}
	f.fields = append(f.fields, settingsField{
		label: "Picture",
		input: newFieldInput("", "path to an image, enter to load"),
	})
	f.fields[0].input.Focus()
	return f
}

func newFieldInput(value, placeholder string) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = 1024
	in.Width = 44
	in.SetValue(value)
	in.CursorEnd()
	in.Blur()
	return in
}

func (f *settingsForm) pictureRow() bool {
	return f.focus == len(f.fields)-1
}

func (f *settingsForm) setFocus(idx int) tea.Cmd {
	n := len(f.fields)
	idx = ((idx % n) + n) % n
	f.fields[f.focus].input.Blur()
	f.focus = idx
	return f.fields[f.focus].input.Focus()
}

func (f *settingsForm) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
		return f, cmd, false
	}

	switch {
	case key.Matches(km, keys.Escape):
		f.store.CloseSettings()
		return f, setStatusCmd("Settings closed, changes discarded", false), true
	case key.Matches(km, keys.Commit):
		p := f.store.CommitSettings()
		return f, setStatusCmd("Saved profile "+p.Username, false), true
	case key.Matches(km, keys.NextField):
		return f, f.setFocus(f.focus + 1), false
	case key.Matches(km, keys.PrevField):
		return f, f.setFocus(f.focus - 1), false
	case key.Matches(km, keys.Confirm):
		if f.pictureRow() {
			return f, f.loadPicture(), false
		}
		return f, f.setFocus(f.focus + 1), false
	}

	row := &f.fields[f.focus]
	before := row.input.Value()
	var cmd tea.Cmd
	row.input, cmd = row.input.Update(msg)
	if row.field != "" && row.input.Value() != before {
		row.err = ""
		if err := f.store.UpdateDraftField(string(row.field), row.input.Value()); err != nil {
			row.err = fieldError(row.field, err)
		}
	}
	return f, cmd, false
}

func fieldError(field model.Field, err error) string {
	if !errors.Is(err, model.ErrInvalidValue) {
		return err.Error()
	}
	if field == model.FieldAge {
		return "must be a whole number, not saved"
	}
	return "must not be empty, not saved"
}

// loadPicture encodes the path in the picture row. An empty path clears the
// draft picture.
func (f *settingsForm) loadPicture() tea.Cmd {
	row := &f.fields[len(f.fields)-1]
	path := expandHome(strings.TrimSpace(row.input.Value()))
	row.err = ""
	if path == "" {
		if err := f.store.SetDraftPicture(""); err != nil {
			row.err = err.Error()
			return nil
		}
		f.picture = ""
		return nil
	}
	f.busy = true
	return encodePictureCmd(f.ctx, f.encoder, f.gen, path)
}

// applyPicture reflects a finished encode in the form.
func (f *settingsForm) applyPicture(msg pictureEncodedMsg) {
	if msg.gen != f.gen {
		return
	}
	f.busy = false
	row := &f.fields[len(f.fields)-1]
	if msg.err != nil {
		row.err = msg.err.Error()
		return
	}
	f.picture = msg.ref
	row.err = ""
	row.input.SetValue("")
}

func (f *settingsForm) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Muted)).Width(10)
	focusLabel := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent)).Bold(true).Width(10)

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Settings"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	for i, row := range f.fields {
		ls := labelStyle
		if i == f.focus {
			ls = focusLabel
		}
		b.WriteString(ls.Render(row.label))
		b.WriteString(row.input.View())
		b.WriteString("\n")
		if row.err != "" {
			b.WriteString(labelStyle.Render(""))
			b.WriteString(styles.DangerText.Render(row.err))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render(""))
	switch {
	case f.busy:
		b.WriteString(styles.WarningText.Render("loading picture…"))
	case f.picture != "":
		b.WriteString(styles.MutedText.Render(pictureLabel(f.picture)))
	default:
		b.WriteString(styles.FaintText.Render("no picture"))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("tab next · enter load picture · ctrl+s save · esc discard"))

	return placeModal(theme, width, height, styles.Modal.Width(64).Render(b.String()))
}

// pictureLabel describes an image reference without rendering it.
func pictureLabel(ref string) string {
	mime := imageref.MediaType(ref)
	if mime == "" {
		mime = "image"
	}
	return mime + " · " + formatBytes(imageref.Size(ref))
}
