package components

import (
	"strings"

	"github.com/Akashdeep-Patra/lazylist/internal/ui"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DialogKind specifies the type of dialog.
type DialogKind int

const (
	DialogConfirm DialogKind = iota
	DialogInput
)

// dialogWidth is the outer width of every dialog box.
const dialogWidth = 56

// DialogResult is sent when the dialog is dismissed.
type DialogResult struct {
	Confirmed bool
	Value     string
	Tag       string // identifies which dialog this was
}

type dialogKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
	Toggle key.Binding
	Yes    key.Binding
	No     key.Binding
}

var dialogKeys = dialogKeyMap{
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "ok")),
	Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Toggle: key.NewBinding(key.WithKeys("tab", "left", "right", "h", "l")),
	Yes:    key.NewBinding(key.WithKeys("y")),
	No:     key.NewBinding(key.WithKeys("n")),
}

// Dialog is a modal confirmation or input dialog. The app routes every key
// to it while it is visible.
type Dialog struct {
	Kind    DialogKind
	Title   string
	Message string
	Tag     string
	// Validate, when set, must accept the input before Enter closes an
	// input dialog. Its error is shown under the field.
	Validate func(string) error

	input   textinput.Model
	errText string
	decline bool // confirm dialogs: "No" is focused
	styles  ui.Styles
	visible bool
}

// NewConfirmDialog creates a Yes/No confirmation dialog.
func NewConfirmDialog(styles ui.Styles, title, message, tag string) Dialog {
	return Dialog{
		Kind:    DialogConfirm,
		Title:   title,
		Message: message,
		Tag:     tag,
		styles:  styles,
		visible: true,
	}
}

// NewInputDialog creates a single-line text input dialog.
func NewInputDialog(styles ui.Styles, title, placeholder, tag string) Dialog {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 512
	ti.Width = dialogWidth - 10
	ti.Focus()
	return Dialog{
		Kind:    DialogInput,
		Title:   title,
		Tag:     tag,
		input:   ti,
		styles:  styles,
		visible: true,
	}
}

// Visible returns whether the dialog is showing.
func (d Dialog) Visible() bool { return d.visible }

// close hides the dialog and reports res.
func (d Dialog) close(res DialogResult) (Dialog, tea.Cmd) {
	d.visible = false
	res.Tag = d.Tag
	return d, func() tea.Msg { return res }
}

// Update handles key events for the dialog.
func (d Dialog) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if !d.visible {
		return d, nil
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, dialogKeys.Cancel):
			return d.close(DialogResult{})
		case key.Matches(k, dialogKeys.Submit):
			if d.Kind == DialogConfirm {
				return d.close(DialogResult{Confirmed: !d.decline})
			}
			value := strings.TrimSpace(d.input.Value())
			if d.Validate != nil {
				if err := d.Validate(value); err != nil {
					d.errText = err.Error()
					return d, nil
				}
			}
			return d.close(DialogResult{Confirmed: true, Value: value})
		}

		if d.Kind == DialogConfirm {
			switch {
			case key.Matches(k, dialogKeys.Toggle):
				d.decline = !d.decline
			case key.Matches(k, dialogKeys.Yes):
				return d.close(DialogResult{Confirmed: true})
			case key.Matches(k, dialogKeys.No):
				return d.close(DialogResult{})
			}
			return d, nil
		}
	}

	if d.Kind != DialogInput {
		return d, nil
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	d.errText = ""
	return d, cmd
}

// View renders the dialog box.
func (d Dialog) View() string {
	if !d.visible {
		return ""
	}
	t := d.styles.Theme

	lines := []string{lipgloss.NewStyle().Foreground(t.Text).Bold(true).Render(d.Title), ""}
	switch d.Kind {
	case DialogConfirm:
		lines = append(lines,
			lipgloss.NewStyle().Foreground(t.TextMuted).Render(d.Message),
			"",
			d.buttons(),
		)
	case DialogInput:
		lines = append(lines, d.input.View())
		if d.Message != "" {
			lines = append(lines, lipgloss.NewStyle().Foreground(t.TextSubtle).Render(d.Message))
		}
		if d.errText != "" {
			lines = append(lines, lipgloss.NewStyle().Foreground(t.Error).Render("✗ "+d.errText))
		}
		lines = append(lines, "", d.styles.Muted.Render("enter ok · esc cancel"))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		Width(dialogWidth).
		Render(strings.Join(lines, "\n"))
}

func (d Dialog) buttons() string {
	t := d.styles.Theme
	on := lipgloss.NewStyle().Foreground(t.TextInverse).Background(t.Primary).Bold(true).Padding(0, 2)
	off := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Padding(0, 2)
	yes, no := on, off
	if d.decline {
		yes, no = off, on
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, yes.Render("Yes"), "  ", no.Render("No"))
}
