package tools

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/founderpath/founderpath/internal/screen"
	"github.com/founderpath/founderpath/internal/tools"
	"github.com/founderpath/founderpath/internal/ui/components"
	"github.com/founderpath/founderpath/internal/ui/layout"
	"github.com/founderpath/founderpath/internal/ui/theme"
)

type generatedMsg struct {
	ok bool
}

// FormScreen fills in one tool's inputs and shows the generated document.
type FormScreen struct {
	run     *tools.Run
	inputs  []components.TextInput
	focus   int
	output  viewport.Model
	spinner spinner.Model
	status  string

	generating bool
}

var _ screen.Screen = (*FormScreen)(nil)

// NewForm creates a form for run's template. Every input is shown at
// once, so all of them count as presented.
func NewForm(run *tools.Run) *FormScreen {
	run.Present()
	tmpl := run.Template()
	f := &FormScreen{
		run:    run,
		output: viewport.New(viewport.WithWidth(60), viewport.WithHeight(10)),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
		),
	}
	for _, in := range tmpl.Inputs {
		ti := components.NewTextInput(in.Label, in.Key, in.Placeholder, 50)
		ti.Model.SetValue(run.Value(in.Key))
		f.inputs = append(f.inputs, ti)
	}
	return f
}

func (f *FormScreen) Init() tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	return f.inputs[0].Focus()
}

// CapturingInput reports whether a field is being edited.
func (f *FormScreen) CapturingInput() bool {
	return f.run.Output() == "" && !f.generating
}

func (f *FormScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		f.generating = false
		if msg.ok {
			f.output.SetContent(f.run.Output())
			f.output.GotoTop()
		}
		return f, nil

	case components.CopiedMsg:
		if msg.Err != nil {
			f.status = "Clipboard unavailable."
		} else {
			f.status = "Copied to clipboard!"
		}
		return f, nil

	case spinner.TickMsg:
		if !f.generating {
			return f, nil
		}
		var cmd tea.Cmd
		f.spinner, cmd = f.spinner.Update(msg)
		return f, cmd

	case tea.KeyPressMsg:
		return f.handleKey(msg)
	}

	if len(f.inputs) > 0 {
		var cmd tea.Cmd
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
		return f, cmd
	}
	return f, nil
}

func (f *FormScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if f.generating {
		return f, nil
	}
	key := msg.String()

	if f.run.Output() != "" {
		switch key {
		case "c":
			return f, components.CopyToClipboard(f.run.Output())
		case "r":
			f.run.Reset()
			f.status = ""
			return f, f.inputs[f.focus].Focus()
		}
		var cmd tea.Cmd
		f.output, cmd = f.output.Update(msg)
		return f, cmd
	}

	switch key {
	case "tab", "down":
		return f, f.moveFocus(1)
	case "shift+tab", "up":
		return f, f.moveFocus(-1)
	case "enter":
		if f.focus < len(f.inputs)-1 {
			return f, f.moveFocus(1)
		}
		return f, f.generate()
	case "ctrl+g":
		return f, f.generate()
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	in := f.inputs[f.focus]
	_ = f.run.Set(in.Key, in.Value())
	return f, cmd
}

func (f *FormScreen) moveFocus(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	return f.inputs[f.focus].Focus()
}

func (f *FormScreen) generate() tea.Cmd {
	if f.generating {
		return nil
	}
	f.status = ""
	f.generating = true
	run := f.run
	return tea.Batch(f.spinner.Tick, func() tea.Msg {
		_, ok := run.Generate(context.Background())
		return generatedMsg{ok: ok}
	})
}

func (f *FormScreen) View(width, height int) string {
	tmpl := f.run.Template()
	cw := components.ContentWidth(width)

	parts := []string{
		theme.Title.Render(tmpl.Name),
		theme.Subtitle.Render(tmpl.Description),
		"",
	}

	switch {
	case f.generating:
		parts = append(parts, f.spinner.View()+" "+theme.Subtitle.Render("Generating..."))
	case f.run.Output() != "":
		f.output.SetWidth(cw)
		f.output.SetHeight(max(3, height-8))
		parts = append(parts, theme.Heading.Render("Result"), f.output.View())
	default:
		for _, in := range f.inputs {
			parts = append(parts, in.View(), "")
		}
		parts = append(parts, components.Button("Generate", true))
	}

	if f.status != "" {
		parts = append(parts, "", theme.Hint.Render(f.status))
	}
	return lipgloss.NewStyle().Padding(0, 2).Render(strings.Join(parts, "\n"))
}

func (f *FormScreen) Title() string {
	return f.run.Template().Name
}

func (f *FormScreen) KeyHints() []layout.KeyHint {
	if f.run.Output() != "" {
		return []layout.KeyHint{
			{Key: "c", Description: "Copy"},
			{Key: "r", Description: "Edit inputs"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Ctrl+G", Description: "Generate"},
		{Key: "Esc", Description: "Back"},
	}
}
