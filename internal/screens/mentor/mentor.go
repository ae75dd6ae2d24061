package mentor

import (
	"context"
	"errors"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/founderpath/founderpath/internal/mentor"
	"github.com/founderpath/founderpath/internal/screen"
	"github.com/founderpath/founderpath/internal/ui/components"
	"github.com/founderpath/founderpath/internal/ui/layout"
	"github.com/founderpath/founderpath/internal/ui/theme"
)

type transcriptMsg struct{}

type uploadMsg struct {
	err error
}

// MentorScreen is the chat with FounderBot.
type MentorScreen struct {
	ctrl *mentor.Controller

	transcript viewport.Model
	input      components.TextInput
	picture    components.TextInput
	picking    bool
	status     string
	done       chan struct{}
	width      int
}

var _ screen.Screen = (*MentorScreen)(nil)

// New creates a MentorScreen over ctrl.
func New(ctrl *mentor.Controller) *MentorScreen {
	m := &MentorScreen{
		ctrl:       ctrl,
		transcript: viewport.New(viewport.WithWidth(60), viewport.WithHeight(10)),
		input:      components.NewTextInput("", "message", "Ask anything about your startup...", 60),
		picture:    components.NewTextInput("Image file", "picture", "/path/to/photo.png", 60),
		done:       make(chan struct{}),
	}
	m.input.Focus()
	return m
}

// waitTranscript blocks until the controller reports a change or the
// screen is closed.
func (m *MentorScreen) waitTranscript() tea.Cmd {
	updates, done := m.ctrl.Updates(), m.done
	return func() tea.Msg {
		select {
		case <-updates:
			return transcriptMsg{}
		case <-done:
			return nil
		}
	}
}

func (m *MentorScreen) Init() tea.Cmd {
	return tea.Batch(m.waitTranscript(), m.input.Focus())
}

// Close stops listening for transcript updates.
func (m *MentorScreen) Close() {
	select {
	case <-m.done:
	default:
		close(m.done)
	}
}

// CapturingInput reports whether typed keys belong to an input field.
func (m *MentorScreen) CapturingInput() bool {
	return m.picking || m.input.Model.Focused()
}

func (m *MentorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case transcriptMsg:
		m.refresh()
		return m, m.waitTranscript()

	case uploadMsg:
		var verr *mentor.ValidationError
		switch {
		case errors.As(msg.err, &verr):
			m.status = theme.Incorrect.Render(verr.Reason)
		case msg.err != nil:
			m.status = theme.Incorrect.Render("Could not save picture: " + msg.err.Error())
		default:
			m.status = theme.Correct.Render("Profile picture updated.")
		}
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	return m.updateInputs(msg)
}

func (m *MentorScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if m.picking {
		switch key {
		case "esc":
			m.picking = false
			m.picture.Blur()
			return m, m.input.Focus()
		case "enter":
			path := strings.TrimSpace(m.picture.Value())
			m.picking = false
			m.picture.Blur()
			m.picture.Reset()
			return m, tea.Batch(m.upload(path), m.input.Focus())
		}
		return m.updateInputs(msg)
	}

	switch key {
	case "ctrl+f":
		if !m.ctrl.TriggerFlashback(context.Background()) {
			m.status = theme.Hint.Render("FounderBot is still typing...")
		}
		return m, nil
	case "ctrl+p":
		m.picking = true
		m.status = ""
		m.input.Blur()
		return m, m.picture.Focus()
	case "pgup", "pgdown", "up", "down":
		var cmd tea.Cmd
		m.transcript, cmd = m.transcript.Update(msg)
		return m, cmd
	}

	if !m.input.Model.Focused() {
		if key == "enter" || key == "i" {
			return m, m.input.Focus()
		}
		return m, nil
	}

	switch key {
	case "esc":
		m.input.Blur()
		return m, nil
	case "enter":
		if m.ctrl.SendUserMessage(context.Background(), m.input.Value()) {
			m.input.Reset()
			m.status = ""
		}
		return m, nil
	}
	return m.updateInputs(msg)
}

func (m *MentorScreen) updateInputs(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	if m.picking {
		m.picture, cmd = m.picture.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m *MentorScreen) upload(path string) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		if path == "" {
			return uploadMsg{err: &mentor.ValidationError{Reason: "no file selected"}}
		}
		data, err := mentor.ReadPicture(path)
		if err != nil {
			return uploadMsg{err: err}
		}
		_, err = ctrl.UploadProfilePicture(context.Background(), data)
		return uploadMsg{err: err}
	}
}

func (m *MentorScreen) refresh() {
	if m.width <= 0 {
		return
	}
	m.transcript.SetContent(renderTranscript(m.ctrl.Snapshot(), m.width))
	m.transcript.GotoBottom()
}

func renderTranscript(s mentor.Snapshot, width int) string {
	bubbleWidth := width * 3 / 4
	var rows []string
	for i, msg := range s.Messages {
		text := msg.Text
		last := i == len(s.Messages)-1
		if msg.Role == mentor.RoleModel && text == "" && s.Typing && last {
			text = "FounderBot is typing..."
		}
		if msg.Role == mentor.RoleUser {
			bubble := theme.UserBubble.MaxWidth(bubbleWidth).Render(components.Wrap(text, bubbleWidth-4))
			rows = append(rows, lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble))
			continue
		}
		name := theme.Hint.Render("FounderBot · " + msg.Timestamp.Format("15:04"))
		bubble := theme.ModelBubble.MaxWidth(bubbleWidth).Render(components.Wrap(text, bubbleWidth-4))
		rows = append(rows, name+"\n"+bubble)
	}
	return strings.Join(rows, "\n\n")
}

func (m *MentorScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if cw != m.width {
		m.width = cw
		m.input.Model.SetWidth(cw - 4)
		m.picture.Model.SetWidth(cw - 4)
	}
	m.transcript.SetWidth(cw)
	m.transcript.SetHeight(max(3, height-8))
	m.refresh()

	title := theme.Title.Render("AI Mentor") + "  " + theme.Correct.Render("● Online")
	var bottom string
	if m.picking {
		bottom = m.picture.View()
	} else {
		bottom = theme.Card.Width(cw).Render(m.input.View())
	}
	parts := []string{title, m.transcript.View(), bottom}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return lipgloss.NewStyle().Padding(0, 2).Render(strings.Join(parts, "\n"))
}

func (m *MentorScreen) Title() string {
	return "Mentor"
}

func (m *MentorScreen) KeyHints() []layout.KeyHint {
	if m.picking {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Upload"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Ctrl+F", Description: "AI Flashback"},
		{Key: "Ctrl+P", Description: "Profile picture"},
	}
	if m.input.Model.Focused() {
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Leave input"})
	}
	return append(hints, layout.KeyHint{Key: "1-5", Description: "Tabs"})
}
