// Package views provides TUI view components for the tably dashboard.
package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tably-dev/tably/internal/tui"
)

// SubmitLoginMsg is sent when the user submits the login form.
type SubmitLoginMsg struct {
	Username string
	Password string
}

// LoginModel is the view model for the login form.
type LoginModel struct {
	username textinput.Model
	password textinput.Model
	focused  int // 0=username, 1=password
	errText  string
	waiting  bool
	width    int
	height   int
}

// NewLoginModel creates the login form.
func NewLoginModel(width, height int) LoginModel {
	user := textinput.New()
	user.Placeholder = "Username"
	user.CharLimit = 150
	user.Width = 32
	user.Focus()

	pass := textinput.New()
	pass.Placeholder = "Password"
	pass.CharLimit = 128
	pass.Width = 32
	pass.EchoMode = textinput.EchoPassword

	return LoginModel{
		username: user,
		password: pass,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the login view.
func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// SetError shows a login failure message and re-enables the form.
func (m *LoginModel) SetError(text string) {
	m.errText = text
	m.waiting = false
}

// Update handles messages for the login view.
func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.waiting {
			return m, nil
		}
		switch msg.String() {
		case tui.KeyTab, tui.KeyDown, tui.KeyUp:
			m.focused = (m.focused + 1) % 2
			if m.focused == 0 {
				m.password.Blur()
				return m, m.username.Focus()
			}
			m.username.Blur()
			return m, m.password.Focus()

		case tui.KeyEnter:
			if m.focused == 0 {
				m.focused = 1
				m.username.Blur()
				return m, m.password.Focus()
			}
			m.errText = ""
			m.waiting = true
			username := m.username.Value()
			password := m.password.Value()
			return m, func() tea.Msg {
				return SubmitLoginMsg{Username: username, Password: password}
			}
		}
	}

	var cmd tea.Cmd
	if m.focused == 0 {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

// View renders the login form.
func (m LoginModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Manager Login"))
	b.WriteString("\n\n")
	b.WriteString(m.username.View())
	b.WriteString("\n")
	b.WriteString(m.password.View())
	b.WriteString("\n\n")

	if m.waiting {
		b.WriteString(tui.DimStyle.Render("Signing in..."))
	} else if m.errText != "" {
		b.WriteString(tui.ErrorStyle.Render(m.errText))
	} else {
		b.WriteString(tui.DimStyle.Render("Enter: Sign in · Tab: Switch field"))
	}

	boxWidth := 44
	if m.width-4 < boxWidth {
		boxWidth = m.width - 4
	}

	return tui.BoxStyle.Width(boxWidth).Render(b.String())
}
