package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tably-dev/tably/internal/api"
	"github.com/tably-dev/tably/internal/tui"
)

// GenerateQRRequestMsg is sent when the user submits the QR form.
type GenerateQRRequestMsg struct {
	TableNumber string
	Color       string
	LogoPath    string
}

// QR form field indexes.
const (
	qrFieldTable = iota
	qrFieldColor
	qrFieldLogo
	qrFieldCount
)

// QRModel is the view model for the QR codes section.
type QRModel struct {
	codes  []api.QRCode
	cursor int

	editing bool
	inputs  [qrFieldCount]textinput.Model
	focused int
	formErr string

	width  int
	height int
}

// NewQRModel creates the QR codes section view.
func NewQRModel(codes []api.QRCode, width, height int) QRModel {
	table := textinput.New()
	table.Placeholder = "Table number (e.g. T7)"
	table.CharLimit = 20
	table.Width = 36

	color := textinput.New()
	color.Placeholder = "Color (e.g. #000000, optional)"
	color.CharLimit = 7
	color.Width = 36

	logo := textinput.New()
	logo.Placeholder = "Logo path (optional)"
	logo.CharLimit = 255
	logo.Width = 36

	return QRModel{
		codes:  codes,
		inputs: [qrFieldCount]textinput.Model{table, color, logo},
		width:  width,
		height: height,
	}
}

// SetCodes replaces the displayed collection after a fetch.
func (m *QRModel) SetCodes(codes []api.QRCode) {
	m.codes = codes
	if m.cursor >= len(codes) {
		m.cursor = 0
	}
}

// SetFormError surfaces a rejected generation without leaving the form.
func (m *QRModel) SetFormError(text string) {
	if m.editing {
		m.formErr = text
	}
}

// CloseForm returns to the list after a successful generation.
func (m *QRModel) CloseForm() {
	m.editing = false
}

// Editing reports whether the inline form currently captures input.
func (m QRModel) Editing() bool {
	return m.editing
}

// Init returns the initial command for the QR view.
func (m QRModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the QR view.
func (m QRModel) Update(msg tea.Msg) (QRModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			switch msg.String() {
			case tui.KeyEsc:
				m.editing = false
				return m, nil
			case tui.KeyTab, tui.KeyDown:
				return m, m.focusField((m.focused + 1) % qrFieldCount)
			case tui.KeyUp:
				return m, m.focusField((m.focused + qrFieldCount - 1) % qrFieldCount)
			case tui.KeyEnter:
				return m.submitForm()
			}
			var cmd tea.Cmd
			m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case tui.KeyUp, "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case tui.KeyDown, "j":
			if m.cursor < len(m.codes)-1 {
				m.cursor++
			}
		case "n":
			m.editing = true
			m.formErr = ""
			for i := range m.inputs {
				m.inputs[i].SetValue("")
			}
			m.focused = qrFieldTable
			return m, m.inputs[qrFieldTable].Focus()
		}
	}

	return m, nil
}

func (m *QRModel) focusField(idx int) tea.Cmd {
	m.inputs[m.focused].Blur()
	m.focused = idx
	return m.inputs[m.focused].Focus()
}

func (m QRModel) submitForm() (QRModel, tea.Cmd) {
	m.formErr = ""
	table := strings.TrimSpace(m.inputs[qrFieldTable].Value())
	if table == "" {
		m.formErr = "Table number is required"
		return m, nil
	}

	color := strings.TrimSpace(m.inputs[qrFieldColor].Value())
	logoPath := strings.TrimSpace(m.inputs[qrFieldLogo].Value())

	return m, func() tea.Msg {
		return GenerateQRRequestMsg{TableNumber: table, Color: color, LogoPath: logoPath}
	}
}

// View renders the QR codes section.
func (m QRModel) View() string {
	var b strings.Builder

	if m.editing {
		b.WriteString(tui.TitleStyle.Render("Generate QR Code"))
		b.WriteString("\n\n")
		for _, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		if m.formErr != "" {
			b.WriteString(tui.ErrorStyle.Render(m.formErr))
			b.WriteString("\n")
		}
		b.WriteString(tui.DimStyle.Render("Enter: Generate · Tab: Next field · Esc: Cancel"))

		boxWidth := 48
		if m.width-4 < boxWidth {
			boxWidth = m.width - 4
		}
		return tui.BoxStyle.Width(boxWidth).Render(b.String())
	}

	if len(m.codes) == 0 {
		b.WriteString(tui.DimStyle.Render("No QR codes yet"))
	} else {
		for i, code := range m.codes {
			line := fmt.Sprintf("  %s · %s", code.TableNumber, code.QRCodeURL)
			if i == m.cursor {
				line = tui.SelectedStyle.Render(fmt.Sprintf("> %s · %s", code.TableNumber, code.QRCodeURL))
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("n: Generate for a table"))
	return b.String()
}
