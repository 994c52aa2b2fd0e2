package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tably-dev/tably/internal/api"
	"github.com/tably-dev/tably/internal/tui"
)

// SaveCategoryRequestMsg is sent when the user submits a category name.
// ID zero means create, otherwise rename.
type SaveCategoryRequestMsg struct {
	ID   int64
	Name string
}

// DeleteCategoryRequestMsg is sent when the user deletes a category.
type DeleteCategoryRequestMsg struct {
	ID int64
}

// CategoriesModel is the view model for the categories section.
type CategoriesModel struct {
	categories []api.Category
	cursor     int

	editing bool
	editID  int64
	input   textinput.Model
	formErr string

	width  int
	height int
}

// NewCategoriesModel creates the categories section view.
func NewCategoriesModel(categories []api.Category, width, height int) CategoriesModel {
	input := textinput.New()
	input.Placeholder = "Category name"
	input.CharLimit = 100
	input.Width = 32

	return CategoriesModel{
		categories: categories,
		input:      input,
		width:      width,
		height:     height,
	}
}

// SetCategories replaces the displayed collection after a fetch.
func (m *CategoriesModel) SetCategories(categories []api.Category) {
	m.categories = categories
	if m.cursor >= len(categories) {
		m.cursor = 0
	}
}

// SetFormError keeps the form open and shows why the save was rejected.
func (m *CategoriesModel) SetFormError(text string) {
	m.formErr = text
}

// FormError returns the currently displayed form error.
func (m CategoriesModel) FormError() string {
	return m.formErr
}

// CloseForm returns to the list after a successful save.
func (m *CategoriesModel) CloseForm() {
	m.editing = false
	m.formErr = ""
	m.input.Blur()
}

// Editing reports whether the inline form currently captures input.
func (m CategoriesModel) Editing() bool {
	return m.editing
}

// Init returns the initial command for the categories view.
func (m CategoriesModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the categories view.
func (m CategoriesModel) Update(msg tea.Msg) (CategoriesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			switch msg.String() {
			case tui.KeyEsc:
				m.CloseForm()
				return m, nil
			case tui.KeyEnter:
				name := strings.TrimSpace(m.input.Value())
				id := m.editID
				m.formErr = ""
				return m, func() tea.Msg {
					return SaveCategoryRequestMsg{ID: id, Name: name}
				}
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case tui.KeyUp, "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case tui.KeyDown, "j":
			if m.cursor < len(m.categories)-1 {
				m.cursor++
			}
		case "n":
			m.editing = true
			m.editID = 0
			m.input.SetValue("")
			return m, m.input.Focus()
		case "e":
			if len(m.categories) > 0 {
				m.editing = true
				m.editID = m.categories[m.cursor].ID
				m.input.SetValue(m.categories[m.cursor].Name)
				return m, m.input.Focus()
			}
		case "d":
			if len(m.categories) > 0 {
				id := m.categories[m.cursor].ID
				return m, func() tea.Msg {
					return DeleteCategoryRequestMsg{ID: id}
				}
			}
		}
	}

	return m, nil
}

// View renders the categories section.
func (m CategoriesModel) View() string {
	var b strings.Builder

	if m.editing {
		title := "New Category"
		if m.editID != 0 {
			title = "Rename Category"
		}
		b.WriteString(tui.TitleStyle.Render(title))
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		if m.formErr != "" {
			b.WriteString(tui.ErrorStyle.Render(m.formErr))
			b.WriteString("\n\n")
		}
		b.WriteString(tui.DimStyle.Render("Enter: Save · Esc: Cancel"))

		boxWidth := 44
		if m.width-4 < boxWidth {
			boxWidth = m.width - 4
		}
		return tui.BoxStyle.Width(boxWidth).Render(b.String())
	}

	if len(m.categories) == 0 {
		b.WriteString(tui.DimStyle.Render("No categories yet"))
	} else {
		for i, c := range m.categories {
			line := "  " + c.Name
			if i == m.cursor {
				line = tui.SelectedStyle.Render("> " + c.Name)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("n: New · e: Rename · d: Delete"))
	return b.String()
}
