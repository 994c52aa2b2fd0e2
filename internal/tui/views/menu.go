package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tably-dev/tably/internal/api"
	"github.com/tably-dev/tably/internal/tui"
)

// SaveItemRequestMsg is sent when the user submits the item form.
type SaveItemRequestMsg struct {
	Draft api.ItemDraft
}

// DeleteItemRequestMsg is sent when the user deletes the selected item.
type DeleteItemRequestMsg struct {
	ID   int64
	Name string
}

// ToggleItemRequestMsg is sent when the user toggles availability.
type ToggleItemRequestMsg struct {
	ID        int64
	Available bool
}

// menuEntry implements list.Item for the menu item list.
type menuEntry struct {
	item api.MenuItem
}

// Title returns the item headline for list display.
func (e menuEntry) Title() string {
	marker := ""
	if !e.item.IsAvailable {
		marker = " (unavailable)"
	}
	return fmt.Sprintf("%s · %s%s", e.item.Name, e.item.Price, marker)
}

// Description returns the item details line for list display.
func (e menuEntry) Description() string {
	category := "Uncategorized"
	if e.item.CategoryDetails != nil {
		category = e.item.CategoryDetails.Name
	}
	return fmt.Sprintf("%s · %s", category, e.item.Description)
}

// FilterValue returns the value used for filtering in the list.
func (e menuEntry) FilterValue() string {
	return e.item.Name
}

// Form field indexes for the item editor.
const (
	fieldName = iota
	fieldDescription
	fieldPrice
	fieldImage
	fieldCount
)

// MenuModel is the view model for the menu items section. It has two modes:
// the list and an inline editor form.
type MenuModel struct {
	itemList   list.Model
	categories []api.Category

	// Editor state
	editing     bool
	editID      int64
	inputs      [fieldCount]textinput.Model
	focused     int
	categoryIdx int
	available   bool
	formErr     string

	width  int
	height int
}

// NewMenuModel creates the menu items section view.
func NewMenuModel(items []api.MenuItem, categories []api.Category, width, height int) MenuModel {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("#E8590C")).
		BorderForeground(lipgloss.Color("#E8590C"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("#9CA3AF"))

	l := list.New(menuItems(items), delegate, width-8, height-12)
	l.Title = "Menu Items"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	m := MenuModel{
		itemList:   l,
		categories: categories,
		width:      width,
		height:     height,
	}
	m.resetForm()
	return m
}

func menuItems(items []api.MenuItem) []list.Item {
	entries := make([]list.Item, len(items))
	for i, it := range items {
		entries[i] = menuEntry{item: it}
	}
	return entries
}

// SetItems replaces the displayed collection after a fetch.
func (m *MenuModel) SetItems(items []api.MenuItem) {
	m.itemList.SetItems(menuItems(items))
}

// SetCategories replaces the category choices used by the editor.
func (m *MenuModel) SetCategories(categories []api.Category) {
	m.categories = categories
	if m.categoryIdx >= len(categories) {
		m.categoryIdx = 0
	}
}

// SetFormError surfaces a rejected save without leaving the editor, so the
// user can correct and resubmit.
func (m *MenuModel) SetFormError(text string) {
	if m.editing {
		m.formErr = text
	}
}

// CloseForm returns to the list after a successful save.
func (m *MenuModel) CloseForm() {
	m.editing = false
}

// Editing reports whether the inline form currently captures input.
func (m MenuModel) Editing() bool {
	return m.editing || m.itemList.FilterState() == list.Filtering
}

func (m *MenuModel) resetForm() {
	name := textinput.New()
	name.Placeholder = "Name"
	name.CharLimit = 100
	name.Width = 40

	desc := textinput.New()
	desc.Placeholder = "Description"
	desc.CharLimit = 500
	desc.Width = 40

	price := textinput.New()
	price.Placeholder = "Price (e.g. 9.50)"
	price.CharLimit = 10
	price.Width = 40

	image := textinput.New()
	image.Placeholder = "Image path (optional)"
	image.CharLimit = 255
	image.Width = 40

	m.inputs = [fieldCount]textinput.Model{name, desc, price, image}
	m.focused = fieldName
	m.categoryIdx = 0
	m.available = true
	m.editID = 0
	m.formErr = ""
}

func (m *MenuModel) openForm(item *api.MenuItem) tea.Cmd {
	m.resetForm()
	m.editing = true

	if item != nil {
		m.editID = item.ID
		m.inputs[fieldName].SetValue(item.Name)
		m.inputs[fieldDescription].SetValue(item.Description)
		m.inputs[fieldPrice].SetValue(item.Price.String())
		m.available = item.IsAvailable
		if item.CategoryDetails != nil {
			for i, c := range m.categories {
				if c.ID == item.CategoryDetails.ID {
					m.categoryIdx = i
					break
				}
			}
		}
	}

	return m.inputs[fieldName].Focus()
}

// Init returns the initial command for the menu view.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	if m.editing {
		return m.updateForm(msg)
	}
	return m.updateList(msg)
}

func (m MenuModel) updateList(msg tea.Msg) (MenuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.itemList.SetSize(msg.Width-8, msg.Height-12)
		return m, nil

	case tea.KeyMsg:
		if m.itemList.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "n":
			return m, m.openForm(nil)

		case "e":
			if entry, ok := m.itemList.SelectedItem().(menuEntry); ok {
				item := entry.item
				return m, m.openForm(&item)
			}
			return m, nil

		case "d":
			if entry, ok := m.itemList.SelectedItem().(menuEntry); ok {
				id, name := entry.item.ID, entry.item.Name
				return m, func() tea.Msg {
					return DeleteItemRequestMsg{ID: id, Name: name}
				}
			}
			return m, nil

		case "a":
			if entry, ok := m.itemList.SelectedItem().(menuEntry); ok {
				id, next := entry.item.ID, !entry.item.IsAvailable
				return m, func() tea.Msg {
					return ToggleItemRequestMsg{ID: id, Available: next}
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.itemList, cmd = m.itemList.Update(msg)
	return m, cmd
}

func (m MenuModel) updateForm(msg tea.Msg) (MenuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyEsc:
			m.editing = false
			return m, nil

		case tui.KeyTab, tui.KeyDown:
			return m, m.focusField((m.focused + 1) % fieldCount)

		case tui.KeyUp:
			return m, m.focusField((m.focused + fieldCount - 1) % fieldCount)

		case tui.KeyLeft, tui.KeyRight:
			if len(m.categories) > 0 {
				if msg.String() == tui.KeyRight {
					m.categoryIdx = (m.categoryIdx + 1) % len(m.categories)
				} else {
					m.categoryIdx = (m.categoryIdx + len(m.categories) - 1) % len(m.categories)
				}
			}
			return m, nil

		case "ctrl+a":
			m.available = !m.available
			return m, nil

		case tui.KeyEnter:
			return m.submitForm()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m *MenuModel) focusField(idx int) tea.Cmd {
	m.inputs[m.focused].Blur()
	m.focused = idx
	return m.inputs[m.focused].Focus()
}

func (m MenuModel) submitForm() (MenuModel, tea.Cmd) {
	m.formErr = ""

	price, err := strconv.ParseFloat(strings.TrimSpace(m.inputs[fieldPrice].Value()), 64)
	if err != nil {
		m.formErr = "Price must be a number"
		return m, nil
	}
	if len(m.categories) == 0 {
		m.formErr = "Create a category first"
		return m, nil
	}

	draft := api.ItemDraft{
		ID:          m.editID,
		Name:        strings.TrimSpace(m.inputs[fieldName].Value()),
		Description: strings.TrimSpace(m.inputs[fieldDescription].Value()),
		Price:       api.Money(price),
		CategoryID:  m.categories[m.categoryIdx].ID,
		IsAvailable: m.available,
	}

	if path := strings.TrimSpace(m.inputs[fieldImage].Value()); path != "" {
		upload, err := api.LoadUpload(path)
		if err != nil {
			m.formErr = err.Error()
			return m, nil
		}
		draft.Image = upload
	}

	return m, func() tea.Msg {
		return SaveItemRequestMsg{Draft: draft}
	}
}

// View renders the menu section.
func (m MenuModel) View() string {
	if m.editing {
		return m.viewForm()
	}

	var b strings.Builder
	if len(m.itemList.Items()) == 0 {
		b.WriteString(tui.DimStyle.Render("No menu items yet"))
	} else {
		b.WriteString(m.itemList.View())
	}
	b.WriteString("\n\n")
	b.WriteString(tui.DimStyle.Render("n: New · e: Edit · d: Delete · a: Toggle availability · /: Filter"))
	return b.String()
}

func (m MenuModel) viewForm() string {
	var b strings.Builder

	title := "New Menu Item"
	if m.editID != 0 {
		title = "Edit Menu Item"
	}
	b.WriteString(tui.TitleStyle.Render(title))
	b.WriteString("\n\n")

	for _, input := range m.inputs {
		b.WriteString(input.View())
		b.WriteString("\n")
	}

	category := "(none)"
	if len(m.categories) > 0 {
		category = m.categories[m.categoryIdx].Name
	}
	b.WriteString(fmt.Sprintf("Category: %s\n", tui.SelectedStyle.Render(category)))

	availability := tui.SuccessStyle.Render("available")
	if !m.available {
		availability = tui.ErrorStyle.Render("unavailable")
	}
	b.WriteString(fmt.Sprintf("Status: %s\n\n", availability))

	if m.formErr != "" {
		b.WriteString(tui.ErrorStyle.Render(m.formErr))
		b.WriteString("\n")
	}
	b.WriteString(tui.DimStyle.Render("Enter: Save · ←/→: Category · Ctrl+A: Availability · Esc: Cancel"))

	boxWidth := 56
	if m.width-4 < boxWidth {
		boxWidth = m.width - 4
	}
	return tui.BoxStyle.Width(boxWidth).Render(b.String())
}
