package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// menuAction identifies what the user picked from the main menu.
type menuAction int

const (
	actionNone menuAction = iota
	actionAdd
	actionViewAll
	actionSearch
	actionUpdate
	actionDelete
	actionChanges
	actionSave
	actionExport
	actionExit
)

type menuItem struct {
	title  string
	desc   string
	action menuAction
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

// MenuModel is the main menu: every roster operation starts here.
type MenuModel struct {
	list     list.Model
	selected menuAction
}

func NewMenuModel() MenuModel {
	items := []list.Item{
		menuItem{title: "Add Student", desc: "Create a record with graded subjects", action: actionAdd},
		menuItem{title: "View All Students", desc: "Browse the roster table", action: actionViewAll},
		menuItem{title: "Search Student", desc: "Look up one record by id", action: actionSearch},
		menuItem{title: "Update Student", desc: "Change, add, or remove a mark", action: actionUpdate},
		menuItem{title: "Delete Student", desc: "Remove a record, with confirmation", action: actionDelete},
		menuItem{title: "Unsaved Changes", desc: "Preview what save would write", action: actionChanges},
		menuItem{title: "Save", desc: "Write the roster to disk", action: actionSave},
		menuItem{title: "Export Summary", desc: "Class report as xlsx and markdown", action: actionExport},
		menuItem{title: "Exit", desc: "Save and quit", action: actionExit},
	}

	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = lipgloss.NewStyle().Foreground(Accent).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(Accent).PaddingLeft(1)
	d.Styles.SelectedDesc = d.Styles.SelectedTitle.Copy().Foreground(AccentDim)

	l := list.New(items, d, 48, 20)
	l.Title = "Gradebook"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = lipgloss.NewStyle().Foreground(Accent).Bold(true).MarginLeft(2)

	return MenuModel{list: l}
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" && m.list.FilterState() != list.Filtering {
		if it, ok := m.list.SelectedItem().(menuItem); ok {
			m.selected = it.action
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// TakeAction returns the last selection and clears it.
func (m *MenuModel) TakeAction() menuAction {
	a := m.selected
	m.selected = actionNone
	return a
}

func (m *MenuModel) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func (m MenuModel) View() string {
	return m.list.View()
}
