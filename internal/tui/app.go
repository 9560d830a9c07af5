// Package tui is the interactive shell: a menu-driven terminal UI over
// the roster store. All state lives in one Model; pages are switched by
// a small enum and every roster operation reports its outcome, with the
// fresh GPA and letter, on the status line.
package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/mkarman/gradebook/internal/config"
	"github.com/mkarman/gradebook/internal/export"
	"github.com/mkarman/gradebook/internal/grading"
	"github.com/mkarman/gradebook/internal/roster"
	"github.com/mkarman/gradebook/internal/storage"
)

type page int

const (
	pageMenu page = iota
	pageAdd
	pageRoster
	pageDetail
	pageSearch
	pageUpdate
	pageDelete
	pageChanges
	pageSummary
)

type Model struct {
	width, height int
	page          page

	store  *roster.Store
	files  *storage.CSVStore
	scheme *grading.Scheme
	cfg    *config.Config

	menu     MenuModel
	roster   RosterPage
	addForm  AddForm
	updFlow  UpdateFlow
	delFlow  DeleteFlow
	search   SearchForm
	viewport viewport.Model

	renderer *glamour.TermRenderer
	summary  roster.Summary

	detailID   string // record shown in the detail view
	detailFrom page   // where esc from the detail view goes back to

	status    string
	statusErr bool
	dirty     bool
}

func NewModel(store *roster.Store, files *storage.CSVStore, scheme *grading.Scheme, cfg *config.Config) Model {
	SetTheme(cfg.Theme)

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true

	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)

	m := Model{
		store:    store,
		files:    files,
		scheme:   scheme,
		cfg:      cfg,
		menu:     NewMenuModel(),
		roster:   NewRosterPage(scheme),
		viewport: vp,
		renderer: r,
	}
	m.setStatus("Loaded %d students from %s", store.Len(), files.Path())
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tea.EnableMouseCellMotion,
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		content := m.contentHeight()
		m.menu.SetSize(msg.Width-8, content)
		m.roster.SetSize(msg.Width-8, content)
		m.viewport.Width = msg.Width - 6
		m.viewport.Height = content
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m.updatePage(msg)

	case tea.MouseMsg:
		switch m.page {
		case pageDetail, pageChanges, pageSummary:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m.updatePage(msg)
}

// updatePage routes a message to whichever page is active.
func (m Model) updatePage(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.page {
	case pageMenu:
		return m.updateMenu(msg)
	case pageAdd:
		return m.updateAdd(msg)
	case pageRoster:
		return m.updateRoster(msg)
	case pageDetail:
		return m.updateDetail(msg)
	case pageSearch:
		return m.updateSearch(msg)
	case pageUpdate:
		return m.updateUpdate(msg)
	case pageDelete:
		return m.updateDelete(msg)
	case pageChanges, pageSummary:
		return m.updateViewer(msg)
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	// esc quits only when the menu filter is idle; otherwise the list
	// uses it to leave filtering.
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" && m.menu.list.FilterState() == list.Unfiltered {
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)

	switch m.menu.TakeAction() {
	case actionAdd:
		m.addForm = NewAddForm(func(id string) bool {
			_, err := m.store.Get(id)
			return err == nil
		})
		m.clearStatus()
		m.page = pageAdd

	case actionViewAll:
		if m.store.Len() == 0 {
			m.setError("No student records yet. Add one first.")
			break
		}
		m.roster.SetRecords(m.store.List())
		m.clearStatus()
		m.page = pageRoster

	case actionSearch:
		m.search = NewSearchForm()
		m.clearStatus()
		m.page = pageSearch

	case actionUpdate:
		m.updFlow = NewUpdateFlow(m.store.Get)
		m.clearStatus()
		m.page = pageUpdate

	case actionDelete:
		m.delFlow = NewDeleteFlow(m.store.Get)
		m.clearStatus()
		m.page = pageDelete

	case actionChanges:
		m.openChanges()

	case actionSave:
		m.save()

	case actionExport:
		m.openSummary()

	case actionExit:
		return m, tea.Quit
	}

	return m, cmd
}

func (m Model) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, result, cmd := m.addForm.Update(msg)
	m.addForm = form

	switch result {
	case flowCancel:
		if m.addForm.err != "" {
			m.setError(m.addForm.err)
		} else {
			m.setStatus("Add cancelled.")
		}
		m.page = pageMenu

	case flowDone:
		id, name, marks := m.addForm.Values()
		rec, err := m.store.Create(id, name, marks)
		if err != nil {
			m.setErrorf("Could not add student: %v", err)
		} else {
			m.dirty = true
			m.setStatus("Added %s (%s) · %s", rec.Name, rec.ID, m.gpaOf(rec))
		}
		m.page = pageMenu
	}

	return m, cmd
}

func (m Model) updateRoster(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && !m.roster.filtering {
		switch key.String() {
		case "esc", "q":
			m.page = pageMenu
			return m, nil
		case "enter":
			if id := m.roster.SelectedID(); id != "" {
				if rec, err := m.store.Get(id); err == nil {
					m.showDetail(rec, pageRoster)
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.roster, cmd = m.roster.Update(msg)
	return m, cmd
}

func (m Model) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "q":
			m.page = m.detailFrom
			return m, nil
		case "u":
			if rec, err := m.store.Get(m.detailID); err == nil {
				m.updFlow = NewUpdateFlow(m.store.Get)
				m.updFlow.Seed(rec)
				m.clearStatus()
				m.page = pageUpdate
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, result, id, cmd := m.search.Update(msg)
	m.search = form

	switch result {
	case flowCancel:
		m.page = pageMenu
	case flowDone:
		rec, err := m.store.Get(id)
		if err != nil {
			m.search.SetError(fmt.Sprintf("No student with id %q.", id))
			return m, nil
		}
		m.showDetail(rec, pageMenu)
	}

	return m, cmd
}

func (m Model) updateUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	flow, result, cmd := m.updFlow.Update(msg)
	m.updFlow = flow

	switch result {
	case flowCancel:
		m.setStatus("Update cancelled.")
		m.page = pageMenu

	case flowDone:
		op, id, subject, score := m.updFlow.Result()
		var rec roster.Record
		var err error
		var verb string
		switch op {
		case opChange:
			rec, err = m.store.UpdateMark(id, subject, score)
			verb = "Updated"
		case opAdd:
			rec, err = m.store.AddMark(id, subject, score)
			verb = "Added"
		case opRemove:
			rec, err = m.store.RemoveMark(id, subject)
			verb = "Removed"
		}
		if err != nil {
			m.setErrorf("Could not update student: %v", err)
		} else {
			m.dirty = true
			m.setStatus("%s %s for %s · %s", verb, subject, rec.Name, m.gpaOf(rec))
		}
		m.page = pageMenu
	}

	return m, cmd
}

func (m Model) updateDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	flow, result, cmd := m.delFlow.Update(msg)
	m.delFlow = flow

	switch result {
	case flowCancel:
		m.setStatus("Deletion cancelled.")
		m.page = pageMenu

	case flowDone:
		rec := m.delFlow.Target()
		if err := m.store.Delete(rec.ID); err != nil {
			m.setErrorf("Could not delete student: %v", err)
		} else {
			m.dirty = true
			m.setStatus("Deleted %s (%s).", rec.Name, rec.ID)
		}
		m.page = pageMenu
	}

	return m, cmd
}

func (m Model) updateViewer(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "q", "enter":
			m.page = pageMenu
			return m, nil
		case "x":
			if m.page == pageSummary {
				m.exportWorkbook()
				return m, nil
			}
		case "m":
			if m.page == pageSummary {
				m.exportMarkdown()
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// --- Actions ---

func (m *Model) save() {
	records := m.store.List()
	if err := m.files.Save(records); err != nil {
		m.setErrorf("Save failed: %v", err)
		return
	}
	m.dirty = false
	m.setStatus("Saved %d students to %s", len(records), m.files.Path())
}

func (m *Model) openChanges() {
	diff, err := m.files.Pending(m.store.List())
	if err != nil {
		m.setErrorf("Could not diff against %s: %v", m.files.Path(), err)
		return
	}
	if diff == "" {
		m.setStatus("No unsaved changes.")
		return
	}
	m.viewport.SetContent(colorizeDiff(diff))
	m.viewport.GotoTop()
	m.clearStatus()
	m.page = pageChanges
}

func (m *Model) openSummary() {
	sum, err := m.store.Summarize(m.scheme)
	if err != nil {
		if errors.Is(err, roster.ErrEmptyStore) {
			m.setError("No student records to summarize.")
		} else {
			m.setErrorf("Could not build summary: %v", err)
		}
		return
	}
	m.summary = sum

	md := export.SummaryMarkdown(sum)
	rendered, err := m.renderer.Render(md)
	if err != nil {
		rendered = md
	}
	m.viewport.SetContent(rendered)
	m.viewport.GotoTop()
	m.clearStatus()
	m.page = pageSummary
}

func (m *Model) exportWorkbook() {
	path := export.TimestampedName(m.cfg.ExportDir, "xlsx")
	if err := export.WriteWorkbook(path, m.store.List(), m.summary, m.scheme); err != nil {
		m.setErrorf("Export failed: %v", err)
		return
	}
	m.setStatus("Exported workbook to %s", path)
}

func (m *Model) exportMarkdown() {
	path := export.TimestampedName(m.cfg.ExportDir, "md")
	if err := export.WriteSummaryMarkdown(path, m.summary); err != nil {
		m.setErrorf("Export failed: %v", err)
		return
	}
	m.setStatus("Exported summary to %s", path)
}

func (m *Model) showDetail(rec roster.Record, from page) {
	m.viewport.SetContent(formatStudentInfo(rec, m.scheme))
	m.viewport.GotoTop()
	m.detailID = rec.ID
	m.detailFrom = from
	m.clearStatus()
	m.page = pageDetail
}

// --- Status helpers ---

func (m *Model) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = false
}

func (m *Model) setError(msg string) {
	m.status = msg
	m.statusErr = true
}

func (m *Model) setErrorf(format string, args ...any) {
	m.setError(fmt.Sprintf(format, args...))
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}

func (m *Model) gpaOf(rec roster.Record) string {
	return fmt.Sprintf("GPA %.2f (%s)", rec.GPA, m.scheme.Letter(rec.GPA))
}

// --- Layout ---

const (
	headerHeight = 9
	footerHeight = 3
)

func (m Model) contentHeight() int {
	h := m.height - headerHeight - footerHeight
	if h < 5 {
		h = 5
	}
	return h
}

func (m Model) View() string {
	header := m.viewHeader()
	body := m.viewBody()
	footer := m.viewFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) viewHeader() string {
	banner := BannerStyle.Render(Banner)
	info := HelpStyle.Render(fmt.Sprintf("%s  •  %d students", m.files.Path(), m.store.Len()))

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(AccentDim).
		Width(m.width).
		Align(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, banner, info))
}

func (m Model) viewBody() string {
	var body string
	switch m.page {
	case pageMenu:
		body = m.menu.View()
	case pageAdd:
		body = m.addForm.View()
	case pageRoster:
		body = m.roster.View()
	case pageDetail, pageChanges, pageSummary:
		body = m.viewport.View()
	case pageSearch:
		body = m.search.View()
	case pageUpdate:
		body = m.updFlow.View()
	case pageDelete:
		body = m.delFlow.View()
	}
	return PageStyle.Height(m.contentHeight()).Render(body)
}

func (m Model) viewFooter() string {
	var status string
	if m.status != "" {
		if m.statusErr {
			status = ErrorStyle.Render("✗ " + m.status)
		} else {
			status = SuccessStyle.Render("✓ " + m.status)
		}
	}

	bar := StatusFileStyle.Render(" "+m.files.Path()+" ") +
		StatusBarStyle.Render(fmt.Sprintf(" %d students ", m.store.Len()))
	if m.dirty {
		bar += WarnStyle.Render(" ● unsaved ")
	}

	help := m.helpLine()
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingLeft(2).Render(status),
		bar,
		lipgloss.NewStyle().PaddingLeft(2).Render(help),
	)
}

func (m Model) helpLine() string {
	switch m.page {
	case pageMenu:
		return HelpStyle.Render("↑/↓: navigate  •  enter: select  •  esc: save and quit")
	case pageRoster:
		return HelpStyle.Render("/: filter  •  enter: details  •  esc: back")
	case pageDetail:
		return HelpStyle.Render("u: update this student  •  ↑/↓: scroll  •  esc: back")
	case pageChanges:
		return HelpStyle.Render("↑/↓: scroll  •  esc: back")
	case pageSummary:
		return HelpStyle.Render("x: export xlsx  •  m: export markdown  •  esc: back")
	}
	return ""
}
