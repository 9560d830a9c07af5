package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mkarman/gradebook/internal/grading"
	"github.com/mkarman/gradebook/internal/roster"
)

// RosterPage is the scrollable student table with a live filter.
type RosterPage struct {
	table     table.Model
	filter    textinput.Model
	filtering bool
	records   []roster.Record
	scheme    *grading.Scheme
	shown     int
}

func NewRosterPage(scheme *grading.Scheme) RosterPage {
	columns := []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Name", Width: 22},
		{Title: "Subjects", Width: 30},
		{Title: "GPA", Width: 6},
		{Title: "Grade", Width: 5},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(AccentDim).
		BorderBottom(true).
		Bold(true).
		Foreground(Accent)
	s.Selected = s.Selected.
		Foreground(Black).
		Background(Accent).
		Bold(false)
	t.SetStyles(s)

	fi := textinput.New()
	fi.Placeholder = "type to filter by id, name, or subject"
	fi.Prompt = "/ "
	fi.CharLimit = 64

	return RosterPage{table: t, filter: fi, scheme: scheme}
}

// SetRecords refreshes the table contents, keeping the active filter.
func (p *RosterPage) SetRecords(records []roster.Record) {
	p.records = records
	p.refresh()
}

func (p *RosterPage) refresh() {
	needle := strings.ToLower(strings.TrimSpace(p.filter.Value()))
	rows := []table.Row{}
	for _, r := range p.records {
		if needle != "" && !matchRecord(r, needle) {
			continue
		}
		subjects := make([]string, len(r.Marks))
		for i, m := range r.Marks {
			subjects[i] = m.Subject
		}
		rows = append(rows, table.Row{
			r.ID,
			r.Name,
			strings.Join(subjects, ", "),
			fmt.Sprintf("%.2f", r.GPA),
			p.scheme.Letter(r.GPA),
		})
	}
	p.shown = len(rows)
	p.table.SetRows(rows)
}

func matchRecord(r roster.Record, needle string) bool {
	if strings.Contains(strings.ToLower(r.ID), needle) ||
		strings.Contains(strings.ToLower(r.Name), needle) {
		return true
	}
	for _, m := range r.Marks {
		if strings.Contains(strings.ToLower(m.Subject), needle) {
			return true
		}
	}
	return false
}

func (p RosterPage) Update(msg tea.Msg) (RosterPage, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		p.table, cmd = p.table.Update(msg)
		return p, cmd
	}

	if p.filtering {
		switch key.String() {
		case "enter":
			p.filtering = false
			p.filter.Blur()
			p.table.Focus()
		case "esc":
			p.filtering = false
			p.filter.Reset()
			p.filter.Blur()
			p.table.Focus()
			p.refresh()
		default:
			var cmd tea.Cmd
			p.filter, cmd = p.filter.Update(msg)
			p.refresh()
			return p, cmd
		}
		return p, nil
	}

	if key.String() == "/" {
		p.filtering = true
		p.table.Blur()
		return p, p.filter.Focus()
	}

	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return p, cmd
}

// SelectedID returns the id of the highlighted row, if any.
func (p RosterPage) SelectedID() string {
	row := p.table.SelectedRow()
	if len(row) == 0 {
		return ""
	}
	return row[0]
}

func (p *RosterPage) SetSize(width, height int) {
	p.table.SetWidth(width)
	if height > 6 {
		p.table.SetHeight(height - 4)
	}
}

func (p RosterPage) View() string {
	var b strings.Builder
	b.WriteString(p.filter.View() + "\n")
	b.WriteString(p.table.View() + "\n")
	b.WriteString(HelpStyle.Render(fmt.Sprintf("%d of %d students", p.shown, len(p.records))))
	return b.String()
}

// formatStudentInfo renders one record for the detail view.
func formatStudentInfo(r roster.Record, scheme *grading.Scheme) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Student Record") + "\n")
	b.WriteString(SeparatorStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	b.WriteString(LabelStyle.Render("ID:   ") + ValueStyle.Render(r.ID) + "\n")
	b.WriteString(LabelStyle.Render("Name: ") + ValueStyle.Render(r.Name) + "\n\n")

	b.WriteString(LabelStyle.Render("Subjects:") + "\n")
	for _, m := range r.Marks {
		bar := makeBar(m.Score/100, 20)
		b.WriteString(fmt.Sprintf("  %-20s %6.1f  %s\n", m.Subject, m.Score, bar))
	}

	letter := scheme.Letter(r.GPA)
	b.WriteString("\n" + LabelStyle.Render("GPA:  "))
	b.WriteString(SuccessStyle.Render(fmt.Sprintf("%.2f (%s)", r.GPA, letter)) + "\n")

	return b.String()
}

// colorizeDiff styles a unified diff for the changes view.
func colorizeDiff(diff string) string {
	added := lipgloss.NewStyle().Foreground(AccentBright)
	removed := lipgloss.NewStyle().Foreground(ErrorRed)
	header := lipgloss.NewStyle().Foreground(LightGray).Bold(true)

	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"), strings.HasPrefix(line, "@@"):
			lines[i] = header.Render(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = added.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = removed.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func makeBar(value float64, width int) string {
	filled := int(value * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
