package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mkarman/gradebook/internal/roster"
)

// flowResult tells the app what a form did with the last key.
type flowResult int

const (
	flowContinue flowResult = iota
	flowCancel
	flowDone
)

type pickItem struct {
	title string
	desc  string
}

func (i pickItem) Title() string       { return i.title }
func (i pickItem) Description() string { return i.desc }
func (i pickItem) FilterValue() string { return i.title }

func newPromptInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = "> "
	in.PromptStyle = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	in.CharLimit = 128
	in.Width = 40
	in.Focus()
	return in
}

func newPickList(title string, items []list.Item) list.Model {
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = lipgloss.NewStyle().Foreground(Accent).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(Accent).PaddingLeft(1)
	d.Styles.SelectedDesc = d.Styles.SelectedTitle.Copy().Foreground(AccentDim)

	l := list.New(items, d, 44, 12)
	l.Title = title
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = lipgloss.NewStyle().Foreground(Accent).Bold(true).MarginLeft(2)
	return l
}

// parseScore turns raw input into a mark, enforcing the 0-100 range.
func parseScore(raw string) (float64, error) {
	score, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("enter a number between 0 and 100")
	}
	if score < 0 || score > 100 {
		return 0, fmt.Errorf("mark must be between 0 and 100")
	}
	return score, nil
}

// --- Add form ---

type addStage int

const (
	addID addStage = iota
	addName
	addSubject
	addMark
)

// AddForm walks through id, name, then subject/mark pairs until the
// user submits a blank subject. At least one mark is required.
type AddForm struct {
	stage   addStage
	input   textinput.Model
	exists  func(id string) bool
	id      string
	name    string
	subject string
	marks   []roster.Mark
	err     string
}

func NewAddForm(exists func(id string) bool) AddForm {
	return AddForm{
		input:  newPromptInput("student id"),
		exists: exists,
	}
}

// Values returns what Create needs once the form is done.
func (f AddForm) Values() (string, string, []roster.Mark) {
	return f.id, f.name, f.marks
}

func (f AddForm) Update(msg tea.Msg) (AddForm, flowResult, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		return f, flowContinue, cmd
	}

	switch key.String() {
	case "esc":
		return f, flowCancel, nil
	case "enter":
		return f.submit()
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(key)
	return f, flowContinue, cmd
}

func (f AddForm) submit() (AddForm, flowResult, tea.Cmd) {
	value := strings.TrimSpace(f.input.Value())
	f.err = ""

	switch f.stage {
	case addID:
		if value == "" {
			f.err = "Student id cannot be empty."
			return f, flowContinue, nil
		}
		if f.exists(value) {
			f.err = fmt.Sprintf("Student id %q already exists.", value)
			return f, flowContinue, nil
		}
		f.id = value
		f.stage = addName
		f.input.Reset()
		f.input.Placeholder = "full name"

	case addName:
		if value == "" {
			f.err = "Name cannot be empty."
			return f, flowCancel, nil
		}
		f.name = value
		f.stage = addSubject
		f.input.Reset()
		f.input.Placeholder = "subject (blank to finish)"

	case addSubject:
		if value == "" {
			if len(f.marks) == 0 {
				f.err = "At least one subject is required."
				return f, flowContinue, nil
			}
			return f, flowDone, nil
		}
		for _, m := range f.marks {
			if m.Subject == value {
				f.err = fmt.Sprintf("Subject %q already added.", value)
				return f, flowContinue, nil
			}
		}
		f.subject = value
		f.stage = addMark
		f.input.Reset()
		f.input.Placeholder = "0-100"

	case addMark:
		score, err := parseScore(value)
		if err != nil {
			f.err = err.Error()
			return f, flowContinue, nil
		}
		f.marks = append(f.marks, roster.Mark{Subject: f.subject, Score: score})
		f.subject = ""
		f.stage = addSubject
		f.input.Reset()
		f.input.Placeholder = "next subject (blank to finish)"
	}

	return f, flowContinue, nil
}

func (f AddForm) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Add Student") + "\n")

	if f.id != "" {
		b.WriteString(LabelStyle.Render("ID:   ") + ValueStyle.Render(f.id) + "\n")
	}
	if f.name != "" {
		b.WriteString(LabelStyle.Render("Name: ") + ValueStyle.Render(f.name) + "\n")
	}
	for _, m := range f.marks {
		b.WriteString(LabelStyle.Render("  "+m.Subject+": ") + ValueStyle.Render(strconv.FormatFloat(m.Score, 'f', -1, 64)) + "\n")
	}
	if f.id != "" || f.name != "" || len(f.marks) > 0 {
		b.WriteString("\n")
	}

	label := map[addStage]string{
		addID:      "Student id",
		addName:    "Full name",
		addSubject: "Subject",
		addMark:    fmt.Sprintf("Mark for %s", f.subject),
	}[f.stage]
	b.WriteString(LabelStyle.Render(label) + "\n")
	b.WriteString(InputBoxStyle.Render(f.input.View()) + "\n")

	if f.err != "" {
		b.WriteString(ErrorStyle.Render("✗ "+f.err) + "\n")
	}
	b.WriteString(HelpStyle.Render("enter: next  •  esc: cancel"))
	return b.String()
}

// --- Update flow ---

type updOp int

const (
	opChange updOp = iota
	opAdd
	opRemove
)

type updStage int

const (
	updID updStage = iota
	updChoice
	updPickSubject
	updNewSubject
	updMark
)

// UpdateFlow picks a student, an operation, and the inputs that
// operation needs. The app executes the store call when it completes.
type UpdateFlow struct {
	stage    updStage
	input    textinput.Model
	choice   list.Model
	subjects list.Model
	lookup   func(id string) (roster.Record, error)
	rec      roster.Record
	op       updOp
	subject  string
	score    float64
	err      string
}

func NewUpdateFlow(lookup func(id string) (roster.Record, error)) UpdateFlow {
	choice := newPickList("Update", []list.Item{
		pickItem{title: "Change a mark", desc: "Replace the score for a graded subject"},
		pickItem{title: "Add a subject", desc: "Grade a subject not on the record yet"},
		pickItem{title: "Remove a subject", desc: "Drop a graded subject"},
	})
	return UpdateFlow{
		input:  newPromptInput("student id"),
		choice: choice,
		lookup: lookup,
	}
}

// Seed jumps straight to the operation choice for a known student.
func (f *UpdateFlow) Seed(rec roster.Record) {
	f.rec = rec
	f.stage = updChoice
}

// Result reports what to execute once the flow is done.
func (f UpdateFlow) Result() (updOp, string, string, float64) {
	return f.op, f.rec.ID, f.subject, f.score
}

func (f UpdateFlow) Update(msg tea.Msg) (UpdateFlow, flowResult, tea.Cmd) {
	key, isKey := msg.(tea.KeyMsg)
	if isKey && key.String() == "esc" {
		return f, flowCancel, nil
	}

	switch f.stage {
	case updID, updNewSubject, updMark:
		if isKey && key.String() == "enter" {
			return f.submitInput()
		}
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		return f, flowContinue, cmd

	case updChoice:
		if isKey && key.String() == "enter" {
			return f.submitChoice()
		}
		var cmd tea.Cmd
		f.choice, cmd = f.choice.Update(msg)
		return f, flowContinue, cmd

	case updPickSubject:
		if isKey && key.String() == "enter" {
			return f.submitSubject()
		}
		var cmd tea.Cmd
		f.subjects, cmd = f.subjects.Update(msg)
		return f, flowContinue, cmd
	}
	return f, flowContinue, nil
}

func (f UpdateFlow) submitInput() (UpdateFlow, flowResult, tea.Cmd) {
	value := strings.TrimSpace(f.input.Value())
	f.err = ""

	switch f.stage {
	case updID:
		rec, err := f.lookup(value)
		if err != nil {
			f.err = fmt.Sprintf("No student with id %q.", value)
			return f, flowContinue, nil
		}
		f.rec = rec
		f.stage = updChoice

	case updNewSubject:
		if value == "" {
			f.err = "Subject name is required."
			return f, flowContinue, nil
		}
		f.subject = value
		f.stage = updMark
		f.input.Reset()
		f.input.Placeholder = "0-100"

	case updMark:
		score, err := parseScore(value)
		if err != nil {
			f.err = err.Error()
			return f, flowContinue, nil
		}
		f.score = score
		return f, flowDone, nil
	}
	return f, flowContinue, nil
}

func (f UpdateFlow) submitChoice() (UpdateFlow, flowResult, tea.Cmd) {
	it, ok := f.choice.SelectedItem().(pickItem)
	if !ok {
		return f, flowContinue, nil
	}
	switch it.title {
	case "Change a mark":
		f.op = opChange
		f.subjects = f.subjectList("Change which subject?")
		f.stage = updPickSubject
	case "Add a subject":
		f.op = opAdd
		f.stage = updNewSubject
		f.input.Reset()
		f.input.Placeholder = "new subject"
	case "Remove a subject":
		f.op = opRemove
		f.subjects = f.subjectList("Remove which subject?")
		f.stage = updPickSubject
	}
	return f, flowContinue, nil
}

func (f UpdateFlow) submitSubject() (UpdateFlow, flowResult, tea.Cmd) {
	it, ok := f.subjects.SelectedItem().(pickItem)
	if !ok {
		return f, flowContinue, nil
	}
	f.subject = it.title
	if f.op == opRemove {
		return f, flowDone, nil
	}
	f.stage = updMark
	f.input.Reset()
	f.input.Placeholder = "0-100"
	return f, flowContinue, nil
}

func (f UpdateFlow) subjectList(title string) list.Model {
	items := make([]list.Item, len(f.rec.Marks))
	for i, m := range f.rec.Marks {
		items[i] = pickItem{
			title: m.Subject,
			desc:  fmt.Sprintf("current mark %s", strconv.FormatFloat(m.Score, 'f', -1, 64)),
		}
	}
	return newPickList(title, items)
}

func (f UpdateFlow) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Update Student") + "\n")

	if f.rec.ID != "" {
		b.WriteString(LabelStyle.Render("Student: ") + ValueStyle.Render(fmt.Sprintf("%s (%s)", f.rec.Name, f.rec.ID)) + "\n\n")
	}

	switch f.stage {
	case updID:
		b.WriteString(LabelStyle.Render("Student id") + "\n")
		b.WriteString(InputBoxStyle.Render(f.input.View()) + "\n")
	case updChoice:
		b.WriteString(f.choice.View() + "\n")
	case updPickSubject:
		b.WriteString(f.subjects.View() + "\n")
	case updNewSubject:
		b.WriteString(LabelStyle.Render("New subject") + "\n")
		b.WriteString(InputBoxStyle.Render(f.input.View()) + "\n")
	case updMark:
		b.WriteString(LabelStyle.Render(fmt.Sprintf("Mark for %s", f.subject)) + "\n")
		b.WriteString(InputBoxStyle.Render(f.input.View()) + "\n")
	}

	if f.err != "" {
		b.WriteString(ErrorStyle.Render("✗ "+f.err) + "\n")
	}
	b.WriteString(HelpStyle.Render("enter: next  •  esc: cancel"))
	return b.String()
}

// --- Delete flow ---

type delStage int

const (
	delID delStage = iota
	delConfirm
)

// DeleteFlow asks for an id, shows the record, and insists on an
// explicit y before anything is removed. Everything else cancels.
type DeleteFlow struct {
	stage  delStage
	input  textinput.Model
	lookup func(id string) (roster.Record, error)
	rec    roster.Record
	err    string
}

func NewDeleteFlow(lookup func(id string) (roster.Record, error)) DeleteFlow {
	return DeleteFlow{
		input:  newPromptInput("student id"),
		lookup: lookup,
	}
}

// Target returns the record to delete once the flow is done.
func (f DeleteFlow) Target() roster.Record {
	return f.rec
}

func (f DeleteFlow) Update(msg tea.Msg) (DeleteFlow, flowResult, tea.Cmd) {
	key, isKey := msg.(tea.KeyMsg)

	if f.stage == delConfirm {
		if !isKey {
			return f, flowContinue, nil
		}
		switch key.String() {
		case "y", "Y":
			return f, flowDone, nil
		default:
			return f, flowCancel, nil
		}
	}

	if isKey {
		switch key.String() {
		case "esc":
			return f, flowCancel, nil
		case "enter":
			value := strings.TrimSpace(f.input.Value())
			rec, err := f.lookup(value)
			if err != nil {
				f.err = fmt.Sprintf("No student with id %q.", value)
				return f, flowContinue, nil
			}
			f.rec = rec
			f.stage = delConfirm
			return f, flowContinue, nil
		}
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, flowContinue, cmd
}

func (f DeleteFlow) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Delete Student") + "\n")

	if f.stage == delConfirm {
		b.WriteString(LabelStyle.Render("Student: ") + ValueStyle.Render(fmt.Sprintf("%s (%s)", f.rec.Name, f.rec.ID)) + "\n")
		b.WriteString(LabelStyle.Render("Subjects: ") + ValueStyle.Render(strconv.Itoa(len(f.rec.Marks))) + "\n\n")
		b.WriteString(ConfirmStyle.Render(fmt.Sprintf("Delete %s? This cannot be undone. (y/N)", f.rec.Name)) + "\n")
		return b.String()
	}

	b.WriteString(LabelStyle.Render("Student id") + "\n")
	b.WriteString(InputBoxStyle.Render(f.input.View()) + "\n")
	if f.err != "" {
		b.WriteString(ErrorStyle.Render("✗ "+f.err) + "\n")
	}
	b.WriteString(HelpStyle.Render("enter: next  •  esc: cancel"))
	return b.String()
}

// --- Search form ---

// SearchForm is the single-field id prompt behind Search Student.
type SearchForm struct {
	input textinput.Model
	err   string
}

func NewSearchForm() SearchForm {
	return SearchForm{input: newPromptInput("student id")}
}

func (f SearchForm) Update(msg tea.Msg) (SearchForm, flowResult, string, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return f, flowCancel, "", nil
		case "enter":
			return f, flowDone, strings.TrimSpace(f.input.Value()), nil
		}
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, flowContinue, "", cmd
}

// SetError keeps the form up with a lookup failure shown inline.
func (f *SearchForm) SetError(msg string) {
	f.err = msg
}

func (f SearchForm) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Search Student") + "\n")
	b.WriteString(LabelStyle.Render("Student id") + "\n")
	b.WriteString(InputBoxStyle.Render(f.input.View()) + "\n")
	if f.err != "" {
		b.WriteString(ErrorStyle.Render("✗ "+f.err) + "\n")
	}
	b.WriteString(HelpStyle.Render("enter: search  •  esc: back"))
	return b.String()
}
