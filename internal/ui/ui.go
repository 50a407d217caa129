package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dayplan/internal/calendar"
	"dayplan/internal/config"
	"dayplan/internal/task"
)

type mode int

const (
	modeList mode = iota
	modeForm
	modeSubtasks
	modeSubtaskInput
	modeCalendar
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	badgeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("178"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
	todayStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	hasTasksStyle = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("42"))
)

// formState walks the add/edit fields one at a time, the same way the
// metadata editor in the list view works.
type formState struct {
	taskID string // empty while adding
	text   string
	typ    string
	object string
	action string
	date   string
	index  int
}

func (f formState) fields() []string {
	if f.taskID != "" {
		return []string{"type", "object", "action"}
	}
	return []string{"text", "type", "object", "action", "date (YYYY-MM-DD)"}
}

func (f formState) currentLabel() string {
	return f.fields()[f.index]
}

func (f formState) currentValue() string {
	if f.taskID != "" {
		switch f.index {
		case 0:
			return f.typ
		case 1:
			return f.object
		default:
			return f.action
		}
	}
	switch f.index {
	case 0:
		return f.text
	case 1:
		return f.typ
	case 2:
		return f.object
	case 3:
		return f.action
	default:
		return f.date
	}
}

func (f *formState) setCurrentValue(v string) {
	if f.taskID != "" {
		switch f.index {
		case 0:
			f.typ = v
		case 1:
			f.object = v
		default:
			f.action = v
		}
		return
	}
	switch f.index {
	case 0:
		f.text = v
	case 1:
		f.typ = v
	case 2:
		f.object = v
	case 3:
		f.action = v
	default:
		f.date = v
	}
}

type Model struct {
	store      *task.Store
	cfg        config.Config
	visible    []task.Task
	cursor     int
	mode       mode
	input      textinput.Model
	status     string
	filter     string
	selected   task.Date
	cal        calendar.Cursor
	calDay     int
	subCursor  int
	form       *formState
	confirmDel bool
	pendingDel *task.Task
	now        func() time.Time
}

func Run(store *task.Store, cfg config.Config) error {
	m := NewModel(store, cfg, time.Now)
	program := tea.NewProgram(m)
	_, err := program.Run()
	return err
}

func NewModel(store *task.Store, cfg config.Config, now func() time.Time) Model {
	ti := textinput.New()
	ti.Placeholder = "Task"
	ti.CharLimit = 256
	ti.Width = 40

	today := task.DateOf(now())
	m := Model{
		store:    store,
		cfg:      cfg,
		input:    ti,
		status:   "Press 'a' to add, space to toggle, 'i' to carry unfinished tasks to tomorrow.",
		mode:     modeList,
		filter:   strings.ToLower(cfg.DefaultFilter),
		selected: today,
		cal:      calendar.CursorAt(today, now()),
		now:      now,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) today() task.Date {
	return task.DateOf(m.now())
}

func (m *Model) refresh() {
	m.visible = m.store.Visible(m.filter, m.today())
	m.cursor = clampCursor(m.cursor, len(m.visible))
}

func (m *Model) current() *task.Task {
	if len(m.visible) == 0 {
		return nil
	}
	return &m.visible[clampCursor(m.cursor, len(m.visible))]
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		switch m.mode {
		case modeForm:
			return m.updateFormMode(msg.String(), msg)
		case modeSubtasks:
			return m.updateSubtaskMode(msg.String())
		case modeSubtaskInput:
			return m.updateSubtaskInput(msg.String(), msg)
		case modeCalendar:
			return m.updateCalendarMode(msg.String())
		}
		return m.updateListMode(msg.String())
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		m.cursor = clampCursor(m.cursor+1, len(m.visible))
	case m.cfg.Keys.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(m.visible))
		}
	case m.cfg.Keys.Add:
		m.form = &formState{date: string(m.today())}
		m.startForm("Add mode: fill the fields, Enter to advance")
	case m.cfg.Keys.Edit:
		t := m.current()
		if t == nil {
			m.status = "No tasks to edit"
			return m, nil
		}
		m.form = &formState{taskID: t.ID, typ: t.Type, object: t.Object, action: t.Action}
		m.startForm("Edit mode: adjust the fields, Enter to advance")
	case m.cfg.Keys.Toggle:
		t := m.current()
		if t == nil {
			return m, nil
		}
		if _, err := m.store.Toggle(t.ID); err != nil {
			m.status = fmt.Sprintf("toggle failed: %v", err)
			return m, nil
		}
		m.refresh()
		m.status = "Toggled task"
	case m.cfg.Keys.Delete:
		t := m.current()
		if t == nil {
			return m, nil
		}
		m.confirmDel = true
		m.pendingDel = t
		m.status = fmt.Sprintf("Delete \"%s\"? y/n", t.Text)
	case m.cfg.Keys.Filter:
		m.filter = nextFilter(m.filter)
		m.cursor = 0
		m.refresh()
		m.status = "Filter: " + filterLabel(m.filter)
	case m.cfg.Keys.Clear:
		removed, err := m.store.ClearCompleted()
		if err != nil {
			m.status = fmt.Sprintf("clear failed: %v", err)
			return m, nil
		}
		m.refresh()
		m.status = fmt.Sprintf("Cleared %d completed task(s)", removed)
	case m.cfg.Keys.Inherit:
		count, err := m.store.InheritToTomorrow(m.today())
		if err != nil {
			m.status = fmt.Sprintf("carry-forward failed: %v", err)
			return m, nil
		}
		m.refresh()
		m.status = fmt.Sprintf("Carried %d task(s) to tomorrow", count)
	case m.cfg.Keys.Subtasks:
		t := m.current()
		if t == nil {
			m.status = "No task selected"
			return m, nil
		}
		m.mode = modeSubtasks
		m.subCursor = 0
		m.status = "Subtasks: a add, space toggle, d delete, K/J move, esc back"
	case m.cfg.Keys.Calendar:
		m.mode = modeCalendar
		if !m.cal.Contains(m.selected) {
			m.calDay = 1
		} else {
			_, _, d, _ := m.selected.Split()
			m.calDay = d
		}
		m.status = "Calendar: h/l day, j/k week, [/] month, enter filter day, esc back"
	case m.cfg.Keys.PrevMonth:
		m.cal.Prev()
	case m.cfg.Keys.NextMonth:
		m.cal.Next()
	}
	return m, nil
}

func (m *Model) startForm(status string) {
	m.mode = modeForm
	m.input.SetValue(m.form.currentValue())
	m.input.Placeholder = m.form.currentLabel()
	m.input.Focus()
	m.status = status
}

func (m Model) updateFormMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.form = nil
		m.mode = modeList
		m.input.Blur()
		m.input.SetValue("")
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		m.form.setCurrentValue(strings.TrimSpace(m.input.Value()))
		if m.form.index >= len(m.form.fields())-1 {
			return m.saveForm()
		}
		m.form.index++
		m.input.SetValue(m.form.currentValue())
		m.input.Placeholder = m.form.currentLabel()
		m.status = fmt.Sprintf("Field %d of %d: %s", m.form.index+1, len(m.form.fields()), m.form.currentLabel())
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) saveForm() (tea.Model, tea.Cmd) {
	f := m.form
	if f == nil {
		return m, nil
	}

	if f.taskID != "" {
		if _, err := m.store.Edit(f.taskID, f.typ, f.object, f.action); err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
			return m, nil
		}
		m.closeForm("Task updated")
		return m, nil
	}

	date := task.Date(f.date)
	if f.date == "" {
		date = m.today()
	}
	if !date.Valid() {
		m.status = "Date must be YYYY-MM-DD"
		f.index = len(f.fields()) - 1
		m.input.SetValue(f.date)
		return m, nil
	}

	var ok bool
	var err error
	if f.typ != "" || f.object != "" || f.action != "" {
		_, ok, err = m.store.Add(f.typ, f.object, f.action, date, nil)
	} else {
		_, ok, err = m.store.AddFreeText(f.text, date, nil)
	}
	if err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return m, nil
	}
	if !ok {
		m.status = "Task needs some text or at least one of type/object/action"
		f.index = 0
		m.input.SetValue(f.currentValue())
		return m, nil
	}
	m.closeForm("Added task")
	m.cursor = clampCursor(len(m.visible)-1, len(m.visible))
	return m, nil
}

func (m *Model) closeForm(status string) {
	m.form = nil
	m.mode = modeList
	m.input.Blur()
	m.input.SetValue("")
	m.refresh()
	m.status = status
}

func (m Model) updateSubtaskMode(key string) (tea.Model, tea.Cmd) {
	t := m.current()
	if t == nil {
		m.mode = modeList
		return m, nil
	}
	subs := t.Subtasks
	m.subCursor = clampCursor(m.subCursor, len(subs))
	switch key {
	case m.cfg.Keys.Cancel, "esc", m.cfg.Keys.Quit:
		m.mode = modeList
		m.status = "Back to list"
	case m.cfg.Keys.Down, "down":
		m.subCursor = clampCursor(m.subCursor+1, len(subs))
	case m.cfg.Keys.Up, "up":
		if m.subCursor > 0 {
			m.subCursor = clampCursor(m.subCursor-1, len(subs))
		}
	case m.cfg.Keys.Add:
		m.mode = modeSubtaskInput
		m.input.Placeholder = "Subtask"
		m.input.SetValue("")
		m.input.Focus()
		m.status = "New subtask: Enter to save, Esc to cancel"
	case m.cfg.Keys.Toggle:
		if len(subs) == 0 {
			return m, nil
		}
		if _, err := m.store.ToggleSubtask(t.ID, subs[m.subCursor].ID); err != nil {
			m.status = fmt.Sprintf("toggle failed: %v", err)
			return m, nil
		}
		m.refresh()
		m.status = "Toggled subtask"
	case m.cfg.Keys.Delete:
		if len(subs) == 0 {
			return m, nil
		}
		if _, err := m.store.RemoveSubtask(t.ID, subs[m.subCursor].ID); err != nil {
			m.status = fmt.Sprintf("delete failed: %v", err)
			return m, nil
		}
		m.refresh()
		m.subCursor = clampCursor(m.subCursor, len(m.currentSubtasks()))
		m.status = "Deleted subtask"
	case m.cfg.Keys.MoveUp:
		if m.subCursor <= 0 || len(subs) < 2 {
			return m, nil
		}
		if _, err := m.store.ReorderSubtask(t.ID, subs[m.subCursor].ID, subs[m.subCursor-1].ID); err != nil {
			m.status = fmt.Sprintf("reorder failed: %v", err)
			return m, nil
		}
		m.subCursor--
		m.refresh()
		m.status = "Moved subtask up"
	case m.cfg.Keys.MoveDown:
		if m.subCursor >= len(subs)-1 {
			return m, nil
		}
		// Moving X down one slot is moving its next sibling before X.
		if _, err := m.store.ReorderSubtask(t.ID, subs[m.subCursor+1].ID, subs[m.subCursor].ID); err != nil {
			m.status = fmt.Sprintf("reorder failed: %v", err)
			return m, nil
		}
		m.subCursor++
		m.refresh()
		m.status = "Moved subtask down"
	}
	return m, nil
}

func (m *Model) currentSubtasks() []task.Subtask {
	if t := m.current(); t != nil {
		return t.Subtasks
	}
	return nil
}

func (m Model) updateSubtaskInput(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.mode = modeSubtasks
		m.input.Blur()
		m.input.SetValue("")
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		t := m.current()
		if t == nil {
			m.mode = modeList
			return m, nil
		}
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			m.status = "Subtask cannot be empty"
			return m, nil
		}
		if _, _, err := m.store.AddSubtask(t.ID, text); err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
			return m, nil
		}
		m.refresh()
		m.mode = modeSubtasks
		m.input.Blur()
		m.input.SetValue("")
		m.subCursor = clampCursor(len(m.currentSubtasks())-1, len(m.currentSubtasks()))
		m.status = "Added subtask"
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateCalendarMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc", m.cfg.Keys.Quit, m.cfg.Keys.Calendar:
		m.mode = modeList
		m.status = "Back to list"
	case "h", "left":
		m.calDay = clampDay(m.calDay-1, m.cal.Days())
	case "l", "right":
		m.calDay = clampDay(m.calDay+1, m.cal.Days())
	case "j", "down":
		m.calDay = clampDay(m.calDay+7, m.cal.Days())
	case "k", "up":
		m.calDay = clampDay(m.calDay-7, m.cal.Days())
	case m.cfg.Keys.PrevMonth:
		m.cal.Prev()
		m.calDay = clampDay(m.calDay, m.cal.Days())
	case m.cfg.Keys.NextMonth:
		m.cal.Next()
		m.calDay = clampDay(m.calDay, m.cal.Days())
	case m.cfg.Keys.Confirm, "enter":
		m.selected = m.cal.DateFor(m.calDay)
		m.filter = string(m.selected)
		m.cursor = 0
		m.refresh()
		m.mode = modeList
		m.status = "Showing " + string(m.selected)
	}
	return m, nil
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N":
		m.status = "Delete cancelled"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		if m.pendingDel == nil {
			m.status = "Nothing to delete"
			m.confirmDel = false
			return m, nil
		}
		if _, err := m.store.Delete(m.pendingDel.ID); err != nil {
			m.status = fmt.Sprintf("delete failed: %v", err)
			m.confirmDel = false
			m.pendingDel = nil
			return m, nil
		}
		m.refresh()
		m.status = "Deleted task"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Dayplan"))
	b.WriteString("\n\n")

	if m.mode == modeSubtasks || m.mode == modeSubtaskInput {
		b.WriteString(m.renderSubtaskPane())
	} else if len(m.visible) == 0 {
		b.WriteString(dimStyle.Render("Nothing here. Press 'a' to add a task."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTaskList())
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%d item(s) left • filter: %s", m.store.ActiveCount(), filterLabel(m.filter)))
	b.WriteString("\n\n")
	b.WriteString(m.renderCalendar())

	if m.mode == modeForm || m.mode == modeSubtaskInput {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	if m.mode == modeForm {
		b.WriteString(m.renderFormBox())
	}

	b.WriteString("\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(renderHelp(m.cfg.Keys)))

	return b.String()
}

func (m Model) renderTaskList() string {
	var b strings.Builder
	for i, t := range m.visible {
		cursor := " "
		if m.cursor == i && m.mode == modeList {
			cursor = ">"
		}

		checkbox := "[ ]"
		if t.Completed {
			checkbox = "[x]"
		}

		text := t.Text
		if t.Completed {
			text = doneStyle.Render(text)
		}

		line := fmt.Sprintf("%s %s %s %s", cursor, checkbox, text, dimStyle.Render(string(t.Date)))
		if n := len(t.Subtasks); n > 0 {
			done := 0
			for _, st := range t.Subtasks {
				if st.Completed {
					done++
				}
			}
			line += dimStyle.Render(fmt.Sprintf(" (%d/%d)", done, n))
		}
		if t.Inherited && t.Date != t.CreatedAt {
			line += " " + badgeStyle.Render("inherited from "+string(t.CreatedAt))
		}

		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderSubtaskPane() string {
	t := m.current()
	if t == nil {
		return "No task selected\n"
	}
	var b strings.Builder
	b.WriteString("Subtasks of: " + t.Text)
	b.WriteString("\n\n")
	if len(t.Subtasks) == 0 {
		b.WriteString(dimStyle.Render("No subtasks yet. Press 'a' to add one."))
		b.WriteString("\n")
		return b.String()
	}
	for i, st := range t.Subtasks {
		cursor := " "
		if m.subCursor == i && m.mode == modeSubtasks {
			cursor = ">"
		}
		checkbox := "[ ]"
		if st.Completed {
			checkbox = "[x]"
		}
		text := st.Text
		if st.Completed {
			text = doneStyle.Render(text)
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, checkbox, text))
	}
	return b.String()
}

func (m Model) renderFormBox() string {
	f := m.form
	if f == nil {
		return ""
	}
	fields := f.fields()
	var b strings.Builder
	for i, name := range fields {
		prefix := " "
		if i == f.index {
			prefix = ">"
		}
		saved := f.currentValueAt(i)
		if strings.TrimSpace(saved) == "" {
			saved = "(empty)"
		}
		b.WriteString(fmt.Sprintf("%s %-20s : %s\n", prefix, name, saved))
	}
	return b.String()
}

func (f formState) currentValueAt(i int) string {
	g := f
	g.index = i
	return g.currentValue()
}

func (m Model) renderCalendar() string {
	grid := calendar.MonthGrid(m.store.Tasks(), m.cal.Year, m.cal.Month, m.today(), m.calSelected())
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %d", m.cal.Month, m.cal.Year))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Su Mo Tu We Th Fr Sa"))
	b.WriteString("\n")
	for i, cell := range grid {
		if i > 0 && i%7 == 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderCell(cell))
		if (i+1)%7 != 0 {
			b.WriteString(" ")
		}
	}
	b.WriteString("\n")
	return b.String()
}

// calSelected is the day highlighted in the grid: the cursor day while
// navigating the calendar, the picked date otherwise.
func (m Model) calSelected() task.Date {
	if m.mode == modeCalendar {
		return m.cal.DateFor(m.calDay)
	}
	return m.selected
}

func renderCell(c calendar.DayCell) string {
	if c.Empty {
		return "  "
	}
	s := fmt.Sprintf("%2d", c.Day)
	switch {
	case c.IsSelected:
		s = selectedStyle.Render(s)
	case c.IsToday:
		s = todayStyle.Render(s)
	case c.HasTasks:
		s = hasTasksStyle.Render(s)
	}
	return s
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s edit • %s toggle • %s delete • %s subtasks • %s filter • %s calendar • %s carry forward • %s clear done • %s quit",
		k.Up, k.Down, k.Add, k.Edit, k.Toggle, k.Delete, k.Subtasks, k.Filter, k.Calendar, k.Inherit, k.Clear, k.Quit)
}

func nextFilter(cur string) string {
	switch cur {
	case task.FilterAll:
		return task.FilterActive
	case task.FilterActive:
		return task.FilterToday
	case task.FilterToday:
		return task.FilterCompleted
	default:
		return task.FilterAll
	}
}

func filterLabel(f string) string {
	switch f {
	case "", task.FilterAll:
		return "all"
	case task.FilterActive, task.FilterCompleted, task.FilterToday:
		return f
	default:
		return f // a literal date picked in the calendar
	}
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

func clampDay(day, last int) int {
	if day < 1 {
		return 1
	}
	if day > last {
		return last
	}
	return day
}
