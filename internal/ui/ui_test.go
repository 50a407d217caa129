package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dayplan/internal/config"
	"dayplan/internal/task"
)

type memBlob struct {
	data []byte
	ok   bool
}

func (b *memBlob) Load() ([]byte, bool, error) { return b.data, b.ok, nil }
func (b *memBlob) Save(v []byte) error {
	b.data = append([]byte(nil), v...)
	b.ok = true
	return nil
}

func fixedNow() time.Time {
	return time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)
}

func testModel(t *testing.T) (Model, *task.Store) {
	t.Helper()
	store := task.New(&memBlob{})
	require.NoError(t, store.Load(task.DateOf(fixedNow())))
	cfg, err := config.LoadOrCreate(t.TempDir() + "/config.toml")
	require.NoError(t, err)
	return NewModel(store, cfg, fixedNow), store
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func enter() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func TestAddTaskThroughForm(t *testing.T) {
	m, store := testModel(t)

	// 'a' opens the form: text, type, object, action, date.
	m = press(t, m, runes("a"))
	m = press(t, m, runes("buy milk"), enter())          // text
	m = press(t, m, enter(), enter(), enter())           // triple left empty
	m = press(t, m, enter())                             // date field pre-filled with today

	tasks := store.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "buy milk", tasks[0].Text)
	assert.Equal(t, task.Date("2024-06-10"), tasks[0].Date)
	assert.Equal(t, "Added task", m.status)
}

func TestAddStructuredTask(t *testing.T) {
	m, store := testModel(t)

	m = press(t, m, runes("a"), enter())      // text empty
	m = press(t, m, runes("work"), enter())   // type
	m = press(t, m, runes("report"), enter()) // object
	m = press(t, m, runes("submit"), enter()) // action
	m = press(t, m, enter())                  // date

	tasks := store.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "work - report - submit", tasks[0].Text)
}

func TestAddRejectedKeepsFormOpen(t *testing.T) {
	m, store := testModel(t)

	m = press(t, m, runes("a"), enter(), enter(), enter(), enter(), enter())

	assert.Empty(t, store.Tasks())
	assert.Equal(t, modeForm, m.mode)
}

func TestToggleAndFilterCycle(t *testing.T) {
	m, store := testModel(t)
	_, ok, err := store.Add("work", "", "", "2024-06-10", nil)
	require.NoError(t, err)
	require.True(t, ok)
	m.refresh()

	m = press(t, m, runes(" "))
	tasks := store.Tasks()
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Completed)

	// all -> active hides the completed task.
	m = press(t, m, runes("f"))
	assert.Empty(t, m.visible)

	// active -> today -> completed shows it again.
	m = press(t, m, runes("f"), runes("f"))
	assert.Len(t, m.visible, 1)
}

func TestInheritKeyReportsCount(t *testing.T) {
	m, store := testModel(t)
	_, _, err := store.Add("work", "", "", "2024-06-10", nil)
	require.NoError(t, err)
	m.refresh()

	m = press(t, m, runes("i"))
	assert.Equal(t, "Carried 1 task(s) to tomorrow", m.status)
	assert.Len(t, store.Tasks(), 2)

	m = press(t, m, runes("i"))
	assert.Equal(t, "Carried 1 task(s) to tomorrow", m.status, "copies dated tomorrow are not today's tasks")
}

func TestCalendarPickSetsDateFilter(t *testing.T) {
	m, store := testModel(t)
	_, _, err := store.Add("elsewhere", "", "", "2024-06-12", nil)
	require.NoError(t, err)
	m.refresh()

	m = press(t, m, runes("v")) // calendar mode, cursor on the 10th
	m = press(t, m, runes("l"), runes("l"), enter())

	assert.Equal(t, "2024-06-12", m.filter)
	require.Len(t, m.visible, 1)
	assert.Equal(t, task.Date("2024-06-12"), m.visible[0].Date)
	assert.Equal(t, modeList, m.mode)
}

func TestSubtaskPaneRoundTrip(t *testing.T) {
	m, store := testModel(t)
	parent, _, err := store.Add("work", "", "", "2024-06-10", []string{"a", "b"})
	require.NoError(t, err)
	m.refresh()

	// Enter subtask pane and move "b" above "a".
	m = press(t, m, runes("s"), runes("j"), runes("K"))
	cur, ok := store.Get(parent.ID)
	require.True(t, ok)
	require.Len(t, cur.Subtasks, 2)
	assert.Equal(t, "b", cur.Subtasks[0].Text)
	assert.Equal(t, "a", cur.Subtasks[1].Text)

	// Add a third subtask through the input.
	m = press(t, m, runes("a"), runes("c"), enter())
	cur, _ = store.Get(parent.ID)
	require.Len(t, cur.Subtasks, 3)
	assert.Equal(t, "c", cur.Subtasks[2].Text)

	// Toggle it, then delete it.
	m = press(t, m, runes(" "))
	cur, _ = store.Get(parent.ID)
	assert.True(t, cur.Subtasks[2].Completed)

	m = press(t, m, runes("d"))
	cur, _ = store.Get(parent.ID)
	assert.Len(t, cur.Subtasks, 2)
}

func TestViewRendersBadgesAndCount(t *testing.T) {
	m, store := testModel(t)
	_, _, err := store.Add("work", "", "", "2024-06-10", nil)
	require.NoError(t, err)
	count, err := store.InheritToTomorrow("2024-06-10")
	require.NoError(t, err)
	require.Equal(t, 1, count)
	m.refresh()

	out := m.View()
	assert.Contains(t, out, "work")
	assert.Contains(t, out, "2 item(s) left")
	assert.Contains(t, out, "inherited from 2024-06-10")
	assert.Contains(t, out, "June 2024")
}
