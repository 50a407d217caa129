package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedFilterStore(t *testing.T) *Store {
	t.Helper()
	s, _ := newTestStore()
	a, _, _ := s.Add("write", "report", "", "2024-06-10", nil)
	_, _, _ = s.Add("walk", "dog", "", "2024-06-10", nil)
	_, _, _ = s.Add("plan", "trip", "", "2024-06-12", nil)
	_, err := s.Toggle(a.ID)
	require.NoError(t, err)
	return s
}

func TestFilterPartition(t *testing.T) {
	s := seedFilterStore(t)
	today := Date("2024-06-10")

	all := s.Visible(FilterAll, today)
	active := s.Visible(FilterActive, today)
	completed := s.Visible(FilterCompleted, today)

	assert.Len(t, all, len(active)+len(completed))

	ids := map[string]int{}
	for _, t2 := range active {
		ids[t2.ID]++
	}
	for _, t2 := range completed {
		ids[t2.ID]++
	}
	for _, t2 := range all {
		assert.Equal(t, 1, ids[t2.ID], "active and completed must partition all")
	}
}

func TestFilterToday(t *testing.T) {
	s := seedFilterStore(t)

	got := s.Visible(FilterToday, "2024-06-10")
	require.Len(t, got, 2)
	for _, tk := range got {
		assert.Equal(t, Date("2024-06-10"), tk.Date)
	}

	assert.Len(t, s.Visible(FilterToday, "2024-06-12"), 1)
	assert.Empty(t, s.Visible(FilterToday, "2024-06-11"))
}

func TestFilterLiteralDate(t *testing.T) {
	s := seedFilterStore(t)

	got := s.Visible("2024-06-12", "2024-06-10")
	require.Len(t, got, 1)
	assert.Equal(t, Date("2024-06-12"), got[0].Date)

	assert.Empty(t, s.Visible("2024-07-01", "2024-06-10"))
}

func TestFilterUnknownDegradesToAll(t *testing.T) {
	s := seedFilterStore(t)

	all := s.Visible(FilterAll, "2024-06-10")
	assert.Equal(t, all, s.Visible("bogus", "2024-06-10"))
	assert.Equal(t, all, s.Visible("", "2024-06-10"))
}

func TestFilterPreservesStoreOrder(t *testing.T) {
	s, _ := newTestStore()
	first, _, _ := s.Add("a", "", "", "2024-06-10", nil)
	second, _, _ := s.Add("b", "", "", "2024-06-10", nil)

	got := s.Visible(FilterAll, "2024-06-10")
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)
}

func TestActiveCount(t *testing.T) {
	s := seedFilterStore(t)
	assert.Equal(t, 2, s.ActiveCount())

	empty, _ := newTestStore()
	assert.Equal(t, 0, empty.ActiveCount())
}
