package task

// Filter values understood by Visible. Anything else that parses as a
// date restricts the list to that day; anything else again falls back
// to FilterAll.
const (
	FilterAll       = "all"
	FilterActive    = "active"
	FilterCompleted = "completed"
	FilterToday     = "today"
)

// Visible computes the subset of tasks the list view shows for the
// given filter, preserving store order. It never fails: unsupported
// filter strings behave like "all".
func (s *Store) Visible(filter string, today Date) []Task {
	keep := func(Task) bool { return true }
	switch filter {
	case "", FilterAll:
	case FilterActive:
		keep = func(t Task) bool { return !t.Completed }
	case FilterCompleted:
		keep = func(t Task) bool { return t.Completed }
	case FilterToday:
		keep = func(t Task) bool { return t.Date == today }
	default:
		if day, err := ParseDate(filter); err == nil {
			keep = func(t Task) bool { return t.Date == day }
		}
	}
	out := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if keep(t) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// ActiveCount is the number of unfinished tasks, regardless of date.
func (s *Store) ActiveCount() int {
	n := 0
	for _, t := range s.tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}
