// Package calendar computes the month grid the calendar pane renders.
// It is a pure view over task dates; nothing here mutates the store.
package calendar

import (
	"time"

	"dayplan/internal/task"
)

// DayCell is one slot in the month grid. Leading placeholder cells
// before day 1 have Empty set and a zero Day.
type DayCell struct {
	Day        int
	Empty      bool
	IsToday    bool
	IsSelected bool
	HasTasks   bool
}

// MonthGrid lays out the given month: weekday-of-the-1st empty cells
// (Sunday = 0), then one cell per day. Task presence is collected in a
// single pass over the tasks.
func MonthGrid(tasks []task.Task, year int, month time.Month, today, selected task.Date) []DayCell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	lastDay := first.AddDate(0, 1, -1).Day()

	hasTasks := make(map[int]bool, len(tasks))
	for _, t := range tasks {
		if y, m, d, ok := t.Date.Split(); ok && y == year && m == month {
			hasTasks[d] = true
		}
	}

	ty, tm, td, tok := today.Split()
	sy, sm, sd, sok := selected.Split()

	cells := make([]DayCell, 0, int(first.Weekday())+lastDay)
	for i := 0; i < int(first.Weekday()); i++ {
		cells = append(cells, DayCell{Empty: true})
	}
	for day := 1; day <= lastDay; day++ {
		cells = append(cells, DayCell{
			Day:        day,
			IsToday:    tok && ty == year && tm == month && td == day,
			IsSelected: sok && sy == year && sm == month && sd == day,
			HasTasks:   hasTasks[day],
		})
	}
	return cells
}

// Cursor is the month the calendar pane is looking at.
type Cursor struct {
	Year  int
	Month time.Month
}

// CursorAt positions the cursor on the month containing d, falling
// back to now for dates that do not parse.
func CursorAt(d task.Date, now time.Time) Cursor {
	if y, m, _, ok := d.Split(); ok {
		return Cursor{Year: y, Month: m}
	}
	return Cursor{Year: now.Year(), Month: now.Month()}
}

func (c *Cursor) Prev() {
	if c.Month == time.January {
		c.Month = time.December
		c.Year--
		return
	}
	c.Month--
}

func (c *Cursor) Next() {
	if c.Month == time.December {
		c.Month = time.January
		c.Year++
		return
	}
	c.Month++
}

// Contains reports whether d falls inside the cursor month.
func (c Cursor) Contains(d task.Date) bool {
	y, m, _, ok := d.Split()
	return ok && y == c.Year && m == c.Month
}

// Days is the number of days in the cursor month.
func (c Cursor) Days() int {
	return time.Date(c.Year, c.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}

// DateFor builds the date for a day number inside the cursor month.
func (c Cursor) DateFor(day int) task.Date {
	return task.DateOf(time.Date(c.Year, c.Month, day, 0, 0, 0, 0, time.UTC))
}
