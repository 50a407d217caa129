package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task is one tracked unit of work. The JSON tags are the stored
// representation; old blobs may omit date, createdAt and inherited,
// which Load repairs (see migrate).
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Type      string    `json:"type,omitempty"`
	Object    string    `json:"object,omitempty"`
	Action    string    `json:"action,omitempty"`
	Completed bool      `json:"completed"`
	Date      Date      `json:"date"`
	CreatedAt Date      `json:"createdAt"`
	Inherited bool      `json:"inherited"`
	Subtasks  []Subtask `json:"subtasks,omitempty"`
}

// Subtask is owned by its parent task. Order within Task.Subtasks is
// the display order.
type Subtask struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Clone deep-copies the task so callers never alias store-owned
// subtask slices.
func (t Task) Clone() Task {
	c := t
	if t.Subtasks != nil {
		c.Subtasks = make([]Subtask, len(t.Subtasks))
		copy(c.Subtasks, t.Subtasks)
	}
	return c
}

// Structured reports whether any of the classification fields is set.
func (t Task) Structured() bool {
	return t.Type != "" || t.Object != "" || t.Action != ""
}

// JoinFields builds the display text from the type/object/action
// triple, skipping empty components.
func JoinFields(typ, object, action string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{typ, object, action} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, " - ")
}

// IDGen produces task and subtask ids. The store takes one so tests
// can run on a deterministic counter.
type IDGen func() string

// DefaultIDGen keeps the timestamp-plus-random-suffix shape of ids
// already present in old blobs.
func DefaultIDGen() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
