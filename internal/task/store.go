package task

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Blob is the single-key persistence slot the store round-trips
// through. Load returns ok=false when nothing was ever saved.
type Blob interface {
	Load() ([]byte, bool, error)
	Save([]byte) error
}

// Store owns the task collection. It is not safe for concurrent use;
// the application drives it from a single event loop.
type Store struct {
	blob  Blob
	gen   IDGen
	log   zerolog.Logger
	tasks []Task
}

type Option func(*Store)

func WithIDGen(g IDGen) Option {
	return func(s *Store) { s.gen = g }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

func New(blob Blob, opts ...Option) *Store {
	s := &Store{
		blob: blob,
		gen:  DefaultIDGen,
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the persisted collection and repairs records written by
// older versions. A missing blob yields an empty collection. When the
// repair changed anything the fixed form is saved back immediately.
func (s *Store) Load(today Date) error {
	data, ok, err := s.blob.Load()
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	if !ok {
		s.tasks = nil
		return nil
	}
	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return fmt.Errorf("decode tasks: %w", err)
	}
	changed := s.migrate(tasks, today)
	s.tasks = tasks
	if changed {
		s.log.Info().Int("tasks", len(tasks)).Msg("migrated legacy records")
		return s.Save()
	}
	return nil
}

// migrate fills fields older blobs did not have. Running it on
// already-migrated data changes nothing.
func (s *Store) migrate(tasks []Task, today Date) bool {
	changed := false
	for i := range tasks {
		t := &tasks[i]
		if t.ID == "" {
			t.ID = s.gen()
			changed = true
		}
		switch {
		case t.Date == "":
			t.Date = today
			t.CreatedAt = today
			t.Inherited = false
			changed = true
		case t.CreatedAt == "":
			t.CreatedAt = t.Date
			t.Inherited = false
			changed = true
		}
		if t.Text == "" && t.Structured() {
			t.Text = JoinFields(t.Type, t.Object, t.Action)
			changed = true
		}
		for j := range t.Subtasks {
			if t.Subtasks[j].ID == "" {
				t.Subtasks[j].ID = s.gen()
				changed = true
			}
		}
	}
	return changed
}

// Save writes the whole collection, replacing the previous blob.
func (s *Store) Save() error {
	data, err := json.Marshal(s.tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := s.blob.Save(data); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	s.log.Debug().Int("tasks", len(s.tasks)).Msg("saved")
	return nil
}

// Tasks returns the collection in store order. The result is a deep
// copy; mutating it does not touch the store.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

func (s *Store) Get(id string) (Task, bool) {
	if t := s.find(id); t != nil {
		return t.Clone(), true
	}
	return Task{}, false
}

func (s *Store) find(id string) *Task {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return &s.tasks[i]
		}
	}
	return nil
}

// Add creates a task from the type/object/action triple. It rejects
// the add (ok=false, nothing persisted) when all three are empty or
// the date is not a calendar day. Subtask texts become subtasks with
// fresh ids, in the given order.
func (s *Store) Add(typ, object, action string, date Date, subtasks []string) (Task, bool, error) {
	text := JoinFields(typ, object, action)
	if text == "" {
		return Task{}, false, nil
	}
	return s.push(Task{
		Text:   text,
		Type:   strings.TrimSpace(typ),
		Object: strings.TrimSpace(object),
		Action: strings.TrimSpace(action),
	}, date, subtasks)
}

// AddFreeText creates a task from plain text with no structured
// fields.
func (s *Store) AddFreeText(text string, date Date, subtasks []string) (Task, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, false, nil
	}
	return s.push(Task{Text: text}, date, subtasks)
}

func (s *Store) push(t Task, date Date, subtasks []string) (Task, bool, error) {
	if !date.Valid() {
		return Task{}, false, nil
	}
	t.ID = s.gen()
	t.Date = date
	t.CreatedAt = date
	t.Inherited = false
	for _, st := range subtasks {
		t.Subtasks = append(t.Subtasks, Subtask{ID: s.gen(), Text: st})
	}
	s.tasks = append(s.tasks, t)
	s.log.Info().Str("id", t.ID).Str("date", string(date)).Msg("task added")
	return t.Clone(), true, s.Save()
}

// Delete removes the task with the given id. Unknown ids are a silent
// no-op and do not trigger a write.
func (s *Store) Delete(id string) (bool, error) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			s.log.Info().Str("id", id).Msg("task deleted")
			return true, s.Save()
		}
	}
	return false, nil
}

// Toggle flips the completion state of the task with the given id.
func (s *Store) Toggle(id string) (bool, error) {
	t := s.find(id)
	if t == nil {
		return false, nil
	}
	t.Completed = !t.Completed
	return true, s.Save()
}

// Edit updates the structured fields in place. The display text is
// recomputed from the triple whenever at least one component remains
// non-empty; clearing all three keeps the old text so the task stays
// readable.
func (s *Store) Edit(id, typ, object, action string) (bool, error) {
	t := s.find(id)
	if t == nil {
		return false, nil
	}
	t.Type = strings.TrimSpace(typ)
	t.Object = strings.TrimSpace(object)
	t.Action = strings.TrimSpace(action)
	if t.Structured() {
		t.Text = JoinFields(t.Type, t.Object, t.Action)
	}
	return true, s.Save()
}

// ClearCompleted drops every completed task and reports how many were
// removed. Nothing is written when the count is zero.
func (s *Store) ClearCompleted() (int, error) {
	kept := s.tasks[:0]
	removed := 0
	for _, t := range s.tasks {
		if t.Completed {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept
	if removed == 0 {
		return 0, nil
	}
	s.log.Info().Int("removed", removed).Msg("cleared completed tasks")
	return removed, s.Save()
}
