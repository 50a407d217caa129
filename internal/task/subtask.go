package task

import "strings"

// AddSubtask appends a subtask to the task's sequence. The text may be
// empty; the original tool lets users fill it in afterwards.
func (s *Store) AddSubtask(taskID, text string) (Subtask, bool, error) {
	t := s.find(taskID)
	if t == nil {
		return Subtask{}, false, nil
	}
	st := Subtask{ID: s.gen(), Text: strings.TrimSpace(text)}
	t.Subtasks = append(t.Subtasks, st)
	return st, true, s.Save()
}

func (s *Store) RemoveSubtask(taskID, subtaskID string) (bool, error) {
	t := s.find(taskID)
	if t == nil {
		return false, nil
	}
	for i := range t.Subtasks {
		if t.Subtasks[i].ID == subtaskID {
			t.Subtasks = append(t.Subtasks[:i], t.Subtasks[i+1:]...)
			return true, s.Save()
		}
	}
	return false, nil
}

func (s *Store) ToggleSubtask(taskID, subtaskID string) (bool, error) {
	t := s.find(taskID)
	if t == nil {
		return false, nil
	}
	for i := range t.Subtasks {
		if t.Subtasks[i].ID == subtaskID {
			t.Subtasks[i].Completed = !t.Subtasks[i].Completed
			return true, s.Save()
		}
	}
	return false, nil
}

// SetSubtaskText renames a subtask in place.
func (s *Store) SetSubtaskText(taskID, subtaskID, text string) (bool, error) {
	t := s.find(taskID)
	if t == nil {
		return false, nil
	}
	for i := range t.Subtasks {
		if t.Subtasks[i].ID == subtaskID {
			t.Subtasks[i].Text = strings.TrimSpace(text)
			return true, s.Save()
		}
	}
	return false, nil
}

// ReorderSubtask moves fromID so it sits immediately before toID's
// position as it stands after the removal. Unknown task or subtask ids
// are a silent no-op.
func (s *Store) ReorderSubtask(taskID, fromID, toID string) (bool, error) {
	t := s.find(taskID)
	if t == nil {
		return false, nil
	}
	from := subtaskIndex(t.Subtasks, fromID)
	to := subtaskIndex(t.Subtasks, toID)
	if from < 0 || to < 0 {
		return false, nil
	}
	if from == to {
		return true, nil
	}
	moved := t.Subtasks[from]
	rest := append(t.Subtasks[:from], t.Subtasks[from+1:]...)
	at := subtaskIndex(rest, toID)
	t.Subtasks = append(rest[:at], append([]Subtask{moved}, rest[at:]...)...)
	return true, s.Save()
}

func subtaskIndex(subs []Subtask, id string) int {
	for i := range subs {
		if subs[i].ID == id {
			return i
		}
	}
	return -1
}
