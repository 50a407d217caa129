package task

// InheritToTomorrow copies every unfinished task dated today onto the
// next day and reports how many were carried. Sources are left in
// place, so a task that stays unfinished keeps producing one new
// record per hop. The copies get fresh ids but keep the original
// createdAt, preserving lineage across hops; their subtasks keep id,
// text and order with completion reset.
func (s *Store) InheritToTomorrow(today Date) (int, error) {
	tomorrow := today.Next()
	var carried []Task
	for _, t := range s.tasks {
		if t.Date != today || t.Completed {
			continue
		}
		c := t.Clone()
		c.ID = s.gen()
		c.Completed = false
		c.Date = tomorrow
		c.Inherited = true
		for i := range c.Subtasks {
			c.Subtasks[i].Completed = false
		}
		carried = append(carried, c)
	}
	if len(carried) == 0 {
		return 0, nil
	}
	s.tasks = append(s.tasks, carried...)
	s.log.Info().Int("count", len(carried)).Str("to", string(tomorrow)).Msg("carried tasks forward")
	return len(carried), s.Save()
}
