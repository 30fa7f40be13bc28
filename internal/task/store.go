package task

import (
	"fmt"
	"slices"
	"time"
)

// Store holds one session's tasks in insertion order. It is not safe for
// concurrent use; callers serialize access per session.
type Store struct {
	tasks  []*Task
	lastID int
	sortBy SortStrategy
	rev    uint64
}

func NewStore() *Store {
	return &Store{sortBy: SortByDate}
}

// Add stamps t with the next unused ID and appends it.
func (s *Store) Add(t *Task) {
	s.lastID++
	t.ID = s.lastID
	s.tasks = append(s.tasks, t)
	s.rev++
}

// Remove deletes the task with id. Unknown ids are ignored.
func (s *Store) Remove(id int) {
	n := len(s.tasks)
	s.tasks = slices.DeleteFunc(s.tasks, func(t *Task) bool {
		return t.ID == id
	})
	if len(s.tasks) != n {
		s.rev++
	}
}

// Tasks returns every task ordered by the active strategy.
func (s *Store) Tasks() []*Task {
	return s.sortBy.Sort(s.tasks)
}

// InsertionOrder returns the tasks in the order they were added.
func (s *Store) InsertionOrder() []*Task {
	return slices.Clone(s.tasks)
}

func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) SetSortStrategy(st SortStrategy) {
	if st != s.sortBy {
		s.sortBy = st
		s.rev++
	}
}

func (s *Store) SortStrategy() SortStrategy {
	return s.sortBy
}

// Revision changes whenever the store is written to. Reads leave it alone.
func (s *Store) Revision() uint64 {
	return s.rev
}

func (s *Store) Get(id int) (*Task, bool) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// MarkComplete sets the task's completed flag and notifies its listeners.
// The bool is false when no task has that id.
func (s *Store) MarkComplete(id int) (*Task, bool, error) {
	return s.mutate(id, "mark complete", (*Task).MarkComplete)
}

func (s *Store) MarkIncomplete(id int) (*Task, bool, error) {
	return s.mutate(id, "mark incomplete", (*Task).MarkIncomplete)
}

func (s *Store) SetDeadline(id int, at time.Time) (*Task, bool, error) {
	return s.mutate(id, "set deadline", func(t *Task) error {
		return t.SetDeadline(at)
	})
}

func (s *Store) mutate(id int, op string, fn func(*Task) error) (*Task, bool, error) {
	t, ok := s.Get(id)
	if !ok {
		return nil, false, nil
	}
	s.rev++
	if err := fn(t); err != nil {
		return t, true, fmt.Errorf("%s task %d: %w", op, id, err)
	}
	return t, true, nil
}
