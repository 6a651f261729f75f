package todo

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/reflow/scalar/internal/telemetry"
)

var (
	ErrConflict = errors.New("todo already exists")
	ErrNotFound = errors.New("todo not found")
)

// Todo is a to-do list item.
type Todo struct {
	ID    int    `json:"id" doc:"Unique identifier"`
	Value string `json:"value" doc:"Description" example:"Buy groceries"`
	Done  bool   `json:"done" doc:"Is completed"`
}

// Store keeps the to-do list in memory.
type Store struct {
	mu    sync.Mutex
	todos []Todo
}

func NewStore() *Store {
	return &Store{}
}

// List returns a copy of every item in insertion order.
func (s *Store) List() []Todo {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Todo, len(s.todos))
	copy(out, s.todos)
	return out
}

// Search returns the items whose value equals value, ignoring case, and
// whose done flag equals done.
func (s *Store) Search(value string, done bool) []Todo {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []Todo{}
	for _, t := range s.todos {
		if strings.EqualFold(t.Value, value) && t.Done == done {
			out = append(out, t)
		}
	}
	return out
}

// Create adds todo. It fails with ErrConflict when the id is taken.
func (s *Store) Create(ctx context.Context, todo Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(todo.ID) >= 0 {
		return ErrConflict
	}
	s.todos = append(s.todos, todo)
	telemetry.AddItems(ctx, 1)
	return nil
}

// MarkDone flags the item with id as completed.
func (s *Store) MarkDone(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	s.todos[i].Done = true
	return nil
}

// Delete removes the item with id.
func (s *Store) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	s.todos = append(s.todos[:i], s.todos[i+1:]...)
	telemetry.AddItems(ctx, -1)
	return nil
}

func (s *Store) indexOf(id int) int {
	for i, t := range s.todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}
