// Package store holds the shared application state. Components read it
// through selectors and change it only by dispatching actions; every
// change is pushed to subscribers so the program can re-render.
package store

import (
	"sync"

	"nio/internal/models"
)

type State struct {
	Current       int64
	History       []models.Conversation
	Messages      []models.Message
	Model         string
	Web           bool
	Authenticated bool
	Init          bool
	MenuOpen      bool
}

// Dispatcher is the write side handed to collaborators.
type Dispatcher interface {
	Dispatch(Action)
}

type Store struct {
	mu          sync.RWMutex
	state       State
	subscribers map[int]func(State)
	nextSub     int
}

func New(model string, web bool) *Store {
	return &Store{
		state: State{
			Current: models.NewConversationID,
			Model:   model,
			Web:     web,
		},
		subscribers: make(map[int]func(State)),
	}
}

func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	next := reduce(s.state, a)
	s.state = next
	subs := make([]func(State), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	snapshot := next.clone()
	for _, fn := range subs {
		fn(snapshot)
	}
}

// Subscribe registers fn to be called after every dispatch.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

func (s *Store) Current() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Current
}

func (s *Store) History() []models.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Conversation(nil), s.state.History...)
}

func (s *Store) Messages() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Message(nil), s.state.Messages...)
}

func (s *Store) Model() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Model
}

func (s *Store) Web() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Web
}

func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Authenticated
}

func (s *Store) Init() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Init
}

func (s *Store) MenuOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.MenuOpen
}

func (st State) clone() State {
	out := st
	out.History = append([]models.Conversation(nil), st.History...)
	out.Messages = append([]models.Message(nil), st.Messages...)
	return out
}

// HasConversation reports whether id is still in the history list.
func (st State) HasConversation(id int64) bool {
	for _, c := range st.History {
		if c.ID == id {
			return true
		}
	}
	return false
}
