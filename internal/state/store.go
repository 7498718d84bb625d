package state

import (
	gosync "sync"

	"github.com/nhle/todolists/internal/model"
)

// Dispatcher applies actions to a state container.
type Dispatcher interface {
	Dispatch(actions ...Action)
}

// State is an immutable copy of every slice at one point in time.
type State struct {
	App       AppState
	Session   SessionState
	Todolists []TodolistView
	Tasks     TasksState
}

// Store is the injectable state container. A single lock guards every
// slice, so one Dispatch call is observed atomically across slices.
type Store struct {
	mu        gosync.RWMutex
	state     State
	nextSubID int
	subs      map[int]chan struct{}
}

// New creates a Store holding the initial state: logged out,
// uninitialized, idle and empty.
func New() *Store {
	return &Store{
		state: State{
			App:       initialAppState(),
			Todolists: []TodolistView{},
			Tasks:     initialTasksState(),
		},
		subs: make(map[int]chan struct{}),
	}
}

// Dispatch runs every action through every slice reducer under one write
// lock, then notifies subscribers.
func (s *Store) Dispatch(actions ...Action) {
	if len(actions) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range actions {
		s.state = reduce(s.state, a)
	}
	// Unsubscribe closes channels under the same lock.
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
			// A notification is already pending; subscribers re-read
			// the whole state anyway.
		}
	}
}

func reduce(s State, a Action) State {
	return State{
		App:       reduceApp(s.App, a),
		Session:   reduceSession(s.Session, a),
		Todolists: reduceTodolists(s.Todolists, a),
		Tasks:     reduceTasks(s.Tasks, a),
	}
}

// Subscribe returns a channel that receives a value after state changes.
// Notifications coalesce: a slow reader sees at most one pending value.
// The returned func unsubscribes and closes the channel.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = ch
	s.mu.Unlock()

	var once gosync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(ch)
		})
	}
}

// Snapshot returns a deep copy of the whole state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := State{
		App:       s.state.App,
		Session:   s.state.Session,
		Todolists: append([]TodolistView{}, s.state.Todolists...),
		Tasks:     s.state.Tasks.clone(),
	}
	if out.App.Error != nil {
		msg := *out.App.Error
		out.App.Error = &msg
	}
	if out.Session.User != nil {
		u := *out.Session.User
		out.Session.User = &u
	}
	return out
}

// App returns the global request status.
func (s *Store) App() AppState {
	return s.Snapshot().App
}

// Session returns the authentication state.
func (s *Store) Session() SessionState {
	return s.Snapshot().Session
}

// Todolists returns the ordered list collection.
func (s *Store) Todolists() []TodolistView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]TodolistView{}, s.state.Todolists...)
}

// Todolist returns a single list by id.
func (s *Store) Todolist(id string) (TodolistView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.state.Todolists {
		if v.ID == id {
			return v, true
		}
	}
	return TodolistView{}, false
}

// Tasks returns the bucket of a list and whether the bucket exists.
func (s *Store) Tasks(listID string) ([]TaskView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bucket, ok := s.state.Tasks.Buckets[listID]
	if !ok {
		return nil, false
	}
	return append([]TaskView{}, bucket...), true
}

// Task returns a single stored task.
func (s *Store) Task(listID, taskID string) (TaskView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.state.Tasks.Buckets[listID] {
		if t.ID == taskID {
			return t, true
		}
	}
	return TaskView{}, false
}

// FilterTasks returns the tasks of a list selected by filter, in stored
// order. It never mutates the store.
func (s *Store) FilterTasks(filter model.FilterValue, listID string) []TaskView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FilterTaskViews(s.state.Tasks.Buckets[listID], filter)
}

// TasksLoaded reports whether a fetch of the list's tasks has completed
// and been applied.
func (s *Store) TasksLoaded(listID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Tasks.Loaded[listID]
}
