package viewmodel

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/fmuoria/recruiter-dashboard/internal/notify"
)

var (
	// ErrClosed is returned by Load on a screen that has been closed
	ErrClosed = errors.New("screen closed")
	// ErrSuperseded is returned by a load whose result was dropped for a newer one
	ErrSuperseded = errors.New("load superseded")
)

// State is what a screen renders from. Data stays nil until the first
// successful load and is kept when a later load fails.
type State[T any] struct {
	Data      *T
	IsLoading bool
	Error     string
}

// Fetcher loads a screen's payload
type Fetcher[T any] func(ctx context.Context) (T, error)

// Options configures a screen
type Options[T any] struct {
	// Name tags notices and log lines
	Name string
	// ErrorMessage turns a fetch error into the text shown to the user
	ErrorMessage func(err error) string
	// Toast also raises the error as a notice
	Toast bool
	// OnLoaded runs after each successful load, before subscribers hear of it
	OnLoaded func(data T)
}

// Screen owns the load cycle of one view. Each Load cancels the one before
// it, and Close cancels whatever is in flight; results from cancelled loads are
// dropped without touching state.
type Screen[T any] struct {
	mu       sync.RWMutex
	fetch    Fetcher[T]
	opts     Options[T]
	notifier notify.Notifier
	state    State[T]
	gen      uint64
	cancel   context.CancelFunc
	closed   bool
	subs     []func(State[T])
}

// NewScreen creates a screen in the loading state
func NewScreen[T any](fetch Fetcher[T], notifier notify.Notifier, opts Options[T]) *Screen[T] {
	if notifier == nil {
		notifier = notify.Discard
	}
	if opts.ErrorMessage == nil {
		opts.ErrorMessage = func(err error) string { return err.Error() }
	}
	return &Screen[T]{
		fetch:    fetch,
		opts:     opts,
		notifier: notifier,
		state:    State[T]{IsLoading: true},
	}
}

// Name returns the screen's tag
func (s *Screen[T]) Name() string {
	return s.opts.Name
}

// State returns a snapshot of the current state
func (s *Screen[T]) State() State[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers fn to be called with every new state
func (s *Screen[T]) Subscribe(fn func(State[T])) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Load fetches the payload and updates state. It returns ErrSuperseded or
// ErrClosed when its result was discarded.
func (s *Screen[T]) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	gen := s.gen
	loadCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.state.IsLoading = true
	s.mu.Unlock()
	s.publish()

	data, err := s.fetch(loadCtx)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		cancel()
		return ErrClosed
	}
	if gen != s.gen {
		s.mu.Unlock()
		cancel()
		return ErrSuperseded
	}
	s.cancel = nil
	cancel()

	s.state.IsLoading = false
	if err != nil {
		s.state.Error = s.opts.ErrorMessage(err)
	} else {
		s.state.Data = &data
		s.state.Error = ""
	}
	message := s.state.Error
	s.mu.Unlock()

	if err != nil {
		log.Printf("[%s] Load failed: %v", s.opts.Name, err)
		if s.opts.Toast {
			s.notifier.Notify(notify.New(notify.LevelError, s.opts.Name, message))
		}
	} else if s.opts.OnLoaded != nil {
		s.opts.OnLoaded(data)
	}

	s.publish()
	return err
}

// Close cancels any in-flight load. Later loads return ErrClosed.
func (s *Screen[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Closed reports whether Close has been called
func (s *Screen[T]) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

func (s *Screen[T]) publish() {
	s.mu.RLock()
	state := s.state
	subs := append(([]func(State[T]))(nil), s.subs...)
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(state)
	}
}
