package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/bnema/vipasana-cli/internal/domain"
)

var ErrRunnerClosed = errors.New("session runner closed")

type command struct {
	apply func(*SessionClock) error
	reply chan error
}

// Runner owns a SessionClock on a single goroutine. Commands and collaborator
// callbacks are handed to that goroutine; between them it sleeps on one timer
// armed for the next queued task.
type Runner struct {
	session  *SessionClock
	clock    clockwork.Clock
	commands chan command
	wake     chan struct{}
	done     chan struct{}
	started  atomic.Bool

	mu      sync.Mutex
	pending []func()

	subsMu sync.Mutex
	subs   []chan Event
	closed bool

	outcome Outcome
}

// NewRunner takes ownership of session. The session must not be used
// directly afterwards.
func NewRunner(session *SessionClock) *Runner {
	r := &Runner{
		session:  session,
		clock:    session.clock,
		commands: make(chan command),
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	session.post = r.post
	session.OnEvent(r.publish)
	return r
}

// Start launches the loop and starts the session. Cancelling ctx stops the
// session.
func (r *Runner) Start(ctx context.Context) error {
	if !r.started.CompareAndSwap(false, true) {
		return fmt.Errorf("start runner: %w: already started", domain.ErrInvalidTransition)
	}
	go r.loop(ctx)
	return r.send(func(s *SessionClock) error {
		return s.Start(ctx)
	})
}

func (r *Runner) Pause() error {
	return r.send(func(s *SessionClock) error { return s.Pause() })
}

func (r *Runner) Resume() error {
	return r.send(func(s *SessionClock) error { return s.Resume() })
}

func (r *Runner) Stop() error {
	return r.send(func(s *SessionClock) error { return s.Stop() })
}

// TogglePause pauses a counting session and resumes a paused one.
func (r *Runner) TogglePause() error {
	return r.send(func(s *SessionClock) error {
		if s.Phase() == domain.PhasePaused {
			return s.Resume()
		}
		return s.Pause()
	})
}

func (r *Runner) State() (State, error) {
	var state State
	err := r.send(func(s *SessionClock) error {
		s.RunDue()
		state = s.State()
		return nil
	})
	return state, err
}

// Subscribe returns a channel of session events. Events are dropped when the
// channel is full. The channel is closed when the session is over.
func (r *Runner) Subscribe(buffer int) <-chan Event {
	ch := make(chan Event, buffer)

	r.subsMu.Lock()
	defer r.subsMu.Unlock()
	if r.closed {
		close(ch)
		return ch
	}
	r.subs = append(r.subs, ch)
	return ch
}

func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Outcome is valid once Done is closed.
func (r *Runner) Outcome() Outcome {
	<-r.done
	return r.outcome
}

// Wait blocks until the session is over or ctx ends.
func (r *Runner) Wait(ctx context.Context) (Outcome, error) {
	select {
	case <-r.done:
		return r.outcome, nil
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
}

func (r *Runner) send(apply func(*SessionClock) error) error {
	if !r.started.Load() {
		return fmt.Errorf("send command: %w: runner not started", domain.ErrInvalidTransition)
	}
	cmd := command{apply: apply, reply: make(chan error, 1)}
	select {
	case r.commands <- cmd:
	case <-r.done:
		return ErrRunnerClosed
	}
	return <-cmd.reply
}

func (r *Runner) loop(ctx context.Context) {
	for {
		r.runPending()
		r.session.RunDue()
		if r.session.Idle() {
			break
		}

		var timer clockwork.Timer
		var fire <-chan time.Time
		if due, ok := r.session.NextDue(); ok {
			wait := due.Sub(r.clock.Now())
			if wait <= 0 {
				continue
			}
			timer = r.clock.NewTimer(wait)
			fire = timer.Chan()
		}

		select {
		case <-ctx.Done():
			r.abandon()
		case cmd := <-r.commands:
			cmd.reply <- cmd.apply(r.session)
		case <-r.wake:
		case <-fire:
		}
		if timer != nil {
			timer.Stop()
		}
	}

	r.outcome = r.session.Outcome()
	r.closeSubscribers()
	close(r.done)
}

// abandon aborts a live session, or drops the trailing work of a finished one.
func (r *Runner) abandon() {
	if err := r.session.Stop(); err != nil {
		r.session.agenda.clear()
	}
}

func (r *Runner) post(fn func()) {
	r.mu.Lock()
	r.pending = append(r.pending, fn)
	r.mu.Unlock()

	select {
	case r.wake <- struct{}{}:
	default:
	}
}

func (r *Runner) runPending() {
	r.mu.Lock()
	pending := r.pending
	r.pending = nil
	r.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
}

func (r *Runner) publish(event Event) {
	r.subsMu.Lock()
	defer r.subsMu.Unlock()
	for _, ch := range r.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

func (r *Runner) closeSubscribers() {
	r.subsMu.Lock()
	defer r.subsMu.Unlock()
	r.closed = true
	for _, ch := range r.subs {
		close(ch)
	}
	r.subs = nil
}
