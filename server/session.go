package main

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/segview/numguess/model"
	"github.com/segview/numguess/sim"
)

const (
	buttonStart = iota
	buttonIncrement
	buttonSubmit
)

func buttonIndex(b model.Button) int {
	switch b {
	case model.ButtonIncrement:
		return buttonIncrement
	case model.ButtonSubmit:
		return buttonSubmit
	default:
		return buttonStart
	}
}

// Session owns one controller instance, the raw button levels feeding it and
// the panel latching its multiplexed outputs. A goroutine started by run
// advances the simulation in wall time; handlers and websocket readers only
// touch the raw levels.
type Session struct {
	ID string

	mu         sync.Mutex
	ctrl       sim.Controller
	panel      sim.Panel
	pressed    [3]bool   // levels held by press/release events
	tapTicks   [3]uint32 // remaining ticks of an active tap
	resetTicks uint32

	created    time.Time
	lastActive time.Time

	subMu sync.Mutex
	subs  map[chan model.Frame]struct{}

	done      chan struct{}
	closeOnce sync.Once
}

func newSession(cfg sim.Config) *Session {
	now := time.Now()
	return &Session{
		ID:         uuid.NewString(),
		ctrl:       sim.New(cfg),
		panel:      sim.NewPanel(),
		created:    now,
		lastActive: now,
		subs:       make(map[chan model.Frame]struct{}),
		done:       make(chan struct{}),
	}
}

// tapLength is how long a tap holds the raw line: the debounce window plus
// the synchronizer latency, with a little slack.
func (s *Session) tapLength() uint32 {
	return s.ctrl.Timing().DebounceTicks + 6
}

// advance steps the simulation n ticks, feeding it the current raw levels
// and draining tap and reset counters. It returns the number of rounds won
// during the batch.
func (s *Session) advance(n int) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var won uint64
	for i := 0; i < n; i++ {
		in := sim.Inputs{
			Reset:     s.resetTicks > 0,
			Start:     s.pressed[buttonStart] || s.tapTicks[buttonStart] > 0,
			Increment: s.pressed[buttonIncrement] || s.tapTicks[buttonIncrement] > 0,
			Submit:    s.pressed[buttonSubmit] || s.tapTicks[buttonSubmit] > 0,
		}
		if s.resetTicks > 0 {
			s.resetTicks--
		}
		for b := range s.tapTicks {
			if s.tapTicks[b] > 0 {
				s.tapTicks[b]--
			}
		}

		before := s.ctrl.Game.State
		next, out := s.ctrl.Step(in)
		s.ctrl = next
		s.panel.Observe(out)
		if before != sim.StateWinAnim && next.Game.State == sim.StateWinAnim {
			won++
		}
	}
	return won
}

// apply injects a button event from a client.
func (s *Session) apply(ev model.ButtonEvent) {
	idx := buttonIndex(ev.Button)
	s.mu.Lock()
	switch ev.Action {
	case model.ActionPress:
		s.pressed[idx] = true
	case model.ActionRelease:
		s.pressed[idx] = false
	default: // tap
		s.tapTicks[idx] = s.tapLength()
	}
	s.lastActive = time.Now()
	s.mu.Unlock()
}

// reset asserts the reset input for one tick.
func (s *Session) reset() {
	s.mu.Lock()
	s.resetTicks = 1
	s.lastActive = time.Now()
	s.mu.Unlock()
}

// frame snapshots the latched display plus the headline game values.
func (s *Session) frame() model.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.Frame{
		Glyphs:   s.panel.Glyphs,
		State:    s.ctrl.Game.State.String(),
		Guess:    s.ctrl.Game.Guess,
		Attempts: s.ctrl.Game.Attempts,
		Result:   s.ctrl.Game.Result.String(),
	}
}

// snapshot builds the REST view of the session. The target is only revealed
// once the round has been won.
func (s *Session) snapshot() model.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := model.SessionState{
		ID:           s.ID,
		State:        s.ctrl.Game.State.String(),
		Guess:        s.ctrl.Game.Guess,
		Attempts:     s.ctrl.Game.Attempts,
		Result:       s.ctrl.Game.Result.String(),
		CreatedAt:    s.created.UTC().Format(time.RFC3339),
		LastActivity: s.lastActive.UTC().Format(time.RFC3339),
	}
	switch s.ctrl.Game.State {
	case sim.StateWinAnim, sim.StateWinStats:
		st.Target = s.ctrl.Game.Target
	}
	return st
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// subscribe registers a frame channel; frames are dropped, not queued, when
// the subscriber falls behind.
func (s *Session) subscribe() chan model.Frame {
	ch := make(chan model.Frame, 4)
	s.subMu.Lock()
	s.subs[ch] = struct{}{}
	s.subMu.Unlock()
	return ch
}

func (s *Session) unsubscribe(ch chan model.Frame) {
	s.subMu.Lock()
	delete(s.subs, ch)
	s.subMu.Unlock()
}

func (s *Session) broadcast(f model.Frame) {
	s.subMu.Lock()
	for ch := range s.subs {
		select {
		case ch <- f:
		default:
		}
	}
	s.subMu.Unlock()
}

// close stops the session's tick loop.
func (s *Session) close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// run drives the simulation in wall time: a coarse ticker advances the
// controller by however many ticks have elapsed, and a second ticker
// broadcasts latched frames to websocket subscribers.
func (s *Session) run(tickHz, frameRate int, m *metrics, logger *slog.Logger) {
	simTicker := time.NewTicker(10 * time.Millisecond)
	frameTicker := time.NewTicker(time.Second / time.Duration(frameRate))
	defer simTicker.Stop()
	defer frameTicker.Stop()

	last := time.Now()
	var carry float64
	for {
		select {
		case <-s.done:
			logger.Debug("session stopped", "session_id", s.ID)
			return
		case now := <-simTicker.C:
			carry += now.Sub(last).Seconds() * float64(tickHz)
			last = now
			n := int(carry)
			if n <= 0 {
				continue
			}
			carry -= float64(n)
			won := s.advance(n)
			m.ticks.Add(float64(n))
			if won > 0 {
				m.gamesWon.Add(float64(won))
				logger.Info("round won", "session_id", s.ID)
			}
		case <-frameTicker.C:
			s.broadcast(s.frame())
		}
	}
}

// registry tracks live sessions and reaps the ones nobody has touched for a
// while.
type registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func newRegistry() *registry {
	return &registry{sessions: make(map[string]*Session)}
}

func (r *registry) add(s *Session) {
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
}

func (r *registry) get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *registry) remove(id string) {
	r.mu.Lock()
	if s, ok := r.sessions[id]; ok {
		s.close()
		delete(r.sessions, id)
	}
	r.mu.Unlock()
}

func (r *registry) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// reap closes and drops sessions idle for longer than ttl. It returns how
// many were removed.
func (r *registry) reap(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, s := range r.sessions {
		if s.idleSince().Before(cutoff) {
			s.close()
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// reapLoop runs reap periodically until stop is closed.
func (r *registry) reapLoop(ttl time.Duration, m *metrics, logger *slog.Logger, stop <-chan struct{}) {
	ticker := time.NewTicker(ttl / 4)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if n := r.reap(ttl); n > 0 {
				m.sessionsActive.Sub(float64(n))
				logger.Info("reaped idle sessions", "count", n)
			}
		}
	}
}
