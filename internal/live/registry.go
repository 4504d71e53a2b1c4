package live

import (
	"errors"
	"sync"
)

var ErrUnknownSession = errors.New("unknown_session")

// State is a detached snapshot of a session, safe to serialize after
// the session lock is released.
type State struct {
	SessionID   string  `json:"session_id"`
	Seed        int64   `json:"seed"`
	HandsPlayed int     `json:"hands_played"`
	HeroNetBB   float64 `json:"hero_net_bb"`
	Opponent    Profile `json:"opponent"`
	Hand        Hand    `json:"hand"`
}

// State snapshots the match. Slices are copied so the caller can hold
// the result after the session lock is released.
func (m *Match) State() State {
	h := *m.Current
	h.Board = append([]string(nil), h.Board...)
	h.HeroHand = append([]string(nil), h.HeroHand...)
	h.LegalActions = append([]string(nil), h.LegalActions...)
	h.SizeOptionsBB = append([]float64(nil), h.SizeOptionsBB...)
	h.ActionHistory = append([]string(nil), h.ActionHistory...)
	h.VillainHand = append([]string(nil), h.VillainHand...)
	return State{
		SessionID:   m.SessionID,
		Seed:        m.Seed,
		HandsPlayed: m.HandsPlayed,
		HeroNetBB:   m.HeroNetBB,
		Opponent:    m.Opponent,
		Hand:        h,
	}
}

type session struct {
	mu    sync.Mutex
	match *Match
}

// Registry owns all live sessions. Each session has its own lock, so
// mutations against one session serialize while different sessions
// proceed independently.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*session
	newID    func() string
}

func NewRegistry(newID func() string) *Registry {
	return &Registry{
		sessions: map[string]*session{},
		newID:    newID,
	}
}

// Create starts a new match and returns its initial state.
func (r *Registry) Create(cfg MatchConfig) State {
	id := r.newID()
	m := NewMatch(id, cfg)
	r.mu.Lock()
	r.sessions[id] = &session{match: m}
	r.mu.Unlock()
	return m.State()
}

// With runs fn while holding the session's lock. The registry lock is
// released before fn runs, so slow sessions never block other keys.
func (r *Registry) With(id string, fn func(*Match) error) (State, error) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok {
		return State{}, ErrUnknownSession
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.match); err != nil {
		return State{}, err
	}
	return s.match.State(), nil
}

// Get returns the current state without mutating the session.
func (r *Registry) Get(id string) (State, error) {
	return r.With(id, func(*Match) error { return nil })
}
