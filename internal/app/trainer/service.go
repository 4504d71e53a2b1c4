// Package trainer runs the drill loop: generate a scenario, score the
// submitted decision against it, persist the attempt, and roll up
// progress. It also owns the live heads-up sessions.
package trainer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gabe-silva/poker-analyzer/internal/archetype"
	"github.com/gabe-silva/poker-analyzer/internal/ev"
	"github.com/gabe-silva/poker-analyzer/internal/live"
	"github.com/gabe-silva/poker-analyzer/internal/scenario"
	"github.com/gabe-silva/poker-analyzer/internal/store"
)

// catalogueAdapter narrows the archetype library to what the generator
// needs.
type catalogueAdapter struct{}

func (catalogueAdapter) Label(key string) (string, bool) {
	a, ok := archetype.ByKey(key)
	if !ok {
		return "", false
	}
	return a.Label, true
}

type Service struct {
	store  *store.Store
	gen    *scenario.Generator
	live   *live.Registry
	trials int
}

func NewService(st *store.Store, defaultTrials int) *Service {
	return &Service{
		store:  st,
		gen:    scenario.NewGenerator(catalogueAdapter{}, store.NewID),
		live:   live.NewRegistry(store.NewID),
		trials: defaultTrials,
	}
}

// GenerateScenario builds and persists a fresh drill spot.
func (s *Service) GenerateScenario(ctx context.Context, cfg scenario.Config) (*scenario.Scenario, error) {
	scn, err := s.gen.Generate(cfg)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveScenario(ctx, scn.ID, scn.CreatedAt, scn); err != nil {
		return nil, err
	}
	return scn, nil
}

// GetScenario reloads a persisted scenario.
func (s *Service) GetScenario(ctx context.Context, id string) (*scenario.Scenario, error) {
	if id == "" {
		return nil, ErrInvalidRequest
	}
	row, err := s.store.GetScenario(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrScenarioNotFound
		}
		return nil, err
	}
	var scn scenario.Scenario
	if err := json.Unmarshal(row.Payload, &scn); err != nil {
		return nil, err
	}
	return &scn, nil
}

// Evaluate scores the decision against the stored scenario and records
// the attempt.
func (s *Service) Evaluate(ctx context.Context, req EvaluateRequest) (*EvaluateResponse, error) {
	scn, err := s.GetScenario(ctx, req.ScenarioID)
	if err != nil {
		return nil, err
	}
	trials := req.Trials
	if trials == 0 {
		trials = s.trials
	}
	result, err := ev.Evaluate(scn, req.Decision, trials)
	if err != nil {
		if errors.Is(err, ev.ErrDecisionNotInTable) {
			return nil, ErrDecisionNotInTable
		}
		return nil, err
	}

	attemptID := store.NewID()
	decisionJSON, err := json.Marshal(req.Decision)
	if err != nil {
		return nil, err
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	attempt := &store.Attempt{
		AttemptID:    attemptID,
		ScenarioID:   scn.ID,
		CreatedAt:    time.Now().UTC(),
		HeroPosition: scn.HeroPosition,
		Street:       string(scn.Street),
		NodeType:     string(scn.NodeType),
		EVLossBB:     result.EVLossBB,
		Verdict:      result.Verdict,
		FreeResponse: req.FreeResponseText,
		Decision:     decisionJSON,
		Result:       resultJSON,
	}
	if err := s.store.SaveAttempt(ctx, attempt); err != nil {
		return nil, err
	}
	return &EvaluateResponse{AttemptID: attemptID, Result: result}, nil
}

// GetAttempt reloads one recorded attempt with its full result.
func (s *Service) GetAttempt(ctx context.Context, id string) (*store.Attempt, error) {
	if id == "" {
		return nil, ErrInvalidRequest
	}
	a, err := s.store.GetAttempt(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, err
	}
	return a, nil
}

// Progress rolls stored attempts up by position, street, or node type.
func (s *Service) Progress(ctx context.Context, dimension string) (*ProgressResponse, error) {
	if dimension == "" {
		dimension = "street"
	}
	buckets, err := s.store.Progress(ctx, dimension)
	if err != nil {
		return nil, ErrInvalidRequest
	}
	return &ProgressResponse{Dimension: dimension, Buckets: buckets}, nil
}

// RecentAttempts lists the latest recorded attempts, newest first.
func (s *Service) RecentAttempts(ctx context.Context, limit int) (*AttemptsResponse, error) {
	attempts, err := s.store.RecentAttempts(ctx, limit)
	if err != nil {
		return nil, err
	}
	items := make([]AttemptItem, 0, len(attempts))
	for _, a := range attempts {
		items = append(items, AttemptItem{
			AttemptID:    a.AttemptID,
			ScenarioID:   a.ScenarioID,
			CreatedAt:    a.CreatedAt,
			HeroPosition: a.HeroPosition,
			Street:       a.Street,
			NodeType:     a.NodeType,
			EVLossBB:     a.EVLossBB,
			Verdict:      a.Verdict,
			FreeResponse: a.FreeResponse,
		})
	}
	return &AttemptsResponse{Items: items}, nil
}

// CreateLiveSession starts a heads-up match against the configured
// opponent model.
func (s *Service) CreateLiveSession(cfg live.MatchConfig) live.State {
	return s.live.Create(cfg)
}

// GetLiveSession snapshots a running match.
func (s *Service) GetLiveSession(id string) (live.State, error) {
	st, err := s.live.Get(id)
	if err != nil {
		return live.State{}, ErrSessionNotFound
	}
	return st, nil
}

// LiveAction applies the hero's action to the running hand.
func (s *Service) LiveAction(id, action string, sizeBB *float64, intent string) (live.State, error) {
	st, err := s.live.With(id, func(m *live.Match) error {
		return m.HeroAction(action, sizeBB, intent)
	})
	if err != nil {
		return live.State{}, s.mapLiveError(err)
	}
	return st, nil
}

// LiveNextHand deals the next hand once the current one is over.
func (s *Service) LiveNextHand(id string) (live.State, error) {
	st, err := s.live.With(id, func(m *live.Match) error {
		if m.Current != nil && !m.Current.HandOver {
			return live.ErrIllegalAction
		}
		m.StartNextHand()
		return nil
	})
	if err != nil {
		return live.State{}, s.mapLiveError(err)
	}
	return st, nil
}

func (s *Service) mapLiveError(err error) error {
	switch {
	case errors.Is(err, live.ErrUnknownSession):
		return ErrSessionNotFound
	case errors.Is(err, live.ErrIllegalAction),
		errors.Is(err, live.ErrHandOver),
		errors.Is(err, live.ErrSizeRequired):
		return ErrIllegalAction
	}
	return err
}
