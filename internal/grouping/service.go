package grouping

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/club-pairing/internal/pairing"
)

// unknownType keeps caller-supplied strings out of metric labels.
const unknownType = "unknown"

// Service runs auto-pairing for a game day end to end.
type Service struct {
	store     Store
	publisher Publisher
	metrics   Metrics
	locks     *gameLocks
	newRand   func() *rand.Rand
}

// Option configures a Service.
type Option func(*Service)

// WithRandSource sets the factory for the per-run shuffling source.
func WithRandSource(newRand func() *rand.Rand) Option {
	return func(s *Service) { s.newRand = newRand }
}

// WithPublisher sets the publisher notified after each committed run.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// New creates a new grouping Service.
func New(store Store, metrics Metrics, opts ...Option) *Service {
	s := &Service{
		store:   store,
		metrics: metrics,
		locks:   newGameLocks(),
		newRand: func() *rand.Rand { return rand.New(rand.NewSource(time.Now().UnixNano())) },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run groups the interested players of req.GameID with the requested
// strategy and replaces any previous grouping for that game. On any error
// nothing is persisted and the previous grouping stays authoritative.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	if req.GameID <= 0 {
		s.metrics.IncPairingRuns(unknownType, OutcomeRejected)
		return nil, fmt.Errorf("%w: got %d", ErrInvalidGameID, req.GameID)
	}
	pairingType, err := pairing.ParseType(req.PairingType)
	if err != nil {
		s.metrics.IncPairingRuns(unknownType, OutcomeRejected)
		return nil, err
	}
	strategy, err := pairing.StrategyFor(pairingType)
	if err != nil {
		s.metrics.IncPairingRuns(unknownType, OutcomeRejected)
		return nil, err
	}

	unlock := s.locks.lock(req.GameID)
	defer unlock()

	start := time.Now()
	result, outcome, err := s.run(ctx, req.GameID, pairingType, strategy)
	s.metrics.IncPairingRuns(string(pairingType), outcome)
	s.metrics.ObservePairingDuration(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	s.metrics.AddGroupsCreated(len(result.Groups))

	if s.publisher != nil {
		event := Event{RunID: result.RunID, GameID: result.GameID, PairingType: string(result.PairingType), Groups: result.Groups}
		if err := s.publisher.PublishGroupingReplaced(ctx, event); err != nil {
			log.Warn("Failed to publish grouping event", "error", err, "gameID", req.GameID, "runID", result.RunID)
		}
	}
	return result, nil
}

func (s *Service) run(ctx context.Context, gameID int64, pairingType pairing.Type, strategy pairing.Strategy) (*Result, string, error) {
	runID := uuid.New().String()
	logger := log.With("gameID", gameID, "pairingType", pairingType, "runID", runID)

	players, err := s.store.LoadInterestedPlayers(ctx, gameID)
	if err != nil {
		logger.Error("Failed to load interested players", "error", err)
		return nil, OutcomeStorage, fmt.Errorf("%w: failed to load interested players: %w", ErrStorage, err)
	}
	logger.Info("Loaded interested players", "count", len(players))

	pool, err := pairing.NewPool(players, s.newRand())
	if err != nil {
		return nil, OutcomeRejected, err
	}

	gs, err := strategy.Run(pool)
	if err != nil {
		logger.Error("Pairing strategy broke an invariant", "error", err)
		return nil, OutcomeInvariant, err
	}

	repair(gs)

	if err := gs.Validate(); err != nil {
		logger.Warn("Grouping violates size constraints after repair", "error", err, "sizes", gs.Sizes())
		return nil, OutcomeUngroupable, fmt.Errorf("%w: %w", pairing.ErrUngroupableConstraints, err)
	}
	if err := gs.CheckCoverage(pool.Players()); err != nil {
		logger.Error("Grouping lost or duplicated players", "error", err)
		return nil, OutcomeInvariant, err
	}

	groups := gs.Finalize()
	if err := s.store.ReplaceGrouping(ctx, gameID, runID, groups); err != nil {
		logger.Error("Failed to persist grouping, previous grouping left intact", "error", err)
		return nil, OutcomeStorage, fmt.Errorf("%w: failed to replace grouping: %w", ErrStorage, err)
	}

	logger.Info("Grouping replaced", "groups", len(groups), "players", len(players))
	return &Result{RunID: runID, GameID: gameID, PairingType: pairingType, Groups: groups}, OutcomeSuccess, nil
}

// repair is the post-processing applied after every strategy: merges can
// leave spill-over singletons, so merging runs again after spilling.
func repair(gs *pairing.GroupSet) {
	gs.MergeUndersized()
	gs.RemoveEmptyGroups()
	gs.SpillOverfull()
	gs.MergeUndersized()
	gs.RemoveEmptyGroups()
}

// IsInputError reports whether err was caused by the caller's request rather
// than by the system.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidGameID) ||
		errors.Is(err, pairing.ErrInvalidPairingType) ||
		errors.Is(err, pairing.ErrInsufficientPlayers)
}
