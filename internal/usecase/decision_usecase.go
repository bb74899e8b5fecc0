package usecase

import (
	"context"
	"errors"

	"cofounder-match/internal/domain/conversation"
	"cofounder-match/internal/domain/ledger"
	"cofounder-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Decision outcomes reported to DecisionMetrics.
const (
	OutcomePassed      = "passed"
	OutcomeRecorded    = "recorded"
	OutcomeMatched     = "matched"
	OutcomeDuplicate   = "duplicate"
	OutcomeUnavailable = "unavailable"
	OutcomeFailed      = "failed"
)

type MatchNotifier interface {
	NotifyMatch(ctx context.Context, m ledger.Match, seed conversation.Seed)
}

type DecisionMetrics interface {
	ObserveDecision(decision ledger.Decision, outcome string)
	MatchCreated()
	MatchRaceRecovered()
}

// QueueAdvancer moves a user's discovery cursor past a decided candidate.
type QueueAdvancer interface {
	Advance(ctx context.Context, userID uuid.UUID, candidateID uuid.UUID) error
}

type DecisionResult struct {
	Decision             ledger.Decision
	IsMatch              bool
	MatchID              *uuid.UUID
	Duplicate            bool
	CandidateUnavailable bool
	Conversation         *conversation.Seed
}

type DecisionUsecase interface {
	Decide(ctx context.Context, userID uuid.UUID, candidateID uuid.UUID, decision string) (DecisionResult, error)
}

type Decision struct {
	likes    repository.LedgerRepository
	queue    QueueAdvancer
	notifier MatchNotifier
	metrics  DecisionMetrics
	log      *zap.Logger
}

func NewDecisionUsecase(
	likes repository.LedgerRepository,
	queue QueueAdvancer,
	notifier MatchNotifier,
	metrics DecisionMetrics,
	log *zap.Logger,
) *Decision {
	if log == nil {
		log = zap.NewNop()
	}
	return &Decision{
		likes:    likes,
		queue:    queue,
		notifier: notifier,
		metrics:  metrics,
		log:      log.Named("decision"),
	}
}

func (u *Decision) Decide(ctx context.Context, userID uuid.UUID, candidateID uuid.UUID, decision string) (DecisionResult, error) {
	if userID == uuid.Nil {
		return DecisionResult{}, ErrUnauthorized
	}
	d, ok := ledger.ParseDecision(decision)
	if !ok || candidateID == uuid.Nil || candidateID == userID {
		return DecisionResult{}, ErrInvalidInput
	}

	fields := []zap.Field{
		zap.String("user_id", userID.String()),
		zap.String("candidate_id", candidateID.String()),
		zap.String("decision", string(d)),
	}

	if !d.Persists() {
		u.observe(d, OutcomePassed)
		u.advance(ctx, userID, candidateID)
		return DecisionResult{Decision: d}, nil
	}

	var seed conversation.Seed
	out, err := u.likes.RecordLike(ctx, repository.LikeInput{
		LikerID: userID,
		LikedID: candidateID,
		Kind:    d,
		Seed: func(m ledger.Match) ledger.Message {
			seed = conversation.Bootstrap(m, userID)
			return seed.Message()
		},
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCandidateUnavailable):
			u.observe(d, OutcomeUnavailable)
			u.log.Info("candidate unavailable, treated as pass", fields...)
			u.advance(ctx, userID, candidateID)
			return DecisionResult{Decision: d, CandidateUnavailable: true}, nil
		case errors.Is(err, repository.ErrProfileNotFound):
			u.observe(d, OutcomeFailed)
			return DecisionResult{}, ErrProfileNotFound
		default:
			u.observe(d, OutcomeFailed)
			u.log.Error("record like failed", append(fields, zap.Error(err))...)
			return DecisionResult{}, ErrStorageUnavailable
		}
	}

	res := DecisionResult{Decision: d, Duplicate: out.Duplicate}
	if out.Match != nil {
		id := out.Match.ID
		res.IsMatch = true
		res.MatchID = &id
	}
	if out.Created {
		s := seed
		res.Conversation = &s
	}

	switch {
	case out.Created:
		u.observe(d, OutcomeMatched)
		if u.metrics != nil {
			u.metrics.MatchCreated()
		}
		u.log.Info("match created", append(fields, zap.String("match_id", out.Match.ID.String()))...)
		if u.notifier != nil {
			u.notifier.NotifyMatch(ctx, *out.Match, seed)
		}
	case out.Duplicate:
		u.observe(d, OutcomeDuplicate)
	default:
		u.observe(d, OutcomeRecorded)
	}
	if out.RaceRecovered {
		if u.metrics != nil {
			u.metrics.MatchRaceRecovered()
		}
		u.log.Info("concurrent match creation recovered", append(fields, zap.String("match_id", out.Match.ID.String()))...)
	}

	u.advance(ctx, userID, candidateID)
	return res, nil
}

func (u *Decision) observe(d ledger.Decision, outcome string) {
	if u.metrics != nil {
		u.metrics.ObserveDecision(d, outcome)
	}
}

func (u *Decision) advance(ctx context.Context, userID, candidateID uuid.UUID) {
	if u.queue == nil {
		return
	}
	if err := u.queue.Advance(ctx, userID, candidateID); err != nil {
		u.log.Warn("queue advance failed",
			zap.String("user_id", userID.String()),
			zap.String("candidate_id", candidateID.String()),
			zap.Error(err),
		)
	}
}
