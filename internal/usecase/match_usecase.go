package usecase

import (
	"context"
	"time"

	"cofounder-match/internal/domain/conversation"
	"cofounder-match/internal/domain/ledger"
	"cofounder-match/internal/domain/profile"
	"cofounder-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MatchItem struct {
	MatchID   uuid.UUID
	Status    ledger.MatchStatus
	CreatedAt time.Time
	Other     profile.Profile
	Route     string
}

type MatchUsecase interface {
	ListMatches(ctx context.Context, userID uuid.UUID) ([]MatchItem, error)
}

type Matches struct {
	repo repository.MatchRepository
	log  *zap.Logger
}

func NewMatchUsecase(repo repository.MatchRepository, log *zap.Logger) *Matches {
	if log == nil {
		log = zap.NewNop()
	}
	return &Matches{repo: repo, log: log.Named("matches")}
}

// ListMatches returns the user's active matches, newest first.
func (u *Matches) ListMatches(ctx context.Context, userID uuid.UUID) ([]MatchItem, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	rows, err := u.repo.ListActiveByUser(ctx, userID)
	if err != nil {
		u.log.Error("list matches failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, ErrStorageUnavailable
	}

	out := make([]MatchItem, 0, len(rows))
	for _, r := range rows {
		if r.Match.Status != ledger.MatchStatusActive {
			continue
		}
		out = append(out, MatchItem{
			MatchID:   r.Match.ID,
			Status:    r.Match.Status,
			CreatedAt: r.Match.CreatedAt,
			Other:     r.Other,
			Route:     conversation.Route(r.Match.ID),
		})
	}
	return out, nil
}
