package conversation

import (
	"time"

	"cofounder-match/internal/domain/ledger"

	"github.com/google/uuid"
)

const BootstrapContent = "It's a match! 🎉 Start the conversation."

// Seed is everything needed to open the shared conversation of a new match.
type Seed struct {
	MatchID      uuid.UUID
	SenderID     uuid.UUID
	Participants [2]uuid.UUID
	Content      string
	Route        string
	CreatedAt    time.Time
}

// Bootstrap is pure: the same match and actor always yield the same seed.
func Bootstrap(m ledger.Match, actorID uuid.UUID) Seed {
	a, b := ledger.CanonicalPair(m.UserAID, m.UserBID)
	return Seed{
		MatchID:      m.ID,
		SenderID:     actorID,
		Participants: [2]uuid.UUID{a, b},
		Content:      BootstrapContent,
		Route:        Route(m.ID),
		CreatedAt:    m.CreatedAt,
	}
}

func Route(matchID uuid.UUID) string {
	return "/messages/" + matchID.String()
}

// Message converts the seed into the bootstrap message row. The id is derived
// from the match id so a replayed seed targets the same row.
func (s Seed) Message() ledger.Message {
	return ledger.Message{
		ID:        uuid.NewSHA1(s.MatchID, []byte(ledger.MessageKindBootstrap)),
		MatchID:   s.MatchID,
		SenderID:  s.SenderID,
		Kind:      ledger.MessageKindBootstrap,
		Content:   s.Content,
		CreatedAt: s.CreatedAt,
	}
}
