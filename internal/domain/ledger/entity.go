package ledger

import (
	"bytes"
	"time"

	"github.com/google/uuid"
)

type Decision string

const (
	DecisionPass      Decision = "pass"
	DecisionLike      Decision = "like"
	DecisionSuperlike Decision = "superlike"
)

func ParseDecision(s string) (Decision, bool) {
	switch Decision(s) {
	case DecisionPass, DecisionLike, DecisionSuperlike:
		return Decision(s), true
	default:
		return "", false
	}
}

// Persists reports whether the decision leaves a like edge behind.
func (d Decision) Persists() bool {
	return d == DecisionLike || d == DecisionSuperlike
}

type MatchStatus string

const (
	MatchStatusActive    MatchStatus = "active"
	MatchStatusUnmatched MatchStatus = "unmatched"
)

const MessageKindBootstrap = "bootstrap"

type Like struct {
	ID        uuid.UUID
	LikerID   uuid.UUID
	LikedID   uuid.UUID
	Kind      Decision
	CreatedAt time.Time
}

// Match is stored once per unordered pair with UserAID < UserBID.
type Match struct {
	ID        uuid.UUID
	UserAID   uuid.UUID
	UserBID   uuid.UUID
	Status    MatchStatus
	CreatedAt time.Time
}

// Other returns the participant that is not userID.
func (m Match) Other(userID uuid.UUID) uuid.UUID {
	if m.UserAID == userID {
		return m.UserBID
	}
	return m.UserAID
}

type Message struct {
	ID        uuid.UUID
	MatchID   uuid.UUID
	SenderID  uuid.UUID
	Kind      string
	Content   string
	CreatedAt time.Time
}

// CanonicalPair orders two user ids so that the same unordered pair always
// yields the same (a, b).
func CanonicalPair(x, y uuid.UUID) (uuid.UUID, uuid.UUID) {
	if bytes.Compare(x[:], y[:]) <= 0 {
		return x, y
	}
	return y, x
}

// PairKey is the order-independent identifier of an unordered pair.
func PairKey(x, y uuid.UUID) string {
	a, b := CanonicalPair(x, y)
	return a.String() + ":" + b.String()
}
