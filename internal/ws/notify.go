package ws

import (
	"context"
	"encoding/json"
	"time"

	"cofounder-match/internal/domain/conversation"
	"cofounder-match/internal/domain/ledger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const EventMatchCreated = "match_created"

type MatchCreatedEvent struct {
	Type        string    `json:"type"`
	MatchID     uuid.UUID `json:"match_id"`
	OtherUserID uuid.UUID `json:"other_user_id"`
	Route       string    `json:"route"`
	Message     string    `json:"message"`
	Timestamp   string    `json:"timestamp"`
}

// Notifier pushes match events to both participants through the hub.
type Notifier struct {
	hub *Hub
	log *zap.Logger
}

func NewNotifier(hub *Hub, log *zap.Logger) *Notifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Notifier{hub: hub, log: log.Named("ws")}
}

func (n *Notifier) NotifyMatch(_ context.Context, m ledger.Match, seed conversation.Seed) {
	if n == nil || n.hub == nil {
		return
	}
	ts := m.CreatedAt
	if ts.IsZero() {
		ts = time.Now()
	}

	for _, uid := range [2]uuid.UUID{m.UserAID, m.UserBID} {
		evt := MatchCreatedEvent{
			Type:        EventMatchCreated,
			MatchID:     m.ID,
			OtherUserID: m.Other(uid),
			Route:       seed.Route,
			Message:     seed.Content,
			Timestamp:   ts.UTC().Format(time.RFC3339),
		}
		b, err := json.Marshal(evt)
		if err != nil {
			n.log.Error("encode match event failed", zap.String("match_id", m.ID.String()), zap.Error(err))
			return
		}
		n.hub.SendTo(uid, b)
	}
}
