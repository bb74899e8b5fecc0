package dto

import (
	"time"

	"github.com/google/uuid"
)

type DecisionRequest struct {
	CandidateID string `json:"candidate_id"`
	Decision    string `json:"decision"`
}

type ConversationResponse struct {
	MatchID      uuid.UUID    `json:"match_id"`
	SenderID     uuid.UUID    `json:"sender_id"`
	Participants [2]uuid.UUID `json:"participants"`
	Content      string       `json:"content"`
	Route        string       `json:"route"`
	CreatedAt    time.Time    `json:"created_at"`
}

type DecisionResponse struct {
	Decision             string                `json:"decision"`
	IsMatch              bool                  `json:"is_match"`
	MatchID              *uuid.UUID            `json:"match_id"`
	Duplicate            bool                  `json:"duplicate"`
	CandidateUnavailable bool                  `json:"candidate_unavailable"`
	Conversation         *ConversationResponse `json:"conversation"`
}
