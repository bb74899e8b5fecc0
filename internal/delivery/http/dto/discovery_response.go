package dto

import (
	"time"

	"cofounder-match/internal/domain/discovery"
	"cofounder-match/internal/domain/profile"

	"github.com/google/uuid"
)

type ProfileResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	Age          *int      `json:"age,omitempty"`
	City         string    `json:"city,omitempty"`
	School       string    `json:"school,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	Role         string    `json:"role"`
	Availability string    `json:"availability"`
	Ambition     string    `json:"ambition"`
}

type ScoreResponse struct {
	Overall              int `json:"overall"`
	SkillComplementarity int `json:"skill_complementarity"`
	Availability         int `json:"availability"`
	Ambition             int `json:"ambition"`
}

type MatchedSkillResponse struct {
	SkillID   uuid.UUID `json:"skill_id"`
	SkillName string    `json:"skill_name"`
	Priority  string    `json:"priority"`
	Level     string    `json:"level"`
}

type DiscoveryEntryResponse struct {
	Profile       ProfileResponse        `json:"profile"`
	Score         ScoreResponse          `json:"score"`
	MatchLevel    string                 `json:"match_level"`
	Reasons       []string               `json:"reasons"`
	MatchedSkills []MatchedSkillResponse `json:"matched_skills"`
}

type DiscoveryQueueResponse struct {
	Items []DiscoveryEntryResponse `json:"items"`
	Total int                      `json:"total"`
}

type CurrentCandidateResponse struct {
	State     string                  `json:"state"`
	Candidate *DiscoveryEntryResponse `json:"candidate"`
	Remaining int                     `json:"remaining"`
}

func NewProfileResponse(p profile.Profile) ProfileResponse {
	return ProfileResponse{
		UserID:       p.UserID,
		Name:         p.Name,
		Age:          p.Age,
		City:         p.City,
		School:       p.School,
		Bio:          p.Bio,
		AvatarURL:    p.AvatarURL,
		Role:         string(p.Role),
		Availability: string(p.Availability),
		Ambition:     string(p.Ambition),
	}
}

func NewDiscoveryEntryResponse(e discovery.Entry) DiscoveryEntryResponse {
	out := DiscoveryEntryResponse{
		Profile: NewProfileResponse(e.Profile),
		Score: ScoreResponse{
			Overall:              e.Result.Score.Overall,
			SkillComplementarity: e.Result.Score.SkillComplementarity,
			Availability:         e.Result.Score.Availability,
			Ambition:             e.Result.Score.Ambition,
		},
		MatchLevel:    string(e.Result.Level),
		Reasons:       append([]string{}, e.Result.Reasons...),
		MatchedSkills: make([]MatchedSkillResponse, 0, len(e.Result.MatchedSkills)),
	}
	for _, ms := range e.Result.MatchedSkills {
		out.MatchedSkills = append(out.MatchedSkills, MatchedSkillResponse{
			SkillID:   ms.SkillID,
			SkillName: ms.SkillName,
			Priority:  string(ms.Priority),
			Level:     string(ms.Level),
		})
	}
	return out
}

func NewDiscoveryQueueResponse(entries []discovery.Entry) DiscoveryQueueResponse {
	out := DiscoveryQueueResponse{Items: make([]DiscoveryEntryResponse, 0, len(entries)), Total: len(entries)}
	for _, e := range entries {
		out.Items = append(out.Items, NewDiscoveryEntryResponse(e))
	}
	return out
}

type MatchResponse struct {
	MatchID   uuid.UUID       `json:"match_id"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	Route     string          `json:"route"`
	Other     ProfileResponse `json:"other"`
}
