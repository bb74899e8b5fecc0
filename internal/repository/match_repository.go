package repository

import (
	"context"

	"cofounder-match/internal/database"
	"cofounder-match/internal/domain/ledger"
	"cofounder-match/internal/domain/profile"

	"github.com/google/uuid"
)

type MatchWithProfile struct {
	Match ledger.Match
	Other profile.Profile
}

type MatchRepository interface {
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]MatchWithProfile, error)
}

type PostgresMatchRepository struct {
	db database.DB
}

func NewPostgresMatchRepository(db database.DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db}
}

// ListActiveByUser returns the user's active matches, newest first, joined
// with the profile of the other participant.
func (r *PostgresMatchRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]MatchWithProfile, error) {
	rows, err := r.db.Query(ctx,
		`SELECT m.id, m.user_a_id, m.user_b_id, m.status, m.created_at,
		        p.user_id, p.name, p.age, p.city, p.school, p.bio, p.avatar_url,
		        p.role, p.availability, p.ambition, p.is_active, p.created_at, p.updated_at
		 FROM matches m
		 JOIN profiles p ON p.user_id = CASE WHEN m.user_a_id = $1 THEN m.user_b_id ELSE m.user_a_id END
		 WHERE (m.user_a_id = $1 OR m.user_b_id = $1)
		   AND m.status = $2
		 ORDER BY m.created_at DESC, m.id ASC`,
		userID,
		string(ledger.MatchStatusActive),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]MatchWithProfile, 0)
	for rows.Next() {
		var it MatchWithProfile
		var status, role, availability, ambition string
		if err := rows.Scan(
			&it.Match.ID,
			&it.Match.UserAID,
			&it.Match.UserBID,
			&status,
			&it.Match.CreatedAt,
			&it.Other.UserID,
			&it.Other.Name,
			&it.Other.Age,
			&it.Other.City,
			&it.Other.School,
			&it.Other.Bio,
			&it.Other.AvatarURL,
			&role,
			&availability,
			&ambition,
			&it.Other.IsActive,
			&it.Other.CreatedAt,
			&it.Other.UpdatedAt,
		); err != nil {
			return nil, err
		}
		it.Match.Status = ledger.MatchStatus(status)
		it.Other.Role = profile.Role(role)
		it.Other.Availability = profile.Availability(availability)
		it.Other.Ambition = profile.Ambition(ambition)
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
