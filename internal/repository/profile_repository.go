package repository

import (
	"context"
	"errors"

	"cofounder-match/internal/database"
	"cofounder-match/internal/domain/profile"
	"cofounder-match/internal/domain/skill"

	"github.com/google/uuid"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileFilter struct {
	ExcludeUserIDs []uuid.UUID
	Roles          []profile.Role
}

// ProfileRepository is the read-only profile directory used by discovery.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (profile.Profile, error)
	ListActiveProfiles(ctx context.Context, f ProfileFilter) ([]profile.Profile, error)
	ListUserSkills(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]skill.UserSkill, error)
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

const profileColumns = `user_id, name, age, city, school, bio, avatar_url, role, availability, ambition, is_active, created_at, updated_at`

func scanProfile(row database.Row) (profile.Profile, error) {
	var p profile.Profile
	var role, availability, ambition string
	err := row.Scan(
		&p.UserID,
		&p.Name,
		&p.Age,
		&p.City,
		&p.School,
		&p.Bio,
		&p.AvatarURL,
		&role,
		&availability,
		&ambition,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return profile.Profile{}, err
	}
	p.Role = profile.Role(role)
	p.Availability = profile.Availability(availability)
	p.Ambition = profile.Ambition(ambition)
	return p, nil
}

func (r *PostgresProfileRepository) GetProfile(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	p, err := scanProfile(r.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`,
		userID,
	))
	if err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return profile.Profile{}, ErrProfileNotFound
		}
		return profile.Profile{}, err
	}
	return p, nil
}

func (r *PostgresProfileRepository) ListActiveProfiles(ctx context.Context, f ProfileFilter) ([]profile.Profile, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+profileColumns+`
		 FROM profiles
		 WHERE is_active
		   AND NOT (user_id = ANY($1::uuid[]))
		   AND (cardinality($2::text[]) = 0 OR role = ANY($2::text[]))
		 ORDER BY user_id ASC`,
		uuidStrings(f.ExcludeUserIDs),
		roleStrings(f.Roles),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profile.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListUserSkills loads the declared skills of every given user in one query,
// ordered by skill name then id.
func (r *PostgresProfileRepository) ListUserSkills(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]skill.UserSkill, error) {
	out := make(map[uuid.UUID][]skill.UserSkill, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT us.user_id, s.id, s.slug, s.name, s.category, s.created_at,
		        us.kind, COALESCE(us.level, ''), COALESCE(us.priority, '')
		 FROM user_skills us
		 JOIN skills s ON s.id = us.skill_id
		 WHERE us.user_id = ANY($1::uuid[])
		 ORDER BY us.user_id ASC, s.name ASC, s.id ASC`,
		uuidStrings(userIDs),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var us skill.UserSkill
		var category, kind, level, priority string
		if err := rows.Scan(
			&us.UserID,
			&us.Skill.ID,
			&us.Skill.Slug,
			&us.Skill.Name,
			&category,
			&us.Skill.CreatedAt,
			&kind,
			&level,
			&priority,
		); err != nil {
			return nil, err
		}
		us.Skill.Category = skill.Category(category)
		switch kind {
		case skill.KindOwned:
			us.Qualifier = skill.Owned{Level: skill.Level(level)}
		case skill.KindWanted:
			us.Qualifier = skill.Wanted{Priority: skill.Priority(priority)}
		default:
			continue
		}
		out[us.UserID] = append(out[us.UserID], us)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func roleStrings(roles []profile.Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, string(r))
	}
	return out
}
