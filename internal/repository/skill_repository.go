package repository

import (
	"context"
	"errors"

	"cofounder-match/internal/database"
	"cofounder-match/internal/domain/skill"

	"github.com/google/uuid"
)

var ErrSkillNotFound = errors.New("skill not found")

type SkillRepository interface {
	GetAllSkills(ctx context.Context) ([]skill.Skill, error)
	GetSkill(ctx context.Context, id uuid.UUID) (skill.Skill, error)
	ListSkillsByCategory(ctx context.Context, category skill.Category) ([]skill.Skill, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) GetAllSkills(ctx context.Context) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx, `SELECT id, slug, name, category, created_at FROM skills ORDER BY category ASC, name ASC`)
	if err != nil {
		return nil, err
	}
	return collectSkills(rows)
}

func (r *PostgresSkillRepository) ListSkillsByCategory(ctx context.Context, category skill.Category) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, slug, name, category, created_at FROM skills WHERE category = $1 ORDER BY name ASC`,
		string(category),
	)
	if err != nil {
		return nil, err
	}
	return collectSkills(rows)
}

func (r *PostgresSkillRepository) GetSkill(ctx context.Context, id uuid.UUID) (skill.Skill, error) {
	var s skill.Skill
	var category string
	err := r.db.QueryRow(ctx,
		`SELECT id, slug, name, category, created_at FROM skills WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.Slug, &s.Name, &category, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return skill.Skill{}, ErrSkillNotFound
		}
		return skill.Skill{}, err
	}
	s.Category = skill.Category(category)
	return s, nil
}

func collectSkills(rows database.Rows) ([]skill.Skill, error) {
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		var category string
		if err := rows.Scan(&s.ID, &s.Slug, &s.Name, &category, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Category = skill.Category(category)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
