package usecase

import (
	"context"
	"errors"
	"time"

	"cofounder-match/internal/domain/skill"
	"cofounder-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SkillUsecase interface {
	ListSkills(ctx context.Context) ([]skill.Skill, error)
	ListSkillsByCategory(ctx context.Context, category string) ([]skill.Skill, error)
	GetSkill(ctx context.Context, id uuid.UUID) (skill.Skill, error)
}

type Skill struct {
	repo  repository.SkillRepository
	cache Cache
	ttl   time.Duration
	log   *zap.Logger
}

func NewSkillUsecase(repo repository.SkillRepository, cache Cache, ttl time.Duration, log *zap.Logger) *Skill {
	if log == nil {
		log = zap.NewNop()
	}
	return &Skill{repo: repo, cache: cacheOrNop(cache), ttl: ttl, log: log.Named("skills")}
}

func (u *Skill) ListSkills(ctx context.Context) ([]skill.Skill, error) {
	return cached(ctx, u, skillsAllKey, func() ([]skill.Skill, error) {
		return u.repo.GetAllSkills(ctx)
	})
}

func (u *Skill) ListSkillsByCategory(ctx context.Context, category string) ([]skill.Skill, error) {
	c := skill.Category(category)
	if !c.Valid() {
		return nil, ErrInvalidInput
	}
	return cached(ctx, u, SkillsCategoryKey(c), func() ([]skill.Skill, error) {
		return u.repo.ListSkillsByCategory(ctx, c)
	})
}

func (u *Skill) GetSkill(ctx context.Context, id uuid.UUID) (skill.Skill, error) {
	if id == uuid.Nil {
		return skill.Skill{}, ErrInvalidInput
	}
	return cached(ctx, u, SkillKey(id), func() (skill.Skill, error) {
		s, err := u.repo.GetSkill(ctx, id)
		if errors.Is(err, repository.ErrSkillNotFound) {
			return skill.Skill{}, ErrSkillNotFound
		}
		return s, err
	})
}

func cached[T any](ctx context.Context, u *Skill, key string, load func() (T, error)) (T, error) {
	var out T
	if ok, err := u.cache.GetJSON(ctx, key, &out); err == nil && ok {
		return out, nil
	} else if err != nil {
		u.log.Warn("skill cache read failed", zap.String("key", key), zap.Error(err))
	}

	v, err := load()
	if err != nil {
		var zero T
		if errors.Is(err, ErrSkillNotFound) {
			return zero, err
		}
		u.log.Error("skill catalog read failed", zap.String("key", key), zap.Error(err))
		return zero, ErrStorageUnavailable
	}
	if err := u.cache.SetJSON(ctx, key, v, u.ttl); err != nil {
		u.log.Warn("skill cache write failed", zap.String("key", key), zap.Error(err))
	}
	return v, nil
}
