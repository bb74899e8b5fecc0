package usecase

import (
	"context"
	"time"

	"cofounder-match/internal/domain/skill"

	"github.com/google/uuid"
)

// Cache stores derived views. Implementations may silently bypass storage, so
// a miss is never an error.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type nopCache struct{}

func (nopCache) GetJSON(context.Context, string, any) (bool, error)        { return false, nil }
func (nopCache) SetJSON(context.Context, string, any, time.Duration) error { return nil }
func (nopCache) Delete(context.Context, string) error                      { return nil }

func cacheOrNop(c Cache) Cache {
	if c == nil {
		return nopCache{}
	}
	return c
}

func DiscoveryQueueKey(userID uuid.UUID) string {
	return "discovery:queue:" + userID.String()
}

const skillsAllKey = "skills:all"

func SkillsCategoryKey(c skill.Category) string {
	return "skills:category:" + string(c)
}

func SkillKey(id uuid.UUID) string {
	return "skills:id:" + id.String()
}
