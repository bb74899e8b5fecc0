package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"cofounder-match/internal/domain/discovery"
	"cofounder-match/internal/domain/ledger"
	"cofounder-match/internal/domain/matching"
	"cofounder-match/internal/domain/profile"
	"cofounder-match/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sizeRecorder struct {
	sizes []int
}

func (r *sizeRecorder) ObserveQueueSize(n int) { r.sizes = append(r.sizes, n) }

type discoveryFixture struct {
	store  *memStore
	cache  *memCache
	uc     *Discovery
	seeker profile.Profile
	strong profile.Profile
	weak   profile.Profile
}

func newDiscoveryFixture(t *testing.T, cache Cache) discoveryFixture {
	t.Helper()
	store := newMemStore()

	seeker := activeProfile("Seeker", profile.RoleTechnical)
	store.addProfile(seeker, wantedSkill("Sales", skill.PriorityMustHave), ownedSkill("Backend", skill.LevelExpert))

	strong := activeProfile("Strong", profile.RoleBusiness)
	store.addProfile(strong, ownedSkill("Sales", skill.LevelExpert))

	weak := activeProfile("Weak", profile.RoleProduct)
	weak.Ambition = profile.AmbitionLifestyle
	store.addProfile(weak)

	sameRole := activeProfile("Peer", profile.RoleTechnical)
	store.addProfile(sameRole, ownedSkill("Sales", skill.LevelExpert))

	inactive := activeProfile("Inactive", profile.RoleBusiness)
	inactive.IsActive = false
	store.addProfile(inactive, ownedSkill("Sales", skill.LevelExpert))

	liked := activeProfile("Liked", profile.RoleBusiness)
	store.addProfile(liked, ownedSkill("Sales", skill.LevelExpert))
	store.likes[likeKey{liker: seeker.UserID, liked: liked.UserID}] = "like"

	mc, _ := cache.(*memCache)
	return discoveryFixture{
		store:  store,
		cache:  mc,
		uc:     NewDiscoveryUsecase(store, store, cache, nil, DiscoveryConfig{Limits: matching.DefaultLimits(), QueueTTL: time.Minute}, nil),
		seeker: seeker,
		strong: strong,
		weak:   weak,
	}
}

func entryIDs(entries []discovery.Entry) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Profile.UserID)
	}
	return out
}

func TestDiscovery_QueueFiltersAndRanks(t *testing.T) {
	f := newDiscoveryFixture(t, newMemCache())

	entries, err := f.uc.Queue(context.Background(), f.seeker.UserID)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{f.strong.UserID, f.weak.UserID}, entryIDs(entries))

	top := entries[0].Result
	assert.Equal(t, 100, top.Score.SkillComplementarity)
	assert.GreaterOrEqual(t, top.Score.Overall, entries[1].Result.Score.Overall)
	assert.Equal(t, matching.LevelExcellent, top.Level)
	require.Len(t, top.MatchedSkills, 1)
	assert.Equal(t, "Sales", top.MatchedSkills[0].SkillName)
	assert.Equal(t, skill.LevelExpert, top.MatchedSkills[0].Level)
}

func TestDiscovery_CurrentAdvanceUntilEmpty(t *testing.T) {
	f := newDiscoveryFixture(t, newMemCache())
	ctx := context.Background()
	uid := f.seeker.UserID

	cur, err := f.uc.Current(ctx, uid)
	require.NoError(t, err)
	require.Equal(t, discovery.StateActive, cur.State)
	assert.Equal(t, f.strong.UserID, cur.Entry.Profile.UserID)
	assert.Equal(t, 2, cur.Remaining)

	require.NoError(t, f.uc.Advance(ctx, uid, f.strong.UserID))
	cur, err = f.uc.Current(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, f.weak.UserID, cur.Entry.Profile.UserID)

	require.NoError(t, f.uc.Advance(ctx, uid, f.weak.UserID))
	cur, err = f.uc.Current(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, discovery.StateEmpty, cur.State)
	assert.Nil(t, cur.Entry)

	require.NoError(t, f.uc.Advance(ctx, uid, f.weak.UserID))
	cur, err = f.uc.Current(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, discovery.StateEmpty, cur.State)

	entries, err := f.uc.Reset(ctx, uid)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	cur, err = f.uc.Current(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, discovery.StateActive, cur.State)
}

func TestDiscovery_AdvanceOnLaterCandidateKeepsCurrent(t *testing.T) {
	f := newDiscoveryFixture(t, newMemCache())
	ctx := context.Background()
	uid := f.seeker.UserID

	_, err := f.uc.Current(ctx, uid)
	require.NoError(t, err)
	require.NoError(t, f.uc.Advance(ctx, uid, f.weak.UserID))
	require.NoError(t, f.uc.Advance(ctx, uid, uuid.New()))

	cur, err := f.uc.Current(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, f.strong.UserID, cur.Entry.Profile.UserID)
	assert.Equal(t, 1, cur.Remaining)
}

func TestDiscovery_LikingLaterCandidateRemovesThem(t *testing.T) {
	f := newDiscoveryFixture(t, newMemCache())
	ctx := context.Background()
	uid := f.seeker.UserID
	decisions := NewDecisionUsecase(f.store, f.uc, nil, nil, nil)

	entries, err := f.uc.Queue(ctx, uid)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{f.strong.UserID, f.weak.UserID}, entryIDs(entries))

	_, err = decisions.Decide(ctx, uid, f.weak.UserID, "like")
	require.NoError(t, err)

	entries, err = f.uc.Queue(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{f.strong.UserID}, entryIDs(entries))
}

func TestDiscovery_LikedCandidateNeverResurfaces(t *testing.T) {
	f := newDiscoveryFixture(t, newMemCache())
	ctx := context.Background()
	uid := f.seeker.UserID

	_, err := f.uc.Queue(ctx, uid)
	require.NoError(t, err)

	// Like recorded through another session after the snapshot was taken.
	f.store.likes[likeKey{liker: uid, liked: f.strong.UserID}] = "like"

	cur, err := f.uc.Current(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, f.weak.UserID, cur.Entry.Profile.UserID)

	entries, err := f.uc.Reset(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{f.weak.UserID}, entryIDs(entries))
}

func TestDiscovery_LikeFromElsewhereDropsLaterEntry(t *testing.T) {
	f := newDiscoveryFixture(t, newMemCache())
	ctx := context.Background()
	uid := f.seeker.UserID

	_, err := f.uc.Queue(ctx, uid)
	require.NoError(t, err)

	f.store.likes[likeKey{liker: uid, liked: f.weak.UserID}] = "like"

	entries, err := f.uc.Queue(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{f.strong.UserID}, entryIDs(entries))

	// The trimmed window is what later reads see.
	f.store.likes = map[likeKey]ledger.Decision{}
	entries, err = f.uc.Queue(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{f.strong.UserID}, entryIDs(entries))
}

func drain(t *testing.T, uc *Discovery, uid uuid.UUID) []uuid.UUID {
	t.Helper()
	ctx := context.Background()
	var seen []uuid.UUID
	for i := 0; i < 10; i++ {
		cur, err := uc.Current(ctx, uid)
		require.NoError(t, err)
		if cur.State == discovery.StateEmpty {
			return seen
		}
		seen = append(seen, cur.Entry.Profile.UserID)
		require.NoError(t, uc.Advance(ctx, uid, cur.Entry.Profile.UserID))
	}
	t.Fatalf("queue never emptied, saw %v", seen)
	return nil
}

func TestDiscovery_CandidateLimitPagesForward(t *testing.T) {
	store := newMemStore()
	seeker := activeProfile("Seeker", profile.RoleTechnical)
	store.addProfile(seeker)

	low := activeProfile("Low", profile.RoleBusiness)
	low.UserID = uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	store.addProfile(low)
	high := activeProfile("High", profile.RoleBusiness)
	high.UserID = uuid.MustParse("ffffffff-0000-0000-0000-00000000000b")
	store.addProfile(high)

	rec := &sizeRecorder{}
	uc := NewDiscoveryUsecase(store, store, newMemCache(), rec, DiscoveryConfig{
		Limits:         matching.DefaultLimits(),
		QueueTTL:       time.Minute,
		CandidateLimit: 1,
	}, nil)

	assert.Equal(t, []uuid.UUID{low.UserID, high.UserID}, drain(t, uc, seeker.UserID))
	assert.Equal(t, []int{1, 1}, rec.sizes)

	entries, err := uc.Reset(context.Background(), seeker.UserID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{low.UserID}, entryIDs(entries))
	assert.Equal(t, []uuid.UUID{low.UserID, high.UserID}, drain(t, uc, seeker.UserID))
}

func TestDiscovery_CandidateLimitAppliesAfterRanking(t *testing.T) {
	store := newMemStore()
	seeker := activeProfile("Seeker", profile.RoleTechnical)
	store.addProfile(seeker, wantedSkill("Sales", skill.PriorityMustHave))

	low := activeProfile("Low", profile.RoleBusiness)
	low.UserID = uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	store.addProfile(low)
	high := activeProfile("High", profile.RoleBusiness)
	high.UserID = uuid.MustParse("ffffffff-0000-0000-0000-00000000000b")
	store.addProfile(high, ownedSkill("Sales", skill.LevelExpert))

	uc := NewDiscoveryUsecase(store, store, newMemCache(), nil, DiscoveryConfig{
		Limits:         matching.DefaultLimits(),
		QueueTTL:       time.Minute,
		CandidateLimit: 1,
	}, nil)

	entries, err := uc.Queue(context.Background(), seeker.UserID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{high.UserID}, entryIDs(entries))
}

func TestDiscovery_FallsBackToAnyRole(t *testing.T) {
	store := newMemStore()
	seeker := activeProfile("Seeker", profile.RoleTechnical)
	peer := activeProfile("Peer", profile.RoleTechnical)
	store.addProfile(seeker)
	store.addProfile(peer)

	uc := NewDiscoveryUsecase(store, store, nil, nil, DiscoveryConfig{}, nil)
	entries, err := uc.Queue(context.Background(), seeker.UserID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{peer.UserID}, entryIDs(entries))
	assert.Equal(t, 2, store.listCalls)
}

func TestDiscovery_EmptyQueue(t *testing.T) {
	store := newMemStore()
	seeker := activeProfile("Alone", profile.RoleGeneralist)
	store.addProfile(seeker)
	rec := &sizeRecorder{}

	uc := NewDiscoveryUsecase(store, store, newMemCache(), rec, DiscoveryConfig{}, nil)
	ctx := context.Background()

	cur, err := uc.Current(ctx, seeker.UserID)
	require.NoError(t, err)
	assert.Equal(t, discovery.StateEmpty, cur.State)
	assert.Zero(t, cur.Remaining)

	require.NoError(t, uc.Advance(ctx, seeker.UserID, uuid.New()))
	assert.Equal(t, []int{0}, rec.sizes)
}

func TestDiscovery_CacheBypassRebuildsEveryTime(t *testing.T) {
	f := newDiscoveryFixture(t, nil)
	ctx := context.Background()

	_, err := f.uc.Queue(ctx, f.seeker.UserID)
	require.NoError(t, err)
	_, err = f.uc.Queue(ctx, f.seeker.UserID)
	require.NoError(t, err)
	assert.Equal(t, 2, f.store.listCalls)
}

func TestDiscovery_CacheErrorsFallBackToRebuild(t *testing.T) {
	cache := newMemCache()
	cache.err = errors.New("redis down")
	f := newDiscoveryFixture(t, cache)

	entries, err := f.uc.Queue(context.Background(), f.seeker.UserID)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestDiscovery_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("unauthorized", func(t *testing.T) {
		f := newDiscoveryFixture(t, nil)
		_, err := f.uc.Queue(ctx, uuid.Nil)
		assert.ErrorIs(t, err, ErrUnauthorized)
		assert.ErrorIs(t, f.uc.Advance(ctx, uuid.Nil, uuid.New()), ErrUnauthorized)
	})

	t.Run("unknown profile", func(t *testing.T) {
		f := newDiscoveryFixture(t, nil)
		_, err := f.uc.Queue(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrProfileNotFound)
	})

	t.Run("directory down", func(t *testing.T) {
		f := newDiscoveryFixture(t, nil)
		f.store.listErr = errors.New("timeout")
		_, err := f.uc.Queue(ctx, f.seeker.UserID)
		assert.ErrorIs(t, err, ErrDirectoryUnavailable)
	})

	t.Run("profile lookup down", func(t *testing.T) {
		f := newDiscoveryFixture(t, nil)
		f.store.profileErr = errors.New("timeout")
		_, err := f.uc.Current(ctx, f.seeker.UserID)
		assert.ErrorIs(t, err, ErrDirectoryUnavailable)
	})

	t.Run("likes down", func(t *testing.T) {
		f := newDiscoveryFixture(t, nil)
		f.store.likedErr = errors.New("timeout")
		_, err := f.uc.Queue(ctx, f.seeker.UserID)
		assert.ErrorIs(t, err, ErrStorageUnavailable)
	})
}
