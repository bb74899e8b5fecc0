package usecase

import (
	"context"
	"errors"
	"time"

	"cofounder-match/internal/domain/discovery"
	"cofounder-match/internal/domain/matching"
	"cofounder-match/internal/domain/profile"
	"cofounder-match/internal/domain/skill"
	"cofounder-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type DiscoveryConfig struct {
	Limits         matching.Limits
	QueueTTL       time.Duration
	CandidateLimit int
}

// QueueObserver receives the size of every rebuilt queue.
type QueueObserver interface {
	ObserveQueueSize(n int)
}

type CurrentCandidate struct {
	State     discovery.State
	Entry     *discovery.Entry
	Remaining int
}

type DiscoveryUsecase interface {
	Queue(ctx context.Context, userID uuid.UUID) ([]discovery.Entry, error)
	Current(ctx context.Context, userID uuid.UUID) (CurrentCandidate, error)
	Advance(ctx context.Context, userID uuid.UUID, candidateID uuid.UUID) error
	Reset(ctx context.Context, userID uuid.UUID) ([]discovery.Entry, error)
}

type Discovery struct {
	profiles repository.ProfileRepository
	ledger   repository.LedgerRepository
	cache    Cache
	scorer   *matching.Scorer
	observer QueueObserver
	cfg      DiscoveryConfig
	log      *zap.Logger
}

func NewDiscoveryUsecase(
	profiles repository.ProfileRepository,
	ledger repository.LedgerRepository,
	cache Cache,
	observer QueueObserver,
	cfg DiscoveryConfig,
	log *zap.Logger,
) *Discovery {
	if cfg.QueueTTL <= 0 {
		cfg.QueueTTL = 15 * time.Minute
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Discovery{
		profiles: profiles,
		ledger:   ledger,
		cache:    cacheOrNop(cache),
		scorer:   matching.NewScorer(cfg.Limits),
		observer: observer,
		cfg:      cfg,
		log:      log.Named("discovery"),
	}
}

// queueSnapshot is one window of the ranked candidate pool. Seen holds every
// id passed since the last reset; More is set when the candidate cap cut
// eligible profiles from this window.
type queueSnapshot struct {
	Entries []discovery.Entry `json:"entries"`
	Cursor  int               `json:"cursor"`
	Seen    []uuid.UUID       `json:"seen,omitempty"`
	More    bool              `json:"more"`
	BuiltAt time.Time         `json:"built_at"`
}

func (s *queueSnapshot) queue() *discovery.Queue {
	return &discovery.Queue{Entries: s.Entries, Cursor: s.Cursor}
}

func (s *queueSnapshot) store(q *discovery.Queue) {
	s.Entries = q.Entries
	s.Cursor = q.Cursor
}

// Queue returns the undecided part of the user's current window, building it
// when no snapshot exists. Liked candidates are never part of it.
func (u *Discovery) Queue(ctx context.Context, userID uuid.UUID) ([]discovery.Entry, error) {
	snap, err := u.current(ctx, userID)
	if err != nil {
		return nil, err
	}
	return snap.queue().Remaining(), nil
}

func (u *Discovery) Current(ctx context.Context, userID uuid.UUID) (CurrentCandidate, error) {
	snap, err := u.current(ctx, userID)
	if err != nil {
		return CurrentCandidate{}, err
	}

	q := snap.queue()
	out := CurrentCandidate{State: q.State(), Remaining: len(q.Remaining())}
	if e, ok := q.Current(); ok {
		out.Entry = &e
	}
	return out, nil
}

// Advance moves past candidateID. The current entry advances the cursor; an
// entry further down the window is removed from it. Unknown ids and an empty
// queue are no-ops.
func (u *Discovery) Advance(ctx context.Context, userID uuid.UUID, candidateID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrUnauthorized
	}
	snap, found := u.loadSnapshot(ctx, userID)
	if !found {
		return nil
	}

	q := snap.queue()
	if cur, ok := q.Current(); ok && cur.Profile.UserID == candidateID {
		q.Advance()
	} else if q.Drop(func(id uuid.UUID) bool { return id == candidateID }) == 0 {
		return nil
	}
	snap.store(q)
	snap.Seen = append(snap.Seen, candidateID)
	u.saveSnapshot(ctx, userID, snap)
	return nil
}

// Reset recomputes the queue from the directory. Passed candidates come back;
// liked ones never do.
func (u *Discovery) Reset(ctx context.Context, userID uuid.UUID) ([]discovery.Entry, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	snap, err := u.build(ctx, userID, nil)
	if err != nil {
		return nil, err
	}
	u.saveSnapshot(ctx, userID, snap)
	return snap.queue().Remaining(), nil
}

// current loads the user's window, drops anyone liked since it was built and
// pages to the next window once a capped one runs out.
func (u *Discovery) current(ctx context.Context, userID uuid.UUID) (*queueSnapshot, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	snap, found := u.loadSnapshot(ctx, userID)
	if !found {
		built, err := u.build(ctx, userID, nil)
		if err != nil {
			return nil, err
		}
		u.saveSnapshot(ctx, userID, built)
		return built, nil
	}

	liked, err := u.likedSet(ctx, userID)
	if err != nil {
		return nil, err
	}
	q := snap.queue()
	dropped := q.Drop(func(id uuid.UUID) bool {
		_, ok := liked[id]
		return ok
	})
	snap.store(q)

	if q.State() == discovery.StateEmpty && snap.More {
		next, err := u.build(ctx, userID, snap.Seen)
		if err != nil {
			return nil, err
		}
		u.saveSnapshot(ctx, userID, next)
		return next, nil
	}
	if dropped > 0 {
		u.saveSnapshot(ctx, userID, snap)
	}
	return snap, nil
}

// build ranks every eligible candidate not in seen and keeps the top
// CandidateLimit of them.
func (u *Discovery) build(ctx context.Context, userID uuid.UUID, seen []uuid.UUID) (*queueSnapshot, error) {
	var (
		seeker profile.Profile
		liked  map[uuid.UUID]struct{}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := u.profiles.GetProfile(gctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrProfileNotFound) {
				return ErrProfileNotFound
			}
			u.log.Error("get profile failed", zap.String("user_id", userID.String()), zap.Error(err))
			return ErrDirectoryUnavailable
		}
		seeker = p
		return nil
	})
	g.Go(func() error {
		s, err := u.likedSet(gctx, userID)
		if err != nil {
			return err
		}
		liked = s
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	exclude := make([]uuid.UUID, 0, len(liked)+len(seen)+1)
	exclude = append(exclude, userID)
	for id := range liked {
		exclude = append(exclude, id)
	}
	exclude = append(exclude, seen...)

	roles := matching.ComplementaryRoles(seeker.Role)
	candidates, err := u.listCandidates(ctx, userID, liked, exclude, roles)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 && len(roles) > 0 {
		candidates, err = u.listCandidates(ctx, userID, liked, exclude, nil)
		if err != nil {
			return nil, err
		}
	}

	ids := make([]uuid.UUID, 0, len(candidates)+1)
	ids = append(ids, userID)
	for _, c := range candidates {
		ids = append(ids, c.UserID)
	}
	skills, err := u.profiles.ListUserSkills(ctx, ids)
	if err != nil {
		u.log.Error("list user skills failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, ErrDirectoryUnavailable
	}

	_, seekerWanted := skill.Split(skills[userID])
	sk := matching.Seeker{
		UserID:       userID,
		Availability: seeker.Availability,
		Ambition:     seeker.Ambition,
		Wanted:       seekerWanted,
	}

	entries := make([]discovery.Entry, 0, len(candidates))
	for _, c := range candidates {
		owned, wanted := skill.Split(skills[c.UserID])
		res := u.scorer.Score(sk, matching.Candidate{
			UserID:       c.UserID,
			Availability: c.Availability,
			Ambition:     c.Ambition,
			Owned:        owned,
			Wanted:       wanted,
		})
		entries = append(entries, discovery.Entry{Profile: c, Result: res})
	}

	q := discovery.NewQueue(entries)
	more := q.Truncate(u.cfg.CandidateLimit)
	if u.observer != nil {
		u.observer.ObserveQueueSize(len(q.Entries))
	}
	u.log.Debug("queue built",
		zap.String("user_id", userID.String()),
		zap.Int("eligible", len(entries)),
		zap.Int("candidates", len(q.Entries)),
		zap.Int("liked", len(liked)),
		zap.Int("seen", len(seen)),
	)

	snap := &queueSnapshot{Seen: seen, More: more, BuiltAt: time.Now().UTC()}
	snap.store(q)
	return snap, nil
}

func (u *Discovery) listCandidates(
	ctx context.Context,
	userID uuid.UUID,
	liked map[uuid.UUID]struct{},
	exclude []uuid.UUID,
	roles []profile.Role,
) ([]profile.Profile, error) {
	ps, err := u.profiles.ListActiveProfiles(ctx, repository.ProfileFilter{
		ExcludeUserIDs: exclude,
		Roles:          roles,
	})
	if err != nil {
		u.log.Error("list active profiles failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, ErrDirectoryUnavailable
	}
	return matching.FilterCandidates(matching.FilterInput{
		ActingUserID: userID,
		Liked:        liked,
		Roles:        roles,
	}, ps), nil
}

func (u *Discovery) likedSet(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	ids, err := u.ledger.ListLikedIDs(ctx, userID)
	if err != nil {
		u.log.Error("list liked ids failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, ErrStorageUnavailable
	}
	out := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out, nil
}

func (u *Discovery) loadSnapshot(ctx context.Context, userID uuid.UUID) (*queueSnapshot, bool) {
	var snap queueSnapshot
	found, err := u.cache.GetJSON(ctx, DiscoveryQueueKey(userID), &snap)
	if err != nil {
		u.log.Warn("queue snapshot read failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, false
	}
	if !found {
		return nil, false
	}
	return &snap, true
}

func (u *Discovery) saveSnapshot(ctx context.Context, userID uuid.UUID, snap *queueSnapshot) {
	if err := u.cache.SetJSON(ctx, DiscoveryQueueKey(userID), snap, u.cfg.QueueTTL); err != nil {
		u.log.Warn("queue snapshot write failed", zap.String("user_id", userID.String()), zap.Error(err))
	}
}
