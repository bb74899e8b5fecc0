package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"cofounder-match/internal/domain/conversation"
	"cofounder-match/internal/domain/ledger"
	"cofounder-match/internal/domain/profile"
	"cofounder-match/internal/domain/skill"
	"cofounder-match/internal/repository"

	"github.com/google/uuid"
)

type likeKey struct {
	liker uuid.UUID
	liked uuid.UUID
}

// memStore plays the profile directory, the ledger and the match listing at
// once. RecordLike holds the mutex for the whole call, mirroring one
// transaction.
type memStore struct {
	mu sync.Mutex

	profiles map[uuid.UUID]profile.Profile
	skills   map[uuid.UUID][]skill.UserSkill
	likes    map[likeKey]ledger.Decision
	matches  map[string]ledger.Match
	messages []ledger.Message

	profileErr error
	listErr    error
	ledgerErr  error
	likedErr   error
	listCalls  int
}

func newMemStore() *memStore {
	return &memStore{
		profiles: map[uuid.UUID]profile.Profile{},
		skills:   map[uuid.UUID][]skill.UserSkill{},
		likes:    map[likeKey]ledger.Decision{},
		matches:  map[string]ledger.Match{},
	}
}

func (s *memStore) addProfile(p profile.Profile, items ...skill.UserSkill) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.UserID == uuid.Nil {
		p.UserID = uuid.New()
	}
	s.profiles[p.UserID] = p
	for i := range items {
		items[i].UserID = p.UserID
	}
	s.skills[p.UserID] = items
}

func (s *memStore) GetProfile(_ context.Context, userID uuid.UUID) (profile.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profileErr != nil {
		return profile.Profile{}, s.profileErr
	}
	p, ok := s.profiles[userID]
	if !ok {
		return profile.Profile{}, repository.ErrProfileNotFound
	}
	return p, nil
}

func (s *memStore) ListActiveProfiles(_ context.Context, f repository.ProfileFilter) ([]profile.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}

	excluded := map[uuid.UUID]struct{}{}
	for _, id := range f.ExcludeUserIDs {
		excluded[id] = struct{}{}
	}
	roles := map[profile.Role]struct{}{}
	for _, r := range f.Roles {
		roles[r] = struct{}{}
	}

	out := make([]profile.Profile, 0)
	for _, p := range s.profiles {
		if !p.IsActive {
			continue
		}
		if _, ok := excluded[p.UserID]; ok {
			continue
		}
		if len(roles) > 0 {
			if _, ok := roles[p.Role]; !ok {
				continue
			}
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i].UserID[:], out[j].UserID[:]) < 0
	})
	return out, nil
}

func (s *memStore) ListUserSkills(_ context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]skill.UserSkill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[uuid.UUID][]skill.UserSkill, len(userIDs))
	for _, id := range userIDs {
		if items, ok := s.skills[id]; ok {
			out[id] = append([]skill.UserSkill(nil), items...)
		}
	}
	return out, nil
}

func (s *memStore) ListLikedIDs(_ context.Context, likerID uuid.UUID) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.likedErr != nil {
		return nil, s.likedErr
	}
	out := make([]uuid.UUID, 0)
	for k := range s.likes {
		if k.liker == likerID {
			out = append(out, k.liked)
		}
	}
	return out, nil
}

func (s *memStore) RecordLike(_ context.Context, in repository.LikeInput) (repository.LikeOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ledgerErr != nil {
		return repository.LikeOutcome{}, s.ledgerErr
	}

	cand, ok := s.profiles[in.LikedID]
	if !ok || !cand.IsActive {
		return repository.LikeOutcome{}, repository.ErrCandidateUnavailable
	}
	if _, ok := s.profiles[in.LikerID]; !ok {
		return repository.LikeOutcome{}, repository.ErrProfileNotFound
	}

	var out repository.LikeOutcome
	k := likeKey{liker: in.LikerID, liked: in.LikedID}
	if _, dup := s.likes[k]; dup {
		out.Duplicate = true
	} else {
		s.likes[k] = in.Kind
	}

	if _, ok := s.likes[likeKey{liker: in.LikedID, liked: in.LikerID}]; !ok {
		return out, nil
	}

	pk := ledger.PairKey(in.LikerID, in.LikedID)
	m, exists := s.matches[pk]
	if !exists {
		a, b := ledger.CanonicalPair(in.LikerID, in.LikedID)
		m = ledger.Match{ID: uuid.New(), UserAID: a, UserBID: b, Status: ledger.MatchStatusActive, CreatedAt: time.Now().UTC()}
		s.matches[pk] = m
		out.Created = true
		if in.Seed != nil {
			msg := in.Seed(m)
			s.messages = append(s.messages, msg)
			out.Bootstrap = &msg
		}
	}
	out.Match = &m
	out.RaceRecovered = exists && !out.Duplicate
	return out, nil
}

func (s *memStore) ListActiveByUser(_ context.Context, userID uuid.UUID) ([]repository.MatchWithProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]repository.MatchWithProfile, 0)
	for _, m := range s.matches {
		if m.Status != ledger.MatchStatusActive || (m.UserAID != userID && m.UserBID != userID) {
			continue
		}
		out = append(out, repository.MatchWithProfile{Match: m, Other: s.profiles[m.Other(userID)]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Match.CreatedAt.After(out[j].Match.CreatedAt) })
	return out, nil
}

func (s *memStore) bootstrapCount(matchID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, m := range s.messages {
		if m.MatchID == matchID && m.Kind == ledger.MessageKindBootstrap {
			n++
		}
	}
	return n
}

func (s *memStore) matchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.matches)
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	err  error
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return false, c.err
	}
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

type recordingNotifier struct {
	mu    sync.Mutex
	seeds []conversation.Seed
}

func (n *recordingNotifier) NotifyMatch(_ context.Context, _ ledger.Match, seed conversation.Seed) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.seeds = append(n.seeds, seed)
}

type recordingMetrics struct {
	mu       sync.Mutex
	outcomes []string
	created  int
	races    int
}

func (m *recordingMetrics) ObserveDecision(_ ledger.Decision, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

func (m *recordingMetrics) MatchCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created++
}

func (m *recordingMetrics) MatchRaceRecovered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.races++
}

type recordingAdvancer struct {
	mu    sync.Mutex
	calls []uuid.UUID
	err   error
}

func (a *recordingAdvancer) Advance(_ context.Context, _ uuid.UUID, candidateID uuid.UUID) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, candidateID)
	return a.err
}

func ownedSkill(name string, level skill.Level) skill.UserSkill {
	return skill.UserSkill{
		Skill:     skill.Skill{ID: uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)), Name: name},
		Qualifier: skill.Owned{Level: level},
	}
}

func wantedSkill(name string, p skill.Priority) skill.UserSkill {
	return skill.UserSkill{
		Skill:     skill.Skill{ID: uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)), Name: name},
		Qualifier: skill.Wanted{Priority: p},
	}
}

func activeProfile(name string, role profile.Role) profile.Profile {
	return profile.Profile{
		UserID:       uuid.New(),
		Name:         name,
		Role:         role,
		Availability: profile.AvailabilityFullTime,
		Ambition:     profile.AmbitionGrowth,
		IsActive:     true,
	}
}
