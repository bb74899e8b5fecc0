package matching

import (
	"bytes"
	"fmt"
	"math"
	"sort"

	"cofounder-match/internal/domain/profile"
	"cofounder-match/internal/domain/skill"

	"github.com/google/uuid"
)

// Weights of the overall score. They are part of the build, not configuration.
const (
	WeightSkill        = 0.5
	WeightAvailability = 0.25
	WeightAmbition     = 0.25
)

const (
	mustHaveWeight   = 2
	niceToHaveWeight = 1

	unknownTierScore = 50
	reasonThreshold  = 80
	maxReasons       = 3

	excellentThreshold = 85
	goodThreshold      = 70
)

type MatchLevel string

const (
	LevelExcellent MatchLevel = "excellent"
	LevelGood      MatchLevel = "good"
	LevelExplore   MatchLevel = "explore"
)

// Ordinal tiers and the score awarded per tier distance.
var (
	availabilityTier = map[profile.Availability]int{
		profile.AvailabilityFullTime:         0,
		profile.AvailabilityPartTime:         1,
		profile.AvailabilityEveningsWeekends: 2,
	}
	ambitionTier = map[profile.Ambition]int{
		profile.AmbitionLifestyle: 0,
		profile.AmbitionGrowth:    1,
		profile.AmbitionUnicorn:   2,
	}

	availabilityDistanceScore = [...]int{100, 60, 20}
	ambitionDistanceScore     = [...]int{100, 55, 10}
)

type Limits struct {
	MaxOwned  int
	MaxWanted int
}

func DefaultLimits() Limits {
	return Limits{MaxOwned: 6, MaxWanted: 5}
}

type Seeker struct {
	UserID       uuid.UUID
	Availability profile.Availability
	Ambition     profile.Ambition
	Wanted       []skill.UserSkill
}

type Candidate struct {
	UserID       uuid.UUID
	Availability profile.Availability
	Ambition     profile.Ambition
	Owned        []skill.UserSkill
	Wanted       []skill.UserSkill
}

type Score struct {
	Overall              int
	SkillComplementarity int
	Availability         int
	Ambition             int
}

type MatchedSkill struct {
	SkillID   uuid.UUID
	SkillName string
	Priority  skill.Priority
	Level     skill.Level
}

type Result struct {
	Score         Score
	Level         MatchLevel
	Reasons       []string
	MatchedSkills []MatchedSkill
}

type Scorer struct {
	limits Limits
}

func NewScorer(limits Limits) *Scorer {
	d := DefaultLimits()
	if limits.MaxOwned <= 0 {
		limits.MaxOwned = d.MaxOwned
	}
	if limits.MaxWanted <= 0 {
		limits.MaxWanted = d.MaxWanted
	}
	return &Scorer{limits: limits}
}

// Score is a pure function of the two declared profiles.
func (s *Scorer) Score(seeker Seeker, cand Candidate) Result {
	wanted := normalize(seeker.Wanted, s.limits.MaxWanted, wantedRank)
	owned := normalize(cand.Owned, s.limits.MaxOwned, ownedRank)

	ownedByID := make(map[uuid.UUID]skill.UserSkill, len(owned))
	for _, o := range owned {
		ownedByID[o.Skill.ID] = o
	}

	var total, hit int
	matched := make([]MatchedSkill, 0, len(wanted))
	wantedIDs := make(map[uuid.UUID]struct{}, len(wanted))
	for _, w := range wanted {
		q, ok := w.Qualifier.(skill.Wanted)
		if !ok {
			continue
		}
		wantedIDs[w.Skill.ID] = struct{}{}
		weight := priorityWeight(q.Priority)
		total += weight

		o, ok := ownedByID[w.Skill.ID]
		if !ok {
			continue
		}
		hit += weight
		ms := MatchedSkill{SkillID: w.Skill.ID, SkillName: w.Skill.Name, Priority: q.Priority}
		if oq, ok := o.Qualifier.(skill.Owned); ok {
			ms.Level = oq.Level
		}
		matched = append(matched, ms)
	}

	skillScore := 0
	if total > 0 {
		skillScore = roundClamp(float64(hit) / float64(total) * 100)
	}

	sc := Score{
		SkillComplementarity: skillScore,
		Availability:         tierScore(availabilityTier, seeker.Availability, cand.Availability, availabilityDistanceScore[:]),
		Ambition:             tierScore(ambitionTier, seeker.Ambition, cand.Ambition, ambitionDistanceScore[:]),
	}
	sc.Overall = Overall(sc.SkillComplementarity, sc.Availability, sc.Ambition)

	return Result{
		Score:         sc,
		Level:         Classify(sc.Overall),
		Reasons:       reasons(sc, owned, wantedIDs),
		MatchedSkills: matched,
	}
}

// Overall combines the three components with the fixed weights.
func Overall(skillScore, availability, ambition int) int {
	v := WeightSkill*float64(clampInt(skillScore, 0, 100)) +
		WeightAvailability*float64(clampInt(availability, 0, 100)) +
		WeightAmbition*float64(clampInt(ambition, 0, 100))
	return roundClamp(v)
}

func Classify(overall int) MatchLevel {
	switch {
	case overall >= excellentThreshold:
		return LevelExcellent
	case overall >= goodThreshold:
		return LevelGood
	default:
		return LevelExplore
	}
}

func reasons(sc Score, owned []skill.UserSkill, wantedIDs map[uuid.UUID]struct{}) []string {
	out := make([]string, 0, maxReasons)
	if sc.SkillComplementarity >= reasonThreshold {
		out = append(out, "Strong skill complementarity")
	}
	if sc.Availability >= reasonThreshold {
		out = append(out, "Compatible availability")
	}
	if sc.Ambition >= reasonThreshold {
		out = append(out, "Aligned ambition")
	}
	if len(out) < maxReasons {
		if name, ok := expertCallout(owned, wantedIDs); ok {
			out = append(out, fmt.Sprintf("Expert in %s", name))
		}
	}
	if len(out) > maxReasons {
		out = out[:maxReasons]
	}
	return out
}

// expertCallout picks the first expert skill the seeker wants, or else the
// first expert skill at all. owned is already in canonical order.
func expertCallout(owned []skill.UserSkill, wantedIDs map[uuid.UUID]struct{}) (string, bool) {
	first := ""
	for _, o := range owned {
		q, ok := o.Qualifier.(skill.Owned)
		if !ok || q.Level != skill.LevelExpert {
			continue
		}
		if _, wanted := wantedIDs[o.Skill.ID]; wanted {
			return o.Skill.Name, true
		}
		if first == "" {
			first = o.Skill.Name
		}
	}
	return first, first != ""
}

func tierScore[T comparable](tiers map[T]int, a, b T, table []int) int {
	ta, okA := tiers[a]
	tb, okB := tiers[b]
	if !okA || !okB {
		return unknownTierScore
	}
	d := ta - tb
	if d < 0 {
		d = -d
	}
	if d >= len(table) {
		return table[len(table)-1]
	}
	return table[d]
}

func priorityWeight(p skill.Priority) int {
	if p == skill.PriorityMustHave {
		return mustHaveWeight
	}
	return niceToHaveWeight
}

func wantedRank(us skill.UserSkill) int {
	q, ok := us.Qualifier.(skill.Wanted)
	if !ok {
		return 0
	}
	if q.Priority == skill.PriorityMustHave {
		return 2
	}
	return 1
}

func ownedRank(us skill.UserSkill) int {
	q, ok := us.Qualifier.(skill.Owned)
	if !ok {
		return 0
	}
	switch q.Level {
	case skill.LevelExpert:
		return 3
	case skill.LevelIntermediate:
		return 2
	default:
		return 1
	}
}

// normalize drops entries of the wrong kind (rank 0), dedupes by skill id
// keeping the highest rank, orders by name then id, and caps the list at limit
// entries.
func normalize(items []skill.UserSkill, limit int, rank func(skill.UserSkill) int) []skill.UserSkill {
	byID := make(map[uuid.UUID]skill.UserSkill, len(items))
	for _, it := range items {
		if it.Skill.ID == uuid.Nil || rank(it) <= 0 {
			continue
		}
		prev, ok := byID[it.Skill.ID]
		if !ok || rank(it) > rank(prev) {
			byID[it.Skill.ID] = it
		}
	}

	out := make([]skill.UserSkill, 0, len(byID))
	for _, it := range byID {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Skill.Name != out[j].Skill.Name {
			return out[i].Skill.Name < out[j].Skill.Name
		}
		return bytes.Compare(out[i].Skill.ID[:], out[j].Skill.ID[:]) < 0
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func roundClamp(v float64) int {
	return clampInt(int(math.Round(v)), 0, 100)
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
