package matching

import (
	"testing"

	"cofounder-match/internal/domain/profile"
	"cofounder-match/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	backend  = skill.Skill{ID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), Slug: "backend", Name: "Backend"}
	frontend = skill.Skill{ID: uuid.MustParse("00000000-0000-0000-0000-000000000002"), Slug: "frontend", Name: "Frontend"}
	devops   = skill.Skill{ID: uuid.MustParse("00000000-0000-0000-0000-000000000003"), Slug: "devops", Name: "DevOps"}
	sales    = skill.Skill{ID: uuid.MustParse("00000000-0000-0000-0000-000000000004"), Slug: "sales", Name: "Sales"}
)

func wanted(s skill.Skill, p skill.Priority) skill.UserSkill {
	return skill.UserSkill{Skill: s, Qualifier: skill.Wanted{Priority: p}}
}

func owned(s skill.Skill, l skill.Level) skill.UserSkill {
	return skill.UserSkill{Skill: s, Qualifier: skill.Owned{Level: l}}
}

func TestScore_FullSkillComplementarity(t *testing.T) {
	sc := NewScorer(DefaultLimits())
	seeker := Seeker{
		UserID: uuid.New(),
		Wanted: []skill.UserSkill{
			wanted(backend, skill.PriorityMustHave),
			wanted(frontend, skill.PriorityMustHave),
		},
	}
	cand := Candidate{
		UserID: uuid.New(),
		Owned: []skill.UserSkill{
			owned(backend, skill.LevelIntermediate),
			owned(frontend, skill.LevelBeginner),
			owned(devops, skill.LevelIntermediate),
		},
	}

	res := sc.Score(seeker, cand)
	assert.Equal(t, 100, res.Score.SkillComplementarity)
	assert.Len(t, res.MatchedSkills, 2)
}

func TestScore_ZeroWantedSkills(t *testing.T) {
	sc := NewScorer(DefaultLimits())
	res := sc.Score(Seeker{UserID: uuid.New()}, Candidate{
		UserID: uuid.New(),
		Owned:  []skill.UserSkill{owned(backend, skill.LevelExpert)},
	})
	assert.Equal(t, 0, res.Score.SkillComplementarity)
	assert.Empty(t, res.MatchedSkills)
}

func TestScore_MustHaveWeighsMore(t *testing.T) {
	sc := NewScorer(DefaultLimits())
	seeker := Seeker{Wanted: []skill.UserSkill{
		wanted(backend, skill.PriorityMustHave),
		wanted(sales, skill.PriorityNiceToHave),
	}}

	mustOnly := sc.Score(seeker, Candidate{Owned: []skill.UserSkill{owned(backend, skill.LevelBeginner)}})
	niceOnly := sc.Score(seeker, Candidate{Owned: []skill.UserSkill{owned(sales, skill.LevelBeginner)}})

	assert.Equal(t, 67, mustOnly.Score.SkillComplementarity)
	assert.Equal(t, 33, niceOnly.Score.SkillComplementarity)
}

func TestScore_TierDistances(t *testing.T) {
	sc := NewScorer(DefaultLimits())

	tests := []struct {
		name        string
		seekerAvail profile.Availability
		candAvail   profile.Availability
		seekerAmb   profile.Ambition
		candAmb     profile.Ambition
		wantAvail   int
		wantAmb     int
	}{
		{"identical", profile.AvailabilityFullTime, profile.AvailabilityFullTime, profile.AmbitionGrowth, profile.AmbitionGrowth, 100, 100},
		{"one apart", profile.AvailabilityFullTime, profile.AvailabilityPartTime, profile.AmbitionGrowth, profile.AmbitionUnicorn, 60, 55},
		{"two apart", profile.AvailabilityEveningsWeekends, profile.AvailabilityFullTime, profile.AmbitionLifestyle, profile.AmbitionUnicorn, 20, 10},
		{"unset", "", profile.AvailabilityFullTime, profile.AmbitionGrowth, "", 50, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := sc.Score(
				Seeker{Availability: tt.seekerAvail, Ambition: tt.seekerAmb},
				Candidate{Availability: tt.candAvail, Ambition: tt.candAmb},
			)
			assert.Equal(t, tt.wantAvail, res.Score.Availability)
			assert.Equal(t, tt.wantAmb, res.Score.Ambition)
		})
	}
}

func TestScore_OverallIsWeightedSum(t *testing.T) {
	sc := NewScorer(DefaultLimits())
	seeker := Seeker{
		Availability: profile.AvailabilityFullTime,
		Ambition:     profile.AmbitionUnicorn,
		Wanted:       []skill.UserSkill{wanted(backend, skill.PriorityMustHave), wanted(devops, skill.PriorityNiceToHave)},
	}
	cand := Candidate{
		Availability: profile.AvailabilityPartTime,
		Ambition:     profile.AmbitionUnicorn,
		Owned:        []skill.UserSkill{owned(backend, skill.LevelExpert)},
	}

	first := sc.Score(seeker, cand)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, sc.Score(seeker, cand))
	}

	s := first.Score
	assert.Equal(t, Overall(s.SkillComplementarity, s.Availability, s.Ambition), s.Overall)
	// 0.5*67 + 0.25*60 + 0.25*100 = 73.5
	assert.Equal(t, 74, s.Overall)
	assert.Equal(t, LevelGood, first.Level)
}

func TestScore_BoundsHoldForAnyInput(t *testing.T) {
	sc := NewScorer(Limits{MaxOwned: 2, MaxWanted: 2})
	all := []skill.Skill{backend, frontend, devops, sales}
	avails := []profile.Availability{"", profile.AvailabilityFullTime, profile.AvailabilityPartTime, profile.AvailabilityEveningsWeekends, "bogus"}
	ambs := []profile.Ambition{"", profile.AmbitionLifestyle, profile.AmbitionGrowth, profile.AmbitionUnicorn}

	for mask := 0; mask < 16; mask++ {
		var ws, ow []skill.UserSkill
		for i, s := range all {
			if mask&(1<<i) != 0 {
				ws = append(ws, wanted(s, skill.PriorityMustHave))
			} else {
				ow = append(ow, owned(s, skill.LevelExpert))
			}
			ow = append(ow, owned(s, skill.LevelBeginner))
		}
		for _, av := range avails {
			for _, am := range ambs {
				res := sc.Score(Seeker{Availability: av, Ambition: am, Wanted: ws}, Candidate{Availability: av, Ambition: am, Owned: ow})
				for _, v := range []int{res.Score.Overall, res.Score.SkillComplementarity, res.Score.Availability, res.Score.Ambition} {
					require.GreaterOrEqual(t, v, 0)
					require.LessOrEqual(t, v, 100)
				}
				require.LessOrEqual(t, len(res.Reasons), 3)
			}
		}
	}
}

func TestScore_ReasonsOrderAndCap(t *testing.T) {
	sc := NewScorer(DefaultLimits())
	seeker := Seeker{
		Availability: profile.AvailabilityFullTime,
		Ambition:     profile.AmbitionGrowth,
		Wanted:       []skill.UserSkill{wanted(backend, skill.PriorityMustHave)},
	}
	cand := Candidate{
		Availability: profile.AvailabilityFullTime,
		Ambition:     profile.AmbitionGrowth,
		Owned:        []skill.UserSkill{owned(backend, skill.LevelExpert)},
	}

	res := sc.Score(seeker, cand)
	assert.Equal(t, []string{
		"Strong skill complementarity",
		"Compatible availability",
		"Aligned ambition",
	}, res.Reasons)
	assert.Equal(t, LevelExcellent, res.Level)
}

func TestScore_ExpertCalloutPrefersWantedSkill(t *testing.T) {
	sc := NewScorer(DefaultLimits())
	seeker := Seeker{
		Availability: profile.AvailabilityFullTime,
		Ambition:     profile.AmbitionLifestyle,
		Wanted:       []skill.UserSkill{wanted(sales, skill.PriorityNiceToHave), wanted(frontend, skill.PriorityMustHave)},
	}
	cand := Candidate{
		Availability: profile.AvailabilityEveningsWeekends,
		Ambition:     profile.AmbitionUnicorn,
		Owned: []skill.UserSkill{
			owned(backend, skill.LevelExpert),
			owned(sales, skill.LevelExpert),
		},
	}

	res := sc.Score(seeker, cand)
	assert.Equal(t, []string{"Expert in Sales"}, res.Reasons)
	assert.Equal(t, LevelExplore, res.Level)
}

func TestScore_IgnoresMisplacedQualifiers(t *testing.T) {
	sc := NewScorer(DefaultLimits())
	res := sc.Score(
		Seeker{Wanted: []skill.UserSkill{owned(backend, skill.LevelExpert)}},
		Candidate{Owned: []skill.UserSkill{wanted(backend, skill.PriorityMustHave)}},
	)
	assert.Equal(t, 0, res.Score.SkillComplementarity)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, LevelExcellent, Classify(85))
	assert.Equal(t, LevelGood, Classify(84))
	assert.Equal(t, LevelGood, Classify(70))
	assert.Equal(t, LevelExplore, Classify(69))
}
