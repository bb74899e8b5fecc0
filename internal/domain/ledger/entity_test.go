package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPairKey_OrderIndependent(t *testing.T) {
	x := uuid.MustParse("ffffffff-0000-0000-0000-000000000000")
	y := uuid.MustParse("00000000-0000-0000-0000-00000000ffff")

	assert.Equal(t, PairKey(x, y), PairKey(y, x))

	a, b := CanonicalPair(x, y)
	assert.Equal(t, y, a)
	assert.Equal(t, x, b)
}

func TestParseDecision(t *testing.T) {
	for _, s := range []string{"pass", "like", "superlike"} {
		d, ok := ParseDecision(s)
		assert.True(t, ok)
		assert.Equal(t, s, string(d))
	}
	_, ok := ParseDecision("maybe")
	assert.False(t, ok)

	assert.False(t, DecisionPass.Persists())
	assert.True(t, DecisionLike.Persists())
	assert.True(t, DecisionSuperlike.Persists())
}

func TestMatch_Other(t *testing.T) {
	m := Match{UserAID: uuid.New(), UserBID: uuid.New()}
	assert.Equal(t, m.UserBID, m.Other(m.UserAID))
	assert.Equal(t, m.UserAID, m.Other(m.UserBID))
}
