package discovery

import (
	"bytes"
	"sort"

	"cofounder-match/internal/domain/matching"
	"cofounder-match/internal/domain/profile"

	"github.com/google/uuid"
)

type State string

const (
	StateActive State = "active"
	StateEmpty  State = "empty"
)

type Entry struct {
	Profile profile.Profile
	Result  matching.Result
}

// Queue is a cursor over ranked candidates. It is a derived view: decisions
// are recorded by the ledger, never by the queue.
type Queue struct {
	Entries []Entry
	Cursor  int
}

func NewQueue(entries []Entry) *Queue {
	q := &Queue{}
	q.Reset(entries)
	return q
}

// Rank orders entries by overall score descending, then by candidate id.
func Rank(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		oi, oj := entries[i].Result.Score.Overall, entries[j].Result.Score.Overall
		if oi != oj {
			return oi > oj
		}
		a, b := entries[i].Profile.UserID, entries[j].Profile.UserID
		return bytes.Compare(a[:], b[:]) < 0
	})
}

func (q *Queue) State() State {
	if q == nil || q.Cursor >= len(q.Entries) {
		return StateEmpty
	}
	return StateActive
}

func (q *Queue) Current() (Entry, bool) {
	if q.State() == StateEmpty {
		return Entry{}, false
	}
	return q.Entries[q.Cursor], true
}

// Advance is a no-op once the queue is empty.
func (q *Queue) Advance() {
	if q.State() == StateEmpty {
		return
	}
	q.Cursor++
}

func (q *Queue) Reset(entries []Entry) {
	if q == nil {
		return
	}
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	Rank(cp)
	q.Entries = cp
	q.Cursor = 0
}

// Drop removes every undecided entry matching decided and reports how many
// were removed. Entries behind the cursor are left alone.
func (q *Queue) Drop(decided func(uuid.UUID) bool) int {
	if q.State() == StateEmpty {
		return 0
	}
	kept := make([]Entry, q.Cursor, len(q.Entries))
	copy(kept, q.Entries[:q.Cursor])
	n := 0
	for _, e := range q.Entries[q.Cursor:] {
		if decided(e.Profile.UserID) {
			n++
			continue
		}
		kept = append(kept, e)
	}
	q.Entries = kept
	return n
}

// Truncate keeps at most n entries and reports whether any were cut.
func (q *Queue) Truncate(n int) bool {
	if n <= 0 || len(q.Entries) <= n {
		return false
	}
	q.Entries = q.Entries[:n]
	if q.Cursor > n {
		q.Cursor = n
	}
	return true
}

// Remaining returns the undecided tail of the queue.
func (q *Queue) Remaining() []Entry {
	if q.State() == StateEmpty {
		return []Entry{}
	}
	out := make([]Entry, len(q.Entries)-q.Cursor)
	copy(out, q.Entries[q.Cursor:])
	return out
}
