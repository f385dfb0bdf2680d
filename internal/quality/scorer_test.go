package quality

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScorer_Range(t *testing.T) {
	s := NewScorer()

	tests := []struct {
		name string
		item ScoredItem
	}{
		{"zero item", ScoredItem{}},
		{"negative votes", ScoredItem{Votes: -50}},
		{"maxed out", ScoredItem{
			Body:       strings.Repeat("a", 5000),
			MediaCount: 10,
			Votes:      10000,
			Comments:   5000,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := s.Score(tt.item)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		})
	}
}

func TestScorer_Deterministic(t *testing.T) {
	s := NewScorer()
	item := ScoredItem{Body: "a decent write-up about zfs", MediaCount: 1, Votes: 120, Comments: 34}

	first := s.Score(item)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, s.Score(item))
	}
}

func TestScorer_MonotonicInMedia(t *testing.T) {
	s := NewScorer()
	base := ScoredItem{Body: "same body", Votes: 10, Comments: 2}

	withNone := s.Score(base)
	base.MediaCount = 1
	withOne := s.Score(base)
	base.MediaCount = 3
	withThree := s.Score(base)

	assert.Greater(t, withOne, withNone)
	assert.Greater(t, withThree, withOne)
}

func TestScorer_MonotonicInLength(t *testing.T) {
	s := NewScorer()
	short := s.Score(ScoredItem{Body: "short"})
	long := s.Score(ScoredItem{Body: strings.Repeat("university homelab cluster ", 40)})

	assert.Greater(t, long, short)
}

func TestScorer_MonotonicInEngagement(t *testing.T) {
	s := NewScorer()
	quiet := s.Score(ScoredItem{Body: "body", Votes: 1, Comments: 0})
	busy := s.Score(ScoredItem{Body: "body", Votes: 300, Comments: 80})

	assert.Greater(t, busy, quiet)
}

func TestScorer_CapsDoNotDecrease(t *testing.T) {
	s := NewScorer()
	atCeiling := s.Score(ScoredItem{Votes: votesCeiling})
	aboveCeiling := s.Score(ScoredItem{Votes: votesCeiling * 10})

	assert.Equal(t, atCeiling, aboveCeiling)
}
