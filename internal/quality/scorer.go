// Package quality scores ingested content and screens it for
// authenticity. Both checks are pure functions of the item: the same
// input always produces the same score, so gate decisions are
// reproducible across runs.
package quality

// Scoring weights. Components are additive and individually capped so
// the total stays in [0, 1].
const (
	baseScore = 0.10

	lengthWeight   = 0.30
	lengthCeiling  = 2000 // body runes at which the length component maxes out
	mediaWeight    = 0.25
	mediaCeiling   = 3 // attachments at which the media component maxes out
	votesWeight    = 0.20
	votesCeiling   = 500
	commentsWeight = 0.15
	commentsCeil   = 200
)

// Scorer computes deterministic quality scores for scored items.
type Scorer struct{}

// NewScorer creates a quality scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// ScoredItem is the subset of an item the scorer looks at.
type ScoredItem struct {
	// Body is the post body text.
	Body string

	// MediaCount is the number of extracted media attachments.
	MediaCount int

	// Votes is the upstream net vote score.
	Votes int

	// Comments is the upstream comment count.
	Comments int
}

// Score returns a quality score in [0, 1]. The score never decreases
// when body length, media count, votes or comments increase while the
// other attributes stay fixed.
func (s *Scorer) Score(item ScoredItem) float64 {
	score := baseScore
	score += ratio(len([]rune(item.Body)), lengthCeiling) * lengthWeight
	score += ratio(item.MediaCount, mediaCeiling) * mediaWeight
	score += ratio(item.Votes, votesCeiling) * votesWeight
	score += ratio(item.Comments, commentsCeil) * commentsWeight

	if score > 1 {
		score = 1
	}
	return score
}

// ratio returns n/ceiling clamped to [0, 1]. Negative n counts as zero.
func ratio(n, ceiling int) float64 {
	if n <= 0 {
		return 0
	}
	if n >= ceiling {
		return 1
	}
	return float64(n) / float64(ceiling)
}
