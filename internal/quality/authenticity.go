package quality

import (
	"strings"

	"github.com/MdHasib01/commserver/internal/core/domain"
)

// Authenticity thresholds and adjustments.
const (
	authenticityGate = 0.5

	substantialBodyRunes = 200
	thinBodyRunes        = 40
)

// Verdict is the outcome of an authenticity check.
type Verdict struct {
	// Valid reports whether the item passed the gate.
	Valid bool

	// Score is the authenticity score in [0, 1].
	Score float64

	// Reason explains a rejection. Empty when Valid.
	Reason string
}

// Validator screens raw items for signals of low-effort or botted
// content before they are published. It inspects only upstream
// attributes, never network state, so verdicts are deterministic.
type Validator struct{}

// NewValidator creates an authenticity validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate scores the item and applies the authenticity gate.
func (v *Validator) Validate(item *domain.RawContentItem) Verdict {
	score := 0.5
	var reasons []string

	body := strings.TrimSpace(item.Body)
	runes := len([]rune(body))
	switch {
	case runes >= substantialBodyRunes:
		score += 0.15
	case runes > 0 && runes < thinBodyRunes:
		score -= 0.15
		reasons = append(reasons, "thin body")
	}

	if body != "" && isLinkOnly(body) {
		score -= 0.20
		reasons = append(reasons, "link-only body")
	}

	// Engagement plausibility. Real posts accumulate both votes and
	// comments; bot reposts often show neither, or vote counts that
	// disagree with the net score.
	if item.Ups == 0 && item.NumComments == 0 {
		score -= 0.20
		reasons = append(reasons, "no engagement")
	} else if item.Ups > 0 && item.NumComments > 0 {
		score += 0.10
	}

	if divergence := item.Ups - item.Score; divergence < 0 || divergence > item.Ups/2+5 {
		score -= 0.15
		reasons = append(reasons, "implausible vote spread")
	}

	if item.UpvoteRatio > 0 {
		if item.UpvoteRatio < 0.2 {
			score -= 0.10
			reasons = append(reasons, "heavily downvoted")
		} else if item.UpvoteRatio > 0.99 && item.Ups < 10 {
			score -= 0.10
			reasons = append(reasons, "uniform votes on low sample")
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	verdict := Verdict{Score: score, Valid: score >= authenticityGate}
	if !verdict.Valid {
		verdict.Reason = strings.Join(reasons, "; ")
		if verdict.Reason == "" {
			verdict.Reason = "below authenticity threshold"
		}
	}
	return verdict
}

// isLinkOnly reports whether the body is nothing but a URL.
func isLinkOnly(body string) bool {
	fields := strings.Fields(body)
	if len(fields) != 1 {
		return false
	}
	return strings.HasPrefix(fields[0], "http://") || strings.HasPrefix(fields[0], "https://")
}
