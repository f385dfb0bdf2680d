package transform

import (
	"strings"
	"testing"

	"github.com/MdHasib01/commserver/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func newTestTransformer() *Transformer {
	return New(domain.NewSeededRand(1))
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"psa prefix", "PSA: Always back up your data", "Always back up your data"},
		{"til prefix lowercase", "til: zfs scrubs are not backups", "Zfs scrubs are not backups"},
		{"lpt with dash", "LPT - label both ends of every cable", "Label both ends of every cable"},
		{"bracketed tag", "[Serious] What monitoring stack do you run?", "What monitoring stack do you run?"},
		{"stacked prefixes", "[Update] PSA: new release is out", "New release is out"},
		{"no prefix untouched", "Why I moved off the cloud", "Why I moved off the cloud"},
		{"stripping everything falls back", "[homelab]", "[homelab]"},
		{"whitespace only trimmed", "  plain title  ", "Plain title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanTitle(tt.title))
		})
	}
}

func TestTransform_SynthesizesEmptyBody(t *testing.T) {
	tr := newTestTransformer()
	item := &domain.RawContentItem{
		Title:   "Built a 10 inch mini rack",
		Channel: "homelab",
	}

	result := tr.Transform(item)
	assert.NotEmpty(t, result.Body)
	assert.Contains(t, result.Body, "Built a 10 inch mini rack")
	assert.Contains(t, result.Body, "homelab builders")
}

func TestTransform_SynthesizedBodyUnknownChannelNamesIt(t *testing.T) {
	tr := newTestTransformer()
	item := &domain.RawContentItem{
		Title:   "A long enough title to not need any filler sentences appended",
		Channel: "k3s",
	}

	result := tr.Transform(item)
	assert.Contains(t, result.Body, "k3s")
}

func TestTransform_StripsTrailingEditLines(t *testing.T) {
	tr := newTestTransformer()
	body := strings.Join([]string{
		"We migrated 40TB over a weekend and nothing broke.",
		"The trick was running both systems in parallel for a week first.",
		"",
		"EDIT: thanks for all the awards!",
		"Edit 2: yes, we had backups.",
		"tl;dr parallel running works.",
	}, "\n")

	item := &domain.RawContentItem{Title: "Migration story", Body: body, Channel: "sysadmin"}
	result := tr.Transform(item)

	assert.Contains(t, result.Body, "nothing broke")
	assert.Contains(t, result.Body, "parallel for a week")
	assert.NotContains(t, result.Body, "EDIT")
	assert.NotContains(t, result.Body, "Edit 2")
	assert.NotContains(t, result.Body, "tl;dr")
}

func TestTransform_KeepsInteriorEditLines(t *testing.T) {
	tr := newTestTransformer()
	body := strings.Join([]string{
		"Original question about VLAN tagging that is long enough to stand alone.",
		"EDIT: solved it, explanation below.",
		"The switch needed the port set to trunk mode, not access mode.",
	}, "\n")

	item := &domain.RawContentItem{Title: "VLAN question", Body: body, Channel: "homelab"}
	result := tr.Transform(item)

	assert.Contains(t, result.Body, "EDIT: solved it")
	assert.Contains(t, result.Body, "trunk mode")
}

func TestTransform_AppendsFillerToShortBody(t *testing.T) {
	tr := newTestTransformer()
	item := &domain.RawContentItem{Title: "Thoughts?", Body: "Neat tool.", Channel: "selfhosted"}

	result := tr.Transform(item)
	assert.Greater(t, len([]rune(result.Body)), minBodyRunes)
	assert.Contains(t, result.Body, "Neat tool.")

	matched := false
	for _, filler := range fillers {
		if strings.Contains(result.Body, filler) {
			matched = true
		}
	}
	assert.True(t, matched, "expected one of the filler sentences, got %q", result.Body)
}

func TestTransform_LongBodyUntouched(t *testing.T) {
	tr := newTestTransformer()
	body := strings.Repeat("A body with plenty of substance already. ", 5)
	item := &domain.RawContentItem{Title: "Title", Body: body, Channel: "selfhosted"}

	result := tr.Transform(item)
	assert.Equal(t, strings.TrimSpace(body), result.Body)
}

func TestTransform_SetsContentType(t *testing.T) {
	tr := newTestTransformer()
	body := strings.Repeat("A body with plenty of substance already. ", 5)

	link := &domain.RawContentItem{Title: "Title", Body: body, MediaURL: "https://github.com/someone/project", Channel: "selfhosted"}
	assert.Equal(t, domain.ContentLink, tr.Transform(link).ContentType)

	text := &domain.RawContentItem{Title: "Title", Body: body, Channel: "selfhosted"}
	assert.Equal(t, domain.ContentText, tr.Transform(text).ContentType)
}
