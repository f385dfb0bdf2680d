package transform

import (
	"strings"

	"github.com/MdHasib01/commserver/internal/core/domain"
)

// DeriveTags builds the topic tag set for an item: the source channel,
// the upstream flair, then any #hashtags found in the title or body.
// Tags are lowercased and deduplicated; first-seen order is preserved
// so the channel always leads.
func DeriveTags(item *domain.RawContentItem) []string {
	var tags []string
	seen := make(map[string]bool)

	add := func(tag string) {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		tags = append(tags, tag)
	}

	add(item.Channel)
	add(item.Flair)

	for _, match := range hashtagRe.FindAllStringSubmatch(item.Title+" "+item.Body, -1) {
		add(match[1])
	}

	return tags
}
