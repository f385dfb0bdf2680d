// Package transform rewrites raw upstream items into publishable posts.
// Titles lose their community-jargon prefixes, bodies are repaired so a
// post always reads as self-contained text, media attachments are
// extracted, and a topic tag set is derived.
package transform

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/MdHasib01/commserver/internal/core/domain"
)

// minBodyRunes is the length under which a body gets a conversational
// filler appended so published posts never look truncated.
const minBodyRunes = 50

// fillers are appended to very short bodies. Selection is randomised
// via the injected Rand so repeated short posts do not all read alike.
var fillers = [4]string{
	"What does everyone else think about this?",
	"Curious to hear how others are handling it.",
	"Figured this community would have opinions.",
	"Would love some feedback from people who have tried it.",
}

// channelSentences seed synthesized bodies for well-known channels.
// Unknown channels fall back to a generic sentence naming the channel.
var channelSentences = map[string]string{
	"selfhosted":     "The self-hosting crowd has been talking about this a lot lately.",
	"homelab":        "Another one for the homelab builders out there.",
	"sysadmin":       "Ops folks will probably recognise this situation immediately.",
	"programming":    "This came up in a programming discussion and stuck with me.",
	"webdev":         "Web developers keep running into this one.",
	"opensource":     "A neat find from the open source world.",
	"privacy":        "Worth knowing if you care about your data.",
	"datahoarder":    "For everyone whose storage array is never quite big enough.",
	"raspberry_pi":   "Yet another thing you can do with a Pi.",
	"homeautomation": "Home automation tinkerers might find this useful.",
}

var (
	// bracketPrefixRe matches a leading [tag] or (tag) block.
	bracketPrefixRe = regexp.MustCompile(`^\s*[\[(][^\])]{1,30}[\])]\s*[:\-]?\s*`)

	// tagPrefixRe matches leading acronym prefixes like "PSA:" or "TIL -".
	tagPrefixRe = regexp.MustCompile(`(?i)^\s*(?:psa|til|lpt|ysk|ama|tifu|eli5|update|reminder|important)\s*[:\-]\s*`)

	// trailingNoiseRe matches edit/update/tl;dr lines appended after the
	// real content.
	trailingNoiseRe = regexp.MustCompile(`(?i)^\s*\**\s*(?:edit|update)(?:\s*\d+|ed)?\s*\**\s*[:\-]|^\s*\**\s*tl;?dr\b`)

	// hashtagRe extracts #hashtags from title and body text.
	hashtagRe = regexp.MustCompile(`#([A-Za-z0-9_]+)`)
)

// Result is the publishable form of a raw item.
type Result struct {
	// Title is the cleaned post title.
	Title string

	// Body is the repaired post body. Never empty.
	Body string

	// Media lists extracted attachments.
	Media []domain.Media

	// Thumbnail is the preview image chosen for feeds. May be empty.
	Thumbnail string

	// Tags is the lowercased topic tag set in first-seen order.
	Tags []string

	// ContentType classifies the post by its attachments.
	ContentType domain.ContentType
}

// Transformer rewrites raw items for publication.
type Transformer struct {
	rand domain.Rand
}

// New creates a transformer. The Rand drives filler selection only;
// every other output is a pure function of the item.
func New(rand domain.Rand) *Transformer {
	return &Transformer{rand: rand}
}

// Transform produces the publishable form of the item.
func (t *Transformer) Transform(item *domain.RawContentItem) Result {
	title := CleanTitle(item.Title)
	body := stripTrailingNoise(item.Body)
	if strings.TrimSpace(body) == "" {
		body = synthesizeBody(title, item.Channel)
	}
	if len([]rune(body)) < minBodyRunes {
		body = body + "\n\n" + fillers[t.rand.Intn(len(fillers))]
	}

	media := ExtractMedia(item)

	return Result{
		Title:       title,
		Body:        body,
		Media:       media,
		Thumbnail:   chooseThumbnail(item, media),
		Tags:        DeriveTags(item),
		ContentType: classifyContent(media),
	}
}

// CleanTitle strips community-jargon prefixes like "PSA:", "TIL:" and
// bracketed tags. When stripping would erase the whole title, the
// original is kept: an empty title is worse than a jargony one.
func CleanTitle(title string) string {
	original := strings.TrimSpace(title)
	cleaned := original
	for {
		next := bracketPrefixRe.ReplaceAllString(cleaned, "")
		next = tagPrefixRe.ReplaceAllString(next, "")
		if next == cleaned {
			break
		}
		cleaned = next
	}
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return original
	}
	return upperFirst(cleaned)
}

// stripTrailingNoise removes edit/update/tl;dr lines from the end of a
// body. Interior edit notes are left alone: only the trailing block of
// noise lines (and blank lines between them) is dropped.
func stripTrailingNoise(body string) string {
	lines := strings.Split(body, "\n")
	end := len(lines)
	for end > 0 {
		line := strings.TrimSpace(lines[end-1])
		if line == "" || trailingNoiseRe.MatchString(line) {
			end--
			continue
		}
		break
	}
	return strings.TrimSpace(strings.Join(lines[:end], "\n"))
}

// synthesizeBody builds a body for items that have none (link and image
// posts). The sentence is keyed by channel so the synthesis is
// deterministic.
func synthesizeBody(title, channel string) string {
	sentence, ok := channelSentences[strings.ToLower(channel)]
	if !ok {
		sentence = fmt.Sprintf("Spotted this in the %s community and thought it was worth sharing here.", channel)
	}
	base := strings.TrimRight(strings.TrimSpace(title), ".!? ")
	if base == "" {
		return sentence
	}
	return base + ". " + sentence
}

// upperFirst capitalises the first rune.
func upperFirst(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
