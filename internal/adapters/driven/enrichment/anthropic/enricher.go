// Package anthropic generates engagement comments with the Anthropic
// API and persists them through the comment store.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"

	"github.com/MdHasib01/commserver/internal/core/domain"
	"github.com/MdHasib01/commserver/internal/core/ports/driven"
)

// Ensure Enricher implements the interface.
var _ driven.CommentEnricher = (*Enricher)(nil)

// Default configuration values.
const (
	DefaultModel     = "claude-3-5-haiku-latest"
	DefaultMaxTokens = 1024

	// defaultPause spaces consecutive comment writes for one post.
	defaultPause = 1 * time.Second

	// bodyExcerptRunes bounds how much post body goes into the prompt.
	bodyExcerptRunes = 1200
)

const commentSystemPrompt = `You are writing short discussion comments for a community link-sharing platform.

Rules:
1. Write casual, conversational comments a real community member would leave
2. Vary the length: some one-liners, some two or three sentences
3. React to the specific post content, never generically
4. No hashtags, no emoji, no "great post!" filler
5. Do not address or mention other commenters
6. Plain text only, no markdown

Output as a JSON array of strings only, no other text:
["first comment", "second comment"]`

// Config holds configuration for the comment enricher.
type Config struct {
	// APIKey is the Anthropic API key (required).
	APIKey string

	// BaseURL overrides the API endpoint. Empty means the production
	// API.
	BaseURL string

	// Model is the model used for generation (default:
	// claude-3-5-haiku-latest).
	Model string

	// MaxTokens bounds each generation call (default: 1024).
	MaxTokens int

	// Pause is the delay between persisting consecutive comments
	// (default: 1s).
	Pause time.Duration
}

// Enricher generates comments for freshly published posts.
type Enricher struct {
	client    *anthropic.Client
	model     anthropic.Model
	maxTokens int64
	pause     time.Duration
	comments  driven.CommentStore
	contents  driven.ContentStore
	rand      domain.Rand
}

// NewEnricher creates a comment enricher writing through the given
// stores.
func NewEnricher(cfg Config, comments driven.CommentStore, contents driven.ContentStore, rnd domain.Rand) (*Enricher, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Pause == 0 {
		cfg.Pause = defaultPause
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	client := anthropic.NewClient(opts...)

	return &Enricher{
		client:    &client,
		model:     anthropic.Model(cfg.Model),
		maxTokens: int64(cfg.MaxTokens),
		pause:     cfg.Pause,
		comments:  comments,
		contents:  contents,
		rand:      rnd,
	}, nil
}

// GenerateComments creates and persists count comments for the record,
// each attributed to a randomly chosen platform user.
func (e *Enricher) GenerateComments(ctx context.Context, record *domain.ContentRecord, users []domain.PlatformUser, count int) error {
	if len(users) == 0 {
		return domain.ErrNoPlatformUsers
	}
	if count <= 0 {
		return nil
	}

	bodies, err := e.generate(ctx, record, count)
	if err != nil {
		return err
	}
	if len(bodies) > count {
		bodies = bodies[:count]
	}

	for i, body := range bodies {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(e.pause):
			}
		}

		author := users[e.rand.Intn(len(users))]
		comment := &domain.Comment{
			ID:        uuid.NewString(),
			PostID:    record.ID,
			AuthorID:  author.ID,
			Body:      body,
			CreatedAt: time.Now().UTC(),
		}
		if err := e.comments.Create(ctx, comment); err != nil {
			return fmt.Errorf("persisting comment: %w", err)
		}
	}

	total, err := e.comments.CountByPost(ctx, record.ID)
	if err != nil {
		return fmt.Errorf("counting comments: %w", err)
	}
	if err := e.contents.SetCommentCount(ctx, record.ID, total); err != nil {
		return fmt.Errorf("updating comment count: %w", err)
	}
	return nil
}

// generate asks the model for count comment bodies.
func (e *Enricher) generate(ctx context.Context, record *domain.ContentRecord, count int) ([]string, error) {
	userPrompt := fmt.Sprintf("Write %d distinct comments for this post.\n\nTitle: %s\n\nBody: %s",
		count, record.Title, excerpt(record.Body, bodyExcerptRunes))
	if len(record.Tags) > 0 {
		userPrompt += "\n\nTopics: " + strings.Join(record.Tags, ", ")
	}

	resp, err := e.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     e.model,
		MaxTokens: e.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: commentSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}
	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("no response from anthropic")
	}

	content := cleanArrayResponse(resp.Content[0].Text)

	var bodies []string
	if err := json.Unmarshal([]byte(content), &bodies); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w, content: %s", err, content)
	}

	usable := bodies[:0]
	for _, body := range bodies {
		if trimmed := strings.TrimSpace(body); trimmed != "" {
			usable = append(usable, trimmed)
		}
	}
	if len(usable) == 0 {
		return nil, fmt.Errorf("anthropic returned no usable comments")
	}
	return usable, nil
}

// cleanArrayResponse strips markdown fences and surrounding prose from
// a JSON array response.
func cleanArrayResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around the array.
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}

// excerpt truncates s to at most n runes.
func excerpt(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
