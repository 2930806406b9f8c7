package process

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go-mod.ewintr.nl/vid2blog/model"
	"golang.org/x/exp/slog"
)

const MessageTranscriptRequired = "Transcript is required"

var blogParams = CompletionParams{Temperature: 0.7, MaxTokens: 2000}

type Generator struct {
	completer Completer
	logger    *slog.Logger
}

func NewGenerator(completer Completer, logger *slog.Logger) *Generator {
	return &Generator{
		completer: completer,
		logger:    logger,
	}
}

// GenerateBlogPost returns the Markdown text exactly as the model produced it.
func (g *Generator) GenerateBlogPost(ctx context.Context, transcript string, md model.Metadata, opts model.GenerationOptions) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", model.NewError(model.KindInvalidInput, model.CodeMissingTranscript, MessageTranscriptRequired, nil)
	}
	if err := opts.Validate(); err != nil {
		return "", err
	}

	g.logger.Info("generating blog post", slog.String("title", md.Title), slog.String("tone", string(opts.Tone)), slog.Int("words", opts.WordCount), slog.String("audience", string(opts.Audience)))
	post, err := g.completer.Complete(ctx, BlogPrompt(transcript, md, opts), blogParams)
	if err != nil {
		e := classify(err)
		g.logger.Error("failed to generate blog post", slog.String("code", string(e.Code)), slog.Any("error", err))
		return "", e
	}
	if strings.TrimSpace(post) == "" {
		return "", model.NewError(model.KindInternal, model.CodeGenerationFailed, MessageGenerationFailed, errors.New("empty completion"))
	}

	return post, nil
}

// GenerateSEOMetadata never fails, any problem with the model answer results
// in the default metadata for the title.
func (g *Generator) GenerateSEOMetadata(ctx context.Context, post, title string) model.SEOMetadata {
	answer, err := g.completer.Complete(ctx, SEOPrompt(post, title), CompletionParams{})
	if err != nil {
		g.logger.Warn("using default seo metadata", slog.String("title", title), slog.Any("error", err))
		return model.DefaultSEOMetadata(title)
	}
	seo, err := ParseSEOMetadata(answer)
	if err != nil {
		g.logger.Warn("using default seo metadata", slog.String("title", title), slog.Any("error", err))
		return model.DefaultSEOMetadata(title)
	}

	return seo
}

// ParseSEOMetadata reads the JSON answer, tolerating code fences and text
// around the object, and enforces the length and keyword limits.
func ParseSEOMetadata(answer string) (model.SEOMetadata, error) {
	raw := stripFences(answer)
	if start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}"); start >= 0 && end > start {
		raw = raw[start : end+1]
	}

	var seo model.SEOMetadata
	if err := json.Unmarshal([]byte(raw), &seo); err != nil {
		return model.SEOMetadata{}, fmt.Errorf("could not parse seo metadata: %w", err)
	}

	seo.Title = model.Truncate(strings.TrimSpace(seo.Title), model.SEOTitleMax)
	seo.Description = model.Truncate(strings.TrimSpace(seo.Description), model.SEODescriptionMax)
	keywords := make([]string, 0, len(seo.Keywords))
	for _, kw := range seo.Keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	if len(keywords) > model.SEOKeywordsMax {
		keywords = keywords[:model.SEOKeywordsMax]
	}
	seo.Keywords = keywords

	switch {
	case seo.Title == "":
		return model.SEOMetadata{}, errors.New("seo title is empty")
	case seo.Description == "":
		return model.SEOMetadata{}, errors.New("seo description is empty")
	case len(seo.Keywords) < model.SEOKeywordsMin:
		return model.SEOMetadata{}, fmt.Errorf("only %d seo keywords", len(seo.Keywords))
	}

	return seo, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")

	return strings.TrimSpace(s)
}
