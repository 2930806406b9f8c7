package model_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go-mod.ewintr.nl/vid2blog/model"
)

func TestGenerationOptions(t *testing.T) {
	assert.Equal(t, model.GenerationOptions{Tone: model.ToneProfessional, WordCount: 800, Audience: model.AudienceGeneral}, model.GenerationOptions{}.WithDefaults())
	assert.Equal(t, model.GenerationOptions{Tone: model.ToneCreative, WordCount: 300, Audience: model.AudienceGeneral}, model.GenerationOptions{Tone: model.ToneCreative, WordCount: 300}.WithDefaults())

	for _, tc := range []struct {
		name  string
		opts  model.GenerationOptions
		valid bool
	}{
		{name: "lower bound", opts: model.GenerationOptions{Tone: model.ToneEducational, WordCount: 300, Audience: model.AudienceAcademic}, valid: true},
		{name: "upper bound", opts: model.GenerationOptions{Tone: model.ToneConversational, WordCount: 2000, Audience: model.AudienceBusiness}, valid: true},
		{name: "too few words", opts: model.GenerationOptions{Tone: model.ToneEducational, WordCount: 299, Audience: model.AudienceAcademic}},
		{name: "too many words", opts: model.GenerationOptions{Tone: model.ToneEducational, WordCount: 2001, Audience: model.AudienceAcademic}},
		{name: "unknown tone", opts: model.GenerationOptions{Tone: "sarcastic", WordCount: 800, Audience: model.AudienceGeneral}},
		{name: "unknown audience", opts: model.GenerationOptions{Tone: model.ToneCreative, WordCount: 800, Audience: "kids"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.opts.Validate()
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, model.KindInvalidInput, model.KindOf(err))
		})
	}
}

func TestThumbnailsOrdered(t *testing.T) {
	th := model.Thumbnails{
		"maxres":  {URL: "maxres"},
		"default": {URL: "default"},
		"high":    {URL: "high"},
	}
	act := th.Ordered()
	assert.Equal(t, []model.Thumbnail{{URL: "default"}, {URL: "high"}, {URL: "maxres"}}, act)
}

func TestDefaults(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	md := model.DefaultMetadata(now)
	assert.Equal(t, "Video Title Unavailable", md.Title)
	assert.Equal(t, "2024-05-01T12:00:00Z", md.PublishedAt)
	assert.Equal(t, model.Thumbnail{URL: model.PlaceholderThumbnailURL, Width: 120, Height: 90}, md.Thumbnails["default"])

	seo := model.DefaultSEOMetadata("A very long video title that does not fit in the sixty character limit")
	assert.Len(t, []rune(seo.Title), 60)
	assert.Len(t, seo.Keywords, 5)
}

func TestError(t *testing.T) {
	cause := errors.New("cause")
	err := fmt.Errorf("wrapped: %w", model.NewError(model.KindNotFound, model.CodeNoTranscript, "no transcript", cause))

	e, ok := model.AsError(err)
	assert.True(t, ok)
	assert.Equal(t, model.CodeNoTranscript, e.Code)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, model.KindNotFound, model.KindOf(err))
	assert.Equal(t, model.KindInternal, model.KindOf(cause))
}
