package process_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-mod.ewintr.nl/vid2blog/fetch"
	"go-mod.ewintr.nl/vid2blog/model"
	"go-mod.ewintr.nl/vid2blog/process"
)

type fakeTranscriber struct {
	res   fetch.Transcription
	err   error
	calls *int
}

func (f fakeTranscriber) Transcribe(_ context.Context, _ string) (fetch.Transcription, error) {
	if f.calls != nil {
		*f.calls++
	}
	return f.res, f.err
}

func TestPipelineRun(t *testing.T) {
	tr := fetch.Transcription{
		VideoID:    "dQw4w9WgXcQ",
		Transcript: strings.TrimSpace(strings.Repeat("word ", 50)),
		Metadata:   model.Metadata{Title: "Video title", Description: "Video description"},
	}
	seoAnswer := `{"title":"SEO","description":"Desc","keywords":["a","b","c","d","e"]}`

	t.Run("success", func(t *testing.T) {
		fc := &fakeCompleter{answers: []completion{{text: "# Blog"}, {text: seoAnswer}}}
		p := process.NewPipeline(fakeTranscriber{res: tr}, process.NewGenerator(fc, testLogger()), testLogger())

		act := p.Run(context.Background(), process.Request{VideoURL: "https://youtu.be/dQw4w9WgXcQ"})
		assert.True(t, act.Success)
		assert.Nil(t, act.Error)
		assert.Equal(t, model.VideoID("dQw4w9WgXcQ"), act.VideoID)
		assert.Equal(t, "# Blog", act.BlogPost)
		assert.Equal(t, "SEO", act.SEOMetadata.Title)
		assert.Equal(t, tr.Metadata, act.Metadata)
		require.Len(t, fc.prompts, 2)
		assert.Contains(t, fc.prompts[0], "professional tone")
		assert.Contains(t, fc.prompts[0], "800 words")
		assert.Contains(t, fc.prompts[0], "general audience")
	})

	t.Run("transcription fails", func(t *testing.T) {
		fc := &fakeCompleter{}
		p := process.NewPipeline(fakeTranscriber{err: model.NewError(model.KindNotFound, model.CodeNoTranscript, fetch.MessageNoTranscript, nil)}, process.NewGenerator(fc, testLogger()), testLogger())

		act := p.Run(context.Background(), process.Request{VideoURL: "abcdefghijk"})
		assert.False(t, act.Success)
		require.NotNil(t, act.Error)
		assert.Equal(t, model.CodeNoTranscript, act.Error.Code)
		assert.Equal(t, fetch.MessageNoTranscript, act.Error.Message)
		assert.Empty(t, fc.prompts)
	})

	t.Run("unexpected transcription error", func(t *testing.T) {
		p := process.NewPipeline(fakeTranscriber{err: errors.New("boom")}, process.NewGenerator(&fakeCompleter{}, testLogger()), testLogger())

		act := p.Run(context.Background(), process.Request{VideoURL: "abcdefghijk"})
		require.NotNil(t, act.Error)
		assert.Equal(t, model.KindInternal, act.Error.Kind)
	})

	t.Run("quota exceeded", func(t *testing.T) {
		fc := &fakeCompleter{answers: []completion{{err: errors.New("insufficient_quota")}}}
		p := process.NewPipeline(fakeTranscriber{res: tr}, process.NewGenerator(fc, testLogger()), testLogger())

		act := p.Run(context.Background(), process.Request{VideoURL: "dQw4w9WgXcQ"})
		assert.False(t, act.Success)
		require.NotNil(t, act.Error)
		assert.Equal(t, model.KindUpstreamUnavailable, act.Error.Kind)
		assert.Equal(t, model.CodeQuotaExceeded, act.Error.Code)
		assert.Equal(t, process.MessageAIUnavailable, act.Error.Message)
	})

	t.Run("seo falls back", func(t *testing.T) {
		fc := &fakeCompleter{answers: []completion{{text: "# Blog"}, {text: "no json here"}}}
		p := process.NewPipeline(fakeTranscriber{res: tr}, process.NewGenerator(fc, testLogger()), testLogger())

		act := p.Run(context.Background(), process.Request{VideoURL: "dQw4w9WgXcQ"})
		assert.True(t, act.Success)
		assert.Equal(t, model.DefaultSEOMetadata("Video title"), act.SEOMetadata)
	})

	t.Run("invalid options before transcribing", func(t *testing.T) {
		var calls int
		fc := &fakeCompleter{}
		p := process.NewPipeline(fakeTranscriber{res: tr, calls: &calls}, process.NewGenerator(fc, testLogger()), testLogger())

		act := p.Run(context.Background(), process.Request{
			VideoURL: "dQw4w9WgXcQ",
			Options:  model.GenerationOptions{WordCount: 5000},
		})
		assert.False(t, act.Success)
		require.NotNil(t, act.Error)
		assert.Equal(t, model.KindInvalidInput, act.Error.Kind)
		assert.Equal(t, model.CodeInvalidOptions, act.Error.Code)
		assert.Zero(t, calls)
		assert.Empty(t, fc.prompts)
	})
}
