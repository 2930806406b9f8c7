package process

import (
	"context"

	"go-mod.ewintr.nl/vid2blog/fetch"
	"go-mod.ewintr.nl/vid2blog/model"
	"golang.org/x/exp/slog"
)

const MessageAIUnavailable = "AI service is temporarily unavailable. Please try again later."

type Transcriber interface {
	Transcribe(ctx context.Context, input string) (fetch.Transcription, error)
}

type Request struct {
	VideoURL string
	Options  model.GenerationOptions
}

// Pipeline runs all stages for one video.
type Pipeline struct {
	transcriber Transcriber
	generator   *Generator
	logger      *slog.Logger
}

func NewPipeline(transcriber Transcriber, generator *Generator, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		transcriber: transcriber,
		generator:   generator,
		logger:      logger,
	}
}

func (p *Pipeline) Run(ctx context.Context, req Request) model.Result {
	opts := req.Options.WithDefaults()
	if err := opts.Validate(); err != nil {
		return p.fail("validate", "", err)
	}
	tr, err := p.transcriber.Transcribe(ctx, req.VideoURL)
	if err != nil {
		return p.fail("transcribe", "", err)
	}
	p.logger.Info("processing video", slog.String("video", string(tr.VideoID)))

	post, err := p.generator.GenerateBlogPost(ctx, tr.Transcript, tr.Metadata, opts)
	if err != nil {
		if model.KindOf(err) == model.KindUpstreamUnavailable {
			e, _ := model.AsError(err)
			err = model.NewError(e.Kind, e.Code, MessageAIUnavailable, e.Err)
		}
		return p.fail("generate", tr.VideoID, err)
	}
	seo := p.generator.GenerateSEOMetadata(ctx, post, tr.Metadata.Title)
	p.logger.Info("processed video", slog.String("video", string(tr.VideoID)))

	return model.Result{
		Success:     true,
		VideoID:     tr.VideoID,
		BlogPost:    post,
		SEOMetadata: seo,
		Metadata:    tr.Metadata,
	}
}

func (p *Pipeline) fail(stage string, id model.VideoID, err error) model.Result {
	e, ok := model.AsError(err)
	if !ok {
		e = model.NewError(model.KindInternal, model.CodeInternal, fetch.MessageInternal, err)
	}
	p.logger.Error("failed to process video", slog.String("video", string(id)), slog.String("stage", stage), slog.String("code", string(e.Code)), slog.Any("error", err))

	return model.Result{
		VideoID: id,
		Error:   e,
	}
}
