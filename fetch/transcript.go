package fetch

import (
	"context"

	"go-mod.ewintr.nl/vid2blog/model"
	"golang.org/x/exp/slog"
)

type TranscriptFetcher interface {
	FetchTranscript(ctx context.Context, id model.VideoID) (string, error)
}

// Transcripts runs the transcript sources in order. Absence of a transcript
// is not an error at this level.
type Transcripts struct {
	sources []Source[string]
	logger  *slog.Logger
}

func NewTranscripts(logger *slog.Logger, sources ...Source[string]) *Transcripts {
	return &Transcripts{
		sources: sources,
		logger:  logger,
	}
}

func TranscriptSource(name string, f TranscriptFetcher) Source[string] {
	return Source[string]{Name: name, Fetch: f.FetchTranscript}
}

func (t *Transcripts) FetchTranscript(ctx context.Context, id model.VideoID) (string, bool) {
	transcript, source, err := FirstSuccess(ctx, t.logger, id, t.sources)
	if err != nil {
		t.logger.Warn("no transcript available", slog.String("video", string(id)), slog.Any("error", err))
		return "", false
	}
	t.logger.Info("fetched transcript", slog.String("video", string(id)), slog.String("source", source), slog.Int("length", len(transcript)))

	return transcript, true
}
