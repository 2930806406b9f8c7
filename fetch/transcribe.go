package fetch

import (
	"context"
	"errors"
	"fmt"

	"go-mod.ewintr.nl/vid2blog/model"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

const (
	MessageInvalidURL   = "Invalid YouTube URL. Please provide a valid YouTube video URL."
	MessageNoTranscript = "Could not get video transcript. Please try a video with captions enabled or provide a transcript manually."
	MessageInternal     = "Failed to process video"
)

// errTranscriptMissing cancels the metadata fetch.
var errTranscriptMissing = errors.New("transcript missing")

type TranscriptChain interface {
	FetchTranscript(ctx context.Context, id model.VideoID) (string, bool)
}

type MetadataChain interface {
	FetchMetadata(ctx context.Context, id model.VideoID) model.Metadata
}

type Transcription struct {
	VideoID    model.VideoID  `json:"videoId"`
	Transcript string         `json:"transcript"`
	Metadata   model.Metadata `json:"metadata"`
}

type Transcriber struct {
	transcripts TranscriptChain
	metadata    MetadataChain
	logger      *slog.Logger
}

func NewTranscriber(transcripts TranscriptChain, metadata MetadataChain, logger *slog.Logger) *Transcriber {
	return &Transcriber{
		transcripts: transcripts,
		metadata:    metadata,
		logger:      logger,
	}
}

// Transcribe resolves the input and fetches transcript and metadata side by
// side. Only a missing transcript fails the call.
func (t *Transcriber) Transcribe(ctx context.Context, input string) (Transcription, error) {
	id, ok := ResolveVideoID(input)
	if !ok {
		return Transcription{}, model.NewError(model.KindInvalidInput, model.CodeInvalidURL, MessageInvalidURL, fmt.Errorf("no video id in %q", input))
	}
	t.logger.Info("transcribing video", slog.String("video", string(id)))

	var (
		transcript string
		md         model.Metadata
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var found bool
		if transcript, found = t.transcripts.FetchTranscript(gctx, id); !found {
			return errTranscriptMissing
		}
		return nil
	})
	g.Go(func() error {
		md = t.metadata.FetchMetadata(gctx, id)
		return nil
	})
	err := g.Wait()
	switch {
	case ctx.Err() != nil:
		return Transcription{}, model.NewError(model.KindInternal, model.CodeInternal, MessageInternal, ctx.Err())
	case errors.Is(err, errTranscriptMissing):
		return Transcription{}, model.NewError(model.KindNotFound, model.CodeNoTranscript, MessageNoTranscript, fmt.Errorf("no transcript for video %s", id))
	case err != nil:
		return Transcription{}, model.NewError(model.KindInternal, model.CodeInternal, MessageInternal, err)
	}

	return Transcription{
		VideoID:    id,
		Transcript: transcript,
		Metadata:   md,
	}, nil
}
