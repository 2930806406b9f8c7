package fetch

import (
	"context"
	"time"

	"go-mod.ewintr.nl/vid2blog/model"
	"golang.org/x/exp/slog"
)

type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, id model.VideoID) (model.Metadata, error)
}

// Metadata runs the metadata sources in order and falls back to the default
// metadata when none of them answers, so it never fails.
type Metadata struct {
	sources []Source[model.Metadata]
	now     func() time.Time
	logger  *slog.Logger
}

func NewMetadata(logger *slog.Logger, sources ...Source[model.Metadata]) *Metadata {
	return &Metadata{
		sources: sources,
		now:     time.Now,
		logger:  logger,
	}
}

func MetadataSource(name string, f MetadataFetcher) Source[model.Metadata] {
	return Source[model.Metadata]{Name: name, Fetch: f.FetchMetadata}
}

func (m *Metadata) FetchMetadata(ctx context.Context, id model.VideoID) model.Metadata {
	md, source, err := FirstSuccess(ctx, m.logger, id, m.sources)
	if err != nil {
		m.logger.Warn("using default metadata", slog.String("video", string(id)), slog.Any("error", err))
		return model.DefaultMetadata(m.now())
	}
	m.logger.Info("fetched metadata", slog.String("video", string(id)), slog.String("source", source))

	return md
}
