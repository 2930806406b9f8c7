package fetch

import (
	"context"
	"errors"
	"fmt"

	"go-mod.ewintr.nl/vid2blog/model"
	"golang.org/x/exp/slog"
)

var ErrChainExhausted = errors.New("all sources failed")

// Source is one tier in a fallback chain.
type Source[T any] struct {
	Name  string
	Fetch func(ctx context.Context, id model.VideoID) (T, error)
}

// FirstSuccess tries the sources in order and returns the first result that
// did not fail. Every failing tier is logged.
func FirstSuccess[T any](ctx context.Context, logger *slog.Logger, id model.VideoID, sources []Source[T]) (T, string, error) {
	var zero T
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return zero, "", err
		}
		res, err := src.Fetch(ctx, id)
		if err != nil {
			logger.Warn("source failed, trying next", slog.String("video", string(id)), slog.String("source", src.Name), slog.Any("error", err))
			continue
		}
		return res, src.Name, nil
	}

	return zero, "", fmt.Errorf("%w for video %s", ErrChainExhausted, id)
}
