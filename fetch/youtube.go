package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go-mod.ewintr.nl/vid2blog/model"
	"google.golang.org/api/youtube/v3"
)

var (
	ErrVideoNotFound = errors.New("video not found")
	ErrNoCaptions    = errors.New("no caption tracks")
)

// Youtube talks to the YouTube Data API v3.
type Youtube struct {
	Client *youtube.Service
}

func NewYoutube(client *youtube.Service) *Youtube {
	return &Youtube{Client: client}
}

func (y *Youtube) FetchMetadata(ctx context.Context, id model.VideoID) (model.Metadata, error) {
	response, err := y.Client.Videos.
		List([]string{"snippet"}).
		Id(string(id)).
		Context(ctx).
		Do()
	if err != nil {
		return model.Metadata{}, fmt.Errorf("videos list failed: %w", err)
	}
	if len(response.Items) == 0 || response.Items[0].Snippet == nil {
		return model.Metadata{}, ErrVideoNotFound
	}

	snippet := response.Items[0].Snippet
	md := model.Metadata{
		Title:        snippet.Title,
		Description:  snippet.Description,
		ChannelTitle: snippet.ChannelTitle,
		PublishedAt:  snippet.PublishedAt,
		Thumbnails:   thumbnails(snippet.Thumbnails),
	}
	if len(md.Thumbnails) == 0 {
		md.Thumbnails = model.PlaceholderThumbnails()
	}

	return md, nil
}

func thumbnails(details *youtube.ThumbnailDetails) model.Thumbnails {
	res := model.Thumbnails{}
	if details == nil {
		return res
	}
	for name, th := range map[string]*youtube.Thumbnail{
		"default":  details.Default,
		"medium":   details.Medium,
		"high":     details.High,
		"standard": details.Standard,
		"maxres":   details.Maxres,
	} {
		if th == nil || th.Url == "" {
			continue
		}
		res[name] = model.Thumbnail{URL: th.Url, Width: th.Width, Height: th.Height}
	}

	return res
}

// FetchTranscript downloads the first caption track listed for the video.
func (y *Youtube) FetchTranscript(ctx context.Context, id model.VideoID) (string, error) {
	list, err := y.Client.Captions.
		List([]string{"snippet"}, string(id)).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("captions list failed: %w", err)
	}
	if len(list.Items) == 0 {
		return "", ErrNoCaptions
	}

	resp, err := y.Client.Captions.
		Download(list.Items[0].Id).
		Context(ctx).
		Download()
	if err != nil {
		return "", fmt.Errorf("captions download failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("could not read caption track: %w", err)
	}
	if strings.TrimSpace(string(body)) == "" {
		return "", ErrEmptyTranscript
	}

	return string(body), nil
}
