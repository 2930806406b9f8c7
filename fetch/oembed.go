package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go-mod.ewintr.nl/vid2blog/model"
)

const DefaultOEmbedURL = "https://www.youtube.com/oembed"

type oEmbedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// OEmbed gives a reduced set of metadata without needing an api key.
type OEmbed struct {
	client  *http.Client
	baseURL string
	now     func() time.Time
}

func NewOEmbed(client *http.Client, baseURL string) *OEmbed {
	if baseURL == "" {
		baseURL = DefaultOEmbedURL
	}
	return &OEmbed{
		client:  client,
		baseURL: baseURL,
		now:     time.Now,
	}
}

func (o *OEmbed) FetchMetadata(ctx context.Context, id model.VideoID) (model.Metadata, error) {
	params := url.Values{}
	params.Set("url", fmt.Sprintf("https://www.youtube.com/watch?v=%s", id))
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?%s", o.baseURL, params.Encode()), nil)
	if err != nil {
		return model.Metadata{}, err
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return model.Metadata{}, fmt.Errorf("oembed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.Metadata{}, fmt.Errorf("oembed returned status %d", resp.StatusCode)
	}
	var oe oEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&oe); err != nil {
		return model.Metadata{}, fmt.Errorf("could not parse oembed: %w", err)
	}

	md := model.Metadata{
		Title:        oe.Title,
		Description:  "Description not available",
		ChannelTitle: oe.AuthorName,
		PublishedAt:  o.now().UTC().Format(time.RFC3339),
		Thumbnails:   model.PlaceholderThumbnails(),
	}
	if md.Title == "" {
		md.Title = "Untitled Video"
	}
	if md.ChannelTitle == "" {
		md.ChannelTitle = "Unknown Channel"
	}
	if oe.ThumbnailURL != "" {
		md.Thumbnails = model.Thumbnails{
			"default": {URL: oe.ThumbnailURL, Width: 120, Height: 90},
		}
	}

	return md, nil
}
