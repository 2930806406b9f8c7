package model

import (
	"time"
	"unicode/utf8"
)

const PlaceholderThumbnailURL = "/placeholder.svg?height=90&width=120"

type VideoID string

type Thumbnail struct {
	URL    string `json:"url"`
	Width  int64  `json:"width"`
	Height int64  `json:"height"`
}

// Thumbnails are keyed by resolution name, as the YouTube Data API does.
type Thumbnails map[string]Thumbnail

var thumbnailOrder = []string{"default", "medium", "high", "standard", "maxres"}

// Ordered returns the known resolutions from small to large, followed by
// any unknown keys.
func (t Thumbnails) Ordered() []Thumbnail {
	res := make([]Thumbnail, 0, len(t))
	seen := make(map[string]bool, len(t))
	for _, name := range thumbnailOrder {
		if th, ok := t[name]; ok {
			res = append(res, th)
			seen[name] = true
		}
	}
	for name, th := range t {
		if !seen[name] {
			res = append(res, th)
		}
	}

	return res
}

type Metadata struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Thumbnails   Thumbnails `json:"thumbnails"`
	ChannelTitle string     `json:"channelTitle"`
	PublishedAt  string     `json:"publishedAt"`
}

func PlaceholderThumbnails() Thumbnails {
	return Thumbnails{
		"default": {URL: PlaceholderThumbnailURL, Width: 120, Height: 90},
	}
}

// DefaultMetadata is used when no metadata source answered.
func DefaultMetadata(now time.Time) Metadata {
	return Metadata{
		Title:        "Video Title Unavailable",
		Description:  "Description not available",
		Thumbnails:   PlaceholderThumbnails(),
		ChannelTitle: "Unknown Channel",
		PublishedAt:  now.UTC().Format(time.RFC3339),
	}
}

type SEOMetadata struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

const (
	SEOTitleMax       = 60
	SEODescriptionMax = 155
	SEOKeywordsMin    = 5
	SEOKeywordsMax    = 7
)

func DefaultSEOMetadata(title string) SEOMetadata {
	return SEOMetadata{
		Title:       Truncate(title, SEOTitleMax),
		Description: "Blog post generated from YouTube video content",
		Keywords:    []string{"blog", "youtube", "content", "video", "article"},
	}
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

type Result struct {
	Success     bool        `json:"success"`
	VideoID     VideoID     `json:"videoId,omitempty"`
	BlogPost    string      `json:"blogPost,omitempty"`
	SEOMetadata SEOMetadata `json:"seoMetadata"`
	Metadata    Metadata    `json:"metadata"`
	Error       *Error      `json:"-"`
}
