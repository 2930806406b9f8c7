package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go-mod.ewintr.nl/vid2blog/model"
)

const (
	DefaultPlayerURL = "https://www.youtube.com/youtubei/v1/player"

	androidClientVersion = "20.10.38"
	androidUserAgent     = "com.google.android.youtube/" + androidClientVersion + " (Linux; U; Android 11) gzip"
)

var (
	ErrEmptyTranscript = errors.New("transcript is empty")
	ErrNoTrackForLang  = errors.New("no usable caption track")
)

type playerRequest struct {
	VideoID string `json:"videoId"`
	Context struct {
		Client struct {
			ClientName        string `json:"clientName"`
			ClientVersion     string `json:"clientVersion"`
			AndroidSdkVersion int    `json:"androidSdkVersion"`
			Hl                string `json:"hl"`
		} `json:"client"`
	} `json:"context"`
	RacyCheckOk    bool `json:"racyCheckOk"`
	ContentCheckOk bool `json:"contentCheckOk"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

type playerResponse struct {
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	Captions *struct {
		Renderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type timedTextResponse struct {
	Events []struct {
		Segs []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

type timedTextXML struct {
	Lines []struct {
		Text string `xml:",chardata"`
	} `xml:"text"`
}

// TimedText reads the public caption track of a video. The signed track url
// is taken from the player response, the bare timedtext endpoint answers
// empty without it.
type TimedText struct {
	client    *http.Client
	playerURL string
	lang      string
}

func NewTimedText(client *http.Client, playerURL, lang string) *TimedText {
	if playerURL == "" {
		playerURL = DefaultPlayerURL
	}
	if lang == "" {
		lang = "en"
	}
	return &TimedText{
		client:    client,
		playerURL: playerURL,
		lang:      lang,
	}
}

func (tt *TimedText) FetchTranscript(ctx context.Context, id model.VideoID) (string, error) {
	tracks, err := tt.captionTracks(ctx, id)
	if err != nil {
		return "", err
	}
	track, ok := pickTrack(tracks, tt.lang)
	if !ok {
		return "", ErrNoTrackForLang
	}

	return tt.fetchTrack(ctx, track.BaseURL)
}

func (tt *TimedText) captionTracks(ctx context.Context, id model.VideoID) ([]captionTrack, error) {
	var preq playerRequest
	preq.VideoID = string(id)
	preq.Context.Client.ClientName = "ANDROID"
	preq.Context.Client.ClientVersion = androidClientVersion
	preq.Context.Client.AndroidSdkVersion = 30
	preq.Context.Client.Hl = tt.lang
	preq.RacyCheckOk = true
	preq.ContentCheckOk = true
	body, err := json.Marshal(preq)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tt.playerURL+"?prettyPrint=false", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", androidUserAgent)
	req.Header.Set("X-Youtube-Client-Name", "3")
	req.Header.Set("X-Youtube-Client-Version", androidClientVersion)
	resp, err := tt.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("player request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("player returned status %d", resp.StatusCode)
	}
	var presp playerResponse
	if err := json.NewDecoder(resp.Body).Decode(&presp); err != nil {
		return nil, fmt.Errorf("could not parse player response: %w", err)
	}
	if presp.Captions == nil || len(presp.Captions.Renderer.CaptionTracks) == 0 {
		if presp.PlayabilityStatus.Reason != "" {
			return nil, fmt.Errorf("%w: %s", ErrNoCaptions, presp.PlayabilityStatus.Reason)
		}
		return nil, ErrNoCaptions
	}

	return presp.Captions.Renderer.CaptionTracks, nil
}

// pickTrack prefers a manual track in lang, then an auto generated one.
// Tracks that need a proof of origin token only work in a browser.
func pickTrack(tracks []captionTrack, lang string) (captionTrack, bool) {
	var asr *captionTrack
	for i, t := range tracks {
		if t.BaseURL == "" || strings.Contains(t.BaseURL, "&exp=xpe") {
			continue
		}
		if !strings.EqualFold(t.LanguageCode, lang) && !strings.HasPrefix(strings.ToLower(t.LanguageCode), strings.ToLower(lang)+"-") {
			continue
		}
		if t.Kind != "asr" {
			return t, true
		}
		if asr == nil {
			asr = &tracks[i]
		}
	}
	if asr != nil {
		return *asr, true
	}

	return captionTrack{}, false
}

func (tt *TimedText) fetchTrack(ctx context.Context, baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid caption track url: %w", err)
	}
	q := u.Query()
	q.Set("fmt", "json3")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	resp, err := tt.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("timedtext request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("timedtext returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("could not read timedtext body: %w", err)
	}
	body = bytes.TrimSpace(body)
	switch {
	case len(body) == 0:
		return "", ErrEmptyTranscript
	case body[0] == '<':
		return parseTimedTextXML(body)
	default:
		return parseTimedText(body)
	}
}

func parseTimedText(body []byte) (string, error) {
	var tr timedTextResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", fmt.Errorf("could not parse timedtext: %w", err)
	}

	fragments := make([]string, 0, len(tr.Events))
	for _, event := range tr.Events {
		var text strings.Builder
		for _, seg := range event.Segs {
			text.WriteString(seg.UTF8)
		}
		fragments = append(fragments, text.String())
	}

	return joinFragments(fragments)
}

func parseTimedTextXML(body []byte) (string, error) {
	var tr timedTextXML
	if err := xml.Unmarshal(body, &tr); err != nil {
		return "", fmt.Errorf("could not parse timedtext xml: %w", err)
	}

	fragments := make([]string, 0, len(tr.Lines))
	for _, line := range tr.Lines {
		fragments = append(fragments, html.UnescapeString(line.Text))
	}

	return joinFragments(fragments)
}

func joinFragments(fragments []string) (string, error) {
	kept := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if f = strings.TrimSpace(f); f != "" {
			kept = append(kept, f)
		}
	}
	transcript := NormalizeWhitespace(strings.Join(kept, " "))
	if transcript == "" {
		return "", ErrEmptyTranscript
	}

	return transcript, nil
}

// NormalizeWhitespace collapses every run of whitespace into one space.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
