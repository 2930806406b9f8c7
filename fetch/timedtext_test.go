package fetch_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-mod.ewintr.nl/vid2blog/fetch"
)

// fakeYoutubeWeb serves a player response listing caption tracks and the
// signed tracks themselves.
type fakeYoutubeWeb struct {
	tracks      func(base string) string
	trackStatus int
	trackBody   string
	gotVideoID  string
	gotTrack    map[string]string
}

func (f *fakeYoutubeWeb) server(t *testing.T) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/youtubei/v1/player":
			var req struct {
				VideoID string `json:"videoId"`
			}
			assert.Equal(t, http.MethodPost, r.Method)
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			f.gotVideoID = req.VideoID
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, f.tracks(srv.URL))
		case "/api/timedtext":
			f.gotTrack = map[string]string{
				"signature": r.URL.Query().Get("signature"),
				"fmt":       r.URL.Query().Get("fmt"),
			}
			status := f.trackStatus
			if status == 0 {
				status = http.StatusOK
			}
			w.WriteHeader(status)
			w.Write([]byte(f.trackBody))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	return srv
}

func singleTrack(lang, kind string) func(string) string {
	return func(base string) string {
		return fmt.Sprintf(`{"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[
			{"baseUrl":"%s/api/timedtext?v=dQw4w9WgXcQ&lang=%s&signature=abc","languageCode":"%s","kind":"%s"}
		]}}}`, base, lang, lang, kind)
	}
}

func TestTimedText(t *testing.T) {
	for _, tc := range []struct {
		name        string
		tracks      func(string) string
		trackStatus int
		trackBody   string
		exp         string
		expErr      error
	}{
		{
			name:   "json3 track",
			tracks: singleTrack("en", "asr"),
			trackBody: `{"events":[
				{"tStartMs":0,"segs":[{"utf8":"  Hello"},{"utf8":" world "}]},
				{"tStartMs":1000},
				{"tStartMs":2000,"segs":[{"utf8":"this\n is"}]},
				{"tStartMs":3000,"segs":[{"utf8":"   "}]},
				{"tStartMs":4000,"segs":[{"utf8":"a   test"}]}
			]}`,
			exp: "Hello world this is a test",
		},
		{
			name:      "xml track",
			tracks:    singleTrack("en", ""),
			trackBody: `<?xml version="1.0" encoding="utf-8" ?><transcript><text start="0" dur="1">Tom &amp;amp; Jerry</text><text start="1" dur="1"> again </text></transcript>`,
			exp:       "Tom & Jerry again",
		},
		{
			name:   "no captions",
			tracks: func(string) string { return `{"playabilityStatus":{"status":"OK"}}` },
			expErr: fetch.ErrNoCaptions,
		},
		{
			name:   "only other language",
			tracks: singleTrack("de", ""),
			expErr: fetch.ErrNoTrackForLang,
		},
		{
			name: "only browser tracks",
			tracks: func(base string) string {
				return fmt.Sprintf(`{"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[
					{"baseUrl":"%s/api/timedtext?v=x&lang=en&exp=xpe","languageCode":"en"}
				]}}}`, base)
			},
			expErr: fetch.ErrNoTrackForLang,
		},
		{
			name:      "empty track",
			tracks:    singleTrack("en", ""),
			trackBody: "",
			expErr:    fetch.ErrEmptyTranscript,
		},
		{
			name:      "track without fragments",
			tracks:    singleTrack("en", ""),
			trackBody: `{"events":[]}`,
			expErr:    fetch.ErrEmptyTranscript,
		},
		{
			name:        "track not found",
			tracks:      singleTrack("en", ""),
			trackStatus: http.StatusNotFound,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			web := &fakeYoutubeWeb{tracks: tc.tracks, trackStatus: tc.trackStatus, trackBody: tc.trackBody}
			srv := web.server(t)

			tt := fetch.NewTimedText(srv.Client(), srv.URL+"/youtubei/v1/player", "en")
			act, err := tt.FetchTranscript(context.Background(), "dQw4w9WgXcQ")
			assert.Equal(t, "dQw4w9WgXcQ", web.gotVideoID)
			if tc.expErr != nil || tc.trackStatus != 0 {
				assert.Error(t, err)
				if tc.expErr != nil {
					assert.ErrorIs(t, err, tc.expErr)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.exp, act)
			assert.Equal(t, map[string]string{"signature": "abc", "fmt": "json3"}, web.gotTrack)
		})
	}
}

func TestTimedTextPrefersManualTrack(t *testing.T) {
	web := &fakeYoutubeWeb{
		tracks: func(base string) string {
			return fmt.Sprintf(`{"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[
				{"baseUrl":"%[1]s/api/timedtext?lang=en&signature=auto","languageCode":"en","kind":"asr"},
				{"baseUrl":"%[1]s/api/timedtext?lang=en-GB&signature=manual","languageCode":"en-GB"}
			]}}}`, base)
		},
		trackBody: `{"events":[{"segs":[{"utf8":"manual"}]}]}`,
	}
	srv := web.server(t)

	act, err := fetch.NewTimedText(srv.Client(), srv.URL+"/youtubei/v1/player", "en").FetchTranscript(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "manual", act)
	assert.Equal(t, "manual", web.gotTrack["signature"])
}

func TestNormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", fetch.NormalizeWhitespace("  a\t\tb \n\n c  "))
	assert.Equal(t, "", fetch.NormalizeWhitespace(" \n "))
}
