package fetch

import (
	"regexp"
	"strings"

	"go-mod.ewintr.nl/vid2blog/model"
)

type idMatcher struct {
	name    string
	pattern *regexp.Regexp
}

// matchers are tried in order, the first one that captures an id wins.
var matchers = []idMatcher{
	{"watch", regexp.MustCompile(`youtube\.com/watch\?(?:.*&)?v=([^?&/#\s]+)`)},
	{"short", regexp.MustCompile(`youtu\.be/([^?&/#\s]+)`)},
	{"embed", regexp.MustCompile(`youtube\.com/embed/([^?&/#\s]+)`)},
	{"shorts", regexp.MustCompile(`youtube\.com/shorts/([^?&/#\s]+)`)},
	{"bare", regexp.MustCompile(`^([a-zA-Z0-9_-]{11})$`)},
}

// ResolveVideoID extracts the video identifier from a watch, short, embed or
// shorts url, or accepts a bare 11 character id.
func ResolveVideoID(input string) (model.VideoID, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}
	for _, m := range matchers {
		if sub := m.pattern.FindStringSubmatch(input); len(sub) == 2 && sub[1] != "" {
			return model.VideoID(sub[1]), true
		}
	}

	return "", false
}
