// Package resolver normalizes raw YouTube URLs and bare IDs into typed
// video or channel references.
package resolver

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	apperrors "github.com/avaricexx/youtube-transcript-downloader/pkg/errors"
	"github.com/avaricexx/youtube-transcript-downloader/pkg/models"
)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// matcher tries to turn a parsed URL into a resolution. Matchers are tried
// in priority order; the first hit wins.
type matcher struct {
	name    string
	resolve func(u *url.URL, raw string) (models.Resolution, bool)
}

var matchers = []matcher{
	{"watch", matchWatch},
	{"shortlink", matchShortLink},
	{"channel", matchChannelID},
	{"handle", matchHandle},
	{"customUrl", matchCustomURL},
}

// Resolve parses an arbitrary YouTube URL or bare ID string. Every failure
// path returns ErrInvalidReference; it never panics on malformed input.
func Resolve(input string) (models.Resolution, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return models.Resolution{}, fmt.Errorf("empty input: %w", apperrors.ErrInvalidReference)
	}

	if videoIDPattern.MatchString(trimmed) {
		return videoResolution(trimmed, input), nil
	}

	u, err := url.Parse(normalizeScheme(trimmed))
	if err != nil || !isYouTubeHost(u.Host) {
		return models.Resolution{}, fmt.Errorf("unrecognized input %q: %w", trimmed, apperrors.ErrInvalidReference)
	}

	for _, m := range matchers {
		if res, ok := m.resolve(u, input); ok {
			return res, nil
		}
	}
	return models.Resolution{}, fmt.Errorf("unrecognized youtube URL %q: %w", trimmed, apperrors.ErrInvalidReference)
}

func normalizeScheme(s string) string {
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return s
	}
	return "https://" + s
}

func isYouTubeHost(host string) bool {
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	host = strings.TrimPrefix(host, "m.")
	switch host {
	case "youtube.com", "music.youtube.com", "youtu.be":
		return true
	}
	return false
}

func videoResolution(id, raw string) models.Resolution {
	return models.Resolution{Video: &models.VideoReference{VideoID: id, SourceURL: raw}}
}

// firstSegment returns the leading path segment of s, ignoring any trailing
// sub-paths like /videos or /about.
func firstSegment(s string) string {
	s = strings.Trim(s, "/")
	if idx := strings.Index(s, "/"); idx >= 0 {
		return s[:idx]
	}
	return s
}

// matchWatch handles /watch?v=<id>, /shorts/<id> and /embed/<id> forms.
func matchWatch(u *url.URL, raw string) (models.Resolution, bool) {
	if strings.HasSuffix(u.Host, "youtu.be") {
		return models.Resolution{}, false
	}
	var id string
	switch {
	case u.Path == "/watch":
		id = u.Query().Get("v")
	case strings.HasPrefix(u.Path, "/shorts/"):
		id = strings.TrimPrefix(u.Path, "/shorts/")
	case strings.HasPrefix(u.Path, "/embed/"):
		id = strings.TrimPrefix(u.Path, "/embed/")
	default:
		return models.Resolution{}, false
	}
	id = strings.Trim(id, "/")
	if !videoIDPattern.MatchString(id) {
		return models.Resolution{}, false
	}
	return videoResolution(id, raw), true
}

// matchShortLink handles youtu.be/<id>.
func matchShortLink(u *url.URL, raw string) (models.Resolution, bool) {
	if !strings.HasSuffix(strings.TrimPrefix(strings.ToLower(u.Host), "www."), "youtu.be") {
		return models.Resolution{}, false
	}
	id := strings.Trim(u.Path, "/")
	if !videoIDPattern.MatchString(id) {
		return models.Resolution{}, false
	}
	return videoResolution(id, raw), true
}

func matchChannelID(u *url.URL, raw string) (models.Resolution, bool) {
	if !strings.HasPrefix(u.Path, "/channel/") {
		return models.Resolution{}, false
	}
	id := firstSegment(strings.TrimPrefix(u.Path, "/channel/"))
	if id == "" {
		return models.Resolution{}, false
	}
	return models.Resolution{Channel: &models.ChannelReference{
		ChannelID: id,
		Kind:      models.ChannelKindChannelID,
		SourceURL: raw,
	}}, true
}

func matchHandle(u *url.URL, raw string) (models.Resolution, bool) {
	if !strings.HasPrefix(u.Path, "/@") {
		return models.Resolution{}, false
	}
	name := firstSegment(u.Path)
	if len(name) < 2 {
		return models.Resolution{}, false
	}
	return models.Resolution{Channel: &models.ChannelReference{
		Name:      name,
		Kind:      models.ChannelKindHandle,
		SourceURL: raw,
	}}, true
}

func matchCustomURL(u *url.URL, raw string) (models.Resolution, bool) {
	var name string
	switch {
	case strings.HasPrefix(u.Path, "/c/"):
		name = strings.TrimPrefix(u.Path, "/c/")
	case strings.HasPrefix(u.Path, "/user/"):
		name = strings.TrimPrefix(u.Path, "/user/")
	default:
		return models.Resolution{}, false
	}
	name = firstSegment(name)
	if name == "" {
		return models.Resolution{}, false
	}
	return models.Resolution{Channel: &models.ChannelReference{
		Name:      name,
		Kind:      models.ChannelKindCustomURL,
		SourceURL: raw,
	}}, true
}
