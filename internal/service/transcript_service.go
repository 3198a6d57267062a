// Package service contains the transcript fetcher, the channel video lister
// and the batch orchestrator.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"github.com/avaricexx/youtube-transcript-downloader/internal/repository"
	apperrors "github.com/avaricexx/youtube-transcript-downloader/pkg/errors"
	"github.com/avaricexx/youtube-transcript-downloader/pkg/models"
)

// TranscriptFetcher retrieves the caption track of a single video as timed
// segments. One attempt per call; retry policy belongs to the caller.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, ref models.VideoReference) ([]models.TranscriptSegment, error)
}

type transcriptService struct {
	fetcher   repository.PageFetcher
	languages []string
	log       *logrus.Logger
}

// NewTranscriptService builds a TranscriptFetcher that scrapes the watch
// page for caption tracks, preferring the given language codes in order.
func NewTranscriptService(fetcher repository.PageFetcher, languages []string, log *logrus.Logger) *transcriptService {
	if len(languages) == 0 {
		languages = []string{"en"}
	}
	return &transcriptService{fetcher: fetcher, languages: languages, log: log}
}

// captionTrack mirrors the caption entries of the player response embedded
// in the watch page.
type captionTrack struct {
	BaseURL string `json:"baseUrl"`
	Name    struct {
		SimpleText string `json:"simpleText"`
	} `json:"name"`
	LanguageCode string  `json:"languageCode"`
	Kind         *string `json:"kind"` // "asr" marks auto-generated tracks
}

type captionData struct {
	PlayerCaptionsTracklistRenderer *struct {
		CaptionTracks []captionTrack `json:"captionTracks"`
	} `json:"playerCaptionsTracklistRenderer"`
}

type playabilityStatus struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// Fetch returns the video's transcript segments in upstream order. Every
// failure is a *apperrors.FetchError carrying one of the taxonomy reasons.
func (t *transcriptService) Fetch(ctx context.Context, ref models.VideoReference) ([]models.TranscriptSegment, error) {
	page, err := t.fetcher.FetchWatchPage(ctx, ref.VideoID)
	if err != nil {
		return nil, apperrors.NewFetchError(apperrors.ReasonUnknown, err)
	}

	body := string(page)

	if title := extractTitle(body); title != "" {
		t.log.WithFields(logrus.Fields{"video_id": ref.VideoID, "title": title}).Debug("fetched watch page")
	}

	tracks, err := extractCaptionTracks(body)
	if err != nil {
		return nil, err
	}

	track := pickTrack(tracks, t.languages)

	raw, err := t.fetcher.Fetch(ctx, track.BaseURL, nil)
	if err != nil {
		return nil, apperrors.NewFetchError(apperrors.ReasonUnknown, fmt.Errorf("failed to fetch caption track: %w", err))
	}

	segments, err := repository.ParseTimedText(raw)
	if err != nil {
		return nil, apperrors.NewFetchError(apperrors.ReasonUnknown, fmt.Errorf("failed to parse caption track: %w", err))
	}
	return segments, nil
}

// extractCaptionTracks pulls the caption list out of the watch page HTML and
// classifies the failure modes the page can express.
func extractCaptionTracks(body string) ([]captionTrack, error) {
	parts := strings.Split(body, `"captions":`)
	if len(parts) <= 1 {
		if strings.Contains(body, `class="g-recaptcha"`) {
			return nil, apperrors.NewFetchError(apperrors.ReasonQuotaExceeded, fmt.Errorf("recaptcha interstitial served"))
		}
		if !strings.Contains(body, `"playabilityStatus":`) {
			return nil, apperrors.NewFetchError(apperrors.ReasonNotFound, fmt.Errorf("video unavailable"))
		}
		if reason := classifyPlayability(body); reason != "" {
			return nil, apperrors.NewFetchError(reason, fmt.Errorf("video not playable"))
		}
		return nil, apperrors.NewFetchError(apperrors.ReasonDisabled, fmt.Errorf("no caption data on watch page"))
	}

	captionJSON := strings.ReplaceAll(strings.Split(parts[1], `,"videoDetails`)[0], "\n", "")

	var captions captionData
	if err := json.Unmarshal([]byte(captionJSON), &captions); err != nil {
		return nil, apperrors.NewFetchError(apperrors.ReasonUnknown, fmt.Errorf("failed to decode captions JSON: %w", err))
	}

	if captions.PlayerCaptionsTracklistRenderer == nil || len(captions.PlayerCaptionsTracklistRenderer.CaptionTracks) == 0 {
		return nil, apperrors.NewFetchError(apperrors.ReasonDisabled, fmt.Errorf("no caption tracks available"))
	}
	return captions.PlayerCaptionsTracklistRenderer.CaptionTracks, nil
}

// classifyPlayability maps the watch page playabilityStatus to a failure
// reason; empty when the video is playable.
func classifyPlayability(body string) apperrors.Reason {
	parts := strings.Split(body, `"playabilityStatus":`)
	if len(parts) <= 1 {
		return apperrors.ReasonNotFound
	}
	segment := parts[1]
	if idx := strings.Index(segment, `,"miniplayer`); idx > 0 {
		segment = segment[:idx]
	}

	var status playabilityStatus
	// Best-effort decode of the leading object; the page embeds more keys
	// than the struct, so a decoder is used to stop at the object boundary.
	dec := json.NewDecoder(strings.NewReader(segment))
	if err := dec.Decode(&status); err != nil {
		return apperrors.ReasonUnknown
	}

	switch status.Status {
	case "OK":
		return ""
	case "LOGIN_REQUIRED":
		return apperrors.ReasonPrivate
	case "ERROR":
		return apperrors.ReasonNotFound
	case "UNPLAYABLE":
		if strings.Contains(strings.ToLower(status.Reason), "private") {
			return apperrors.ReasonPrivate
		}
		return apperrors.ReasonNotFound
	default:
		return apperrors.ReasonUnknown
	}
}

// pickTrack chooses the caption track to fetch: a manual track in a
// preferred language, then an auto-generated one, then any English track,
// then the first track.
func pickTrack(tracks []captionTrack, langs []string) captionTrack {
	for _, lang := range langs {
		for _, tr := range tracks {
			if tr.LanguageCode == lang && (tr.Kind == nil || *tr.Kind != "asr") {
				return tr
			}
		}
	}
	for _, lang := range langs {
		for _, tr := range tracks {
			if tr.LanguageCode == lang {
				return tr
			}
		}
	}
	for _, tr := range tracks {
		if strings.HasPrefix(tr.LanguageCode, "en") {
			return tr
		}
	}
	return tracks[0]
}

func extractTitle(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil {
				title = n.FirstChild.Data
				return
			}
		}
		for c := n.FirstChild; c != nil && title == ""; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return title
}
