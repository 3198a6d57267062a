package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/avaricexx/youtube-transcript-downloader/internal/repository/fixtures"
	apperrors "github.com/avaricexx/youtube-transcript-downloader/pkg/errors"
	"github.com/avaricexx/youtube-transcript-downloader/pkg/models"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

const watchPageWithCaptions = `<html><title>some video</title>` +
	`"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[` +
	`{"baseUrl":"http://example.com/track/en","name":{"simpleText":"English"},"languageCode":"en"},` +
	`{"baseUrl":"http://example.com/track/en-asr","name":{"simpleText":"English (auto)"},"languageCode":"en","kind":"asr"}` +
	`]}},"videoDetails":{"videoId":"abc12345678"}</html>`

const timedTextXML = `<?xml version="1.0" encoding="utf-8" ?><transcript>
	<text start="0" dur="2">hello</text>
	<text start="2" dur="3">world</text>
</transcript>`

func TestFetchSuccess(t *testing.T) {
	fetcher := &fixtures.MockPageFetcher{}
	fetcher.On("FetchWatchPage", mock.Anything, "abc12345678").
		Return([]byte(watchPageWithCaptions), nil)
	fetcher.On("Fetch", mock.Anything, "http://example.com/track/en", mock.Anything).
		Return([]byte(timedTextXML), nil)

	svc := NewTranscriptService(fetcher, []string{"en"}, testLogger())
	segments, err := svc.Fetch(context.Background(), models.VideoReference{VideoID: "abc12345678"})

	assert.NoError(t, err)
	assert.Equal(t, []models.TranscriptSegment{
		{Start: 0, Duration: 2, Text: "hello"},
		{Start: 2, Duration: 3, Text: "world"},
	}, segments)
	fetcher.AssertExpectations(t)
}

func TestFetchPrefersManualTrack(t *testing.T) {
	// The asr track is listed too; the manual "en" track must be chosen.
	fetcher := &fixtures.MockPageFetcher{}
	fetcher.On("FetchWatchPage", mock.Anything, mock.Anything).
		Return([]byte(watchPageWithCaptions), nil)
	fetcher.On("Fetch", mock.Anything, "http://example.com/track/en", mock.Anything).
		Return([]byte(timedTextXML), nil)

	svc := NewTranscriptService(fetcher, []string{"en"}, testLogger())
	_, err := svc.Fetch(context.Background(), models.VideoReference{VideoID: "abc12345678"})

	assert.NoError(t, err)
	fetcher.AssertExpectations(t)
}

func TestFetchFailureMapping(t *testing.T) {
	tests := []struct {
		name           string
		page           string
		expectedReason apperrors.Reason
	}{
		{
			name:           "recaptcha interstitial",
			page:           `<div class="g-recaptcha"></div>`,
			expectedReason: apperrors.ReasonQuotaExceeded,
		},
		{
			name:           "video unavailable",
			page:           `{"someOtherData": true}`,
			expectedReason: apperrors.ReasonNotFound,
		},
		{
			name:           "deleted video",
			page:           `"playabilityStatus":{"status":"ERROR","reason":"Video unavailable"},"miniplayer":{}`,
			expectedReason: apperrors.ReasonNotFound,
		},
		{
			name:           "private video",
			page:           `"playabilityStatus":{"status":"LOGIN_REQUIRED","reason":"This video is private"},"miniplayer":{}`,
			expectedReason: apperrors.ReasonPrivate,
		},
		{
			name:           "unplayable private",
			page:           `"playabilityStatus":{"status":"UNPLAYABLE","reason":"This video is private"},"miniplayer":{}`,
			expectedReason: apperrors.ReasonPrivate,
		},
		{
			name:           "captions disabled",
			page:           `"playabilityStatus":{"status":"OK"},"miniplayer":{}`,
			expectedReason: apperrors.ReasonDisabled,
		},
		{
			name: "empty caption track list",
			page: `"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[]}},"videoDetails":{}` +
				`"playabilityStatus":{"status":"OK"}`,
			expectedReason: apperrors.ReasonDisabled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &fixtures.MockPageFetcher{}
			fetcher.On("FetchWatchPage", mock.Anything, mock.Anything).
				Return([]byte(tt.page), nil)

			svc := NewTranscriptService(fetcher, []string{"en"}, testLogger())
			_, err := svc.Fetch(context.Background(), models.VideoReference{VideoID: "abc12345678"})

			assert.Error(t, err)
			var fe *apperrors.FetchError
			assert.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.expectedReason, fe.Reason)
		})
	}
}

func TestFetchUpstreamTransportFailure(t *testing.T) {
	fetcher := &fixtures.MockPageFetcher{}
	fetcher.On("FetchWatchPage", mock.Anything, mock.Anything).
		Return([]byte(nil), errors.New("connection refused"))

	svc := NewTranscriptService(fetcher, nil, testLogger())
	_, err := svc.Fetch(context.Background(), models.VideoReference{VideoID: "abc12345678"})

	assert.Error(t, err)
	assert.Equal(t, apperrors.ReasonUnknown, apperrors.ReasonOf(err))
}

func TestPickTrack(t *testing.T) {
	asr := "asr"
	tracks := []captionTrack{
		{BaseURL: "u1", LanguageCode: "en", Kind: &asr},
		{BaseURL: "u2", LanguageCode: "de"},
		{BaseURL: "u3", LanguageCode: "en"},
	}

	assert.Equal(t, "u3", pickTrack(tracks, []string{"en"}).BaseURL, "manual track wins over asr")
	assert.Equal(t, "u2", pickTrack(tracks, []string{"de"}).BaseURL)
	assert.Equal(t, "u3", pickTrack(tracks, []string{"fr"}).BaseURL, "falls back to English")
	assert.Equal(t, "u1", pickTrack(tracks[:1], nil).BaseURL, "falls back to first track")
}
