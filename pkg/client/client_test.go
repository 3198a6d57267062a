package client

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/avaricexx/youtube-transcript-downloader/internal/repository/fixtures"
	"github.com/avaricexx/youtube-transcript-downloader/pkg/formatters"
)

type captureWriter struct {
	files map[string]string
}

func (w *captureWriter) Write(baseName, extension, content string) error {
	if w.files == nil {
		w.files = map[string]string{}
	}
	w.files[baseName+"."+extension] = content
	return nil
}

const watchPage = `"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[` +
	`{"baseUrl":"http://example.com/track","name":{"simpleText":"English"},"languageCode":"en"}` +
	`]}},"videoDetails":{}`

const trackXML = `<transcript><text start="0" dur="2">hello</text><text start="2" dur="3">world</text></transcript>`

func TestClientRunEndToEnd(t *testing.T) {
	fetcher := &fixtures.MockPageFetcher{}
	fetcher.On("FetchWatchPage", mock.Anything, "abc12345678").
		Return([]byte(watchPage), nil)
	fetcher.On("Fetch", mock.Anything, "http://example.com/track", mock.Anything).
		Return([]byte(trackXML), nil)

	log := logrus.New()
	log.SetOutput(io.Discard)

	sink := &captureWriter{}
	c := New(
		WithPageFetcher(fetcher),
		WithMetadataClient(&fixtures.MockMetadataClient{}),
		WithWriter(sink),
		WithLogger(log),
	)

	report := c.Run(context.Background(), []string{"https://youtu.be/abc12345678"}, formatters.ModePlainText)

	assert.Equal(t, 1, report.Total)
	assert.Equal(t, []string{"abc12345678"}, report.Succeeded)
	assert.Equal(t, "hello\nworld", sink.files["abc12345678.txt"])
	fetcher.AssertExpectations(t)
}

func TestClientDefaults(t *testing.T) {
	c := New()

	assert.Equal(t, "transcripts", c.outputDir)
	assert.Equal(t, []string{"en"}, c.languages)
	assert.NotNil(t, c.pageFetcher)
	assert.NotNil(t, c.metadata)
	assert.NotNil(t, c.sink)
}
