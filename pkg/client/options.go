package client

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/avaricexx/youtube-transcript-downloader/internal/repository"
	"github.com/avaricexx/youtube-transcript-downloader/internal/service"
)

type Option func(*Client)

// WithAPIKey sets the YouTube Data API key used for channel expansion.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithOutputDir changes the directory transcripts are written to.
func WithOutputDir(dir string) Option {
	return func(c *Client) {
		c.outputDir = dir
	}
}

// WithLanguages sets the caption language preference order.
func WithLanguages(langs []string) Option {
	return func(c *Client) {
		if len(langs) > 0 {
			c.languages = langs
		}
	}
}

// WithHTTPClient substitutes the HTTP client used for all upstream calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimiter substitutes the limiter guarding Data API quota.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// WithLogger substitutes the logger.
func WithLogger(log *logrus.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithPageFetcher substitutes the watch-page fetcher (used in tests).
func WithPageFetcher(f repository.PageFetcher) Option {
	return func(c *Client) {
		c.pageFetcher = f
	}
}

// WithMetadataClient substitutes the Data API client (used in tests).
func WithMetadataClient(m repository.MetadataClient) Option {
	return func(c *Client) {
		c.metadata = m
	}
}

// WithWriter substitutes the output sink (used in tests).
func WithWriter(w service.TranscriptWriter) Option {
	return func(c *Client) {
		c.sink = w
	}
}
