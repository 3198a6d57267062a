// Package client is the embeddable facade over the transcript pipeline:
// it wires the upstream clients, the services and the file writer, and runs
// batches.
package client

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/avaricexx/youtube-transcript-downloader/internal/repository"
	"github.com/avaricexx/youtube-transcript-downloader/internal/service"
	"github.com/avaricexx/youtube-transcript-downloader/internal/writer"
	"github.com/avaricexx/youtube-transcript-downloader/pkg/formatters"
	"github.com/avaricexx/youtube-transcript-downloader/pkg/models"
)

type Client struct {
	apiKey     string
	outputDir  string
	languages  []string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *logrus.Logger

	pageFetcher repository.PageFetcher
	metadata    repository.MetadataClient
	sink        service.TranscriptWriter
}

// New assembles a Client. Zero options gives a working downloader writing
// into ./transcripts; channel expansion additionally needs WithAPIKey.
func New(options ...Option) *Client {
	c := &Client{
		outputDir:  "transcripts",
		languages:  []string{"en"},
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(time.Second), 5),
		log:        logrus.New(),
	}

	for _, opt := range options {
		opt(c)
	}

	if c.pageFetcher == nil {
		c.pageFetcher = repository.NewHTTPPageFetcher(c.httpClient, c.log)
	}
	if c.metadata == nil {
		c.metadata = repository.NewDataAPIClient(c.apiKey, c.httpClient, c.limiter, c.log)
	}
	if c.sink == nil {
		c.sink = writer.NewFileWriter(c.outputDir)
	}

	return c
}

// Run resolves, expands, fetches, formats and writes every input, returning
// the per-item report. Inputs are processed sequentially in order.
func (c *Client) Run(ctx context.Context, inputs []string, mode formatters.Mode) models.BatchReport {
	transcripts := service.NewTranscriptService(c.pageFetcher, c.languages, c.log)
	channels := service.NewChannelService(c.metadata, c.log)
	batch := service.NewBatchService(channels, transcripts, c.sink, c.log)
	return batch.Run(ctx, inputs, mode)
}
