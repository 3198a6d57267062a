package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/avaricexx/youtube-transcript-downloader/internal/resolver"
	apperrors "github.com/avaricexx/youtube-transcript-downloader/pkg/errors"
	"github.com/avaricexx/youtube-transcript-downloader/pkg/formatters"
	"github.com/avaricexx/youtube-transcript-downloader/pkg/models"
)

// TranscriptWriter hands a formatted transcript to the output sink.
type TranscriptWriter interface {
	Write(baseName, extension, content string) error
}

// BatchService drives the resolve, expand, fetch, format and write
// pipeline over a list of raw inputs, strictly one item at a time. Items
// fail independently; one failure never aborts the batch.
type BatchService struct {
	channels    ChannelLister
	transcripts TranscriptFetcher
	writer      TranscriptWriter
	log         *logrus.Logger
}

func NewBatchService(channels ChannelLister, transcripts TranscriptFetcher, writer TranscriptWriter, log *logrus.Logger) *BatchService {
	return &BatchService{
		channels:    channels,
		transcripts: transcripts,
		writer:      writer,
		log:         log,
	}
}

// Run processes every raw input in order and returns the finalized report.
// Each input, and each video expanded from a channel input, is attempted
// exactly once; duplicates are independent items.
func (s *BatchService) Run(ctx context.Context, inputs []string, mode formatters.Mode) models.BatchReport {
	var report models.BatchReport

	formatter, err := formatters.ForMode(mode)
	if err != nil {
		for _, input := range inputs {
			report.AddFailure(input, string(apperrors.ReasonUnknown))
		}
		return report
	}

	for _, input := range inputs {
		res, err := resolver.Resolve(input)
		if err != nil {
			s.log.WithField("input", input).Info("unresolvable input")
			report.AddFailure(input, string(apperrors.ReasonInvalidReference))
			continue
		}

		if res.IsChannel() {
			s.expandChannel(ctx, input, *res.Channel, formatter, &report)
			continue
		}

		s.processVideo(ctx, *res.Video, formatter, &report)
	}

	return report
}

// expandChannel walks the channel's uploads in yielded order. A listing
// failure stops expansion of this one input and is recorded once, keyed by
// the raw input string.
func (s *BatchService) expandChannel(ctx context.Context, input string, ref models.ChannelReference, formatter formatters.Formatter, report *models.BatchReport) {
	it := s.channels.ListVideos(ctx, ref)
	for {
		video, ok, err := it.Next(ctx)
		if err != nil {
			s.log.WithField("input", input).WithError(err).Warn("channel expansion failed")
			report.AddFailure(input, string(apperrors.ReasonOf(err)))
			return
		}
		if !ok {
			return
		}
		s.processVideo(ctx, video, formatter, report)
	}
}

func (s *BatchService) processVideo(ctx context.Context, ref models.VideoReference, formatter formatters.Formatter, report *models.BatchReport) {
	segments, err := s.transcripts.Fetch(ctx, ref)
	if err != nil {
		s.log.WithField("video_id", ref.VideoID).WithError(err).Warn("transcript fetch failed")
		report.AddFailure(ref.VideoID, string(apperrors.ReasonOf(err)))
		return
	}

	content, err := formatter.Format(segments)
	if err != nil {
		report.AddFailure(ref.VideoID, string(apperrors.ReasonUnknown))
		return
	}

	if err := s.writer.Write(ref.VideoID, formatter.Extension(), content); err != nil {
		s.log.WithField("video_id", ref.VideoID).WithError(err).Error("write failed")
		report.AddFailure(ref.VideoID, string(apperrors.ReasonUnknown))
		return
	}

	s.log.WithField("video_id", ref.VideoID).Info("transcript written")
	report.AddSuccess(ref.VideoID)
}
