package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/avaricexx/youtube-transcript-downloader/internal/repository"
	apperrors "github.com/avaricexx/youtube-transcript-downloader/pkg/errors"
	"github.com/avaricexx/youtube-transcript-downloader/pkg/models"
)

// ChannelLister expands a channel reference into its uploaded videos.
type ChannelLister interface {
	ListVideos(ctx context.Context, ref models.ChannelReference) *VideoIterator
}

type channelService struct {
	metadata repository.MetadataClient
	log      *logrus.Logger
}

// NewChannelService builds a ChannelLister backed by the Data API metadata
// client.
func NewChannelService(metadata repository.MetadataClient, log *logrus.Logger) *channelService {
	return &channelService{metadata: metadata, log: log}
}

// ListVideos returns a lazy iterator over the channel's uploads in
// upload-recency order as reported upstream. Pages are requested on demand;
// the sequence is restartable only by calling ListVideos again.
func (s *channelService) ListVideos(ctx context.Context, ref models.ChannelReference) *VideoIterator {
	return &VideoIterator{
		svc: s,
		ref: ref,
	}
}

// VideoIterator walks a channel's uploads one video at a time, fetching the
// next page only once the current one is drained.
type VideoIterator struct {
	svc       *channelService
	ref       models.ChannelReference
	channelID string
	buffer    []string
	nextToken string
	started   bool
	exhausted bool
}

// Next yields the next video reference. The second return is false once the
// listing is exhausted; a non-nil error is always an *apperrors.UpstreamError
// and terminates the iteration.
func (it *VideoIterator) Next(ctx context.Context) (models.VideoReference, bool, error) {
	if it.exhausted && len(it.buffer) == 0 {
		return models.VideoReference{}, false, nil
	}

	if !it.started {
		if err := it.start(ctx); err != nil {
			it.exhausted = true
			return models.VideoReference{}, false, err
		}
	}

	for len(it.buffer) == 0 {
		if it.exhausted {
			return models.VideoReference{}, false, nil
		}
		if err := it.fetchPage(ctx); err != nil {
			it.exhausted = true
			return models.VideoReference{}, false, err
		}
	}

	id := it.buffer[0]
	it.buffer = it.buffer[1:]
	return models.VideoReference{
		VideoID:   id,
		SourceURL: "https://www.youtube.com/watch?v=" + id,
	}, true, nil
}

// start resolves handle/custom-name references to a channel ID before the
// first page is requested.
func (it *VideoIterator) start(ctx context.Context) error {
	it.started = true

	switch it.ref.Kind {
	case models.ChannelKindHandle, models.ChannelKindCustomURL:
		id, err := it.svc.metadata.LookupChannelID(ctx, it.ref.Kind, it.ref.Name)
		if err != nil {
			return err
		}
		it.svc.log.WithFields(logrus.Fields{
			"name":       it.ref.Name,
			"channel_id": id,
		}).Info("resolved channel name")
		it.channelID = id
	case models.ChannelKindChannelID:
		it.channelID = it.ref.ChannelID
	default:
		return apperrors.NewUpstreamError(apperrors.ReasonUnknown,
			fmt.Errorf("unresolvable channel reference kind %q", it.ref.Kind))
	}
	return nil
}

func (it *VideoIterator) fetchPage(ctx context.Context) error {
	ids, next, err := it.svc.metadata.ListUploads(ctx, it.channelID, it.nextToken)
	if err != nil {
		return err
	}

	it.buffer = ids
	it.nextToken = next
	if next == "" {
		it.exhausted = true
	}
	return nil
}
