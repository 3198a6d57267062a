package fixtures

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/mock"

	"github.com/avaricexx/youtube-transcript-downloader/pkg/models"
)

// MockPageFetcher implements repository.PageFetcher for testing.
type MockPageFetcher struct {
	mock.Mock
}

func (m *MockPageFetcher) Fetch(ctx context.Context, url string, cookie *http.Cookie) ([]byte, error) {
	args := m.Called(ctx, url, cookie)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockPageFetcher) FetchWatchPage(ctx context.Context, videoID string) ([]byte, error) {
	args := m.Called(ctx, videoID)
	return args.Get(0).([]byte), args.Error(1)
}

// MockMetadataClient implements repository.MetadataClient for testing.
type MockMetadataClient struct {
	mock.Mock
}

func (m *MockMetadataClient) LookupChannelID(ctx context.Context, kind models.ChannelKind, name string) (string, error) {
	args := m.Called(ctx, kind, name)
	return args.String(0), args.Error(1)
}

func (m *MockMetadataClient) ListUploads(ctx context.Context, channelID, pageToken string) ([]string, string, error) {
	args := m.Called(ctx, channelID, pageToken)
	return args.Get(0).([]string), args.String(1), args.Error(2)
}
