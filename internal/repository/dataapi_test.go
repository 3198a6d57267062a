package repository

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	apperrors "github.com/avaricexx/youtube-transcript-downloader/pkg/errors"
	"github.com/avaricexx/youtube-transcript-downloader/pkg/models"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *DataAPIClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewDataAPIClient("test-key", server.Client(),
		rate.NewLimiter(rate.Every(time.Microsecond), 100), testLogger())
	client.baseURL = server.URL
	return client
}

func TestLookupChannelIDByHandle(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/channels", r.URL.Path)
		assert.Equal(t, "creator", r.URL.Query().Get("forHandle"), "leading @ is stripped")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Write([]byte(`{"items":[{"id":"UCxyz"}]}`))
	})

	id, err := client.LookupChannelID(context.Background(), models.ChannelKindHandle, "@creator")
	assert.NoError(t, err)
	assert.Equal(t, "UCxyz", id)
}

func TestLookupChannelIDByCustomName(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "somecreator", r.URL.Query().Get("forUsername"))
		w.Write([]byte(`{"items":[{"id":"UCabc"}]}`))
	})

	id, err := client.LookupChannelID(context.Background(), models.ChannelKindCustomURL, "somecreator")
	assert.NoError(t, err)
	assert.Equal(t, "UCabc", id)
}

func TestLookupChannelIDMiss(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[]}`))
	})

	_, err := client.LookupChannelID(context.Background(), models.ChannelKindHandle, "@ghost")
	assert.Error(t, err)
	assert.Equal(t, apperrors.ReasonNotFound, apperrors.ReasonOf(err))
}

func TestListUploadsPaging(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/playlistItems", r.URL.Path)
		assert.Equal(t, "UUxyz", r.URL.Query().Get("playlistId"), "UC channel maps to UU playlist")
		assert.Equal(t, "50", r.URL.Query().Get("maxResults"))

		if r.URL.Query().Get("pageToken") == "" {
			w.Write([]byte(`{"nextPageToken":"tok2","items":[
				{"contentDetails":{"videoId":"v1"}},
				{"contentDetails":{"videoId":"v2"}}]}`))
			return
		}
		w.Write([]byte(`{"items":[{"contentDetails":{"videoId":"v3"}}]}`))
	})

	ids, next, err := client.ListUploads(context.Background(), "UCxyz", "")
	assert.NoError(t, err)
	assert.Equal(t, []string{"v1", "v2"}, ids)
	assert.Equal(t, "tok2", next)

	ids, next, err = client.ListUploads(context.Background(), "UCxyz", "tok2")
	assert.NoError(t, err)
	assert.Equal(t, []string{"v3"}, ids)
	assert.Empty(t, next)
}

func TestQuotaExceededClassification(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"quota","errors":[{"reason":"quotaExceeded"}]}}`))
	})

	_, _, err := client.ListUploads(context.Background(), "UCxyz", "")
	assert.Error(t, err)
	assert.Equal(t, apperrors.ReasonQuotaExceeded, apperrors.ReasonOf(err))
}

func TestNotFoundClassification(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"code":404,"message":"not found"}}`))
	})

	_, err := client.LookupChannelID(context.Background(), models.ChannelKindChannelID, "UCmissing")
	assert.Error(t, err)
	assert.Equal(t, apperrors.ReasonNotFound, apperrors.ReasonOf(err))
}

func TestUnknownUpstreamFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`boom`))
	})

	_, _, err := client.ListUploads(context.Background(), "UCxyz", "")
	assert.Error(t, err)
	assert.Equal(t, apperrors.ReasonUnknown, apperrors.ReasonOf(err))
}
