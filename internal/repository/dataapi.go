package repository

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	apperrors "github.com/avaricexx/youtube-transcript-downloader/pkg/errors"
	"github.com/avaricexx/youtube-transcript-downloader/pkg/models"
)

const (
	dataAPIBaseURL  = "https://www.googleapis.com/youtube/v3"
	uploadsPageSize = "50" // the Data API's own per-page maximum
)

// MetadataClient exposes the quota-limited YouTube Data API operations the
// channel lister needs.
type MetadataClient interface {
	// LookupChannelID resolves a handle or legacy custom name to a channel ID.
	LookupChannelID(ctx context.Context, kind models.ChannelKind, name string) (string, error)
	// ListUploads returns one page of upload video IDs for a channel in
	// upload-recency order, plus the continuation token for the next page
	// (empty when the listing is exhausted).
	ListUploads(ctx context.Context, channelID, pageToken string) ([]string, string, error)
}

// DataAPIClient talks to the YouTube Data API v3. All calls pass through a
// shared rate limiter: quota is a global resource and uncoordinated bursts
// exhaust it.
type DataAPIClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	log     *logrus.Logger
}

func NewDataAPIClient(apiKey string, client *http.Client, limiter *rate.Limiter, log *logrus.Logger) *DataAPIClient {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Every(time.Second), 5)
	}
	return &DataAPIClient{
		apiKey:  apiKey,
		baseURL: dataAPIBaseURL,
		client:  client,
		limiter: limiter,
		log:     log,
	}
}

// apiError mirrors the Data API error envelope.
type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

type channelListResponse struct {
	Items []struct {
		ID             string `json:"id"`
		ContentDetails struct {
			RelatedPlaylists struct {
				Uploads string `json:"uploads"`
			} `json:"relatedPlaylists"`
		} `json:"contentDetails"`
	} `json:"items"`
}

type playlistItemsResponse struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		ContentDetails struct {
			VideoID string `json:"videoId"`
		} `json:"contentDetails"`
	} `json:"items"`
}

func (c *DataAPIClient) LookupChannelID(ctx context.Context, kind models.ChannelKind, name string) (string, error) {
	params := url.Values{"part": {"id"}}
	switch kind {
	case models.ChannelKindHandle:
		params.Set("forHandle", strings.TrimPrefix(name, "@"))
	case models.ChannelKindCustomURL:
		params.Set("forUsername", name)
	default:
		params.Set("id", name)
	}

	var resp channelListResponse
	if err := c.get(ctx, "/channels", params, &resp); err != nil {
		return "", err
	}
	if len(resp.Items) == 0 {
		return "", apperrors.NewUpstreamError(apperrors.ReasonNotFound,
			errors.Errorf("no channel found for %s %q", kind, name))
	}
	return resp.Items[0].ID, nil
}

func (c *DataAPIClient) ListUploads(ctx context.Context, channelID, pageToken string) ([]string, string, error) {
	playlistID, err := c.uploadsPlaylistID(ctx, channelID)
	if err != nil {
		return nil, "", err
	}

	params := url.Values{
		"part":       {"contentDetails"},
		"playlistId": {playlistID},
		"maxResults": {uploadsPageSize},
	}
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	var resp playlistItemsResponse
	if err := c.get(ctx, "/playlistItems", params, &resp); err != nil {
		return nil, "", err
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ContentDetails.VideoID != "" {
			ids = append(ids, item.ContentDetails.VideoID)
		}
	}
	return ids, resp.NextPageToken, nil
}

// uploadsPlaylistID derives the channel's uploads playlist. Channel IDs of
// the canonical UC… form map directly to their UU… playlist without
// spending quota on a channels.list call.
func (c *DataAPIClient) uploadsPlaylistID(ctx context.Context, channelID string) (string, error) {
	if strings.HasPrefix(channelID, "UC") {
		return "UU" + channelID[2:], nil
	}

	var resp channelListResponse
	params := url.Values{"part": {"contentDetails"}, "id": {channelID}}
	if err := c.get(ctx, "/channels", params, &resp); err != nil {
		return "", err
	}
	if len(resp.Items) == 0 {
		return "", apperrors.NewUpstreamError(apperrors.ReasonNotFound,
			errors.Errorf("channel %q not found", channelID))
	}
	return resp.Items[0].ContentDetails.RelatedPlaylists.Uploads, nil
}

func (c *DataAPIClient) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return apperrors.NewUpstreamError(apperrors.ReasonUnknown, err)
	}

	params.Set("key", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return apperrors.NewUpstreamError(apperrors.ReasonUnknown, errors.Wrap(err, "failed to create request"))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return apperrors.NewUpstreamError(apperrors.ReasonUnknown, errors.Wrapf(err, "GET %s", path))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
	if err != nil {
		return apperrors.NewUpstreamError(apperrors.ReasonUnknown, errors.Wrap(err, "failed to read response"))
	}

	if resp.StatusCode != http.StatusOK {
		return c.classifyError(path, resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.NewUpstreamError(apperrors.ReasonUnknown, errors.Wrap(err, "failed to decode response"))
	}
	return nil
}

func (c *DataAPIClient) classifyError(path string, status int, body []byte) error {
	var envelope apiError
	reason := ""
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Error.Errors) > 0 {
		reason = envelope.Error.Errors[0].Reason
	}

	c.log.WithFields(logrus.Fields{
		"path":   path,
		"status": status,
		"reason": reason,
	}).Warn("data API request failed")

	switch {
	case reason == "quotaExceeded" || reason == "rateLimitExceeded" || status == http.StatusTooManyRequests:
		return apperrors.NewUpstreamError(apperrors.ReasonQuotaExceeded,
			errors.Errorf("quota exhausted (%s)", reason))
	case status == http.StatusNotFound:
		return apperrors.NewUpstreamError(apperrors.ReasonNotFound,
			errors.Errorf("%s returned 404", path))
	default:
		return apperrors.NewUpstreamError(apperrors.ReasonUnknown,
			errors.Errorf("%s returned status %d: %s", path, status, envelope.Error.Message))
	}
}
