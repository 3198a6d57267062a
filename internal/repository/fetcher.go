package repository

import (
	"context"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const watchPageURL = "https://www.youtube.com/watch?v="

// PageFetcher retrieves YouTube watch pages and caption track documents.
type PageFetcher interface {
	Fetch(ctx context.Context, url string, cookie *http.Cookie) ([]byte, error)
	FetchWatchPage(ctx context.Context, videoID string) ([]byte, error)
}

// HTTPPageFetcher is the production PageFetcher. It sets an English
// Accept-Language header and handles the EU consent interstitial by
// replaying the request with a CONSENT cookie.
type HTTPPageFetcher struct {
	client *http.Client
	log    *logrus.Logger
}

func NewHTTPPageFetcher(client *http.Client, log *logrus.Logger) *HTTPPageFetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPPageFetcher{client: client, log: log}
}

// Fetch GETs url, retrying transient transport failures a bounded number of
// times within the single logical attempt.
func (f *HTTPPageFetcher) Fetch(ctx context.Context, url string, cookie *http.Cookie) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= 3; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create request")
		}
		req.Header.Set("Accept-Language", "en-US")
		if cookie != nil {
			req.AddCookie(cookie)
		}

		resp, err := f.client.Do(req)
		if err != nil {
			lastErr = err
			f.log.WithFields(logrus.Fields{"attempt": attempt, "url": url}).
				WithError(err).Warn("fetch failed")
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			time.Sleep(time.Second)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}
		if resp.StatusCode != http.StatusOK {
			lastErr = errors.Errorf("unexpected status %d", resp.StatusCode)
			f.log.WithFields(logrus.Fields{"attempt": attempt, "status": resp.StatusCode, "url": url}).
				Warn("non-OK response")
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			time.Sleep(time.Second)
			continue
		}
		return body, nil
	}

	return nil, errors.Wrap(lastErr, "failed to fetch after retries")
}

// FetchWatchPage fetches the watch page for videoID, negotiating the consent
// wall if YouTube serves it.
func (f *HTTPPageFetcher) FetchWatchPage(ctx context.Context, videoID string) ([]byte, error) {
	pageURL := watchPageURL + videoID

	body, err := f.Fetch(ctx, pageURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch watch page")
	}

	if consentRequired(body) {
		f.log.WithField("video_id", videoID).Info("consent required, retrying with cookie")
		cookie, err := createConsentCookie(body)
		if err != nil {
			return nil, err
		}
		body, err = f.Fetch(ctx, pageURL, cookie)
		if err != nil {
			return nil, errors.Wrap(err, "failed to fetch watch page after consent")
		}
	}

	return body, nil
}

var (
	consentFormRegex  = regexp.MustCompile(`action="https://consent\.youtube\.com/s`)
	consentValueRegex = regexp.MustCompile(`name="v" value="(.*?)"`)
)

func consentRequired(body []byte) bool {
	return consentFormRegex.Match(body)
}

func createConsentCookie(body []byte) (*http.Cookie, error) {
	match := consentValueRegex.FindSubmatch(body)
	if len(match) < 2 {
		return nil, errors.New("failed to find consent value in page")
	}
	return &http.Cookie{
		Name:   "CONSENT",
		Value:  "YES+" + string(match[1]),
		Domain: ".youtube.com",
	}, nil
}
