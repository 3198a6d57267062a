// Package models holds the data types shared between the resolver, the
// listing and transcript services, the formatters and the batch orchestrator.
package models

import "fmt"

// VideoIDLength is the length of a canonical YouTube video ID.
const VideoIDLength = 11

// VideoReference identifies a single video. Identity is the VideoID;
// SourceURL keeps the raw input it was resolved from.
type VideoReference struct {
	VideoID   string
	SourceURL string
}

// ChannelKind describes which URL form a channel reference came from.
type ChannelKind string

const (
	ChannelKindHandle    ChannelKind = "handle"
	ChannelKindCustomURL ChannelKind = "customUrl"
	ChannelKindChannelID ChannelKind = "channelId"
	ChannelKindUnknown   ChannelKind = "unknown"
)

// ChannelReference identifies a channel. For handle and customUrl kinds the
// Name field holds the not-yet-resolved name and ChannelID stays empty until
// the metadata lookup fills it in.
type ChannelReference struct {
	ChannelID string
	Name      string
	Kind      ChannelKind
	SourceURL string
}

// Resolution is the result of resolving one raw input string. Exactly one of
// Video or Channel is set.
type Resolution struct {
	Video   *VideoReference
	Channel *ChannelReference
}

// IsChannel reports whether the resolution points at a channel.
func (r Resolution) IsChannel() bool { return r.Channel != nil }

// TranscriptSegment is one timed line of a caption track.
type TranscriptSegment struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// BatchFailure records one failed batch item together with its reason.
type BatchFailure struct {
	ID     string
	Reason string
}

// BatchReport accumulates per-item outcomes of a batch run. It is built
// incrementally by the orchestrator and read-only afterwards; Total always
// equals len(Succeeded)+len(Failed).
type BatchReport struct {
	Total     int
	Succeeded []string
	Failed    []BatchFailure
}

// AddSuccess records a successfully processed video.
func (r *BatchReport) AddSuccess(videoID string) {
	r.Total++
	r.Succeeded = append(r.Succeeded, videoID)
}

// AddFailure records a failed item keyed by its identifier (video ID or the
// raw input when resolution or channel expansion failed).
func (r *BatchReport) AddFailure(id, reason string) {
	r.Total++
	r.Failed = append(r.Failed, BatchFailure{ID: id, Reason: reason})
}

// Summary renders the human-readable end-of-batch report.
func (r BatchReport) Summary() string {
	s := fmt.Sprintf("processed %d item(s): %d succeeded, %d failed",
		r.Total, len(r.Succeeded), len(r.Failed))
	for _, f := range r.Failed {
		s += fmt.Sprintf("\n  %s: %s", f.ID, f.Reason)
	}
	return s
}
