package formatters

import (
	"fmt"
	"math"
	"strings"

	"github.com/avaricexx/youtube-transcript-downloader/pkg/models"
)

// SRTFormatter renders segments as SubRip cues: a 1-based sequence number,
// a start/end timestamp pair and the text, blank-line separated.
type SRTFormatter struct{}

func NewSRTFormatter() *SRTFormatter {
	return &SRTFormatter{}
}

func (f *SRTFormatter) Format(segments []models.TranscriptSegment) (string, error) {
	var sb strings.Builder
	for i, seg := range segments {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%d\n%s --> %s\n%s\n",
			i+1,
			srtTimestamp(seg.Start),
			srtTimestamp(seg.Start+seg.Duration),
			seg.Text,
		)
	}
	return sb.String(), nil
}

func (f *SRTFormatter) Extension() string { return "srt" }

// srtTimestamp renders seconds as HH:MM:SS,mmm. Millisecond arithmetic is
// done in integers to keep the output deterministic.
func srtTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int64(math.Round(seconds * 1000))
	ms := total % 1000
	s := (total / 1000) % 60
	m := (total / 60000) % 60
	h := total / 3600000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}
