package formatters

import (
	"strings"

	"github.com/avaricexx/youtube-transcript-downloader/pkg/models"
)

// TextFormatter concatenates segment texts, one per line, discarding all
// timing. The conversion is lossy and one-directional.
type TextFormatter struct{}

func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

func (f *TextFormatter) Format(segments []models.TranscriptSegment) (string, error) {
	lines := make([]string, len(segments))
	for i, seg := range segments {
		lines[i] = seg.Text
	}
	return strings.Join(lines, "\n"), nil
}

func (f *TextFormatter) Extension() string { return "txt" }
