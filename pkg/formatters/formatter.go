// Package formatters renders transcript segment sequences into the
// supported output encodings. All formatters are pure and deterministic.
package formatters

import (
	"fmt"

	"github.com/avaricexx/youtube-transcript-downloader/pkg/models"
)

// Formatter converts a segment sequence into one output encoding.
type Formatter interface {
	// Format renders the segments. Same input always yields byte-identical
	// output.
	Format(segments []models.TranscriptSegment) (string, error)
	// Extension is the file extension for outputs of this formatter,
	// without the leading dot.
	Extension() string
}

// Mode selects an output encoding.
type Mode string

const (
	ModeStructured Mode = "json"
	ModePlainText  Mode = "text"
	ModeSubtitle   Mode = "srt"
)

// ForMode returns the formatter implementing the given mode.
func ForMode(mode Mode) (Formatter, error) {
	switch mode {
	case ModeStructured:
		return NewJSONFormatter(), nil
	case ModePlainText:
		return NewTextFormatter(), nil
	case ModeSubtitle:
		return NewSRTFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output mode %q", mode)
	}
}
