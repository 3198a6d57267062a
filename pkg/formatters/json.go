package formatters

import (
	"encoding/json"

	"github.com/avaricexx/youtube-transcript-downloader/pkg/models"
)

// JSONFormatter serializes segments with their timing preserved as discrete
// fields. The output round-trips losslessly through ParseJSON.
type JSONFormatter struct {
	PrettyPrint bool
}

// JSONFormatterOption configures a JSONFormatter.
type JSONFormatterOption func(*JSONFormatter)

// WithPrettyPrint enables indented output.
func WithPrettyPrint(pretty bool) JSONFormatterOption {
	return func(f *JSONFormatter) {
		f.PrettyPrint = pretty
	}
}

func NewJSONFormatter(options ...JSONFormatterOption) *JSONFormatter {
	f := &JSONFormatter{}
	for _, opt := range options {
		opt(f)
	}
	return f
}

func (f *JSONFormatter) Format(segments []models.TranscriptSegment) (string, error) {
	if segments == nil {
		segments = []models.TranscriptSegment{}
	}

	var (
		bytes []byte
		err   error
	)
	if f.PrettyPrint {
		bytes, err = json.MarshalIndent(segments, "", "  ")
	} else {
		bytes, err = json.Marshal(segments)
	}
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (f *JSONFormatter) Extension() string { return "json" }

// ParseJSON restores a segment sequence from JSONFormatter output.
func ParseJSON(data string) ([]models.TranscriptSegment, error) {
	var segments []models.TranscriptSegment
	if err := json.Unmarshal([]byte(data), &segments); err != nil {
		return nil, err
	}
	return segments, nil
}
