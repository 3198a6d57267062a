package repository

import (
	"encoding/xml"
	"html"
	"regexp"
	"strconv"

	"github.com/avaricexx/youtube-transcript-downloader/pkg/models"
)

var htmlTagRegex = regexp.MustCompile(`(?i)<[^>]*>`)

// ParseTimedText extracts timed segments from a YouTube timedtext XML
// document. Segment order follows the document; timing attributes that fail
// to parse fall back to zero rather than dropping the line.
func ParseTimedText(data []byte) ([]models.TranscriptSegment, error) {
	type xmlTranscript struct {
		XMLName xml.Name `xml:"transcript"`
		Texts   []struct {
			Text     string `xml:",chardata"`
			Start    string `xml:"start,attr"`
			Duration string `xml:"dur,attr"`
		} `xml:"text"`
	}

	var parsed xmlTranscript
	if err := xml.Unmarshal(data, &parsed); err != nil {
		return nil, err
	}

	segments := make([]models.TranscriptSegment, 0, len(parsed.Texts))
	for _, entry := range parsed.Texts {
		text := htmlTagRegex.ReplaceAllString(entry.Text, "")
		text = html.UnescapeString(text)

		start, err := strconv.ParseFloat(entry.Start, 64)
		if err != nil {
			start = 0.0
		}
		duration, err := strconv.ParseFloat(entry.Duration, 64)
		if err != nil {
			duration = 0.0
		}

		segments = append(segments, models.TranscriptSegment{
			Start:    start,
			Duration: duration,
			Text:     text,
		})
	}
	return segments, nil
}
