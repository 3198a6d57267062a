package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avaricexx/youtube-transcript-downloader/pkg/models"
)

func TestParseTimedText(t *testing.T) {
	xml := `<?xml version="1.0" encoding="utf-8" ?><transcript>
		<text start="0" dur="1.5">Hello world</text>
		<text start="1.5" dur="2">&amp;amp; so on</text>
		<text start="3.5" dur="0.5">&lt;i&gt;styled&lt;/i&gt; text</text>
	</transcript>`

	segments, err := ParseTimedText([]byte(xml))
	assert.NoError(t, err)
	assert.Equal(t, []models.TranscriptSegment{
		{Start: 0, Duration: 1.5, Text: "Hello world"},
		{Start: 1.5, Duration: 2, Text: "& so on"},
		{Start: 3.5, Duration: 0.5, Text: "styled text"},
	}, segments)
}

func TestParseTimedTextBadTiming(t *testing.T) {
	xml := `<transcript><text start="oops" dur="">text survives</text></transcript>`

	segments, err := ParseTimedText([]byte(xml))
	assert.NoError(t, err)
	assert.Len(t, segments, 1)
	assert.Equal(t, 0.0, segments[0].Start)
	assert.Equal(t, 0.0, segments[0].Duration)
	assert.Equal(t, "text survives", segments[0].Text)
}

func TestParseTimedTextInvalidXML(t *testing.T) {
	_, err := ParseTimedText([]byte("not xml at all <"))
	assert.Error(t, err)
}

func TestParseTimedTextEmptyTranscript(t *testing.T) {
	segments, err := ParseTimedText([]byte("<transcript></transcript>"))
	assert.NoError(t, err)
	assert.Empty(t, segments)
}
