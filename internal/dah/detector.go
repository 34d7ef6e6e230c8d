package dah

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Format identifies the layout of a raw DAH document.
type Format int

const (
	// FormatGeneric is the fallback for documents with no recognizable structure
	FormatGeneric Format = iota
	// FormatCSV is a row-per-vertex CSV export with a header row
	FormatCSV
	// FormatStructuredText is PDF-extracted text with titled record blocks
	FormatStructuredText
	// FormatJSON is a JSON document carrying airspace/position/airport records
	FormatJSON
)

// String returns the wire name of the format
func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatStructuredText:
		return "structured-text"
	case FormatJSON:
		return "json"
	default:
		return "generic"
	}
}

// Markers whose presence anywhere in the document indicates the structured
// text layout. Checked after the JSON and CSV fast paths.
var structuredTextMarkers = []string{
	"AIRSPACE",
	"Airspace",
	"UPPER LIMIT",
	"LOWER LIMIT",
	"LATERAL LIMITS",
	"VERTICAL LIMITS",
}

// Detect classifies raw document text into one of the four supported
// formats. It is a total, pure function: any input yields a format, and
// malformed JSON that merely starts with '{' or '[' falls through to the
// later rules instead of erroring.
func Detect(text string) Format {
	trimmed := strings.TrimSpace(text)

	// JSON fast path: must both look like JSON and actually parse as JSON
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		if gjson.Valid(trimmed) {
			return FormatJSON
		}
	}

	// CSV: a comma-bearing header line naming a recognizable column
	lines := strings.Split(text, "\n")
	if len(lines) >= 2 && strings.Contains(lines[0], ",") {
		header := strings.ToLower(lines[0])
		if strings.Contains(header, "airspace") ||
			strings.Contains(header, "latitude") ||
			strings.Contains(header, "name") {
			return FormatCSV
		}
	}

	for _, marker := range structuredTextMarkers {
		if strings.Contains(text, marker) {
			return FormatStructuredText
		}
	}

	return FormatGeneric
}

// HintFormat maps a caller-supplied source hint (file extension or MIME-ish
// tag) to a format. Text-like hints return false so content detection still
// decides between structured text and the generic fallback.
func HintFormat(hint string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(hint)) {
	case "csv":
		return FormatCSV, true
	case "json":
		return FormatJSON, true
	default:
		return FormatGeneric, false
	}
}
