// Package dah extracts airspace, position and airport definitions from the
// semi-structured document formats published in a Designated Airspace
// Handbook: row-per-vertex CSV exports, PDF-extracted structured text, JSON
// documents, and free text with nothing but recognizable coordinates in it.
//
// The package is pure: it operates on decoded text handed over by the
// caller and never touches files, sockets or dialogs.
package dah

import "fmt"

// Parse detects the format of text and runs the matching parsing strategy.
// The detected format is returned alongside the document so callers can
// report it.
func Parse(text string) (*Document, Format, error) {
	format := Detect(text)
	doc, err := ParseFormat(text, format)
	return doc, format, err
}

// ParseFormat runs the parsing strategy for an already-known format.
// FormatError is the only failure mode; every other data-quality gap
// degrades to defaults or skipped records.
func ParseFormat(text string, format Format) (*Document, error) {
	switch format {
	case FormatCSV:
		return parseCSV(text)
	case FormatStructuredText:
		return parseStructuredText(text), nil
	case FormatJSON:
		return parseJSONDocument(text), nil
	case FormatGeneric:
		return parseGeneric(text), nil
	default:
		return nil, fmt.Errorf("unknown document format: %d", format)
	}
}
