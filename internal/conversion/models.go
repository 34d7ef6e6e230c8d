// Package conversion orchestrates the document pipeline: detect the
// format, parse, convert to VATGlasses, validate, then persist and cache
// the result for later retrieval.
package conversion

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/RealLeviticus/dahextractor/internal/vatglasses"
)

// ErrNotFound is returned when no conversion record exists for an ID
var ErrNotFound = errors.New("conversion not found")

// Record is the stored provenance of one conversion run. Output holds the
// complete VATGlasses JSON document as produced; it is immutable once
// written.
type Record struct {
	ID            string          `json:"id"`
	Source        string          `json:"source"`
	Format        string          `json:"format"`
	AirspaceCount int             `json:"airspace_count"`
	PositionCount int             `json:"position_count"`
	AirportCount  int             `json:"airport_count"`
	WarningCount  int             `json:"warning_count"`
	Valid         bool            `json:"valid"`
	Output        json.RawMessage `json:"-"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Store persists conversion records. Implemented by the sqlite storage
// layer; the one-shot CLI mode runs without one.
type Store interface {
	SaveConversion(record *Record) error
	GetConversion(id string) (*Record, error)
	ListConversions(limit int) ([]*Record, error)
}

// Request is one document submitted for conversion. Text is the decoded
// document text; binary extraction is the caller's responsibility.
type Request struct {
	Source     string `json:"source"`
	Text       string `json:"text"`
	FormatHint string `json:"format,omitempty"`
}

// Result is the complete outcome of one conversion run
type Result struct {
	Record     *Record
	Output     json.RawMessage
	Validation vatglasses.ValidationResult
}
