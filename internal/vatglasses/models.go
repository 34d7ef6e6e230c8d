// Package vatglasses re-expresses the intermediate DAH model as the JSON
// interchange schema consumed by the VATGlasses ATC display, and provides a
// non-throwing validation pass over documents in that schema.
package vatglasses

// Altitude units and reference datums used in normalized limits.
const (
	UnitFL = "FL" // flight level, hundreds of feet
	UnitFT = "FT" // feet

	RefSTD  = "STD"  // standard pressure datum
	RefAGL  = "AGL"  // above ground level
	RefAMSL = "AMSL" // above mean sea level
)

// Point is a lat/lon pair in decimal degrees, rounded to 6 decimal places
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Altitude is a normalized vertical limit
type Altitude struct {
	Value     int    `json:"value"`
	Unit      string `json:"unit"`
	Reference string `json:"reference"`
}

// Airspace is one airspace volume in the output schema
type Airspace struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Class       string    `json:"class,omitempty"`
	Ceiling     *Altitude `json:"ceiling,omitempty"`
	Floor       *Altitude `json:"floor,omitempty"`
	Boundaries  []Point   `json:"boundaries"`
	Conditional bool      `json:"conditional,omitempty"`
	Frequency   string    `json:"frequency,omitempty"`
}

// Position is one controller position in the output schema. Airspace holds
// id references, not embedded objects.
type Position struct {
	ID          string   `json:"id"`
	Callsign    string   `json:"callsign"`
	Frequency   string   `json:"frequency"`
	Name        string   `json:"name"`
	Type        string   `json:"type,omitempty"`
	Coordinates *Point   `json:"coordinates,omitempty"`
	Airspace    []string `json:"airspace,omitempty"`
}

// Airport is one airport in the output schema
type Airport struct {
	ICAO        string   `json:"icao"`
	Name        string   `json:"name"`
	Coordinates Point    `json:"coordinates"`
	Elevation   *int     `json:"elevation,omitempty"`
	Runways     []string `json:"runways,omitempty"`
	Ownership   []string `json:"ownership,omitempty"`
}

// Metadata describes the provenance of one conversion run
type Metadata struct {
	GeneratedAt string `json:"generatedAt"`
	Source      string `json:"source"`
	Version     string `json:"version"`
}

// Output is the complete VATGlasses document. The three top-level arrays
// are always present, possibly empty; the document is immutable once
// produced.
type Output struct {
	Airspace  []Airspace `json:"airspace"`
	Positions []Position `json:"positions"`
	Airports  []Airport  `json:"airports"`
	Metadata  Metadata   `json:"metadata"`
}

// SchemaVersion is the version stamped into output metadata
const SchemaVersion = "1.0"
