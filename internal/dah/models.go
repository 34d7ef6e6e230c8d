package dah

import "fmt"

// Coordinate is one vertex of an airspace lateral boundary, in decimal
// degrees (WGS84). South latitudes and west longitudes are negative.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Airspace is one airspace definition extracted from a DAH document.
// Altitude limits are carried as raw strings; unit and datum resolution
// happens in the VATGlasses converter, not here.
type Airspace struct {
	ID                   string       `json:"id"`
	Name                 string       `json:"name"`
	Type                 string       `json:"type,omitempty"`
	Locations            []string     `json:"locations,omitempty"`
	Boundaries           []Coordinate `json:"boundaries"`
	UpperLimit           string       `json:"upper_limit,omitempty"`
	LowerLimit           string       `json:"lower_limit,omitempty"`
	ControllingAuthority string       `json:"controlling_authority,omitempty"`
	Frequencies          []float64    `json:"frequencies,omitempty"`
	HoursOfOperation     string       `json:"hours_of_operation,omitempty"`
	Conditional          bool         `json:"conditional,omitempty"`
}

// Position is a controller position carried through from CSV/JSON input.
// The Airspace field holds name-based references, never object references.
type Position struct {
	ID          string      `json:"id,omitempty"`
	Callsign    string      `json:"callsign,omitempty"`
	Frequency   string      `json:"frequency,omitempty"`
	Name        string      `json:"name,omitempty"`
	Type        string      `json:"type,omitempty"`
	Coordinates *Coordinate `json:"coordinates,omitempty"`
	Airspace    []string    `json:"airspace,omitempty"`
}

// Airport is an airport record carried through from CSV/JSON input.
type Airport struct {
	ICAO        string      `json:"icao,omitempty"`
	Name        string      `json:"name,omitempty"`
	Coordinates *Coordinate `json:"coordinates,omitempty"`
	Elevation   *int        `json:"elevation,omitempty"`
	Runways     []string    `json:"runways,omitempty"`
}

// Document is the intermediate model produced by every parsing strategy.
// The structured-text and generic strategies only ever populate Airspaces.
type Document struct {
	Airspaces []Airspace `json:"airspaces"`
	Positions []Position `json:"positions,omitempty"`
	Airports  []Airport  `json:"airports,omitempty"`
}

// FormatError indicates input that cannot satisfy the minimum structure of
// its detected format. It is fatal for the current document only; no partial
// output is produced.
type FormatError struct {
	Format Format
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s document: %s", e.Format, e.Reason)
}
