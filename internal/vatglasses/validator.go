package vatglasses

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/RealLeviticus/dahextractor/internal/geo"
)

// Boundary vertices further apart than this are almost always the product
// of a mis-parsed fixed-width DMS block, not a real airspace edge.
const maxVertexGapNM = 500.0

// ValidationResult partitions findings into structural errors and advisory
// warnings. It is data, never a raised error; Valid is true iff Errors is
// empty.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Validate inspects a VATGlasses JSON document and reports structural
// errors and per-record warnings without mutating or rejecting it. Errors
// cover only structural violations: a present top-level field that is not
// an array, or the total absence of all three. Everything else is advisory.
func Validate(data []byte) ValidationResult {
	errors := []string{}
	warnings := []string{}

	root := gjson.ParseBytes(data)

	present := 0
	for _, field := range []string{"airspace", "positions", "airports"} {
		value := root.Get(field)
		if !value.Exists() {
			continue
		}
		present++
		if !value.IsArray() {
			errors = append(errors, fmt.Sprintf("top-level field %q must be an array", field))
		}
	}
	if present == 0 {
		errors = append(errors, "document contains none of the airspace, positions or airports arrays")
	}

	for i, airspace := range root.Get("airspace").Array() {
		warnings = append(warnings, validateAirspace(i, airspace)...)
	}
	for i, position := range root.Get("positions").Array() {
		warnings = append(warnings, validatePosition(i, position)...)
	}
	for i, airport := range root.Get("airports").Array() {
		warnings = append(warnings, validateAirport(i, airport)...)
	}

	return ValidationResult{
		Valid:    len(errors) == 0,
		Errors:   errors,
		Warnings: warnings,
	}
}

// ValidateOutput validates an in-memory output document by serializing it
// through the same path as persisted results
func ValidateOutput(out *Output) ValidationResult {
	data, err := json.Marshal(out)
	if err != nil {
		return ValidationResult{
			Valid:    false,
			Errors:   []string{fmt.Sprintf("output is not serializable: %v", err)},
			Warnings: []string{},
		}
	}
	return Validate(data)
}

func validateAirspace(i int, airspace gjson.Result) []string {
	var warnings []string

	if airspace.Get("id").String() == "" {
		warnings = append(warnings, fmt.Sprintf("airspace[%d]: missing id", i))
	}
	if airspace.Get("name").String() == "" {
		warnings = append(warnings, fmt.Sprintf("airspace[%d]: missing name", i))
	}

	boundaries := airspace.Get("boundaries")
	if !boundaries.Exists() || len(boundaries.Array()) == 0 {
		warnings = append(warnings, fmt.Sprintf("airspace[%d]: no boundaries", i))
		return warnings
	}

	vertices := boundaries.Array()
	if len(vertices) < 3 {
		warnings = append(warnings, fmt.Sprintf("airspace[%d]: boundary has fewer than 3 vertices", i))
	}

	for j, vertex := range vertices {
		lat := vertex.Get("lat").Float()
		lon := vertex.Get("lon").Float()
		if !geo.ValidLatLon(lat, lon) {
			warnings = append(warnings, fmt.Sprintf("airspace[%d]: boundary vertex %d outside valid lat/lon range", i, j))
			continue
		}
		if j > 0 {
			prev := vertices[j-1]
			gap := geo.DistanceNM(prev.Get("lat").Float(), prev.Get("lon").Float(), lat, lon)
			if gap > maxVertexGapNM {
				warnings = append(warnings, fmt.Sprintf("airspace[%d]: boundary vertices %d-%d are %.0f NM apart", i, j-1, j, gap))
			}
		}
	}

	return warnings
}

func validatePosition(i int, position gjson.Result) []string {
	var warnings []string

	if position.Get("id").String() == "" {
		warnings = append(warnings, fmt.Sprintf("positions[%d]: missing id", i))
	}
	if position.Get("callsign").String() == "" {
		warnings = append(warnings, fmt.Sprintf("positions[%d]: missing callsign", i))
	}
	if position.Get("frequency").String() == "" {
		warnings = append(warnings, fmt.Sprintf("positions[%d]: missing frequency", i))
	}

	return warnings
}

func validateAirport(i int, airport gjson.Result) []string {
	var warnings []string

	if airport.Get("icao").String() == "" {
		warnings = append(warnings, fmt.Sprintf("airports[%d]: missing ICAO code", i))
	}
	coords := airport.Get("coordinates")
	if !coords.Exists() {
		warnings = append(warnings, fmt.Sprintf("airports[%d]: missing coordinates", i))
	} else if !geo.ValidLatLon(coords.Get("lat").Float(), coords.Get("lon").Float()) {
		warnings = append(warnings, fmt.Sprintf("airports[%d]: coordinates outside valid lat/lon range", i))
	}

	return warnings
}
