package vatglasses

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/RealLeviticus/dahextractor/internal/dah"
)

func TestValidateStructuralErrors(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		wantValid bool
		wantError string
	}{
		{
			name:      "all arrays present",
			json:      `{"airspace":[],"positions":[],"airports":[]}`,
			wantValid: true,
		},
		{
			name:      "single array present",
			json:      `{"airspace":[]}`,
			wantValid: true,
		},
		{
			name:      "airspace is not an array",
			json:      `{"airspace":{"id":"A1"}}`,
			wantValid: false,
			wantError: `top-level field "airspace" must be an array`,
		},
		{
			name:      "positions is a string",
			json:      `{"airspace":[],"positions":"nope"}`,
			wantValid: false,
			wantError: `top-level field "positions" must be an array`,
		},
		{
			name:      "no known fields at all",
			json:      `{"metadata":{}}`,
			wantValid: false,
			wantError: "document contains none of the airspace, positions or airports arrays",
		},
		{
			name:      "empty document",
			json:      `{}`,
			wantValid: false,
			wantError: "document contains none of the airspace, positions or airports arrays",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate([]byte(tt.json))
			if result.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v (errors: %v)", result.Valid, tt.wantValid, result.Errors)
			}
			if result.Valid != (len(result.Errors) == 0) {
				t.Error("Valid must mirror an empty Errors slice")
			}
			if tt.wantError != "" && !containsString(result.Errors, tt.wantError) {
				t.Errorf("errors = %v, want %q", result.Errors, tt.wantError)
			}
			if result.Errors == nil || result.Warnings == nil {
				t.Error("Errors and Warnings must be non-nil slices")
			}
		})
	}
}

func TestValidateAirspaceWarnings(t *testing.T) {
	tests := []struct {
		name        string
		json        string
		wantWarning string
	}{
		{
			name:        "missing id",
			json:        `{"airspace":[{"name":"X","boundaries":[{"lat":-33,"lon":148},{"lat":-33.1,"lon":148.1},{"lat":-33.2,"lon":148.2}]}]}`,
			wantWarning: "airspace[0]: missing id",
		},
		{
			name:        "missing name",
			json:        `{"airspace":[{"id":"A1","boundaries":[{"lat":-33,"lon":148},{"lat":-33.1,"lon":148.1},{"lat":-33.2,"lon":148.2}]}]}`,
			wantWarning: "airspace[0]: missing name",
		},
		{
			name:        "no boundaries",
			json:        `{"airspace":[{"id":"A1","name":"X"}]}`,
			wantWarning: "airspace[0]: no boundaries",
		},
		{
			name:        "empty boundaries",
			json:        `{"airspace":[{"id":"A1","name":"X","boundaries":[]}]}`,
			wantWarning: "airspace[0]: no boundaries",
		},
		{
			name:        "degenerate polygon",
			json:        `{"airspace":[{"id":"A1","name":"X","boundaries":[{"lat":-33,"lon":148},{"lat":-34,"lon":149}]}]}`,
			wantWarning: "airspace[0]: boundary has fewer than 3 vertices",
		},
		{
			name:        "latitude out of range",
			json:        `{"airspace":[{"id":"A1","name":"X","boundaries":[{"lat":-133,"lon":148},{"lat":-33.1,"lon":148.1},{"lat":-33.2,"lon":148.2}]}]}`,
			wantWarning: "airspace[0]: boundary vertex 0 outside valid lat/lon range",
		},
		{
			name:        "implausible vertex gap",
			json:        `{"airspace":[{"id":"A1","name":"X","boundaries":[{"lat":-33,"lon":148},{"lat":-33,"lon":168},{"lat":-33.2,"lon":148.2}]}]}`,
			wantWarning: "NM apart",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate([]byte(tt.json))
			if !result.Valid {
				t.Errorf("warnings must not invalidate the document: %v", result.Errors)
			}
			if !containsSubstring(result.Warnings, tt.wantWarning) {
				t.Errorf("warnings = %v, want one containing %q", result.Warnings, tt.wantWarning)
			}
		})
	}
}

func TestValidatePositionAndAirportWarnings(t *testing.T) {
	input := `{
		"positions": [{"name": "No Identity"}],
		"airports": [{"name": "Nowhere"}, {"icao": "YSSY", "coordinates": {"lat": -233, "lon": 151}}]
	}`

	result := Validate([]byte(input))
	if !result.Valid {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}

	for _, want := range []string{
		"positions[0]: missing id",
		"positions[0]: missing callsign",
		"positions[0]: missing frequency",
		"airports[0]: missing ICAO code",
		"airports[0]: missing coordinates",
		"airports[1]: coordinates outside valid lat/lon range",
	} {
		if !containsString(result.Warnings, want) {
			t.Errorf("warnings = %v, missing %q", result.Warnings, want)
		}
	}
}

func TestValidateCleanDocumentHasNoWarnings(t *testing.T) {
	input := `{
		"airspace": [{
			"id": "A1", "name": "Alpha",
			"boundaries": [{"lat":-33,"lon":148},{"lat":-33.1,"lon":148.1},{"lat":-33.2,"lon":148.2}]
		}],
		"positions": [{"id":"P1","callsign":"SY_APP","frequency":"124.400"}],
		"airports": [{"icao":"YSSY","coordinates":{"lat":-33.946,"lon":151.177}}]
	}`

	result := Validate([]byte(input))
	if !result.Valid || len(result.Errors) != 0 || len(result.Warnings) != 0 {
		t.Errorf("result = %+v, want clean", result)
	}
}

// Converted output must validate cleanly, and survive being fed back through
// the JSON parser and converted again.
func TestConvertedOutputRoundTrip(t *testing.T) {
	c := testConverter(t)

	doc := &dah.Document{
		Airspaces: []dah.Airspace{{
			ID:         "YSSY/SYDNEY CTA",
			Name:       "SYDNEY",
			Type:       "CTA",
			UpperLimit: "FL245",
			LowerLimit: "SFC",
			Boundaries: []dah.Coordinate{
				{Latitude: -33.5, Longitude: 148.2},
				{Latitude: -33.6, Longitude: 148.3},
				{Latitude: -33.7, Longitude: 148.2},
			},
		}},
		Positions: []dah.Position{{
			ID: "P1", Callsign: "SY_APP", Frequency: "124.400", Name: "Sydney Approach",
		}},
		Airports: []dah.Airport{{
			ICAO:        "YSSY",
			Coordinates: &dah.Coordinate{Latitude: -33.946, Longitude: 151.177},
		}},
	}

	out := c.Convert(doc, "round-trip")
	result := ValidateOutput(out)
	if !result.Valid || len(result.Warnings) != 0 {
		t.Fatalf("first pass result = %+v, want clean", result)
	}

	reparsed, format, err := dah.Parse(mustMarshal(t, out))
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if format != dah.FormatJSON {
		t.Fatalf("reparse format = %v, want json", format)
	}

	second := c.Convert(reparsed, "round-trip")
	if result := ValidateOutput(second); !result.Valid || len(result.Warnings) != 0 {
		t.Errorf("second pass result = %+v, want clean", result)
	}
	if len(second.Airspace) != 1 || second.Airspace[0].ID != "YSSY/SYDNEY CTA" {
		t.Errorf("second pass airspace = %+v", second.Airspace)
	}
	if second.Airspace[0].Ceiling == nil || second.Airspace[0].Ceiling.Value != 245 {
		t.Errorf("second pass ceiling = %+v", second.Airspace[0].Ceiling)
	}
}

func TestValidateOutputEmptyDocument(t *testing.T) {
	c := testConverter(t)
	result := ValidateOutput(c.Convert(nil, "empty"))
	if !result.Valid || len(result.Warnings) != 0 {
		t.Errorf("empty document result = %+v, want clean", result)
	}
}

func mustMarshal(t *testing.T, out *Output) string {
	t.Helper()
	data, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(data)
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

func containsSubstring(list []string, want string) bool {
	for _, s := range list {
		if strings.Contains(s, want) {
			return true
		}
	}
	return false
}
