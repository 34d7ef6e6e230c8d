package dah

import (
	"math"
	"testing"
)

const coordEpsilon = 1e-6

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

func TestParseCoordinateDecimal(t *testing.T) {
	tests := []struct {
		token string
		hint  string
		want  float64
	}{
		{token: "-33.5", want: -33.5},
		{token: "148.2", want: 148.2},
		{token: "0", want: 0},
		{token: "90", want: 90},
		{token: "33.5", hint: "S", want: -33.5},
		{token: "148.2", hint: "W", want: -148.2},
		{token: "33.5", hint: "N", want: 33.5},
	}

	for _, tt := range tests {
		t.Run(tt.token+"/"+tt.hint, func(t *testing.T) {
			if got := ParseCoordinate(tt.token, tt.hint); !almostEqual(got, tt.want, coordEpsilon) {
				t.Errorf("ParseCoordinate(%q, %q) = %v, want %v", tt.token, tt.hint, got, tt.want)
			}
		})
	}
}

func TestParseCoordinateMarkedDMS(t *testing.T) {
	tests := []struct {
		token string
		want  float64
	}{
		{token: `33°22'22.5"S`, want: -(33 + 22.0/60 + 22.5/3600)},
		{token: `148°22'22.7"E`, want: 148 + 22.0/60 + 22.7/3600},
		{token: "33 22 22.5 S", want: -(33 + 22.0/60 + 22.5/3600)},
		{token: `45°30'00"N`, want: 45.5},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			if got := ParseCoordinate(tt.token, ""); !almostEqual(got, tt.want, coordEpsilon) {
				t.Errorf("ParseCoordinate(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestParseCoordinateUnparseable(t *testing.T) {
	for _, token := range []string{"", "garbage", "FL245", "--", "12.34.56"} {
		if got := ParseCoordinate(token, ""); got != 0 {
			t.Errorf("ParseCoordinate(%q) = %v, want 0", token, got)
		}
	}
}

func TestParseDMSCoordinate(t *testing.T) {
	tests := []struct {
		name       string
		digits     string
		hemisphere string
		want       float64
	}{
		{
			name:       "explicit south latitude",
			digits:     "3322225",
			hemisphere: "S",
			want:       -(33 + 22.0/60 + 22.5/3600),
		},
		{
			name:       "unlabeled latitude defaults south",
			digits:     "3322225",
			hemisphere: "",
			want:       -(33 + 22.0/60 + 22.5/3600),
		},
		{
			name:       "explicit east longitude",
			digits:     "14822227",
			hemisphere: "E",
			want:       148 + 22.0/60 + 22.7/3600,
		},
		{
			name:       "unlabeled longitude defaults east",
			digits:     "14822227",
			hemisphere: "",
			want:       148 + 22.0/60 + 22.7/3600,
		},
		{
			name:       "north latitude",
			digits:     "3322225",
			hemisphere: "N",
			want:       33 + 22.0/60 + 22.5/3600,
		},
		{
			name:       "west longitude",
			digits:     "14822227",
			hemisphere: "W",
			want:       -(148 + 22.0/60 + 22.7/3600),
		},
		{
			name:       "wrong width yields zero",
			digits:     "12345",
			hemisphere: "",
			want:       0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseDMSCoordinate(tt.digits, tt.hemisphere); !almostEqual(got, tt.want, coordEpsilon) {
				t.Errorf("ParseDMSCoordinate(%q, %q) = %v, want %v", tt.digits, tt.hemisphere, got, tt.want)
			}
		})
	}
}

func TestDMSRoundTrip(t *testing.T) {
	tests := []struct {
		deg       int
		min       int
		sec       float64
		dir       string
		longitude bool
	}{
		{deg: 33, min: 22, sec: 22.5, dir: "N", longitude: false},
		{deg: 148, min: 22, sec: 22.7, dir: "E", longitude: true},
		{deg: 0, min: 30, sec: 15, dir: "N", longitude: false},
		{deg: 89, min: 59, sec: 59, dir: "N", longitude: false},
	}

	for _, tt := range tests {
		decimal := DMSToDecimal(float64(tt.deg), float64(tt.min), tt.sec, tt.dir)
		deg, min, sec, dir := DecimalToDMS(decimal, tt.longitude)

		if deg != tt.deg || min != tt.min {
			t.Errorf("DecimalToDMS(%v) = %d°%d', want %d°%d'", decimal, deg, min, tt.deg, tt.min)
		}
		// Recovered within one arc-second
		if math.Abs(sec-tt.sec) > 1 {
			t.Errorf("DecimalToDMS(%v) seconds = %v, want %v ±1", decimal, sec, tt.sec)
		}
		if dir != tt.dir {
			t.Errorf("DecimalToDMS(%v) hemisphere = %q, want %q", decimal, dir, tt.dir)
		}
	}
}

func TestDMSToDecimalSign(t *testing.T) {
	if got := DMSToDecimal(33, 0, 0, "S"); got != -33 {
		t.Errorf("DMSToDecimal south = %v, want -33", got)
	}
	if got := DMSToDecimal(148, 0, 0, "W"); got != -148 {
		t.Errorf("DMSToDecimal west = %v, want -148", got)
	}
	if got := DMSToDecimal(33, 0, 0, "N"); got != 33 {
		t.Errorf("DMSToDecimal north = %v, want 33", got)
	}
}

func TestExtractCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    []Coordinate
		epsilon float64
	}{
		{
			name: "fixed width pair with east letter",
			line: "3322225 14822227E",
			want: []Coordinate{
				{Latitude: -(33 + 22.0/60 + 22.5/3600), Longitude: 148 + 22.0/60 + 22.7/3600},
			},
			epsilon: coordEpsilon,
		},
		{
			name: "multiple fixed width pairs",
			line: "3322225S 14822227E 3400000S 14900000E",
			want: []Coordinate{
				{Latitude: -(33 + 22.0/60 + 22.5/3600), Longitude: 148 + 22.0/60 + 22.7/3600},
				{Latitude: -34, Longitude: 149},
			},
			epsilon: coordEpsilon,
		},
		{
			name: "marked dms pair",
			line: `33°22'22.5"S 148°22'22.7"E`,
			want: []Coordinate{
				{Latitude: -(33 + 22.0/60 + 22.5/3600), Longitude: 148 + 22.0/60 + 22.7/3600},
			},
			epsilon: coordEpsilon,
		},
		{
			name: "decimal pair",
			line: "-33.500000, 148.200000",
			want: []Coordinate{
				{Latitude: -33.5, Longitude: 148.2},
			},
			epsilon: coordEpsilon,
		},
		{
			name: "no coordinates",
			line: "THENCE ALONG THE COAST",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractCoordinates(tt.line)
			if len(got) != len(tt.want) {
				t.Fatalf("extractCoordinates() returned %d coordinates, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if !almostEqual(got[i].Latitude, tt.want[i].Latitude, tt.epsilon) ||
					!almostEqual(got[i].Longitude, tt.want[i].Longitude, tt.epsilon) {
					t.Errorf("coordinate %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
