package dah

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Coordinate token shapes, tried in order of specificity.
var (
	// Fixed-width DMS digit blocks: 7 digits = DDMMSSS latitude, 8 digits =
	// DDDMMSSS longitude, last three digits are seconds in tenths.
	fixedDMSRe = regexp.MustCompile(`^(\d{7}|\d{8})([NSEW])?$`)

	// Marked DMS text: degrees, minutes, seconds separated by symbols or
	// whitespace, with an optional trailing hemisphere letter.
	markedDMSRe = regexp.MustCompile(`^(\d{1,3})[°º:\s]+(\d{1,2})['′:\s]+(\d{1,2}(?:\.\d+)?)["″\s]*([NSEW])?$`)
)

// Coordinate pair shapes scanned out of free text lines. A line normally
// carries a single style, so the extractors try each pattern in turn and
// stop at the first that yields matches.
var (
	fixedPairRe   = regexp.MustCompile(`\b(\d{7})([NS])?\s*[,/\s]\s*(\d{8})([EW])?\b`)
	markedPairRe  = regexp.MustCompile(`(\d{1,3}[°º]\s*\d{1,2}['′]\s*\d{1,2}(?:\.\d+)?["″]?\s*[NS])\s*[,/\s]?\s*(\d{1,3}[°º]\s*\d{1,2}['′]\s*\d{1,2}(?:\.\d+)?["″]?\s*[EW])`)
	decimalPairRe = regexp.MustCompile(`([-+]?\d{1,3}\.\d+)[°º]?\s*([NS])?\s*[,;/\s]\s*([-+]?\d{1,3}\.\d+)[°º]?\s*([EW])?`)

	// Loose pair pattern for the generic fallback: two numbers with optional
	// degree/compass markers and any common separator between them.
	loosePairRe = regexp.MustCompile(`([-+]?\d+(?:\.\d+)?)\s*[°º]?\s*([NSEW])?\s*[,;/\s]\s*([-+]?\d+(?:\.\d+)?)\s*[°º]?\s*([NSEW])?`)
)

// ParseCoordinate converts a single coordinate token to signed decimal
// degrees (south and west negative). The optional hemisphere hint applies
// when the token itself carries no hemisphere letter. Unparseable input
// returns 0 so line-scan loops stay resilient to partial matches.
func ParseCoordinate(token, hemisphereHint string) float64 {
	token = strings.ToUpper(strings.TrimSpace(token))
	hint := strings.ToUpper(strings.TrimSpace(hemisphereHint))

	// Fixed-width blocks first: a bare 7/8-digit run is a DMS block, never a
	// plausible decimal degree value.
	if m := fixedDMSRe.FindStringSubmatch(token); m != nil {
		hemisphere := m[2]
		if hemisphere == "" {
			hemisphere = hint
		}
		return ParseDMSCoordinate(m[1], hemisphere)
	}

	// Plain decimal number
	if v, err := strconv.ParseFloat(token, 64); err == nil {
		if hint == "S" || hint == "W" {
			return -math.Abs(v)
		}
		return v
	}

	// Marked degrees-minutes-seconds text
	if m := markedDMSRe.FindStringSubmatch(token); m != nil {
		deg, _ := strconv.ParseFloat(m[1], 64)
		min, _ := strconv.ParseFloat(m[2], 64)
		sec, _ := strconv.ParseFloat(m[3], 64)
		dir := m[4]
		if dir == "" {
			dir = hint
		}
		return DMSToDecimal(deg, min, sec, dir)
	}

	return 0
}

// ParseDMSCoordinate converts a fixed-width DMS digit block to decimal
// degrees. A 7-digit block is latitude DDMMSSS, an 8-digit block is
// longitude DDDMMSSS; the trailing three digits are tenths of a second.
// When no hemisphere letter is supplied, latitudes default to South and
// longitudes to East, the assumed operating region of the source data.
func ParseDMSCoordinate(digits, hemisphere string) float64 {
	hemisphere = strings.ToUpper(strings.TrimSpace(hemisphere))

	var deg, min, sec float64
	switch len(digits) {
	case 7:
		deg = digitsToFloat(digits[0:2])
		min = digitsToFloat(digits[2:4])
		sec = digitsToFloat(digits[4:7]) / 10
		if hemisphere == "" {
			hemisphere = "S"
		}
	case 8:
		deg = digitsToFloat(digits[0:3])
		min = digitsToFloat(digits[3:5])
		sec = digitsToFloat(digits[5:8]) / 10
		if hemisphere == "" {
			hemisphere = "E"
		}
	default:
		return 0
	}

	return DMSToDecimal(deg, min, sec, hemisphere)
}

// DMSToDecimal converts degrees, minutes and seconds to signed decimal
// degrees. The sign is negative iff dir is S or W.
func DMSToDecimal(deg, min, sec float64, dir string) float64 {
	v := deg + min/60 + sec/3600
	switch strings.ToUpper(strings.TrimSpace(dir)) {
	case "S", "W":
		return -v
	default:
		return v
	}
}

// DecimalToDMS splits signed decimal degrees back into degrees, minutes,
// seconds and a hemisphere letter. Inverse of DMSToDecimal to within
// floating point rounding.
func DecimalToDMS(value float64, longitude bool) (deg, min int, sec float64, hemisphere string) {
	if longitude {
		hemisphere = "E"
		if value < 0 {
			hemisphere = "W"
		}
	} else {
		hemisphere = "N"
		if value < 0 {
			hemisphere = "S"
		}
	}

	v := math.Abs(value)
	deg = int(v)
	rem := (v - float64(deg)) * 60
	min = int(rem)
	sec = (rem - float64(min)) * 60
	return deg, min, sec, hemisphere
}

func digitsToFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

// extractCoordinates scans one line of structured text for coordinate
// pairs. Matches are returned in appearance order, which is the polygon
// vertex order.
func extractCoordinates(line string) []Coordinate {
	if ms := fixedPairRe.FindAllStringSubmatch(line, -1); ms != nil {
		coords := make([]Coordinate, 0, len(ms))
		for _, m := range ms {
			coords = append(coords, Coordinate{
				Latitude:  ParseCoordinate(m[1], m[2]),
				Longitude: ParseCoordinate(m[3], m[4]),
			})
		}
		return coords
	}

	if ms := markedPairRe.FindAllStringSubmatch(line, -1); ms != nil {
		coords := make([]Coordinate, 0, len(ms))
		for _, m := range ms {
			coords = append(coords, Coordinate{
				Latitude:  ParseCoordinate(m[1], ""),
				Longitude: ParseCoordinate(m[2], ""),
			})
		}
		return coords
	}

	if ms := decimalPairRe.FindAllStringSubmatch(line, -1); ms != nil {
		coords := make([]Coordinate, 0, len(ms))
		for _, m := range ms {
			coords = append(coords, Coordinate{
				Latitude:  ParseCoordinate(m[1], m[2]),
				Longitude: ParseCoordinate(m[3], m[4]),
			})
		}
		return coords
	}

	return nil
}
