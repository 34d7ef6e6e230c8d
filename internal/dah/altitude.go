package dah

import (
	"regexp"
	"strings"
)

// Altitude notation as published in the DAH: surface references, flight
// levels, or bare feet values. Limits are captured verbatim; unit and datum
// resolution is the converter's job.
var (
	altitudeRangeRe = regexp.MustCompile(`(?i)\b(SFC|GND|UNL|FL\s*\d+|\d+)\s*(?:-|TO)\s*(SFC|GND|UNL|FL\s*\d+|\d+)\b`)
	altitudeTokenRe = regexp.MustCompile(`(?i)^\s*(FL\s*\d+|UNL|SFC|GND)\s*$`)
)

// scanAltitudeLine applies the vertical-limit notation rules to one line,
// updating the record in place. A `<lower> - <upper>` range assigns both
// limits; a lone token is assigned to the lower limit when it is a surface
// reference and to the upper limit otherwise.
func scanAltitudeLine(line string, airspace *Airspace) {
	if m := altitudeRangeRe.FindStringSubmatch(line); m != nil {
		airspace.LowerLimit = normalizeAltitudeToken(m[1])
		airspace.UpperLimit = normalizeAltitudeToken(m[2])
		return
	}

	if m := altitudeTokenRe.FindStringSubmatch(line); m != nil {
		token := normalizeAltitudeToken(m[1])
		switch token {
		case "SFC", "GND":
			airspace.LowerLimit = token
		default:
			airspace.UpperLimit = token
		}
	}
}

// normalizeAltitudeToken uppercases and strips interior whitespace so
// "fl 245" and "FL245" carry through identically.
func normalizeAltitudeToken(token string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(token)), " ", "")
}
