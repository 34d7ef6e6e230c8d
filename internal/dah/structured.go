package dah

import (
	"regexp"
	"strings"
)

// scanState tracks which section of a titled block the line scan is inside.
type scanState int

const (
	stateNone scanState = iota
	stateReadingLateral
	stateReadingVertical
)

// Title lines name one or more 4-letter ICAO-like codes, a slash, the
// airspace name, then an optional classification and an optional sector
// suffix, e.g. "YBBB/BRISBANE CTA A1".
var titleRe = regexp.MustCompile(`^([A-Z]{4}(?:[-/][A-Z]{4})*)/([A-Z][A-Z0-9' ]*?)(?:\s+(CTA|CTR|TMA|CLASS(?:\s+[A-G])?))?(?:\s+([A-Z]?\d[A-Z0-9/-]*))?\s*$`)

// Section markers, case-insensitive and anchored at line start.
var (
	lateralMarkerRe   = regexp.MustCompile(`(?i)^LATERAL LIMITS?:\s*(.*)$`)
	verticalMarkerRe  = regexp.MustCompile(`(?i)^VERTICAL LIMITS?:\s*(.*)$`)
	hoursMarkerRe     = regexp.MustCompile(`(?i)^HOURS OF (?:ACTIVATION|OPERATION):\s*(.*)$`)
	authorityMarkerRe = regexp.MustCompile(`(?i)^CONTROLLING AUTHORITY:\s*(.*)$`)
)

// parseStructuredText parses free text with one logical record per titled
// block, the layout produced by PDF extraction of the handbook. It is a
// line-oriented finite-state scan; blocks that accumulate no boundary
// coordinates are discarded, never emitted.
func parseStructuredText(text string) *Document {
	doc := &Document{}

	var current *Airspace
	state := stateNone

	flush := func() {
		// A block without at least one boundary vertex is noise from the
		// page layout, not an airspace.
		if current != nil && len(current.Boundaries) > 0 {
			doc.Airspaces = append(doc.Airspaces, *current)
		}
		current = nil
	}

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(strings.TrimRight(rawLine, "\r"))
		if line == "" {
			continue
		}

		if m := titleRe.FindStringSubmatch(line); m != nil {
			flush()
			current = &Airspace{
				ID:         strings.TrimSpace(m[0]),
				Name:       strings.TrimSpace(m[2]),
				Type:       strings.TrimSpace(m[3]),
				Locations:  extractLocationCodes(m[1]),
				UpperLimit: "UNL",
				LowerLimit: "GND",
			}
			state = stateNone
			continue
		}

		if current == nil {
			continue
		}

		if m := lateralMarkerRe.FindStringSubmatch(line); m != nil {
			state = stateReadingLateral
			// Trailing text on the marker line is scanned immediately
			current.Boundaries = append(current.Boundaries, extractCoordinates(m[1])...)
			continue
		}

		if m := verticalMarkerRe.FindStringSubmatch(line); m != nil {
			state = stateReadingVertical
			scanAltitudeLine(m[1], current)
			continue
		}

		if m := hoursMarkerRe.FindStringSubmatch(line); m != nil {
			current.HoursOfOperation = strings.TrimSpace(m[1])
			state = stateNone
			continue
		}

		if m := authorityMarkerRe.FindStringSubmatch(line); m != nil {
			current.ControllingAuthority = strings.TrimSpace(m[1])
			state = stateNone
			continue
		}

		switch state {
		case stateReadingLateral:
			current.Boundaries = append(current.Boundaries, extractCoordinates(line)...)
		case stateReadingVertical:
			scanAltitudeLine(line, current)
		}
	}

	flush()
	return doc
}

// extractLocationCodes pulls every 4-letter token out of a title code group
// such as "YBBB-YMMM".
func extractLocationCodes(codeGroup string) []string {
	var codes []string
	for _, token := range strings.FieldsFunc(codeGroup, func(r rune) bool {
		return r == '-' || r == '/'
	}) {
		if len(token) == 4 {
			codes = append(codes, token)
		}
	}
	return codes
}
