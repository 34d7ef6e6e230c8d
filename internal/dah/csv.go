package dah

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// csvColumnRoles holds the column index claimed by each canonical role, or
// -1 when no header matched.
type csvColumnRoles struct {
	id          int
	name        int
	typ         int
	lat         int
	lon         int
	upper       int
	lower       int
	conditional int
	sequence    int
}

// mapColumns assigns header columns to canonical roles by case-insensitive
// substring match. Roles claim columns in declaration order and a column
// belongs to at most one role; the first matching header wins.
func mapColumns(headers []string) csvColumnRoles {
	lowered := make([]string, len(headers))
	for i, h := range headers {
		lowered[i] = strings.ToLower(strings.TrimSpace(h))
	}

	claimed := make([]bool, len(headers))
	find := func(substrings ...string) int {
		for _, sub := range substrings {
			for i, h := range lowered {
				if !claimed[i] && strings.Contains(h, sub) {
					claimed[i] = true
					return i
				}
			}
		}
		return -1
	}

	findName := func() int {
		// Prefer a fuller "airspace name" style header; accept a bare
		// "name" column only when nothing better exists.
		for i, h := range lowered {
			if !claimed[i] && strings.Contains(h, "name") && strings.Contains(h, "airspace") {
				claimed[i] = true
				return i
			}
		}
		return find("name")
	}

	return csvColumnRoles{
		id:          find("id"),
		name:        findName(),
		typ:         find("type"),
		lat:         find("lat"),
		lon:         find("lon", "lng"),
		upper:       find("upper", "ceiling"),
		lower:       find("lower", "floor"),
		conditional: find("condition"),
		sequence:    find("seq"),
	}
}

// splitCSVLine splits one CSV line into fields. A double quote toggles an
// in-quotes state during which commas are field content, not separators.
// Quote-doubling escapes are not supported; the sources never use them.
func splitCSVLine(line string) []string {
	var fields []string
	var field strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(field.String()))
			field.Reset()
		default:
			field.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(field.String()))

	return fields
}

// parseCSV parses a row-per-vertex CSV export. Rows sharing an id are merged
// into one airspace: boundaries are concatenated in first-occurrence order
// and then stably sorted by the sequence column, which reconstructs the
// polygon from the flat row layout.
func parseCSV(text string) (*Document, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) < 2 {
		return nil, &FormatError{Format: FormatCSV, Reason: "expected a header row and at least one data row"}
	}

	headers := splitCSVLine(lines[0])
	roles := mapColumns(headers)

	type vertex struct {
		coord    Coordinate
		sequence int
	}
	type group struct {
		airspace Airspace
		vertices []vertex
	}

	var order []string
	groups := make(map[string]*group)

	for i, line := range lines[1:] {
		fields := splitCSVLine(line)
		// Rows with a mismatched field count are a tolerated data-quality
		// gap, skipped rather than failing the document.
		if len(fields) != len(headers) {
			continue
		}

		id := fieldAt(fields, roles.id)
		if id == "" {
			id = fmt.Sprintf("AIRSPACE_%d", i+1)
		}

		g, ok := groups[id]
		if !ok {
			g = &group{airspace: Airspace{ID: id, Name: "Unknown"}}
			groups[id] = g
			order = append(order, id)
		}

		if name := fieldAt(fields, roles.name); name != "" && g.airspace.Name == "Unknown" {
			g.airspace.Name = name
		}
		if typ := fieldAt(fields, roles.typ); typ != "" && g.airspace.Type == "" {
			g.airspace.Type = typ
		}
		if upper := fieldAt(fields, roles.upper); upper != "" && g.airspace.UpperLimit == "" {
			g.airspace.UpperLimit = upper
		}
		if lower := fieldAt(fields, roles.lower); lower != "" && g.airspace.LowerLimit == "" {
			g.airspace.LowerLimit = lower
		}
		if parseCSVBool(fieldAt(fields, roles.conditional)) {
			g.airspace.Conditional = true
		}

		if roles.lat >= 0 && roles.lon >= 0 {
			latStr := fieldAt(fields, roles.lat)
			lonStr := fieldAt(fields, roles.lon)
			if latStr != "" || lonStr != "" {
				seq := 0
				if n, err := strconv.Atoi(fieldAt(fields, roles.sequence)); err == nil {
					seq = n
				}
				g.vertices = append(g.vertices, vertex{
					coord: Coordinate{
						Latitude:  ParseCoordinate(latStr, ""),
						Longitude: ParseCoordinate(lonStr, ""),
					},
					sequence: seq,
				})
			}
		}
	}

	doc := &Document{}
	for _, id := range order {
		g := groups[id]
		// Stable sort keeps original relative order for equal sequences
		sort.SliceStable(g.vertices, func(a, b int) bool {
			return g.vertices[a].sequence < g.vertices[b].sequence
		})
		for _, v := range g.vertices {
			g.airspace.Boundaries = append(g.airspace.Boundaries, v.coord)
		}
		doc.Airspaces = append(doc.Airspaces, g.airspace)
	}

	return doc, nil
}

func fieldAt(fields []string, idx int) string {
	if idx < 0 || idx >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[idx])
}

func parseCSVBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y":
		return true
	default:
		return false
	}
}
