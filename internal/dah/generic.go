package dah

// parseGeneric is the last-resort strategy for documents with no
// recognizable structure. It sweeps the whole text with a loose
// coordinate-pair pattern and collects every match onto a single synthetic
// record. Zero matches yields an empty airspace list, not an error.
func parseGeneric(text string) *Document {
	doc := &Document{}

	matches := loosePairRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return doc
	}

	airspace := Airspace{
		ID:   "EXTRACTED_AIRSPACE",
		Name: "Unknown Airspace",
	}
	for _, m := range matches {
		airspace.Boundaries = append(airspace.Boundaries, Coordinate{
			Latitude:  ParseCoordinate(m[1], m[2]),
			Longitude: ParseCoordinate(m[3], m[4]),
		})
	}

	doc.Airspaces = append(doc.Airspaces, airspace)
	return doc
}
