package vatglasses

// Pure immutable lookup data. The converter merges config-supplied
// overrides over these defaults at construction time; nothing mutates the
// maps afterwards.

// defaultTypeMappings normalizes published airspace classifications to the
// short codes VATGlasses expects. Unmapped values pass through
// uppercased and trimmed.
var defaultTypeMappings = map[string]string{
	"CONTROL ZONE":              "CTR",
	"CONTROL AREA":              "CTA",
	"TERMINAL CONTROL AREA":     "TMA",
	"TERMINAL AREA":             "TMA",
	"FLIGHT INFORMATION REGION": "FIR",
	"RESTRICTED AREA":           "R",
	"RESTRICTED":                "R",
	"PROHIBITED AREA":           "P",
	"PROHIBITED":                "P",
	"DANGER AREA":               "D",
	"MILITARY OPERATING AREA":   "MOA",
	"CLASS A":                   "A",
	"CLASS B":                   "B",
	"CLASS C":                   "C",
	"CLASS D":                   "D",
	"CLASS E":                   "E",
	"CLASS F":                   "F",
	"CLASS G":                   "G",
}

// defaultCityNames maps the ICAO location codes seen in handbook title
// lines to display names. Seed data for the assumed coverage region, not a
// business rule; the config file can extend or replace entries.
var defaultCityNames = map[string]string{
	"YBBB": "Brisbane",
	"YMMM": "Melbourne",
	"YSSY": "Sydney",
	"YSCB": "Canberra",
	"YBCS": "Cairns",
	"YPPH": "Perth",
	"YPAD": "Adelaide",
	"YPDN": "Darwin",
	"YMHB": "Hobart",
	"YMML": "Melbourne",
	"YBCG": "Gold Coast",
}

// defaultPositionPrefixes maps place names (matched as substrings of a
// position name) to the ID prefix used when synthesizing position IDs.
// Same seed-data caveat as defaultCityNames.
var defaultPositionPrefixes = map[string]string{
	"BRISBANE":   "BN",
	"MELBOURNE":  "ML",
	"SYDNEY":     "SY",
	"CANBERRA":   "CB",
	"CAIRNS":     "CS",
	"PERTH":      "PH",
	"ADELAIDE":   "AD",
	"DARWIN":     "DN",
	"HOBART":     "HB",
	"GOLD COAST": "GC",
}

// mergeTable copies defaults and lays overrides on top, uppercasing keys so
// lookups stay case-insensitive.
func mergeTable(defaults, overrides map[string]string) map[string]string {
	merged := make(map[string]string, len(defaults)+len(overrides))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[upperTrim(k)] = v
	}
	return merged
}
