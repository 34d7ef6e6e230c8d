package vatglasses

import (
	"fmt"
	"math"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/RealLeviticus/dahextractor/internal/dah"
	"github.com/RealLeviticus/dahextractor/pkg/logger"
)

// Options carries the converter configuration. The table maps extend the
// built-in seed tables; DefaultFrequency is the placeholder used for
// positions published without one.
type Options struct {
	DefaultFrequency string
	TypeMappings     map[string]string
	CityNames        map[string]string
	PositionPrefixes map[string]string
}

// Converter maps intermediate DAH records to the VATGlasses output schema.
// Aside from reading the clock for metadata timestamps and synthesized IDs,
// conversion is pure.
type Converter struct {
	typeMappings     map[string]string
	cityNames        map[string]string
	positionPrefixes map[string]string
	defaultFrequency string
	now              func() time.Time
	logger           *logger.Logger
}

// NewConverter creates a new converter with the given options merged over
// the built-in lookup tables
func NewConverter(opts Options, log *logger.Logger) *Converter {
	frequency := strings.TrimSpace(opts.DefaultFrequency)
	if frequency == "" {
		frequency = "122.800"
	}

	return &Converter{
		typeMappings:     mergeTable(defaultTypeMappings, opts.TypeMappings),
		cityNames:        mergeTable(defaultCityNames, opts.CityNames),
		positionPrefixes: mergeTable(defaultPositionPrefixes, opts.PositionPrefixes),
		defaultFrequency: frequency,
		now:              time.Now,
		logger:           log.Named("converter"),
	}
}

// Convert maps an intermediate document to a complete VATGlasses output.
// All three top-level arrays are always present, possibly empty.
func (c *Converter) Convert(doc *dah.Document, source string) *Output {
	if doc == nil {
		doc = &dah.Document{}
	}

	out := &Output{
		Airspace:  make([]Airspace, 0, len(doc.Airspaces)),
		Positions: make([]Position, 0, len(doc.Positions)),
		Airports:  make([]Airport, 0, len(doc.Airports)),
		Metadata: Metadata{
			GeneratedAt: c.now().UTC().Format(time.RFC3339),
			Source:      source,
			Version:     SchemaVersion,
		},
	}

	for _, airspace := range doc.Airspaces {
		out.Airspace = append(out.Airspace, c.ConvertAirspace(airspace))
	}
	for _, position := range doc.Positions {
		out.Positions = append(out.Positions, c.ConvertPosition(position))
	}
	for _, airport := range doc.Airports {
		out.Airports = append(out.Airports, c.ConvertAirport(airport))
	}

	c.logger.Debug("Converted document",
		logger.String("source", source),
		logger.Int("airspace", len(out.Airspace)),
		logger.Int("positions", len(out.Positions)),
		logger.Int("airports", len(out.Airports)))

	return out
}

// ConvertAirspace maps one intermediate airspace record. Every field is
// defensively defaulted, so re-applying the conversion to already-converted
// data yields a structurally valid record rather than a crash.
func (c *Converter) ConvertAirspace(airspace dah.Airspace) Airspace {
	id := strings.TrimSpace(airspace.ID)
	if id == "" {
		id = c.newID("ASP")
	}

	name := strings.TrimSpace(airspace.Name)
	if name == "" || name == "Unknown" {
		if city := c.cityForLocations(airspace.Locations); city != "" {
			name = city
		} else if name == "" {
			name = "Unknown Airspace"
		}
	}

	normalizedType := c.normalizeType(airspace.Type)

	out := Airspace{
		ID:          id,
		Name:        name,
		Type:        normalizedType,
		Boundaries:  make([]Point, 0, len(airspace.Boundaries)),
		Conditional: airspace.Conditional,
		Ceiling:     NormalizeAltitude(airspace.UpperLimit),
		Floor:       NormalizeAltitude(airspace.LowerLimit),
	}

	if len(normalizedType) == 1 && normalizedType[0] >= 'A' && normalizedType[0] <= 'G' {
		out.Class = normalizedType
	}

	for _, b := range airspace.Boundaries {
		out.Boundaries = append(out.Boundaries, Point{
			Lat: round6(b.Latitude),
			Lon: round6(b.Longitude),
		})
	}

	if len(airspace.Frequencies) > 0 {
		out.Frequency = strconv.FormatFloat(airspace.Frequencies[0], 'f', 3, 64)
	}

	return out
}

// ConvertPosition maps one intermediate position record, synthesizing an ID
// and placeholder callsign/frequency/name when the source omits them
func (c *Converter) ConvertPosition(position dah.Position) Position {
	name := strings.TrimSpace(position.Name)
	prefix := c.positionPrefix(name)

	id := strings.TrimSpace(position.ID)
	if id == "" {
		id = c.newID(prefix)
	}

	callsign := strings.TrimSpace(position.Callsign)
	if callsign == "" {
		callsign = prefix + "_CTR"
	}

	frequency := strings.TrimSpace(position.Frequency)
	if frequency == "" {
		frequency = c.defaultFrequency
	}

	if name == "" {
		name = "Unknown Position"
	}

	out := Position{
		ID:        id,
		Callsign:  callsign,
		Frequency: frequency,
		Name:      name,
		Type:      strings.TrimSpace(position.Type),
		Airspace:  append([]string(nil), position.Airspace...),
	}

	if position.Coordinates != nil {
		out.Coordinates = &Point{
			Lat: round6(position.Coordinates.Latitude),
			Lon: round6(position.Coordinates.Longitude),
		}
	}

	return out
}

// ConvertAirport maps one intermediate airport record
func (c *Converter) ConvertAirport(airport dah.Airport) Airport {
	icao := upperTrim(airport.ICAO)
	if icao == "" {
		icao = "ZZZZ" // ICAO placeholder for no assigned code
	}

	name := strings.TrimSpace(airport.Name)
	if name == "" {
		if city, ok := c.cityNames[icao]; ok {
			name = city
		} else {
			name = "Unknown Airport"
		}
	}

	out := Airport{
		ICAO:    icao,
		Name:    name,
		Runways: append([]string(nil), airport.Runways...),
	}

	if airport.Coordinates != nil {
		out.Coordinates = Point{
			Lat: round6(airport.Coordinates.Latitude),
			Lon: round6(airport.Coordinates.Longitude),
		}
	}

	if airport.Elevation != nil {
		elevation := *airport.Elevation
		out.Elevation = &elevation
	}

	return out
}

// Altitude notations resolved by NormalizeAltitude.
var (
	flightLevelRe = regexp.MustCompile(`^F?L?(\d+)$`)
	altFeetRe     = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
)

// NormalizeAltitude resolves a raw altitude string to a value with unit and
// reference datum. Unresolvable text degrades to surface AMSL rather than
// erroring; an empty limit is omitted entirely.
func NormalizeAltitude(raw string) *Altitude {
	text := upperTrim(raw)
	if text == "" {
		return nil
	}

	switch text {
	case "UNL", "UNLIMITED":
		return &Altitude{Value: 999, Unit: UnitFL, Reference: RefSTD}
	case "GND", "GROUND", "SFC", "SURFACE":
		return &Altitude{Value: 0, Unit: UnitFT, Reference: RefAGL}
	}

	// A bare number above 180 with an optional FL prefix is a flight level;
	// smaller values fall through to the feet rule below. Interior spaces
	// are compacted so "FL 245" and "FL245" resolve identically.
	compact := strings.ReplaceAll(text, " ", "")
	if m := flightLevelRe.FindStringSubmatch(compact); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 180 {
			return &Altitude{Value: n, Unit: UnitFL, Reference: RefSTD}
		}
	}

	if m := altFeetRe.FindStringSubmatch(text); m != nil {
		value, _ := strconv.ParseFloat(m[1], 64)
		reference := RefAMSL
		if strings.Contains(text, "AGL") || strings.Contains(text, "ABOVE GROUND") {
			reference = RefAGL
		}
		return &Altitude{Value: int(value), Unit: UnitFT, Reference: reference}
	}

	return &Altitude{Value: 0, Unit: UnitFT, Reference: RefAMSL}
}

// normalizeType resolves a free-form classification through the type table;
// unmapped values pass through uppercased and trimmed
func (c *Converter) normalizeType(raw string) string {
	t := upperTrim(raw)
	if t == "" {
		return ""
	}
	if mapped, ok := c.typeMappings[t]; ok {
		return mapped
	}
	return t
}

// cityForLocations returns the display name for the first location code
// present in the city table
func (c *Converter) cityForLocations(locations []string) string {
	for _, code := range locations {
		if city, ok := c.cityNames[upperTrim(code)]; ok {
			return city
		}
	}
	return ""
}

// positionPrefix derives an ID prefix by scanning the position name for a
// known place name
func (c *Converter) positionPrefix(name string) string {
	upper := upperTrim(name)
	if upper != "" {
		for place, prefix := range c.positionPrefixes {
			if strings.Contains(upper, place) {
				return prefix
			}
		}
	}
	return "POS"
}

// newID synthesizes a unique record ID: prefix, base36 timestamp, base36
// random salt, uppercased.
func (c *Converter) newID(prefix string) string {
	ts := strconv.FormatInt(c.now().UnixMilli(), 36)
	salt := strconv.FormatInt(rand.Int63n(1<<30), 36)
	return strings.ToUpper(fmt.Sprintf("%s_%s_%s", prefix, ts, salt))
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

func upperTrim(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
