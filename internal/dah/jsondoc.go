package dah

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// parseJSONDocument parses a JSON document into the intermediate model.
// Either a top-level array of airspace objects or an object carrying
// airspace/positions/airports arrays is accepted; field lookup tolerates
// the key variants seen across published exports. Missing fields are
// defaulted, never errors.
func parseJSONDocument(text string) *Document {
	doc := &Document{}
	root := gjson.Parse(text)

	if root.IsArray() {
		for i, item := range root.Array() {
			doc.Airspaces = append(doc.Airspaces, airspaceFromJSON(item, i))
		}
		return doc
	}

	for _, key := range []string{"airspace", "airspaces"} {
		if arr := root.Get(key); arr.IsArray() {
			for i, item := range arr.Array() {
				doc.Airspaces = append(doc.Airspaces, airspaceFromJSON(item, i))
			}
			break
		}
	}

	if arr := root.Get("positions"); arr.IsArray() {
		for _, item := range arr.Array() {
			doc.Positions = append(doc.Positions, positionFromJSON(item))
		}
	}

	if arr := root.Get("airports"); arr.IsArray() {
		for _, item := range arr.Array() {
			doc.Airports = append(doc.Airports, airportFromJSON(item))
		}
	}

	return doc
}

func airspaceFromJSON(item gjson.Result, index int) Airspace {
	airspace := Airspace{
		ID:                   firstString(item, "id", "airspace_id", "airspaceId", "code"),
		Name:                 firstString(item, "name", "airspace_name", "airspaceName", "title"),
		Type:                 firstString(item, "type", "class", "classification"),
		UpperLimit:           altitudeString(item, "upperLimit", "upper_limit", "upper", "ceiling"),
		LowerLimit:           altitudeString(item, "lowerLimit", "lower_limit", "lower", "floor"),
		ControllingAuthority: firstString(item, "controllingAuthority", "controlling_authority", "authority"),
		HoursOfOperation:     firstString(item, "hoursOfOperation", "hours_of_operation", "hours"),
		Conditional:          item.Get("conditional").Bool(),
	}

	if airspace.ID == "" {
		airspace.ID = fmt.Sprintf("AIRSPACE_%d", index+1)
	}
	if airspace.Name == "" {
		airspace.Name = "Unknown"
	}

	for _, key := range []string{"boundaries", "boundary", "points", "coordinates"} {
		if arr := item.Get(key); arr.IsArray() {
			for _, point := range arr.Array() {
				if coord := coordinateFromJSON(point); coord != nil {
					airspace.Boundaries = append(airspace.Boundaries, *coord)
				}
			}
			break
		}
	}

	if freqs := item.Get("frequencies"); freqs.Exists() {
		if freqs.IsArray() {
			for _, f := range freqs.Array() {
				if mhz, ok := frequencyValue(f); ok {
					airspace.Frequencies = append(airspace.Frequencies, mhz)
				}
			}
		} else if mhz, ok := frequencyValue(freqs); ok {
			airspace.Frequencies = append(airspace.Frequencies, mhz)
		}
	}

	return airspace
}

func positionFromJSON(item gjson.Result) Position {
	position := Position{
		ID:        firstString(item, "id", "position_id", "positionId"),
		Callsign:  firstString(item, "callsign", "call_sign"),
		Frequency: firstString(item, "frequency", "freq"),
		Name:      firstString(item, "name", "position_name"),
		Type:      firstString(item, "type"),
	}

	if coords := item.Get("coordinates"); coords.Exists() {
		position.Coordinates = coordinateFromJSON(coords)
	}

	// Airspace references are name-based keys, accepted as either a single
	// string or an array of strings
	if refs := item.Get("airspace"); refs.Exists() {
		if refs.IsArray() {
			for _, ref := range refs.Array() {
				if ref.String() != "" {
					position.Airspace = append(position.Airspace, ref.String())
				}
			}
		} else if refs.String() != "" {
			position.Airspace = append(position.Airspace, refs.String())
		}
	}

	return position
}

func airportFromJSON(item gjson.Result) Airport {
	airport := Airport{
		ICAO: firstString(item, "icao", "icao_code", "icaoCode", "code"),
		Name: firstString(item, "name", "airport_name"),
	}

	if coords := item.Get("coordinates"); coords.Exists() {
		airport.Coordinates = coordinateFromJSON(coords)
	}

	if elev := item.Get("elevation"); elev.Exists() {
		v := int(elev.Int())
		airport.Elevation = &v
	}

	if runways := item.Get("runways"); runways.IsArray() {
		for _, rwy := range runways.Array() {
			if rwy.String() != "" {
				airport.Runways = append(airport.Runways, rwy.String())
			}
		}
	}

	return airport
}

// coordinateFromJSON accepts either {lat, lon} style objects or 2-element
// [lat, lon] arrays. Returns nil when neither shape is present.
func coordinateFromJSON(item gjson.Result) *Coordinate {
	if item.IsArray() {
		arr := item.Array()
		if len(arr) >= 2 {
			return &Coordinate{Latitude: arr[0].Float(), Longitude: arr[1].Float()}
		}
		return nil
	}

	lat := firstResult(item, "lat", "latitude")
	lon := firstResult(item, "lon", "lng", "longitude")
	if !lat.Exists() && !lon.Exists() {
		return nil
	}

	return &Coordinate{
		Latitude:  ParseCoordinate(lat.String(), ""),
		Longitude: ParseCoordinate(lon.String(), ""),
	}
}

// altitudeString reads an altitude limit that may be published as a raw
// string ("FL245"), a bare number (feet), or an already-normalized
// {value, unit} object from a previous conversion run.
func altitudeString(item gjson.Result, keys ...string) string {
	value := firstResult(item, keys...)
	if !value.Exists() {
		return ""
	}

	if value.IsObject() {
		amount := value.Get("value")
		if !amount.Exists() {
			return ""
		}
		if strings.EqualFold(value.Get("unit").String(), "FL") {
			return fmt.Sprintf("FL%d", amount.Int())
		}
		return fmt.Sprintf("%dFT", amount.Int())
	}

	return strings.TrimSpace(value.String())
}

func frequencyValue(item gjson.Result) (float64, bool) {
	switch item.Type {
	case gjson.Number:
		return item.Float(), true
	case gjson.String:
		if v, err := strconv.ParseFloat(strings.TrimSpace(item.String()), 64); err == nil {
			return v, true
		}
	}
	return 0, false
}

func firstString(item gjson.Result, keys ...string) string {
	return strings.TrimSpace(firstResult(item, keys...).String())
}

func firstResult(item gjson.Result, keys ...string) gjson.Result {
	for _, key := range keys {
		if v := item.Get(key); v.Exists() {
			return v
		}
	}
	return gjson.Result{}
}
