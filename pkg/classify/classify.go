// Package classify resolves the location type of a supplier record, either
// from an explicit supplier field or from keyword heuristics over the
// record's name and address text.
package classify

import "strings"

// Type is the resolved category of a rental location.
type Type string

// Location types known to the catalog.
const (
	TypeAirport  Type = "airport"
	TypeDowntown Type = "downtown"
	TypePort     Type = "port"
	TypeTrain    Type = "train"
	TypeUnknown  Type = "unknown"
)

// rule pairs a type with the keywords that indicate it. Rules are evaluated
// in order and the first hit wins, so airport keywords outrank port, port
// outranks train, train outranks downtown.
type rule struct {
	locType  Type
	keywords []string
}

var rules = []rule{
	// "aeroporto" must rank above the port rule or the "port" substring
	// inside it misclassifies Italian airports.
	{TypeAirport, []string{"aeropuerto", "aeroporto", "airport", "aerodromo", "terminal"}},
	{TypePort, []string{"puerto", "port", "harbor", "harbour", "ferry", "marina"}},
	{TypeTrain, []string{"train", "railway", "rail", "station", "estacion", "gare", "bahnhof"}},
	{TypeDowntown, []string{"downtown", "city center", "centro", "central"}},
}

// vocabRemaps translates supplier-specific type vocabularies onto the
// catalog's enum before the explicit field is trusted.
var vocabRemaps = map[string]Type{
	"railway":     TypeTrain,
	"rail":        TypeTrain,
	"aeropuerto":  TypeAirport,
	"citycentre":  TypeDowntown,
	"city centre": TypeDowntown,
	"city center": TypeDowntown,
	"harbour":     TypePort,
	"ferry":       TypePort,
}

// Resolve determines the location type for a record.
//
// An explicit airport flag ("true" or "y") always wins. Otherwise a non-empty,
// non-"unknown" explicit field is trusted after vocabulary remapping. Failing
// both, the keyword rules run over the concatenated name and address text.
func Resolve(explicit, airportFlag, name, address string) Type {
	if flag := strings.ToLower(strings.TrimSpace(airportFlag)); flag == "true" || flag == "y" {
		return TypeAirport
	}

	explicit = strings.ToLower(strings.TrimSpace(explicit))
	if explicit != "" && explicit != string(TypeUnknown) {
		if remapped, ok := vocabRemaps[explicit]; ok {
			return remapped
		}
		switch Type(explicit) {
		case TypeAirport, TypeDowntown, TypePort, TypeTrain:
			return Type(explicit)
		}
	}

	return FromText(name + " " + address)
}

// FromText runs the priority-ordered keyword rules over free text.
func FromText(text string) Type {
	text = strings.ToLower(text)
	for _, r := range rules {
		for _, keyword := range r.keywords {
			if strings.Contains(text, keyword) {
				return r.locType
			}
		}
	}
	return TypeUnknown
}
