package feiertage

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrUnknownRegion is returned by ParseRegion for unknown region names.
var ErrUnknownRegion = errors.New("unknown region")

// Region is one of the 16 German federal states. Bavaria, Saxony and
// Thuringia are split further because some holidays only apply in their
// predominantly catholic or protestant municipalities, and Augsburg has a
// holiday of its own.
//
// SachsenKatholisch applies to the catholic Sorbian municipalities in the
// district of Bautzen (Crostwitz, Nebelschütz, Panschwitz-Kuckau, Räckelwitz,
// Radibor, Ralbitz-Rosenthal, Wittichenau and parts of Bautzen, Göda,
// Großdubrau, Hoyerswerda, Königswartha, Neschwitz and Puschwitz). The place
// of work decides, not the place of residence.
//
// ThueringenKatholisch applies to the district of Eichsfeld and to parts of
// the Unstrut-Hainich-Kreis and the Wartburgkreis.
//
// BayernKatholisch covers the roughly 1700 Bavarian municipalities with a
// predominantly catholic population where Mariä Himmelfahrt is a holiday,
// BayernProtestantisch the remaining ones.
//
// The numeric values and codes are stable.
type Region int

const (
	BadenWuerttemberg Region = iota
	BayernKatholisch
	BayernProtestantisch
	BayernAugsburg
	Berlin
	Brandenburg
	Bremen
	Hamburg
	Hessen
	MecklenburgVorpommern
	Niedersachsen
	NordrheinWestfalen
	RheinlandPfalz
	Saarland
	SachsenAnhalt
	SachsenProtestantisch
	SachsenKatholisch
	SchleswigHolstein
	ThueringenProtestantisch
	ThueringenKatholisch

	numRegions
)

type regionInfo struct {
	id   string
	code string
	name string
}

var regions = [numRegions]regionInfo{
	BadenWuerttemberg:        {"BadenWuerttemberg", "DE-BW", "Baden-Württemberg"},
	BayernKatholisch:         {"BayernKatholisch", "DE-BY-KATH", "Bayern (katholisch)"},
	BayernProtestantisch:     {"BayernProtestantisch", "DE-BY-PROT", "Bayern (protestantisch)"},
	BayernAugsburg:           {"BayernAugsburg", "DE-BY-AUGSBURG", "Bayern (Augsburg)"},
	Berlin:                   {"Berlin", "DE-BE", "Berlin"},
	Brandenburg:              {"Brandenburg", "DE-BB", "Brandenburg"},
	Bremen:                   {"Bremen", "DE-HB", "Bremen"},
	Hamburg:                  {"Hamburg", "DE-HH", "Hamburg"},
	Hessen:                   {"Hessen", "DE-HE", "Hessen"},
	MecklenburgVorpommern:    {"MecklenburgVorpommern", "DE-MV", "Mecklenburg-Vorpommern"},
	Niedersachsen:            {"Niedersachsen", "DE-NI", "Niedersachsen"},
	NordrheinWestfalen:       {"NordrheinWestfalen", "DE-NW", "Nordrhein-Westfalen"},
	RheinlandPfalz:           {"RheinlandPfalz", "DE-RP", "Rheinland-Pfalz"},
	Saarland:                 {"Saarland", "DE-SL", "Saarland"},
	SachsenAnhalt:            {"SachsenAnhalt", "DE-ST", "Sachsen-Anhalt"},
	SachsenProtestantisch:    {"SachsenProtestantisch", "DE-SN-PROT", "Sachsen (protestantisch)"},
	SachsenKatholisch:        {"SachsenKatholisch", "DE-SN-KATH", "Sachsen (katholisch)"},
	SchleswigHolstein:        {"SchleswigHolstein", "DE-SH", "Schleswig-Holstein"},
	ThueringenProtestantisch: {"ThueringenProtestantisch", "DE-TH-PROT", "Thüringen (protestantisch)"},
	ThueringenKatholisch:     {"ThueringenKatholisch", "DE-TH-KATH", "Thüringen (katholisch)"},
}

// Regions returns all regions in declaration order.
func Regions() []Region {
	all := make([]Region, numRegions)
	for i := range all {
		all[i] = Region(i)
	}
	return all
}

// Valid reports whether r is one of the declared regions.
func (r Region) Valid() bool {
	return r >= 0 && r < numRegions
}

// Code returns the stable region code, an ISO 3166-2 subdivision code with
// a suffix for the confessional variants, e.g. DE-BY-KATH.
func (r Region) Code() string {
	if !r.Valid() {
		return r.String()
	}
	return regions[r].code
}

// Name returns the display name of r.
func (r Region) Name() string {
	if !r.Valid() {
		return r.String()
	}
	return regions[r].name
}

// String returns the Go constant name of r.
func (r Region) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Region(%d)", int(r))
	}
	return regions[r].id
}

func (r Region) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRegion, int(r))
	}
	return []byte(r.Code()), nil
}

func (r *Region) UnmarshalText(text []byte) error {
	parsed, err := ParseRegion(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseRegion accepts a region code ("DE-HE"), constant name ("Hessen") or
// display name ("Baden-Württemberg"). Matching ignores case, punctuation,
// whitespace and diacritics, and treats ä/ö/ü/ß and their transliterations
// ae/oe/ue/ss alike, so "baden wurttemberg" and "BADEN-WUERTTEMBERG" both
// resolve to BadenWuerttemberg.
func ParseRegion(s string) (Region, error) {
	key := foldRegionName(s)
	if key != "" {
		if r, ok := regionIndex[key]; ok {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRegion, s)
}

var regionIndex = buildRegionIndex()

func buildRegionIndex() map[string]Region {
	idx := make(map[string]Region, 3*numRegions)
	for i, info := range regions {
		for _, s := range []string{info.id, info.code, info.name} {
			idx[foldRegionName(s)] = Region(i)
		}
	}
	return idx
}

var transliterations = strings.NewReplacer(
	"ä", "a", "ö", "o", "ü", "u", "ß", "ss",
	"ae", "a", "oe", "o", "ue", "u",
)

// foldRegionName reduces a region name to lower case letters and digits.
func foldRegionName(s string) string {
	s = cases.Fold().String(s)
	s = transliterations.Replace(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return ""
	}
	var b strings.Builder
	for _, c := range folded {
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			b.WriteRune(c)
		}
	}
	return b.String()
}
