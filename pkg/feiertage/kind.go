package feiertage

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownKind is returned by ParseKind for unknown identifiers.
var ErrUnknownKind = errors.New("unknown holiday kind")

// Kind identifies a named holiday. Every Kind has exactly one date rule,
// see Kind.Date.
type Kind int

const (
	Neujahr Kind = iota
	HeiligeDreiKoenige
	Rosenmontag
	Aschermittwoch
	Frauentag
	Gruendonnerstag
	Karfreitag
	Ostersonntag
	Ostermontag
	TagDerArbeit
	ChristiHimmelfahrt
	Pfingstsonntag
	Pfingstmontag
	Fronleichnam
	Friedensfest
	MariaeHimmelfahrt
	Weltkindertag
	TagDerDeutschenEinheit
	Reformationstag
	Allerheiligen
	BussUndBettag
	Heiligabend
	Weihnachten1
	Weihnachten2
	Silvester

	numKinds
)

// dateRule computes the date of a holiday for a year.
type dateRule func(year int) Date

type kindInfo struct {
	id   string
	name string
	rule dateRule
}

func fixed(month time.Month, day int) dateRule {
	return func(year int) Date {
		return Date{Year: year, Month: month, Day: day}
	}
}

func easter(days int) dateRule {
	return func(year int) Date {
		return easterOffset(year, days)
	}
}

// unityDay is 17 June up to and including 1990 and 3 October afterwards.
func unityDay(year int) Date {
	if year <= 1990 {
		return Date{Year: year, Month: time.June, Day: 17}
	}
	return Date{Year: year, Month: time.October, Day: 3}
}

var kinds = [numKinds]kindInfo{
	Neujahr:                {"Neujahr", "Neujahr", fixed(time.January, 1)},
	HeiligeDreiKoenige:     {"HeiligeDreiKoenige", "Heilige Drei Könige", fixed(time.January, 6)},
	Rosenmontag:            {"Rosenmontag", "Rosenmontag", easter(-48)},
	Aschermittwoch:         {"Aschermittwoch", "Aschermittwoch", easter(-46)},
	Frauentag:              {"Frauentag", "Internationaler Frauentag", fixed(time.March, 8)},
	Gruendonnerstag:        {"Gruendonnerstag", "Gründonnerstag", easter(-3)},
	Karfreitag:             {"Karfreitag", "Karfreitag", easter(-2)},
	Ostersonntag:           {"Ostersonntag", "Ostersonntag", EasterSunday},
	Ostermontag:            {"Ostermontag", "Ostermontag", easter(1)},
	TagDerArbeit:           {"TagDerArbeit", "Tag der Arbeit", fixed(time.May, 1)},
	ChristiHimmelfahrt:     {"ChristiHimmelfahrt", "Christi Himmelfahrt", easter(39)},
	Pfingstsonntag:         {"Pfingstsonntag", "Pfingstsonntag", easter(49)},
	Pfingstmontag:          {"Pfingstmontag", "Pfingstmontag", easter(50)},
	Fronleichnam:           {"Fronleichnam", "Fronleichnam", easter(60)},
	Friedensfest:           {"Friedensfest", "Augsburger Hohes Friedensfest", fixed(time.August, 8)},
	MariaeHimmelfahrt:      {"MariaeHimmelfahrt", "Mariä Himmelfahrt", fixed(time.August, 15)},
	Weltkindertag:          {"Weltkindertag", "Weltkindertag", fixed(time.September, 20)},
	TagDerDeutschenEinheit: {"TagDerDeutschenEinheit", "Tag der Deutschen Einheit", unityDay},
	Reformationstag:        {"Reformationstag", "Reformationstag", fixed(time.October, 31)},
	Allerheiligen:          {"Allerheiligen", "Allerheiligen", fixed(time.November, 1)},
	BussUndBettag:          {"BussUndBettag", "Buß- und Bettag", RepentanceDay},
	Heiligabend:            {"Heiligabend", "Heiligabend", fixed(time.December, 24)},
	Weihnachten1:           {"Weihnachten1", "1. Weihnachtstag", fixed(time.December, 25)},
	Weihnachten2:           {"Weihnachten2", "2. Weihnachtstag", fixed(time.December, 26)},
	Silvester:              {"Silvester", "Silvester", fixed(time.December, 31)},
}

// Kinds returns all holiday kinds in declaration order.
func Kinds() []Kind {
	all := make([]Kind, numKinds)
	for i := range all {
		all[i] = Kind(i)
	}
	return all
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= 0 && k < numKinds
}

// Date returns the date k falls on in year.
func (k Kind) Date(year int) Date {
	if !k.Valid() {
		panic(fmt.Sprintf("feiertage: invalid kind %d", int(k)))
	}
	return kinds[k].rule(year)
}

// Name returns the official German name of the holiday.
func (k Kind) Name() string {
	if !k.Valid() {
		return k.String()
	}
	return kinds[k].name
}

// String returns the stable identifier of k, which is also its Go constant
// name.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kinds[k].id
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind returns the Kind with the given identifier.
func ParseKind(id string) (Kind, error) {
	for i := range kinds {
		if kinds[i].id == id {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, id)
}
