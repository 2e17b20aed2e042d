package feiertage

import (
	"fmt"
	"slices"
)

// Nationwide holidays observed in every region.
var common = []Kind{
	Neujahr,
	Karfreitag,
	Ostersonntag,
	Ostermontag,
	TagDerArbeit,
	ChristiHimmelfahrt,
	Pfingstsonntag,
	Pfingstmontag,
	TagDerDeutschenEinheit,
	Weihnachten1,
	Weihnachten2,
}

// Regional groups. A region is listed in every group whose holiday it
// observes.
var (
	epiphanyRegions = []Region{
		BadenWuerttemberg, BayernKatholisch, BayernProtestantisch, BayernAugsburg,
		SachsenAnhalt,
	}
	womensDayRegions = []Region{
		Berlin, MecklenburgVorpommern,
	}
	corpusChristiRegions = []Region{
		BadenWuerttemberg, BayernKatholisch, BayernProtestantisch, BayernAugsburg,
		Hessen, NordrheinWestfalen, RheinlandPfalz, Saarland,
		SachsenKatholisch, ThueringenKatholisch,
	}
	peaceFestivalRegions = []Region{
		BayernAugsburg,
	}
	assumptionRegions = []Region{
		Saarland, BayernKatholisch, BayernAugsburg,
	}
	childrensDayRegions = []Region{
		ThueringenProtestantisch, ThueringenKatholisch,
	}
	reformationRegions = []Region{
		Brandenburg, Bremen, Hamburg, MecklenburgVorpommern, Niedersachsen,
		SachsenProtestantisch, SachsenKatholisch, SachsenAnhalt, SchleswigHolstein,
		ThueringenProtestantisch, ThueringenKatholisch,
	}
	allSaintsRegions = []Region{
		BadenWuerttemberg, BayernKatholisch, BayernProtestantisch, BayernAugsburg,
		NordrheinWestfalen, RheinlandPfalz, Saarland,
	}
	repentanceRegions = []Region{
		SachsenProtestantisch, SachsenKatholisch,
	}
)

const (
	// Buß- und Bettag was abolished outside Saxony from 1995 on.
	repentanceAbolished = 1995
	// 500th anniversary of the Reformation, a one-off nationwide holiday.
	reformationJubilee = 2017
)

var regionalKinds = buildRegionalKinds()

func buildRegionalKinds() [numRegions][]Kind {
	groups := []struct {
		kind    Kind
		regions []Region
	}{
		{HeiligeDreiKoenige, epiphanyRegions},
		{Frauentag, womensDayRegions},
		{Fronleichnam, corpusChristiRegions},
		{Friedensfest, peaceFestivalRegions},
		{MariaeHimmelfahrt, assumptionRegions},
		{Weltkindertag, childrensDayRegions},
		{Reformationstag, reformationRegions},
		{Allerheiligen, allSaintsRegions},
		{BussUndBettag, repentanceRegions},
	}
	var table [numRegions][]Kind
	for r := range table {
		table[r] = slices.Clone(common)
	}
	for _, g := range groups {
		for _, r := range g.regions {
			table[r] = append(table[r], g.kind)
		}
	}
	for r := range table {
		slices.Sort(table[r])
	}
	return table
}

// RegionalKinds returns the holiday kinds a region observes regardless of
// year-dependent exceptions, in declaration order. The returned slice is a
// copy.
func RegionalKinds(r Region) []Kind {
	mustValid(r)
	return slices.Clone(regionalKinds[r])
}

// KindsOfYear returns the holiday kinds a region observes in year. On top
// of RegionalKinds:
//
//   - Reformationstag is observed everywhere in 2017.
//   - Buß- und Bettag is observed everywhere before 1995.
func KindsOfYear(year int, r Region) []Kind {
	ks := RegionalKinds(r)
	if year == reformationJubilee && !slices.Contains(ks, Reformationstag) {
		ks = append(ks, Reformationstag)
	}
	if year < repentanceAbolished && !slices.Contains(ks, BussUndBettag) {
		ks = append(ks, BussUndBettag)
	}
	slices.Sort(ks)
	return ks
}

// Compute evaluates the holiday rules for year and region without caching.
// Most callers should use a Cache.
func Compute(year int, r Region) *Set {
	s := newSet(year, r)
	for _, k := range KindsOfYear(year, r) {
		s.add(k.Date(year), k)
	}
	s.seal()
	return s
}

func mustValid(r Region) {
	if !r.Valid() {
		panic(fmt.Sprintf("feiertage: invalid region %d", int(r)))
	}
}
