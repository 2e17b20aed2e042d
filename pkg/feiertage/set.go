package feiertage

import "slices"

// Set is the materialized set of holiday dates of one region in one year.
// A Set is immutable once returned and safe for concurrent use.
type Set struct {
	year   int
	region Region
	kinds  map[Date][]Kind
	dates  []Date
}

// Entry is a holiday date together with the kinds falling on it.
type Entry struct {
	Date  Date   `json:"date"`
	Kinds []Kind `json:"kinds"`
}

func newSet(year int, r Region) *Set {
	return &Set{year: year, region: r, kinds: make(map[Date][]Kind)}
}

func (s *Set) add(d Date, k Kind) {
	s.kinds[d] = append(s.kinds[d], k)
}

func (s *Set) seal() {
	s.dates = make([]Date, 0, len(s.kinds))
	for d := range s.kinds {
		s.dates = append(s.dates, d)
	}
	slices.SortFunc(s.dates, Date.Compare)
}

func (s *Set) Year() int      { return s.year }
func (s *Set) Region() Region { return s.region }

// Len returns the number of distinct holiday dates.
func (s *Set) Len() int {
	return len(s.dates)
}

// Contains reports whether d is a holiday.
func (s *Set) Contains(d Date) bool {
	_, ok := s.kinds[d]
	return ok
}

// Dates returns the holiday dates in ascending order.
func (s *Set) Dates() []Date {
	return slices.Clone(s.dates)
}

// KindsOn returns the kinds falling on d, or nil if d is not a holiday.
func (s *Set) KindsOn(d Date) []Kind {
	return slices.Clone(s.kinds[d])
}

// Entries returns all holidays in ascending date order.
func (s *Set) Entries() []Entry {
	entries := make([]Entry, len(s.dates))
	for i, d := range s.dates {
		entries[i] = Entry{Date: d, Kinds: slices.Clone(s.kinds[d])}
	}
	return entries
}
