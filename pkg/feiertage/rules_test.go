package feiertage

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

func TestComputeHessen2023(t *testing.T) {
	s := Compute(2023, Hessen)
	want := []Date{
		d(2023, time.January, 1),
		d(2023, time.April, 7),
		d(2023, time.April, 9),
		d(2023, time.April, 10),
		d(2023, time.May, 1),
		d(2023, time.May, 18),
		d(2023, time.May, 28),
		d(2023, time.May, 29),
		d(2023, time.June, 8),
		d(2023, time.October, 3),
		d(2023, time.December, 25),
		d(2023, time.December, 26),
	}
	assert.Equal(t, want, s.Dates())
	assert.Equal(t, 2023, s.Year())
	assert.Equal(t, Hessen, s.Region())
	assert.Equal(t, []Kind{Fronleichnam}, s.KindsOn(d(2023, time.June, 8)))
	assert.Nil(t, s.KindsOn(d(2023, time.June, 9)))
}

func TestRegionalKinds(t *testing.T) {
	extra := map[Region][]Kind{
		BadenWuerttemberg:        {HeiligeDreiKoenige, Fronleichnam, Allerheiligen},
		BayernKatholisch:         {HeiligeDreiKoenige, Fronleichnam, MariaeHimmelfahrt, Allerheiligen},
		BayernProtestantisch:     {HeiligeDreiKoenige, Fronleichnam, Allerheiligen},
		BayernAugsburg:           {HeiligeDreiKoenige, Fronleichnam, Friedensfest, MariaeHimmelfahrt, Allerheiligen},
		Berlin:                   {Frauentag},
		Brandenburg:              {Reformationstag},
		Bremen:                   {Reformationstag},
		Hamburg:                  {Reformationstag},
		Hessen:                   {Fronleichnam},
		MecklenburgVorpommern:    {Frauentag, Reformationstag},
		Niedersachsen:            {Reformationstag},
		NordrheinWestfalen:       {Fronleichnam, Allerheiligen},
		RheinlandPfalz:           {Fronleichnam, Allerheiligen},
		Saarland:                 {Fronleichnam, MariaeHimmelfahrt, Allerheiligen},
		SachsenAnhalt:            {HeiligeDreiKoenige, Reformationstag},
		SachsenProtestantisch:    {Reformationstag, BussUndBettag},
		SachsenKatholisch:        {Fronleichnam, Reformationstag, BussUndBettag},
		SchleswigHolstein:        {Reformationstag},
		ThueringenProtestantisch: {Weltkindertag, Reformationstag},
		ThueringenKatholisch:     {Fronleichnam, Weltkindertag, Reformationstag},
	}
	require.Len(t, extra, len(Regions()))
	for _, r := range Regions() {
		t.Run(r.String(), func(t *testing.T) {
			want := append(slices.Clone(common), extra[r]...)
			slices.Sort(want)
			assert.Equal(t, want, RegionalKinds(r))
			// No coinciding dates in 2023, so every kind has its own date.
			assert.Equal(t, len(want), Compute(2023, r).Len())
		})
	}
}

func TestRegionalKindsIsCopy(t *testing.T) {
	ks := RegionalKinds(Berlin)
	ks[0] = Silvester
	assert.Equal(t, Neujahr, RegionalKinds(Berlin)[0])
}

func TestReformationExclusiveWithAllSaints(t *testing.T) {
	for _, r := range Regions() {
		ks := RegionalKinds(r)
		assert.False(t, slices.Contains(ks, Reformationstag) && slices.Contains(ks, Allerheiligen), r.String())
	}
	for _, r := range []Region{Berlin, Hessen} {
		ks := RegionalKinds(r)
		assert.NotContains(t, ks, Reformationstag, r.String())
		assert.NotContains(t, ks, Allerheiligen, r.String())
	}
}

func TestAugsburgPeaceFestival(t *testing.T) {
	assert.True(t, Compute(2023, BayernAugsburg).Contains(d(2023, time.August, 8)))
	assert.False(t, Compute(2023, BayernKatholisch).Contains(d(2023, time.August, 8)))
	assert.True(t, Compute(2023, BayernKatholisch).Contains(d(2023, time.August, 15)))
	assert.False(t, Compute(2023, BayernProtestantisch).Contains(d(2023, time.August, 15)))
}

func TestReformationJubilee(t *testing.T) {
	oct31 := d(2017, time.October, 31)
	for _, r := range Regions() {
		s := Compute(2017, r)
		assert.True(t, s.Contains(oct31), r.String())
		assert.Equal(t, []Kind{Reformationstag}, s.KindsOn(oct31), r.String())
	}
	// All Saints' regions keep All Saints' Day in 2017.
	assert.True(t, Compute(2017, NordrheinWestfalen).Contains(d(2017, time.November, 1)))
	// And lose Reformation Day again afterwards.
	assert.False(t, Compute(2016, NordrheinWestfalen).Contains(d(2016, time.October, 31)))
	assert.False(t, Compute(2018, NordrheinWestfalen).Contains(d(2018, time.October, 31)))
	assert.False(t, Compute(2018, Hessen).Contains(d(2018, time.October, 31)))
}

func TestUnityDay(t *testing.T) {
	for _, r := range Regions() {
		s := Compute(1989, r)
		assert.True(t, s.Contains(d(1989, time.June, 17)), r.String())
		assert.False(t, s.Contains(d(1989, time.October, 3)), r.String())

		s = Compute(1990, r)
		assert.True(t, s.Contains(d(1990, time.June, 17)), r.String())
		assert.False(t, s.Contains(d(1990, time.October, 3)), r.String())

		s = Compute(1991, r)
		assert.True(t, s.Contains(d(1991, time.October, 3)), r.String())
		assert.False(t, s.Contains(d(1991, time.June, 17)), r.String())
	}
}

func TestRepentanceDayRule(t *testing.T) {
	for _, r := range Regions() {
		assert.True(t, Compute(1994, r).Contains(d(1994, time.November, 16)), r.String())
		assert.Contains(t, KindsOfYear(1994, r), BussUndBettag, r.String())
	}
	for _, r := range Regions() {
		has := Compute(1995, r).Contains(d(1995, time.November, 22))
		saxony := r == SachsenProtestantisch || r == SachsenKatholisch
		assert.Equal(t, saxony, has, r.String())
	}
	assert.False(t, Compute(2023, Hessen).Contains(RepentanceDay(2023)))
	assert.True(t, Compute(2023, SachsenKatholisch).Contains(RepentanceDay(2023)))
}

func TestKindsOfYearNoDuplicates(t *testing.T) {
	for _, year := range []int{1989, 1994, 2017, 2023} {
		for _, r := range Regions() {
			ks := KindsOfYear(year, r)
			assert.Equal(t, ks, slices.Compact(slices.Clone(ks)), "%d %v", year, r)
			assert.True(t, slices.IsSorted(ks), "%d %v", year, r)
		}
	}
}

func TestCoincidingHolidays(t *testing.T) {
	// Ascension Day fell on Labour Day in 2008.
	s := Compute(2008, Hessen)
	may1 := d(2008, time.May, 1)
	assert.Equal(t, []Kind{TagDerArbeit, ChristiHimmelfahrt}, s.KindsOn(may1))
	assert.Equal(t, len(KindsOfYear(2008, Hessen))-1, s.Len())

	n := 0
	for _, e := range s.Entries() {
		if e.Date == may1 {
			n++
		}
	}
	assert.Equal(t, 1, n)
}

func TestSetDatesWithinYear(t *testing.T) {
	for _, year := range []int{1583, 1700, 1818, 1990, 2008, 2038, 2285, 2499} {
		for _, r := range Regions() {
			s := Compute(year, r)
			dates := s.Dates()
			assert.True(t, slices.IsSortedFunc(dates, Date.Compare))
			for _, dt := range dates {
				assert.Equal(t, year, dt.Year, "%d %v: %v", year, r, dt)
			}
		}
	}
}

func TestInvalidRegionPanics(t *testing.T) {
	assert.Panics(t, func() { Compute(2023, Region(42)) })
	assert.Panics(t, func() { RegionalKinds(Region(-1)) })
}
