package feiertage

import "time"

// EasterSunday returns Easter Sunday of the given Gregorian year using the
// Gaussian Easter algorithm with the secular corrections of Lichtenberg.
// Results are meaningful for years of the Gregorian era (roughly 1583-2499).
//
// See https://de.wikibooks.org/wiki/Algorithmensammlung:_Kalender:_Feiertage
func EasterSunday(year int) Date {
	k := year / 100                   // secular number
	m := 15 + (3*k+3)/4 - (8*k+13)/25 // secular moon shift
	s := 2 - (3*k+3)/4                // secular sun shift
	a := year % 19                    // moon parameter
	d := (19*a + m) % 30              // seed for the first spring full moon
	r := (d + a/11) / 29              // calendarial correction
	og := 21 + d - r                  // paschal full moon as a March date
	sz := 7 - (year+year/4+s)%7       // first Sunday in March
	oe := 7 - (og-sz)%7               // distance from full moon to Easter Sunday
	os := og + oe                     // Easter Sunday as a March date (32 March = 1 April)

	month := 2 + (os+30)/31
	day := os - 31*(month/4)

	return Date{Year: year, Month: time.Month(month), Day: day}
}

// easterOffset returns the date n days after Easter Sunday of year.
func easterOffset(year, n int) Date {
	return EasterSunday(year).AddDays(n)
}
