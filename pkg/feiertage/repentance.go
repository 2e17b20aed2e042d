package feiertage

import "time"

// isoOrdinal numbers the days of the week Monday=0 .. Sunday=6.
func isoOrdinal(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// RepentanceDay returns Buß- und Bettag of the given year: the last
// Wednesday before 23 November, always between 16 and 22 November.
func RepentanceDay(year int) Date {
	date := Date{Year: year, Month: time.November, Day: 22}
	current := isoOrdinal(date.Weekday())
	wednesday := isoOrdinal(time.Wednesday)
	if current == wednesday {
		return date
	}

	date = date.AddDays(wednesday - current)
	if current < wednesday {
		return date.AddDays(-7)
	}
	return date
}
