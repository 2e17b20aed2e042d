package app

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/klabast/wb-services/feiertage/pkg/feiertage"
)

// RequireMethod validates that the request uses the specified HTTP method
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, ErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// ParseYear parses a year in the supported range; an empty string means the
// current year.
func ParseYear(s string, now time.Time) (int, error) {
	if s == "" {
		return now.Year(), nil
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %q", ErrInvalidYear, s)
	}
	if year < MinYear || year > MaxYear {
		return 0, fmt.Errorf("%s: %d not in %d..%d", ErrInvalidYear, year, MinYear, MaxYear)
	}
	return year, nil
}

// ParseRegionOr parses s as a region; an empty string yields def.
func ParseRegionOr(s string, def feiertage.Region) (feiertage.Region, error) {
	if s == "" {
		return def, nil
	}
	return feiertage.ParseRegion(s)
}

// EventsFromSet flattens a holiday set into one event per date and kind
func EventsFromSet(s *feiertage.Set) []Event {
	var events []Event
	for _, e := range s.Entries() {
		for _, k := range e.Kinds {
			events = append(events, Event{Date: e.Date.String(), Kind: k.String(), Name: k.Name()})
		}
	}
	return events
}

// SortEventsByDate sorts events by date in ascending order
func SortEventsByDate(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date < events[j].Date
	})
}
