package app

import (
	"encoding/json"
	"net/http"

	"cloudeng.io/logging/ctxlog"

	"github.com/klabast/wb-services/feiertage/pkg/feiertage"
)

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.Logger(r.Context()).Error("encoding response", "error", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
	}
}

// queryYearRegion reads the year and region query parameters and writes a 400
// response if either is invalid.
func (s *Server) queryYearRegion(w http.ResponseWriter, r *http.Request) (int, feiertage.Region, bool) {
	q := r.URL.Query()
	year, err := ParseYear(q.Get("year"), s.today())
	if err != nil {
		http.Error(w, ErrInvalidYear, http.StatusBadRequest)
		return 0, 0, false
	}
	region, err := ParseRegionOr(q.Get("region"), s.region)
	if err != nil {
		http.Error(w, ErrInvalidRegion, http.StatusBadRequest)
		return 0, 0, false
	}
	return year, region, true
}

// GetConfig returns the regions, kinds and defaults of the service
func (s *Server) GetConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	regions := make([]RegionInfo, 0, len(feiertage.Regions()))
	for _, rg := range feiertage.Regions() {
		regions = append(regions, regionInfo(rg))
	}
	kinds := make([]KindInfo, 0, len(feiertage.Kinds()))
	for _, k := range feiertage.Kinds() {
		kinds = append(kinds, KindInfo{ID: k.String(), Name: k.Name()})
	}
	writeJSON(w, r, map[string]any{
		"regions":       regions,
		"kinds":         kinds,
		"currentYear":   s.today().Year(),
		"defaultRegion": s.region.Code(),
		"timezone":      s.cache.Location().String(),
		"minYear":       MinYear,
		"maxYear":       MaxYear,
	})
}

// HandleHolidays returns the holiday set of a region and year
// Query params: year, region (both optional)
func (s *Server) HandleHolidays(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	year, region, ok := s.queryYearRegion(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, NewYearData(s.cache.Holidays(year, region)))
}

// HandleCheck reports whether a moment is a holiday in a region
// Query params: date (optional, defaults to today), region (optional)
func (s *Server) HandleCheck(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	q := r.URL.Query()
	region, err := ParseRegionOr(q.Get("region"), s.region)
	if err != nil {
		http.Error(w, ErrInvalidRegion, http.StatusBadRequest)
		return
	}
	d := feiertage.DateOf(s.today())
	if ds := q.Get("date"); ds != "" {
		if d, err = s.cache.ParseMoment(ds); err != nil {
			http.Error(w, ErrInvalidMoment, http.StatusBadRequest)
			return
		}
	}
	if d.Year < MinYear || d.Year > MaxYear {
		http.Error(w, ErrInvalidYear, http.StatusBadRequest)
		return
	}
	writeJSON(w, r, NewCheckResult(s.cache.Holidays(d.Year, region), d))
}

// HandleDownload handles export downloads in ICS, CSV or JSON format
func (s *Server) HandleDownload(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	year, region, ok := s.queryYearRegion(w, r)
	if !ok {
		return
	}
	events := EventsFromSet(s.cache.Holidays(year, region))

	switch r.URL.Query().Get("format") {
	case "ics":
		GenerateICS(w, r, region, year, events)
	case "csv":
		GenerateCSV(w, r, region, year, events)
	case "json":
		GenerateJSON(w, r, region, year, events)
	default:
		http.Error(w, ErrInvalidFormat, http.StatusBadRequest)
	}
}

// HandleSubscribe handles calendar subscription requests
// URL: /api/subscribe/{region}
// Covers the configured number of years around the current year.
func (s *Server) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	region, err := feiertage.ParseRegion(r.PathValue("region"))
	if err != nil {
		http.Error(w, ErrInvalidRegion, http.StatusBadRequest)
		return
	}

	current := s.today().Year()
	first := max(current-s.cfg.Subscribe.YearsBack, MinYear)
	last := min(current+s.cfg.Subscribe.YearsForward, MaxYear)

	var events []Event
	for year := first; year <= last; year++ {
		events = append(events, EventsFromSet(s.cache.Holidays(year, region))...)
	}
	SortEventsByDate(events)

	GenerateSubscriptionICS(w, r, region, events)
}

// HandleCacheStatus returns the query cache statistics (admin only)
func (s *Server) HandleCacheStatus(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, r, s.cache.Stats())
}

// HandleCachePurge drops all cached holiday sets (admin only)
func (s *Server) HandleCachePurge(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	s.cache.Purge()
	ctxlog.Logger(r.Context()).Info("query cache purged")
	writeJSON(w, r, map[string]string{"status": "ok"})
}
