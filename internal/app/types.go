package app

import "github.com/klabast/wb-services/feiertage/pkg/feiertage"

// Event represents a single holiday on a single date
type Event struct {
	Date string `json:"date"`
	Kind string `json:"kind"`
	Name string `json:"name"`
}

// RegionInfo describes a region for clients
type RegionInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// KindInfo describes a holiday kind for clients
type KindInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// HolidayEntry is one date of a yearly holiday set
type HolidayEntry struct {
	Date  string   `json:"date"`
	Kinds []string `json:"kinds"`
	Names []string `json:"names"`
}

// YearData represents the holidays of one region and year
type YearData struct {
	Year     int            `json:"year"`
	Region   RegionInfo     `json:"region"`
	Holidays []HolidayEntry `json:"holidays"`
}

// CheckResult is the verdict for a single moment
type CheckResult struct {
	Date    string   `json:"date"`
	Region  string   `json:"region"`
	Holiday bool     `json:"holiday"`
	Kinds   []string `json:"kinds"`
	Names   []string `json:"names"`
}

func regionInfo(r feiertage.Region) RegionInfo {
	return RegionInfo{Code: r.Code(), Name: r.Name()}
}

// NewYearData converts a holiday set into its JSON form
func NewYearData(s *feiertage.Set) YearData {
	yd := YearData{
		Year:     s.Year(),
		Region:   regionInfo(s.Region()),
		Holidays: make([]HolidayEntry, 0, s.Len()),
	}
	for _, e := range s.Entries() {
		ids, names := kindStrings(e.Kinds)
		yd.Holidays = append(yd.Holidays, HolidayEntry{Date: e.Date.String(), Kinds: ids, Names: names})
	}
	return yd
}

// NewCheckResult builds the verdict for date d in region r
func NewCheckResult(s *feiertage.Set, d feiertage.Date) CheckResult {
	ids, names := kindStrings(s.KindsOn(d))
	return CheckResult{
		Date:    d.String(),
		Region:  s.Region().Code(),
		Holiday: s.Contains(d),
		Kinds:   ids,
		Names:   names,
	}
}

func kindStrings(ks []feiertage.Kind) (ids, names []string) {
	ids = make([]string, 0, len(ks))
	names = make([]string, 0, len(ks))
	for _, k := range ks {
		ids = append(ids, k.String())
		names = append(names, k.Name())
	}
	return ids, names
}
