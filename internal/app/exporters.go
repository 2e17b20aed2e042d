package app

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cloudeng.io/logging/ctxlog"
	"github.com/google/uuid"

	"github.com/klabast/wb-services/feiertage/pkg/feiertage"
)

// uidNamespace scopes event UIDs to this service
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte(ICSDomain))

var icsEscaper = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\n", `\n`)

// Reminder is a VALARM at a wall clock time some days before a holiday
type Reminder struct {
	DaysBefore int
	Time       string // HH:MM
}

// RemindersFromQuery reads the reminder settings of a download request
func RemindersFromQuery(q url.Values) []Reminder {
	var reminders []Reminder
	for _, p := range []struct {
		flag, time string
		days       int
	}{
		{"reminder2Days", "time2Days", 2},
		{"reminder1Day", "time1Day", 1},
		{"reminderSameDay", "timeSameDay", 0},
	} {
		if q.Get(p.flag) == "true" && q.Get(p.time) != "" {
			reminders = append(reminders, Reminder{DaysBefore: p.days, Time: q.Get(p.time)})
		}
	}
	return reminders
}

// Calendar is the content of an ICS document
type Calendar struct {
	Region    feiertage.Region
	Year      int // zero for subscription feeds
	Events    []Event
	Reminders []Reminder
	Publish   bool
	Stamp     time.Time
}

// EventUID returns the stable UID of a holiday event in a region
func EventUID(region feiertage.Region, e Event) string {
	name := e.Date + "/" + e.Kind + "/" + region.Code()
	return uuid.NewSHA1(uidNamespace, []byte(name)).String() + "@" + ICSDomain
}

// icsWriter keeps the first write error
type icsWriter struct {
	w   io.Writer
	err error
}

func (iw *icsWriter) Write(p []byte) (int, error) {
	if iw.err != nil {
		return 0, iw.err
	}
	n, err := iw.w.Write(p)
	iw.err = err
	return n, err
}

func (iw *icsWriter) line(format string, args ...any) {
	fmt.Fprintf(iw, format+"\r\n", args...)
}

// WriteICS writes cal as an iCalendar document
func WriteICS(w io.Writer, cal Calendar) error {
	iw := &icsWriter{w: w}
	regionName := icsEscaper.Replace(cal.Region.Name())
	stamp := cal.Stamp.UTC().Format("20060102T150405Z")

	iw.line("BEGIN:VCALENDAR")
	iw.line("VERSION:2.0")
	iw.line("PRODID:%s", ICSProductID)
	if cal.Publish {
		iw.line("METHOD:PUBLISH")
	}
	if cal.Year != 0 {
		iw.line("X-WR-CALNAME:Feiertage %s %d", regionName, cal.Year)
	} else {
		iw.line("X-WR-CALNAME:Feiertage %s", regionName)
	}
	iw.line("X-WR-TIMEZONE:%s", ICSTimezone)
	iw.line("CALSCALE:GREGORIAN")
	if cal.Publish {
		iw.line("X-PUBLISHED-TTL:P1D")
	}

	for _, event := range cal.Events {
		d, err := feiertage.ParseDate(event.Date)
		if err != nil {
			continue
		}
		start := d.Time(time.UTC)
		summary := icsEscaper.Replace(event.Name)

		iw.line("BEGIN:VEVENT")
		iw.line("UID:%s", EventUID(cal.Region, event))
		iw.line("DTSTAMP:%s", stamp)
		iw.line("DTSTART;VALUE=DATE:%s", start.Format("20060102"))
		iw.line("DTEND;VALUE=DATE:%s", start.AddDate(0, 0, 1).Format("20060102"))
		iw.line("SUMMARY:%s", summary)
		iw.line("DESCRIPTION:Gesetzlicher Feiertag in %s", regionName)
		iw.line("LOCATION:%s", regionName)
		iw.line("TRANSP:TRANSPARENT")
		if !cal.Publish {
			for _, rem := range cal.Reminders {
				AddAlarm(iw, start, rem.DaysBefore, rem.Time, summary)
			}
		}
		iw.line("END:VEVENT")
	}

	iw.line("END:VCALENDAR")
	return iw.err
}

// AddAlarm adds an alarm/reminder to an ICS event
func AddAlarm(w io.Writer, eventDate time.Time, daysBefore int, alarmTime string, description string) {
	parts := strings.Split(alarmTime, ":")
	if len(parts) != 2 {
		return
	}
	hour, err1 := strconv.Atoi(parts[0])
	minute, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return
	}

	// The all-day event starts at 00:00; the alarm fires at alarmTime on
	// eventDate - daysBefore.
	alarmDate := eventDate.AddDate(0, 0, -daysBefore)
	alarmAt := time.Date(alarmDate.Year(), alarmDate.Month(), alarmDate.Day(), hour, minute, 0, 0, time.UTC)
	eventStart := time.Date(eventDate.Year(), eventDate.Month(), eventDate.Day(), 0, 0, 0, 0, time.UTC)

	totalMinutes := int(alarmAt.Sub(eventStart).Minutes())
	sign := ""
	if totalMinutes < 0 {
		sign = "-"
		totalMinutes = -totalMinutes
	}
	days := totalMinutes / (24 * 60)
	hours := totalMinutes % (24 * 60) / 60
	minutes := totalMinutes % 60

	fmt.Fprint(w, "BEGIN:VALARM\r\n")
	fmt.Fprint(w, "ACTION:DISPLAY\r\n")
	fmt.Fprintf(w, "DESCRIPTION:Erinnerung: %s\r\n", description)
	fmt.Fprintf(w, "TRIGGER:%sP%dDT%dH%dM\r\n", sign, days, hours, minutes)
	fmt.Fprint(w, "END:VALARM\r\n")
}

// WriteCSV writes one row per holiday event
func WriteCSV(w io.Writer, events []Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Datum", "Feiertag", "Bezeichnung"}); err != nil {
		return err
	}
	for _, event := range events {
		if err := cw.Write([]string{event.Date, event.Kind, event.Name}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the events of a region and year as a JSON document
func WriteJSON(w io.Writer, region feiertage.Region, year int, events []Event) error {
	if events == nil {
		events = []Event{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Region RegionInfo `json:"region"`
		Year   int        `json:"year"`
		Events []Event    `json:"events"`
	}{regionInfo(region), year, events})
}

func attachment(w http.ResponseWriter, contentType string, region feiertage.Region, year int, ext string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=feiertage_%s_%d.%s", region.Code(), year, ext))
}

// GenerateICS writes a downloadable iCalendar file with optional reminders
func GenerateICS(w http.ResponseWriter, r *http.Request, region feiertage.Region, year int, events []Event) {
	attachment(w, "text/calendar; charset=utf-8", region, year, "ics")
	err := WriteICS(w, Calendar{
		Region:    region,
		Year:      year,
		Events:    events,
		Reminders: RemindersFromQuery(r.URL.Query()),
		Stamp:     time.Now(),
	})
	if err != nil {
		ctxlog.Logger(r.Context()).Error("writing ics export", "region", region.Code(), "year", year, "error", err)
	}
}

// GenerateCSV writes a downloadable CSV file
func GenerateCSV(w http.ResponseWriter, r *http.Request, region feiertage.Region, year int, events []Event) {
	attachment(w, "text/csv; charset=utf-8", region, year, "csv")
	if err := WriteCSV(w, events); err != nil {
		ctxlog.Logger(r.Context()).Error("writing csv export", "region", region.Code(), "year", year, "error", err)
	}
}

// GenerateJSON writes a downloadable JSON file
func GenerateJSON(w http.ResponseWriter, r *http.Request, region feiertage.Region, year int, events []Event) {
	attachment(w, "application/json; charset=utf-8", region, year, "json")
	if err := WriteJSON(w, region, year, events); err != nil {
		ctxlog.Logger(r.Context()).Error("writing json export", "region", region.Code(), "year", year, "error", err)
	}
}

// GenerateSubscriptionICS writes an iCalendar subscription feed. The content
// is served inline and carries no alarms.
func GenerateSubscriptionICS(w http.ResponseWriter, r *http.Request, region feiertage.Region, events []Event) {
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	err := WriteICS(w, Calendar{
		Region:  region,
		Events:  events,
		Publish: true,
		Stamp:   time.Now(),
	})
	if err != nil {
		ctxlog.Logger(r.Context()).Error("writing subscription feed", "region", region.Code(), "error", err)
	}
}
