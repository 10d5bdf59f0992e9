package calendar

import (
	"time"

	ical "github.com/arran4/golang-ical"
)

// ExportICS renders events as an iCalendar (RFC 5545) document.
func ExportICS(events []Event, prodID string, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(prodID)

	for _, e := range events {
		ve := cal.AddEvent(e.ID)
		ve.SetDtStampTime(now.UTC())
		if !e.CreatedAt.IsZero() {
			ve.SetCreatedTime(e.CreatedAt.UTC())
		}
		ve.SetStartAt(e.Date.UTC())
		ve.SetEndAt(e.End().UTC())
		ve.SetSummary(e.Title)
		if e.Location != "" {
			ve.SetLocation(e.Location)
		}
		ve.SetProperty(ical.ComponentProperty("CATEGORIES"), string(e.Kind))
		ve.SetProperty(ical.ComponentProperty("COLOR"), e.Color)
		ve.SetProperty(ical.ComponentProperty("X-KALENDAR-COURSE"), e.CourseID)
	}
	return cal.Serialize()
}
