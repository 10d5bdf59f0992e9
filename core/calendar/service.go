package calendar

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/kalendar/core"
	"github.com/trezcool/kalendar/core/course"
)

type (
	Repository interface {
		CreateEvent(e Event) (Event, error)
		// QueryAllEvents returns every event in creation order.
		QueryAllEvents() ([]Event, error)
		GetEventByID(id string) (Event, error)
		DeleteEvent(id string) error
		DeleteEventsByCourse(courseID string) (int, error)
	}

	// CourseFinder looks up the course an event belongs to.
	CourseFinder interface {
		GetByID(id string) (course.Course, error)
	}

	Service struct {
		repo    Repository
		courses CourseFinder
		loc     *time.Location
		maxDay  int
	}
)

func NewService(repo Repository, courses CourseFinder, conf *core.Config) *Service {
	loc := conf.Calendar.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, courses: courses, loc: loc, maxDay: conf.Calendar.MaxEventsPerDay}
}

// Location is the time zone calendar dates are compared in.
func (svc *Service) Location() *time.Location { return svc.loc }

func (svc *Service) Create(ne NewEvent) (Event, error) {
	crs, err := svc.courses.GetByID(ne.CourseID)
	if err != nil {
		if course.IsNotFound(err) {
			return Event{}, core.NewValidationError(err, core.FieldError{Field: "course_id", Error: err.Error()})
		}
		return Event{}, errors.Wrap(err, "finding course")
	}
	start, err := ne.Start(svc.loc)
	if err != nil {
		return Event{}, err
	}

	e := Event{
		ID:        uuid.New().String(),
		Title:     ne.Title,
		Date:      start,
		Color:     ne.Color,
		CourseID:  crs.ID,
		Location:  ne.Location,
		Kind:      ne.Kind,
		Duration:  time.Duration(ne.Duration) * time.Minute,
		CreatedAt: time.Now().UTC(),
	}
	if e.Title == "" {
		e.Title = crs.Name
	}
	if e.Color == "" {
		e.Color = crs.Color
	}
	if e.Kind == "" {
		e.Kind = KindClass
	}
	if e.Duration <= 0 {
		e.Duration = DefaultDuration
	}
	return svc.repo.CreateEvent(e)
}

func (svc *Service) QueryAll() ([]Event, error) {
	return svc.repo.QueryAllEvents()
}

// Query returns the events matching filter, in creation order.
func (svc *Service) Query(filter QueryFilter) ([]Event, error) {
	all, err := svc.repo.QueryAllEvents()
	if err != nil {
		return nil, err
	}
	var events []Event
	for _, e := range all {
		if filter.match(e) {
			events = append(events, e)
		}
	}
	return events, nil
}

func (svc *Service) GetByID(id string) (Event, error) {
	return svc.repo.GetEventByID(id)
}

func (svc *Service) Delete(id string) error {
	return svc.repo.DeleteEvent(id)
}

// DeleteByCourse drops every event of a course and returns how many were removed.
func (svc *Service) DeleteByCourse(courseID string) (int, error) {
	return svc.repo.DeleteEventsByCourse(courseID)
}

type (
	MonthCell struct {
		Day    int     `json:"day"` // 0 for a blank cell
		Date   string  `json:"date,omitempty"`
		Today  bool    `json:"today,omitempty"`
		Events []Event `json:"events,omitempty"`
		More   int     `json:"more,omitempty"`
	}

	MonthView struct {
		Year          int         `json:"year"`
		Month         time.Month  `json:"month"`
		LeadingBlanks int         `json:"leading_blanks"`
		Cells         []MonthCell `json:"cells"`
	}

	DayView struct {
		Date    string  `json:"date"`
		Weekday int     `json:"weekday"` // 1 = Monday
		Today   bool    `json:"today,omitempty"`
		Events  []Event `json:"events"`
	}

	WeekView struct {
		Start string    `json:"start"`
		End   string    `json:"end"`
		Days  []DayView `json:"days"`
	}
)

// Month lays out ref's month with each day's events, truncated to the configured maximum per cell.
func (svc *Service) Month(ref, now time.Time) (MonthView, error) {
	ref = ref.In(svc.loc)
	grid, err := BuildMonthGrid(ref)
	if err != nil {
		return MonthView{}, err
	}
	events, err := svc.rangeEvents(FirstOfMonth(ref), FirstOfMonth(ref).AddDate(0, 1, 0))
	if err != nil {
		return MonthView{}, errors.Wrap(err, "querying events")
	}

	view := MonthView{
		Year:          grid.Year,
		Month:         grid.Month,
		LeadingBlanks: grid.LeadingBlanks(),
		Cells:         make([]MonthCell, 0, len(grid.Cells)),
	}
	for _, day := range grid.Cells {
		if day == 0 {
			view.Cells = append(view.Cells, MonthCell{})
			continue
		}
		date := time.Date(grid.Year, grid.Month, day, 0, 0, 0, 0, svc.loc)
		shown, more := Truncate(EventsOnDay(events, day, ref), svc.maxDay)
		view.Cells = append(view.Cells, MonthCell{
			Day:    day,
			Date:   FormatDate(date),
			Today:  SameDate(now, date),
			Events: shown,
			More:   more,
		})
	}
	return view, nil
}

// Week lists the seven Monday-first days of ref's week.
func (svc *Service) Week(ref, now time.Time) (WeekView, error) {
	ref = ref.In(svc.loc)
	if ref.IsZero() {
		return WeekView{}, newInvalidDateError(ref, "no reference date")
	}
	start := StartOfWeek(ref)
	events, err := svc.rangeEvents(start, start.AddDate(0, 0, 7))
	if err != nil {
		return WeekView{}, errors.Wrap(err, "querying events")
	}

	buckets := EventsInWeek(events, ref)
	view := WeekView{
		Start: FormatDate(start),
		End:   FormatDate(start.AddDate(0, 0, 6)),
		Days:  make([]DayView, 0, 7),
	}
	for i, evs := range buckets {
		date := start.AddDate(0, 0, i)
		view.Days = append(view.Days, svc.dayView(date, now, evs))
	}
	return view, nil
}

// Day lists ref's events sorted by start time.
func (svc *Service) Day(ref, now time.Time) (DayView, error) {
	ref = ref.In(svc.loc)
	if ref.IsZero() {
		return DayView{}, newInvalidDateError(ref, "no reference date")
	}
	start := StartOfDay(ref)
	events, err := svc.rangeEvents(start, start.AddDate(0, 0, 1))
	if err != nil {
		return DayView{}, errors.Wrap(err, "querying events")
	}
	return svc.dayView(start, now, EventsOnDate(events, start)), nil
}

func (svc *Service) dayView(date, now time.Time, events []Event) DayView {
	events = SortByTime(events)
	return DayView{
		Date:    FormatDate(date),
		Weekday: ISOWeekday(date),
		Today:   SameDate(now, date),
		Events:  events,
	}
}

// Today builds the agenda of now's date. Participants are the students enrolled in each event's course.
func (svc *Service) Today(now time.Time) (Agenda, error) {
	now = now.In(svc.loc)
	start := StartOfDay(now)
	events, err := svc.rangeEvents(start, start.AddDate(0, 0, 1))
	if err != nil {
		return Agenda{}, errors.Wrap(err, "querying events")
	}
	return BuildAgenda(events, now, func(courseID string) int {
		if c, err := svc.courses.GetByID(courseID); err == nil {
			return len(c.Students)
		}
		return 0
	}), nil
}

// ExportICS renders the events matching filter as an iCalendar document.
func (svc *Service) ExportICS(filter QueryFilter, prodID string) (string, error) {
	events, err := svc.Query(filter)
	if err != nil {
		return "", errors.Wrap(err, "querying events")
	}
	return ExportICS(events, prodID, time.Now()), nil
}

func (svc *Service) rangeEvents(from, to time.Time) ([]Event, error) {
	return svc.Query(QueryFilter{From: from, To: to})
}
