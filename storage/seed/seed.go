// Package seed loads the demo courses, profiles, events and notifications into the repositories.
package seed

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/trezcool/kalendar/core"
	"github.com/trezcool/kalendar/core/calendar"
	"github.com/trezcool/kalendar/core/course"
	"github.com/trezcool/kalendar/core/notification"
	"github.com/trezcool/kalendar/core/user"
)

//go:embed seed.yaml
var defaultSeed []byte

type (
	Data struct {
		Courses       []Course       `yaml:"courses"`
		Profiles      []Profile      `yaml:"profiles"`
		Events        []Event        `yaml:"events"`
		Notifications []Notification `yaml:"notifications"`
	}

	Course struct {
		ID          string   `yaml:"id"`
		Name        string   `yaml:"name"`
		Description string   `yaml:"description"`
		Color       string   `yaml:"color"`
		Students    []string `yaml:"students"`
	}

	Profile struct {
		PhoneNumber string   `yaml:"phone_number"`
		Name        string   `yaml:"name"`
		Role        string   `yaml:"role"`
		School      string   `yaml:"school"`
		Subjects    []string `yaml:"subjects"`
		YearGrade   string   `yaml:"year_grade"`
		Language    string   `yaml:"preferred_language"`
	}

	// Event is a single class, or a series when RRule is set.
	Event struct {
		ID       string   `yaml:"id"`
		Course   string   `yaml:"course"`
		Title    string   `yaml:"title"`
		Type     string   `yaml:"type"`
		Date     string   `yaml:"date"` // 2006-01-02, first occurrence of a series
		Time     string   `yaml:"time"` // 15:04
		Duration int      `yaml:"duration"`
		Location string   `yaml:"location"`
		Color    string   `yaml:"color"`
		RRule    string   `yaml:"rrule"`
		ExDates  []string `yaml:"exdates"`
	}

	Notification struct {
		Recipient string `yaml:"recipient"`
		Type      string `yaml:"type"`
		Title     string `yaml:"title"`
		Message   string `yaml:"message"`
		Priority  string `yaml:"priority"`
		Course    string `yaml:"course"`
		Read      bool   `yaml:"read"`
		Ago       string `yaml:"ago"` // how long before the seed time it was created
	}

	Repositories struct {
		Courses       course.Repository
		Profiles      user.Repository
		Events        calendar.Repository
		Notifications notification.Repository
	}

	Options struct {
		Location        *time.Location
		Now             time.Time
		Horizon         time.Duration // series are expanded within Now ± Horizon
		DefaultLanguage string
	}

	Stats struct {
		Courses       int `json:"courses"`
		Profiles      int `json:"profiles"`
		Events        int `json:"events"`
		Notifications int `json:"notifications"`
	}
)

// Default returns the embedded demo data.
func Default() (*Data, error) {
	return Parse(bytes.NewReader(defaultSeed))
}

// Load reads the seed file at path, or the embedded data when path is empty.
func Load(path string) (*Data, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening seed file")
	}
	defer f.Close()
	return Parse(f)
}

func Parse(r io.Reader) (*Data, error) {
	var data Data
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&data); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "decoding seed")
	}
	return &data, nil
}

func (opts *Options) defaults() {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.Horizon <= 0 {
		opts.Horizon = 120 * 24 * time.Hour
	}
	if opts.DefaultLanguage == "" {
		opts.DefaultLanguage = "mk"
	}
}

// Apply writes data through repos. The repositories are expected to be empty.
func (data *Data) Apply(repos Repositories, opts Options) (Stats, error) {
	opts.defaults()
	var stats Stats
	created := opts.Now.UTC()

	courses := make(map[string]course.Course, len(data.Courses))
	for _, c := range data.Courses {
		crs := course.Course{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Color:       c.Color,
			Students:    core.CleanStrings(c.Students),
			CreatedAt:   created,
			UpdatedAt:   created,
		}
		for i, s := range crs.Students {
			crs.Students[i] = core.CleanPhone(s)
		}
		if crs.Color == "" {
			crs.Color = course.DefaultColor
		}
		if _, err := repos.Courses.CreateCourse(crs); err != nil {
			return stats, errors.Wrapf(err, "creating course %q", c.ID)
		}
		courses[crs.ID] = crs
		stats.Courses++
	}

	for _, p := range data.Profiles {
		prof := user.Profile{
			ID:                uuid.New().String(),
			PhoneNumber:       core.CleanPhone(p.PhoneNumber),
			Name:              p.Name,
			Role:              p.Role,
			School:            p.School,
			Subjects:          p.Subjects,
			YearGrade:         p.YearGrade,
			PreferredLanguage: p.Language,
			CreatedAt:         created,
			UpdatedAt:         created,
		}
		if prof.Role == "" {
			prof.Role = user.RoleStudent
		}
		if prof.Subjects == nil {
			prof.Subjects = []string{}
		}
		if prof.PreferredLanguage == "" {
			prof.PreferredLanguage = opts.DefaultLanguage
		}
		if _, err := repos.Profiles.CreateProfile(prof); err != nil {
			return stats, errors.Wrapf(err, "creating profile %s", prof.PhoneNumber)
		}
		stats.Profiles++
	}

	for _, e := range data.Events {
		crs, ok := courses[e.Course]
		if !ok {
			return stats, errors.Errorf("event %q: unknown course %q", e.ID, e.Course)
		}
		events, err := e.expand(crs, opts)
		if err != nil {
			return stats, errors.Wrapf(err, "event %q", e.ID)
		}
		for _, ev := range events {
			if _, err := repos.Events.CreateEvent(ev); err != nil {
				return stats, errors.Wrapf(err, "creating event %q", ev.ID)
			}
			stats.Events++
		}
	}

	for _, n := range data.Notifications {
		ago, err := parseAgo(n.Ago)
		if err != nil {
			return stats, err
		}
		ntf := notification.Notification{
			ID:        uuid.New().String(),
			Recipient: core.CleanPhone(n.Recipient),
			Type:      notification.Type(n.Type),
			Title:     n.Title,
			Message:   n.Message,
			Priority:  notification.Priority(n.Priority),
			IsRead:    n.Read,
			CourseID:  n.Course,
			CreatedAt: created.Add(-ago),
		}
		if ntf.Priority == "" {
			ntf.Priority = notification.PriorityMedium
		}
		if _, err := repos.Notifications.CreateNotification(ntf); err != nil {
			return stats, errors.Wrap(err, "creating notification")
		}
		stats.Notifications++
	}
	return stats, nil
}

func parseAgo(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing notification age %q", s)
	}
	return d, nil
}

// expand returns the single event, or every occurrence of the series within the horizon.
// Occurrence ids are the series id suffixed with the occurrence date.
func (e Event) expand(crs course.Course, opts Options) ([]calendar.Event, error) {
	start, err := calendar.NewEvent{Date: e.Date, Time: e.Time}.Start(opts.Location)
	if err != nil {
		return nil, err
	}
	base := calendar.Event{
		ID:        e.ID,
		Title:     e.Title,
		Date:      start,
		Color:     e.Color,
		CourseID:  crs.ID,
		Location:  e.Location,
		Kind:      calendar.Kind(e.Type),
		Duration:  time.Duration(e.Duration) * time.Minute,
		CreatedAt: opts.Now.UTC(),
	}
	if base.Title == "" {
		base.Title = crs.Name
	}
	if base.Color == "" {
		base.Color = crs.Color
	}
	if base.Kind == "" {
		base.Kind = calendar.KindClass
	}
	if base.Duration <= 0 {
		base.Duration = calendar.DefaultDuration
	}
	if e.RRule == "" {
		return []calendar.Event{base}, nil
	}

	r, err := rrule.StrToRRule(e.RRule)
	if err != nil {
		return nil, errors.Wrap(err, "parsing rrule")
	}
	r.DTStart(start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range e.ExDates {
		day, err := calendar.ParseDate(ex, opts.Location)
		if err != nil {
			return nil, errors.Wrap(err, "parsing exdate")
		}
		set.ExDate(time.Date(day.Year(), day.Month(), day.Day(), start.Hour(), start.Minute(), 0, 0, opts.Location))
	}

	now := opts.Now.In(opts.Location)
	occurrences := set.Between(now.Add(-opts.Horizon), now.Add(opts.Horizon), true)
	events := make([]calendar.Event, 0, len(occurrences))
	for _, at := range occurrences {
		ev := base
		ev.ID = e.ID + "-" + at.Format("20060102")
		ev.Date = at.In(opts.Location)
		events = append(events, ev)
	}
	return events, nil
}
