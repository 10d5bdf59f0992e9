package seed

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/kalendar/core/calendar"
	"github.com/trezcool/kalendar/core/course"
	inmemdb "github.com/trezcool/kalendar/storage/database/inmem"
)

func newRepositories(t *testing.T) Repositories {
	db, err := inmemdb.Open()
	require.NoError(t, err)
	return Repositories{
		Courses:       inmemdb.NewCourseRepository(db),
		Profiles:      inmemdb.NewProfileRepository(db),
		Events:        inmemdb.NewEventRepository(db),
		Notifications: inmemdb.NewNotificationRepository(db),
	}
}

func TestDefault_Apply(t *testing.T) {
	data, err := Default()
	require.NoError(t, err)

	repos := newRepositories(t)
	now := time.Date(2024, time.September, 15, 0, 0, 0, 0, time.UTC)
	stats, err := data.Apply(repos, Options{Location: time.UTC, Now: now, Horizon: 30 * 24 * time.Hour})
	require.NoError(t, err)

	// 2 single events, 13 Monday/Wednesday classes and 2 first-Friday exams in the window
	assert.Equal(t, Stats{Courses: 2, Profiles: 4, Events: 17, Notifications: 4}, stats)

	t.Run("courses", func(t *testing.T) {
		math, err := repos.Courses.GetCourseByID("1")
		require.NoError(t, err)
		assert.Equal(t, "Математика", math.Name)
		assert.Equal(t, []string{"+38970123456", "+38971234567"}, math.Students)
	})

	t.Run("single events", func(t *testing.T) {
		e, err := repos.Events.GetEventByID("1")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, time.June, 18, 10, 0, 0, 0, time.UTC), e.Date)
		assert.Equal(t, "#3B82F6", e.Color)
		assert.Equal(t, "Математика", e.Title)
		assert.Equal(t, calendar.DefaultDuration, e.Duration)

		e, err = repos.Events.GetEventByID("2")
		require.NoError(t, err)
		assert.Equal(t, "14:00", e.Time())
		assert.Equal(t, "#10B981", e.Color)
	})

	t.Run("series", func(t *testing.T) {
		e, err := repos.Events.GetEventByID("math-weekly-20240902")
		require.NoError(t, err)
		assert.Equal(t, "08:00", e.Time())

		exam, err := repos.Events.GetEventByID("history-exam-20241004")
		require.NoError(t, err)
		assert.Equal(t, calendar.KindExam, exam.Kind)
		assert.Equal(t, time.Hour, exam.Duration)
		assert.Equal(t, "Тест по историја", exam.Title)

		_, err = repos.Events.GetEventByID("math-weekly-20241016")
		assert.Equal(t, calendar.ErrNotFound, err)
	})

	t.Run("profiles", func(t *testing.T) {
		p, err := repos.Profiles.GetProfileByPhone("+38975000111")
		require.NoError(t, err)
		assert.True(t, p.IsTeacher())
		p, err = repos.Profiles.GetProfileByPhone("+38970123456")
		require.NoError(t, err)
		assert.Equal(t, "mk", p.PreferredLanguage)
	})

	t.Run("notifications", func(t *testing.T) {
		ns, err := repos.Notifications.QueryNotifications("+38970123456")
		require.NoError(t, err)
		require.Len(t, ns, 4)
		assert.Equal(t, "Час по математика", ns[0].Title)
		assert.Equal(t, now.Add(-5*time.Minute), ns[0].CreatedAt)
		assert.False(t, ns[0].IsRead)
		assert.True(t, ns[3].IsRead)
	})
}

func TestEvent_expand_exdate(t *testing.T) {
	e := Event{ID: "s", Course: "1", Date: "2025-09-01", Time: "08:00", RRule: "FREQ=WEEKLY;BYDAY=MO;COUNT=3", ExDates: []string{"2025-09-08"}}
	crs := course.Course{ID: "1", Name: "Математика", Color: course.DefaultColor}
	now := time.Date(2025, time.September, 10, 0, 0, 0, 0, time.UTC)

	events, err := e.expand(crs, Options{Location: time.UTC, Now: now, Horizon: 30 * 24 * time.Hour})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "s-20250901", events[0].ID)
	assert.Equal(t, "s-20250915", events[1].ID)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "empty", input: ""},
		{name: "courses only", input: "courses:\n  - id: '1'\n    name: Физика\n"},
		{name: "unknown field", input: "lessons: []\n", wantErr: true},
		{name: "malformed", input: "courses: [", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			if (err != nil) != tt.wantErr {
				t.Errorf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApply_errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "unknown course", input: "events:\n  - id: x\n    course: '9'\n    date: '2024-06-18'\n    time: '10:00'\n"},
		{name: "bad date", input: "courses:\n  - id: '1'\n    name: A\nevents:\n  - id: x\n    course: '1'\n    date: '18.06.2024'\n    time: '10:00'\n"},
		{name: "bad rrule", input: "courses:\n  - id: '1'\n    name: A\nevents:\n  - id: x\n    course: '1'\n    date: '2024-06-18'\n    time: '10:00'\n    rrule: FREQ=SOMETIMES\n"},
		{name: "bad age", input: "notifications:\n  - recipient: '+38970123456'\n    type: reminder\n    title: A\n    ago: yesterday\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			_, err = data.Apply(newRepositories(t), Options{})
			assert.Error(t, err)
		})
	}
}
