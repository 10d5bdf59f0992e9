package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAgenda(t *testing.T) {
	events := []Event{
		{ID: "exam", Title: "History", Date: at(2024, time.June, 18, 14, 0), Kind: KindExam, CourseID: "2", Duration: 90 * time.Minute},
		{ID: "first", Title: "Math", Date: at(2024, time.June, 18, 8, 0), Kind: KindClass, CourseID: "1", Duration: 45 * time.Minute},
		{ID: "now", Title: "Staff", Date: at(2024, time.June, 18, 10, 0), Kind: KindMeeting, Location: "Room 12"},
		{ID: "tomorrow", Title: "Math", Date: at(2024, time.June, 19, 8, 0), Kind: KindClass, CourseID: "1"},
	}
	participants := map[string]int{"1": 2, "2": 1}
	now := at(2024, time.June, 18, 10, 30)

	agenda := BuildAgenda(events, now, func(id string) int { return participants[id] })

	assert.Equal(t, "2024-06-18", agenda.Date)
	require.Len(t, agenda.Events, 3)

	assert.Equal(t, "first", agenda.Events[0].ID)
	assert.Equal(t, "08:00", agenda.Events[0].Time)
	assert.Equal(t, StatusPast, agenda.Events[0].Status)
	assert.Equal(t, 2, agenda.Events[0].Participants)

	assert.Equal(t, "now", agenda.Events[1].ID)
	assert.Equal(t, StatusActive, agenda.Events[1].Status)
	assert.Equal(t, 45, agenda.Events[1].Duration, "missing duration falls back to the default")
	assert.Equal(t, "Room 12", agenda.Events[1].Location)

	assert.Equal(t, "exam", agenda.Events[2].ID)
	assert.Equal(t, StatusUpcoming, agenda.Events[2].Status)
	assert.Equal(t, 90, agenda.Events[2].Duration)

	require.NotNil(t, agenda.Next)
	assert.Equal(t, "exam", agenda.Next.ID)
	assert.Equal(t, map[Kind]int{KindClass: 1, KindMeeting: 1, KindExam: 1, KindEvent: 0}, agenda.Counts)
}

func TestBuildAgenda_empty(t *testing.T) {
	agenda := BuildAgenda(nil, at(2024, time.June, 18, 10, 30), nil)
	assert.NotNil(t, agenda.Events)
	assert.Empty(t, agenda.Events)
	assert.Nil(t, agenda.Next)
}

func TestStatusAt(t *testing.T) {
	e := Event{Date: at(2024, time.June, 18, 10, 0), Duration: time.Hour}
	tests := []struct {
		now  time.Time
		want Status
	}{
		{now: at(2024, time.June, 18, 9, 59), want: StatusUpcoming},
		{now: at(2024, time.June, 18, 10, 0), want: StatusActive},
		{now: at(2024, time.June, 18, 10, 59), want: StatusActive},
		{now: at(2024, time.June, 18, 11, 0), want: StatusPast},
	}
	for _, tt := range tests {
		t.Run(tt.now.Format("15:04"), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusAt(e, tt.now))
		})
	}
}
