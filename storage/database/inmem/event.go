package inmemdb

import (
	"github.com/trezcool/kalendar/core/calendar"
)

type eventRepository struct {
	db *eventTable
}

var _ calendar.Repository = (*eventRepository)(nil) // interface compliance check

func NewEventRepository(db *DB) calendar.Repository {
	return &eventRepository{db: db.event}
}

func (repo *eventRepository) CreateEvent(e calendar.Event) (calendar.Event, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	row := e
	repo.db.rows = append(repo.db.rows, &row)
	return e, nil
}

func (repo *eventRepository) QueryAllEvents() ([]calendar.Event, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	events := make([]calendar.Event, 0, len(repo.db.rows))
	for _, e := range repo.db.rows {
		events = append(events, *e)
	}
	return events, nil
}

func (repo *eventRepository) GetEventByID(id string) (calendar.Event, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, e := range repo.db.rows {
		if e.ID == id {
			return *e, nil
		}
	}
	return calendar.Event{}, calendar.ErrNotFound
}

func (repo *eventRepository) DeleteEvent(id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for i, e := range repo.db.rows {
		if e.ID == id {
			repo.db.rows = append(repo.db.rows[:i], repo.db.rows[i+1:]...)
			return nil
		}
	}
	return calendar.ErrNotFound
}

func (repo *eventRepository) DeleteEventsByCourse(courseID string) (int, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	kept := repo.db.rows[:0]
	for _, e := range repo.db.rows {
		if e.CourseID != courseID {
			kept = append(kept, e)
		}
	}
	n := len(repo.db.rows) - len(kept)
	for i := len(kept); i < len(repo.db.rows); i++ {
		repo.db.rows[i] = nil
	}
	repo.db.rows = kept
	return n, nil
}
