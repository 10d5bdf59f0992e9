// Package inmemdb keeps the application state in process memory. Every table is guarded by its own lock.
package inmemdb

import (
	"sync"

	"github.com/trezcool/kalendar/core/calendar"
	"github.com/trezcool/kalendar/core/course"
	"github.com/trezcool/kalendar/core/notification"
	"github.com/trezcool/kalendar/core/user"
)

type (
	DB struct {
		course       *courseTable
		event        *eventTable
		profile      *profileTable
		notification *notificationTable
	}

	// rows are kept in insertion order
	courseTable struct {
		sync.RWMutex
		rows []*course.Course
	}

	eventTable struct {
		sync.RWMutex
		rows []*calendar.Event
	}

	profileTable struct {
		sync.RWMutex
		rows []*user.Profile
	}

	notificationTable struct {
		sync.RWMutex
		rows []*notification.Notification
	}
)

func Open() (*DB, error) {
	return &DB{
		course:       &courseTable{},
		event:        &eventTable{},
		profile:      &profileTable{},
		notification: &notificationTable{},
	}, nil
}

// Replace swaps the content of every table for the content of src while holding every table lock,
// so no reader finds the store empty or half filled. src must not be used afterwards.
func (db *DB) Replace(src *DB) {
	// always in this order
	db.course.Lock()
	db.event.Lock()
	db.profile.Lock()
	db.notification.Lock()
	defer func() {
		db.notification.Unlock()
		db.profile.Unlock()
		db.event.Unlock()
		db.course.Unlock()
	}()

	db.course.rows = src.course.rows
	db.event.rows = src.event.rows
	db.profile.rows = src.profile.rows
	db.notification.rows = src.notification.rows
}

// Close is a no-op; it lets the DB stand in wherever a closable store is expected.
func (db *DB) Close() error { return nil }

func cloneStrings(ss []string) []string {
	if ss == nil {
		return nil
	}
	out := make([]string, len(ss))
	copy(out, ss)
	return out
}
