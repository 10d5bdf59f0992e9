package main

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	inmemdb "github.com/trezcool/kalendar/storage/database/inmem"
	"github.com/trezcool/kalendar/storage/seed"
)

// seed loads path (the embedded seed when empty) into a throwaway database and reports what it holds.
func (cli *commandLine) seed(path string) error {
	data, err := seed.Load(path)
	if err != nil {
		return err
	}

	db, err := inmemdb.Open()
	if err != nil {
		return errors.Wrap(err, "opening database")
	}
	defer db.Close()

	stats, err := data.Apply(
		seed.Repositories{
			Courses:       inmemdb.NewCourseRepository(db),
			Profiles:      inmemdb.NewProfileRepository(db),
			Events:        inmemdb.NewEventRepository(db),
			Notifications: inmemdb.NewNotificationRepository(db),
		},
		seed.Options{
			Location:        cli.conf.Calendar.Location,
			Now:             cli.now(),
			Horizon:         time.Duration(cli.conf.Seed.HorizonDays) * 24 * time.Hour,
			DefaultLanguage: cli.conf.Calendar.DefaultLanguage,
		},
	)
	if err != nil {
		return err
	}

	fmt.Fprintf(cli.out, "courses: %d\n", stats.Courses)
	fmt.Fprintf(cli.out, "profiles: %d\n", stats.Profiles)
	fmt.Fprintf(cli.out, "events: %d\n", stats.Events)
	fmt.Fprintf(cli.out, "notifications: %d\n", stats.Notifications)
	return nil
}
