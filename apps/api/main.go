package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	echoapi "github.com/trezcool/kalendar/apps/api/echo"
	"github.com/trezcool/kalendar/core"
	"github.com/trezcool/kalendar/core/calendar"
	"github.com/trezcool/kalendar/core/course"
	"github.com/trezcool/kalendar/core/i18n"
	"github.com/trezcool/kalendar/core/notification"
	"github.com/trezcool/kalendar/core/user"
	logsvc "github.com/trezcool/kalendar/services/logger"
	schedulersvc "github.com/trezcool/kalendar/services/scheduler"
	sessionsvc "github.com/trezcool/kalendar/services/session"
	inmemdb "github.com/trezcool/kalendar/storage/database/inmem"
	"github.com/trezcool/kalendar/storage/seed"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)
	defer logger.Close()

	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	dbLogger.Enable(!conf.Debug)

	// set up DB
	db, err := inmemdb.Open()
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			dbLogger.Fatal("Failed to close", err)
		}
	}()

	repos := newRepositories(db)
	seedInto, err := newSeeder(conf, dbLogger)
	if err != nil {
		logger.Fatal(fmt.Sprintf("loading seed: %v", err), err)
	}
	if err = seedInto(db); err != nil {
		logger.Fatal(fmt.Sprintf("seeding database: %v", err), err)
	}

	// set up services
	courseSvc := course.NewService(repos.Courses)
	profileSvc := user.NewService(repos.Profiles, conf)
	eventSvc := calendar.NewService(repos.Events, courseSvc, conf)
	notificationSvc := notification.NewService(repos.Notifications)

	tr, err := i18n.New(conf.Calendar.DefaultLanguage)
	if err != nil {
		logger.Fatal(fmt.Sprintf("loading dictionaries: %v", err), err)
	}

	sessions, err := sessionsvc.New(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("connecting session store: %v", err), err)
	}
	defer func() {
		if err = sessions.Close(); err != nil {
			logger.Error(fmt.Sprintf("closing session store: %v", err), err)
		}
	}()

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	calendar.InitValidators(validate, translator)
	i18n.InitValidators(validate, translator)

	// =========================================================================
	// Start Scheduler

	scheduler := schedulersvc.New(conf, logger)
	if conf.Seed.ResetSchedule != "" {
		err = scheduler.Add("seed reset", conf.Seed.ResetSchedule, func(context.Context) error {
			// seed a fresh database off to the side, then swap it in
			fresh, err := inmemdb.Open()
			if err != nil {
				return errors.Wrap(err, "opening fresh database")
			}
			if err := seedInto(fresh); err != nil {
				return err
			}
			db.Replace(fresh)
			return nil
		})
		if err != nil {
			logger.Fatal(fmt.Sprintf("scheduling seed reset: %v", err), err)
		}
	}
	scheduler.Start()

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)
	expvar.NewString("timezone").Set(conf.Calendar.Timezone)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:            conf,
			Logger:          logger,
			ProfileSvc:      profileSvc,
			CourseSvc:       courseSvc,
			EventSvc:        eventSvc,
			NotificationSvc: notificationSvc,
			I18n:            tr,
			Sessions:        sessions,
			Validate:        validate,
			Translator:      translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests and jobs a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		if err = scheduler.Stop(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop scheduler: %v", err), err)
		}

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func newRepositories(db *inmemdb.DB) seed.Repositories {
	return seed.Repositories{
		Courses:       inmemdb.NewCourseRepository(db),
		Profiles:      inmemdb.NewProfileRepository(db),
		Events:        inmemdb.NewEventRepository(db),
		Notifications: inmemdb.NewNotificationRepository(db),
	}
}

// newSeeder loads the seed file once and returns a func applying it to an empty database.
func newSeeder(conf *core.Config, logger core.Logger) (func(db *inmemdb.DB) error, error) {
	data, err := seed.Load(conf.Seed.File)
	if err != nil {
		return nil, err
	}
	return func(db *inmemdb.DB) error {
		stats, err := data.Apply(newRepositories(db), seed.Options{
			Location:        conf.Calendar.Location,
			Now:             time.Now(),
			Horizon:         time.Duration(conf.Seed.HorizonDays) * 24 * time.Hour,
			DefaultLanguage: conf.Calendar.DefaultLanguage,
		})
		if err != nil {
			return errors.Wrap(err, "applying seed")
		}
		logger.Info("database seeded", stats)
		return nil
	}, nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
