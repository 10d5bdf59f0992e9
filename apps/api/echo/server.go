package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/kalendar/core"
	"github.com/trezcool/kalendar/core/calendar"
	"github.com/trezcool/kalendar/core/course"
	"github.com/trezcool/kalendar/core/i18n"
	"github.com/trezcool/kalendar/core/notification"
	"github.com/trezcool/kalendar/core/user"
	sessionsvc "github.com/trezcool/kalendar/services/session"
)

type (
	ServerDeps struct {
		Conf            *core.Config
		Logger          core.Logger
		ProfileSvc      *user.Service
		CourseSvc       *course.Service
		EventSvc        *calendar.Service
		NotificationSvc *notification.Service
		I18n            *i18n.Translator
		Sessions        sessionsvc.Store
		Validate        *validator.Validate
		Translator      ut.Translator
		Now             func() time.Time // defaults to time.Now
	}

	Server struct {
		conf     *core.Config
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	s := &Server{
		conf:     deps.Conf,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	if !deps.Conf.TestMode {
		signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	}
	s.setup(deps)
	return s
}

func (s *Server) setup(deps ServerDeps) {
	conf := deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(deps.Logger, deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = conf.TestMode

	s.app.GET("/", home)

	v1 := s.app.Group("/api/v1")
	jwt := newJWTMiddleware(conf, deps.Sessions)

	registerAuthAPI(v1, jwt, conf, deps.ProfileSvc, deps.Sessions, deps.Validate)
	registerProfileAPI(v1, jwt, deps.ProfileSvc, deps.CourseSvc, deps.Validate)
	registerI18nAPI(v1, deps.I18n)
	registerCourseAPI(v1, jwt, deps.CourseSvc, deps.EventSvc, deps.ProfileSvc, deps.NotificationSvc, deps.I18n, deps.Validate)
	registerEventAPI(v1, jwt, deps.EventSvc, deps.ProfileSvc, deps.Validate)
	registerCalendarAPI(v1, jwt, conf, deps.EventSvc, deps.ProfileSvc, deps.I18n, deps.Validate, deps.Now)
	registerNotificationAPI(v1, jwt, deps.NotificationSvc, deps.ProfileSvc, deps.Validate)
}

// Start blocks serving HTTP until the server is shut down. Failures are reported on Errors.
func (s *Server) Start() {
	if err := s.app.Start(s.conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // already shutting down
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Kalendar API!")
}
