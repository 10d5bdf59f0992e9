package logsvc

import (
	"log"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/trezcool/kalendar/core"
	"github.com/trezcool/kalendar/core/user"
)

// RollbarLogger reports to Rollbar and mirrors every entry to a std logger.
type RollbarLogger struct {
	std        *log.Logger
	reportable bool // a token is set and this is not a test run
	enabled    bool
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetServerRoot("github.com/trezcool/kalendar")
	rollbar.SetStackTracer(errors.StackTracer)
	l := &RollbarLogger{std: std, reportable: conf.RollbarToken != "" && !conf.TestMode}
	// nothing to report to without a token (local runs and tests)
	l.Enable(true)
	return l
}

// Enable turns Rollbar reporting on or off. It stays off when there is nothing to report to.
func (l *RollbarLogger) Enable(enabled bool) {
	l.enabled = enabled && l.reportable
	rollbar.SetEnabled(l.enabled)
}

func (l *RollbarLogger) Enabled() bool { return l.enabled }

// Close flushes the pending Rollbar items.
func (l *RollbarLogger) Close() {
	rollbar.Close()
}

// expected fmt: msg | error, map[string]interface{}, user.Profile
func (l *RollbarLogger) prepare(msg string, args []interface{}) []interface{} {
	prof, rest := splitProfile(args)
	if prof != nil {
		rollbar.SetPerson(prof.ID, prof.DisplayName(), "")
	} else {
		rollbar.ClearPerson()
	}
	return append([]interface{}{msg}, rest...)
}

// splitProfile takes the first profile out of args. Only one person can be attached to an item.
func splitProfile(args []interface{}) (*user.Profile, []interface{}) {
	var prof *user.Profile
	rest := make([]interface{}, 0, len(args))
	for _, arg := range args {
		p, ok := arg.(user.Profile)
		switch {
		case ok && prof == nil:
			prof = &p
		case ok:
		default:
			rest = append(rest, arg)
		}
	}
	return prof, rest
}

func (l *RollbarLogger) print(level, msg string, args []interface{}) {
	l.std.Printf("[%s] %s", level, msg)
	for _, arg := range args {
		l.std.Printf("  %+v", arg)
	}
}

func (l *RollbarLogger) Debug(msg string, args ...interface{}) {
	rollbar.Debug(l.prepare(msg, args)...)
	l.print("DEBUG", msg, args)
}

func (l *RollbarLogger) Info(msg string, args ...interface{}) {
	rollbar.Info(l.prepare(msg, args)...)
	l.print("INFO", msg, args)
}

func (l *RollbarLogger) Warn(msg string, args ...interface{}) {
	rollbar.Warning(l.prepare(msg, args)...)
	l.print("WARN", msg, args)
}

func (l *RollbarLogger) Error(msg string, args ...interface{}) {
	rollbar.Error(l.prepare(msg, args)...)
	l.print("ERROR", msg, args)
}

func (l *RollbarLogger) Fatal(msg string, args ...interface{}) {
	rollbar.Critical(l.prepare(msg, args)...)
	l.print("FATAL", msg, args)
	rollbar.Close()
	l.std.Fatal(msg)
}
