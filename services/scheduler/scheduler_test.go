package schedulersvc

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/kalendar/core"
)

type recordLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *recordLogger) log(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, fmt.Sprintf("%s %s", level, msg))
}

func (l *recordLogger) Debug(msg string, _ ...interface{}) { l.log("debug", msg) }
func (l *recordLogger) Info(msg string, _ ...interface{})  { l.log("info", msg) }
func (l *recordLogger) Warn(msg string, _ ...interface{})  { l.log("warn", msg) }
func (l *recordLogger) Error(msg string, _ ...interface{}) { l.log("error", msg) }
func (l *recordLogger) Fatal(msg string, _ ...interface{}) { l.log("fatal", msg) }

func TestScheduler_Add(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		wantErr bool
	}{
		{name: "five fields", spec: "0 3 * * *"},
		{name: "descriptor", spec: "@daily"},
		{name: "every", spec: "@every 1h"},
		{name: "seconds field", spec: "0 0 3 * * *", wantErr: true},
		{name: "garbage", spec: "sometimes", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(core.NewTestConfig(), &recordLogger{})
			err := s.Add("reset", tt.spec, func(context.Context) error { return nil })
			if (err != nil) != tt.wantErr {
				t.Errorf("Add() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				assert.Equal(t, 1, s.Jobs())
			}
		})
	}
}

func TestScheduler_runLogsOutcome(t *testing.T) {
	logger := &recordLogger{}
	s := New(core.NewTestConfig(), logger)
	require.NoError(t, s.Add("ok", "@daily", func(context.Context) error { return nil }))
	require.NoError(t, s.Add("broken", "@daily", func(context.Context) error { return fmt.Errorf("boom") }))

	for _, e := range s.cron.Entries() {
		e.WrappedJob.Run()
	}
	assert.Contains(t, logger.entries, "info job done: ok")
	assert.Contains(t, logger.entries, "error job failed: broken")
}

func TestScheduler_StartStop(t *testing.T) {
	s := New(core.NewTestConfig(), &recordLogger{})
	s.Start()
	assert.NoError(t, s.Stop(context.Background()))
}
