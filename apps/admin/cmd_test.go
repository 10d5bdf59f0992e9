package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/kalendar/core"
	"github.com/trezcool/kalendar/core/i18n"
)

// 10:20 on Tuesday 18 June 2024
var testNow = time.Date(2024, time.June, 18, 10, 20, 0, 0, time.UTC)

func setup(t *testing.T) (*commandLine, *bytes.Buffer) {
	conf := core.NewTestConfig()
	conf.Seed.HorizonDays = 30

	tr, err := i18n.New(conf.Calendar.DefaultLanguage)
	require.NoError(t, err)

	var out bytes.Buffer
	return &commandLine{
		conf: conf,
		tr:   tr,
		out:  &out,
		now:  func() time.Time { return testNow },
	}, &out
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func runCLITests(t *testing.T, tests []cliTest) {
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			cli, out := setup(t)
			err := cli.run(args)
			switch {
			case tt.wantErr != nil:
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
			case tt.wantErrStr != "":
				if err == nil || !strings.Contains(err.Error(), tt.wantErrStr) {
					t.Errorf("cli.run() error = %v, wantErrStr %s", err, tt.wantErrStr)
				}
			case err != nil:
				t.Errorf("cli.run() unexpected error = %v", err)
			default:
				if want, ok := tt.extra.(string); ok {
					assert.Equal(t, want, out.String())
				}
			}
		})
	}
}

const june2024 = "                      1   2\n" +
	"  3   4   5   6   7   8   9\n" +
	" 10  11  12  13  14  15  16\n" +
	" 17  18  19  20  21  22  23\n" +
	" 24  25  26  27  28  29  30\n"

func Test_commandLine_usage(t *testing.T) {
	runCLITests(t, []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
	})
}

func Test_commandLine_grid(t *testing.T) {
	runCLITests(t, []cliTest{
		{name: "today", args: []string{"grid"}, extra: june2024},
		{name: "date", args: []string{"grid", "-date", "2024-06-30"}, extra: june2024},
		{
			name:  "month starting on monday",
			args:  []string{"grid", "-date", "2024-07-04"},
			extra: "  1   2   3   4   5   6   7\n  8   9  10  11  12  13  14\n 15  16  17  18  19  20  21\n 22  23  24  25  26  27  28\n 29  30  31\n",
		},
		{name: "malformed date", args: []string{"grid", "-date", "18/06/2024"}, wantErrStr: `invalid date "18/06/2024": expected YYYY-MM-DD`},
		{name: "unknown flag", args: []string{"grid", "-lol"}, wantErrStr: "flag provided but not defined: -lol"},
	})
}

func Test_commandLine_grid_interactive(t *testing.T) {
	defer func(f func(int) bool) { isTerminalFunc = f }(isTerminalFunc)
	isTerminalFunc = func(int) bool { return true }

	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer f.Close()

	cli, _ := setup(t)
	cli.out = f
	require.NoError(t, cli.run([]string{"admin", "grid", "-lang", "en"}))

	got, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Equal(t, "June 2024\nMon Tue Wed Thu Fri Sat Sun\n"+june2024, string(got))
}

func Test_commandLine_translate(t *testing.T) {
	runCLITests(t, []cliTest{
		{name: "no keys", args: []string{"translate"}, wantErr: errHelp},
		{name: "default language", args: []string{"translate", "calendar"}, extra: "calendar: Календар\n"},
		{
			name:  "english",
			args:  []string{"translate", "-lang", "en", "calendar", "thisWeek", "nonexistentKey"},
			extra: "calendar: Calendar\nthisWeek: This Week\nnonexistentKey: nonexistentKey\n",
		},
		{name: "unsupported language", args: []string{"translate", "-lang", "fr", "save"}, extra: "save: Зачувај\n"},
	})
}

func Test_commandLine_seed(t *testing.T) {
	dir := t.TempDir()
	badCourse := filepath.Join(dir, "bad-course.yaml")
	require.NoError(t, os.WriteFile(badCourse, []byte(`
events:
  - id: x
    course: '9'
    date: '2024-06-18'
    time: '10:00'
`), 0o600))
	unknownField := filepath.Join(dir, "unknown-field.yaml")
	require.NoError(t, os.WriteFile(unknownField, []byte("teachers: []\n"), 0o600))
	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))

	runCLITests(t, []cliTest{
		{name: "embedded", args: []string{"seed"}, extra: "courses: 2\nprofiles: 4\nevents: 2\nnotifications: 4\n"},
		{name: "empty file", args: []string{"seed", "-file", empty}, extra: "courses: 0\nprofiles: 0\nevents: 0\nnotifications: 0\n"},
		{name: "missing file", args: []string{"seed", "-file", filepath.Join(dir, "nope.yaml")}, wantErrStr: "opening seed file"},
		{name: "unknown course", args: []string{"seed", "-file", badCourse}, wantErrStr: `event "x": unknown course "9"`},
		{name: "unknown field", args: []string{"seed", "-file", unknownField}, wantErrStr: "decoding seed"},
	})
}
