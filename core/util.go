package core

import (
	"os"
	"path/filepath"
	"strings"
)

var phoneReplacer = strings.NewReplacer(" ", "", "-", "", ".", "", "(", "", ")", "", "\t", "")

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// CleanPhone strips the separators people type into phone numbers: "+389 70-123 456" -> "+38970123456".
func CleanPhone(phone string) string {
	return phoneReplacer.Replace(strings.TrimSpace(phone))
}

// CleanStrings cleans every element of ss and drops the empty ones.
func CleanStrings(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if s = CleanString(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Getwd tries to find the project root, the closest parent holding a go.mod.
// go-test changes the working directory to the test package being run, so the plain cwd is not enough.
// Falls back to the cwd when no go.mod is found (e.g. a deployed binary).
func Getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	currDir := wd
	for {
		if fi, err := os.Stat(filepath.Join(currDir, "go.mod")); err == nil && !fi.IsDir() {
			return currDir
		}
		newDir := filepath.Dir(currDir)
		if newDir == currDir {
			return wd
		}
		currDir = newDir
	}
}
