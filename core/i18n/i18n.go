// Package i18n holds the UI dictionaries of the supported languages and the CLDR calendar names.
package i18n

import (
	"embed"
	"path"
	"sort"
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/mk"
	"github.com/go-playground/locales/sq"
	ut "github.com/go-playground/universal-translator"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	Macedonian = "mk"
	English    = "en"
	Albanian   = "al"
)

var ErrUnsupportedLanguage = errors.New("unsupported language")

type Language struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Locale string `json:"locale"` // CLDR locale
}

var Languages = []Language{
	{Code: Macedonian, Name: "Македонски", Locale: "mk"},
	{Code: English, Name: "English", Locale: "en"},
	{Code: Albanian, Name: "Shqip", Locale: "sq"},
}

//go:embed dictionaries/*.yaml
var dictionaries embed.FS

// IsSupported reports whether code is one of Languages.
func IsSupported(code string) bool {
	_, ok := localeOf(code)
	return ok
}

func localeOf(code string) (string, bool) {
	for _, l := range Languages {
		if l.Code == code {
			return l.Locale, true
		}
	}
	return "", false
}

// Translator resolves dictionary keys per language. Dictionaries are loaded once by New.
// It is safe for concurrent use once built.
type Translator struct {
	uni      *ut.UniversalTranslator
	fallback string
	keys     map[string][]string // {lang: sorted keys}
}

// New loads the embedded dictionaries. fallback is used for unsupported languages.
func New(fallback string) (*Translator, error) {
	if !IsSupported(fallback) {
		return nil, errors.Wrapf(ErrUnsupportedLanguage, "fallback %q", fallback)
	}

	_en := en.New()
	uni := ut.New(_en, _en, mk.New(), sq.New())
	t := &Translator{uni: uni, fallback: fallback, keys: make(map[string][]string, len(Languages))}

	for _, l := range Languages {
		dict, err := loadDictionary(l.Code)
		if err != nil {
			return nil, err
		}
		trans, ok := uni.GetTranslator(l.Locale)
		if !ok {
			return nil, errors.Errorf("no %q locale translator", l.Locale)
		}
		keys := make([]string, 0, len(dict))
		for key, text := range dict {
			if err := trans.Add(key, text, true); err != nil {
				return nil, errors.Wrapf(err, "adding %s.%s", l.Code, key)
			}
			keys = append(keys, key)
		}
		sort.Strings(keys)
		t.keys[l.Code] = keys
	}
	return t, nil
}

func loadDictionary(lang string) (map[string]string, error) {
	data, err := dictionaries.ReadFile(path.Join("dictionaries", lang+".yaml"))
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s dictionary", lang)
	}
	dict := make(map[string]string)
	if err := yaml.Unmarshal(data, &dict); err != nil {
		return nil, errors.Wrapf(err, "parsing %s dictionary", lang)
	}
	return dict, nil
}

// Resolve returns lang when supported, the fallback language otherwise.
func (t *Translator) Resolve(lang string) string {
	if IsSupported(lang) {
		return lang
	}
	return t.fallback
}

func (t *Translator) translator(lang string) ut.Translator {
	locale, _ := localeOf(t.Resolve(lang))
	trans, _ := t.uni.GetTranslator(locale)
	return trans
}

// T translates key into lang. A key missing from the dictionary is returned as is.
func (t *Translator) T(key, lang string) string {
	s, err := t.translator(lang).T(key)
	if err != nil || s == "" {
		return key
	}
	return s
}

// Dictionary returns every key of lang with its text.
func (t *Translator) Dictionary(lang string) map[string]string {
	lang = t.Resolve(lang)
	dict := make(map[string]string, len(t.keys[lang]))
	for _, key := range t.keys[lang] {
		dict[key] = t.T(key, lang)
	}
	return dict
}

func (t *Translator) locale(lang string) locales.Translator {
	return t.translator(lang)
}

// MonthName is the full name of m in lang.
func (t *Translator) MonthName(m time.Month, lang string) string {
	return t.locale(lang).MonthWide(m)
}

// WeekdayNames are the abbreviated weekday names in lang, Monday first.
func (t *Translator) WeekdayNames(lang string) []string {
	loc := t.locale(lang)
	names := make([]string, 0, 7)
	for i := 1; i <= 7; i++ {
		names = append(names, loc.WeekdayAbbreviated(time.Weekday(i%7)))
	}
	return names
}

// FormatDate renders d as a long localized date, e.g. "18 June 2024".
func (t *Translator) FormatDate(d time.Time, lang string) string {
	return t.locale(lang).FmtDateLong(d)
}
