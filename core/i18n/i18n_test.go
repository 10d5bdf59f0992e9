package i18n

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTranslator(t *testing.T) *Translator {
	tr, err := New(Macedonian)
	require.NoError(t, err)
	return tr
}

func TestTranslator_T(t *testing.T) {
	tr := newTranslator(t)
	tests := []struct {
		key  string
		lang string
		want string
	}{
		{key: "calendar", lang: Macedonian, want: "Календар"},
		{key: "calendar", lang: English, want: "Calendar"},
		{key: "calendar", lang: Albanian, want: "Kalendar"},
		{key: "thisWeek", lang: English, want: "This Week"},
		{key: "teacher", lang: Albanian, want: "Mësues"},
		{key: "loading", lang: Macedonian, want: "Се вчитува..."},
		{key: "nonexistentKey", lang: English, want: "nonexistentKey"},
		{key: "save", lang: "fr", want: "Зачувај"}, // unsupported language falls back
	}
	for _, tt := range tests {
		t.Run(tt.lang+"/"+tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.T(tt.key, tt.lang))
		})
	}
}

func TestTranslator_Dictionary(t *testing.T) {
	tr := newTranslator(t)
	mk, en, al := tr.Dictionary(Macedonian), tr.Dictionary(English), tr.Dictionary(Albanian)

	assert.Len(t, en, len(mk))
	assert.Len(t, al, len(mk))
	for key := range en {
		assert.Contains(t, mk, key)
		assert.Contains(t, al, key)
	}
	assert.Equal(t, "Welcome", en["welcome"])
}

func TestTranslator_calendarNames(t *testing.T) {
	tr := newTranslator(t)

	assert.Equal(t, "June", tr.MonthName(time.June, English))
	assert.NotEmpty(t, tr.MonthName(time.June, Macedonian))
	assert.NotEqual(t, tr.MonthName(time.June, English), tr.MonthName(time.June, Albanian))

	days := tr.WeekdayNames(English)
	require.Len(t, days, 7)
	assert.Equal(t, "Mon", days[0])
	assert.Equal(t, "Sun", days[6])
}

func TestIsSupported(t *testing.T) {
	for _, code := range []string{"mk", "en", "al"} {
		assert.True(t, IsSupported(code), code)
	}
	for _, code := range []string{"", "sq", "fr", "EN"} {
		assert.False(t, IsSupported(code), code)
	}
}

func TestNew_unsupportedFallback(t *testing.T) {
	_, err := New("fr")
	assert.Error(t, err)
}
