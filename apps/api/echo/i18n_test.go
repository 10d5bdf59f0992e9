package echoapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/kalendar/core/i18n"
)

func TestI18nAPI(t *testing.T) {
	app := setup(t)

	tests := []httpTest{
		{
			name:     "languages",
			method:   http.MethodGet,
			path:     "/api/v1/i18n/languages",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, i18n.Languages),
		},
		{
			name:     "translate",
			method:   http.MethodGet,
			path:     "/api/v1/i18n/en/calendar",
			wantCode: http.StatusOK,
			wantData: []byte(`{"key":"calendar","text":"Calendar"}`),
		},
		{
			name:     "translate albanian",
			method:   http.MethodGet,
			path:     "/api/v1/i18n/al/teacher",
			wantCode: http.StatusOK,
			wantData: []byte(`{"key":"teacher","text":"Mësues"}`),
		},
		{
			name:     "translate unsupported language",
			method:   http.MethodGet,
			path:     "/api/v1/i18n/fr/calendar",
			wantCode: http.StatusOK,
			wantData: []byte(`{"key":"calendar","text":"Календар"}`),
		},
		{
			name:     "missing key",
			method:   http.MethodGet,
			path:     "/api/v1/i18n/en/nonexistentKey",
			wantCode: http.StatusOK,
			wantData: []byte(`{"key":"nonexistentKey","text":"nonexistentKey"}`),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(tt)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("dictionary", func(t *testing.T) {
		rec := app.do(httpTest{method: http.MethodGet, path: "/api/v1/i18n/en"})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp DictionaryResponse
		unmarshal(t, rec, &resp)
		assert.Equal(t, i18n.English, resp.Language)
		assert.Equal(t, "Welcome", resp.Texts["welcome"])
		require.Len(t, resp.Months, 12)
		assert.Equal(t, "January", resp.Months[0])
		require.Len(t, resp.Weekdays, 7)
		assert.Equal(t, "Mon", resp.Weekdays[0])
	})

	t.Run("dictionary fallback", func(t *testing.T) {
		rec := app.do(httpTest{method: http.MethodGet, path: "/api/v1/i18n/xx"})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp DictionaryResponse
		unmarshal(t, rec, &resp)
		assert.Equal(t, i18n.Macedonian, resp.Language)
		assert.Equal(t, "Календар", resp.Texts["calendar"])
	})
}
