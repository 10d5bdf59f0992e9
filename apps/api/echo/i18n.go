package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/kalendar/core/i18n"
)

type i18nApi struct {
	tr *i18n.Translator
}

func registerI18nAPI(g *echo.Group, tr *i18n.Translator) {
	api := i18nApi{tr: tr}

	ig := g.Group("/i18n")
	ig.GET("/languages", api.queryLanguages)
	ig.GET("/:lang", api.dictionary)
	ig.GET("/:lang/:key", api.translate)
}

type (
	DictionaryResponse struct {
		Language string            `json:"language"`
		Texts    map[string]string `json:"texts"`
		Months   []string          `json:"months"`
		Weekdays []string          `json:"weekdays"` // Monday first
	}

	TranslationResponse struct {
		Key  string `json:"key"`
		Text string `json:"text"`
	}
)

// Handlers

func (api *i18nApi) queryLanguages(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, i18n.Languages)
}

// dictionary sends every text of a language. Unsupported languages get the fallback one.
func (api *i18nApi) dictionary(ctx echo.Context) error {
	lang := api.tr.Resolve(ctx.Param("lang"))
	months := make([]string, 0, 12)
	for m := 1; m <= 12; m++ {
		months = append(months, api.tr.MonthName(time.Month(m), lang))
	}
	return ctx.JSON(http.StatusOK, DictionaryResponse{
		Language: lang,
		Texts:    api.tr.Dictionary(lang),
		Months:   months,
		Weekdays: api.tr.WeekdayNames(lang),
	})
}

func (api *i18nApi) translate(ctx echo.Context) error {
	key := ctx.Param("key")
	return ctx.JSON(http.StatusOK, TranslationResponse{Key: key, Text: api.tr.T(key, ctx.Param("lang"))})
}
