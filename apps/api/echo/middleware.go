package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/kalendar/core/i18n"
	"github.com/trezcool/kalendar/core/user"
)

const contextLangKey = "lang"

// teacherMiddleware lets only teachers through. The role is read from the stored profile,
// so a role change applies without a new token.
func teacherMiddleware(svc *user.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			p, err := getContextProfile(ctx, svc)
			if err != nil {
				return errors.Wrap(err, "getting context profile")
			}
			if p.IsTeacher() {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

// langMiddleware picks the response language: a supported `lang` query param,
// else the profile's preferred language.
func langMiddleware(svc *user.Service, tr *i18n.Translator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			lang := ctx.QueryParam(contextLangKey)
			if !i18n.IsSupported(lang) {
				p, err := getContextProfile(ctx, svc)
				if err != nil {
					return errors.Wrap(err, "getting context profile")
				}
				lang = p.PreferredLanguage
			}
			ctx.Set(contextLangKey, tr.Resolve(lang))
			return next(ctx)
		}
	}
}

func contextLang(ctx echo.Context) string {
	lang, _ := ctx.Get(contextLangKey).(string)
	return lang
}
