package i18n

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/kalendar/core"
)

var (
	languageTag  = "language"
	languageText = "must be one of mk, en or al"
)

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(languageTag, func(fl validator.FieldLevel) bool {
		return IsSupported(fl.Field().String())
	})
	core.RegisterCustomTranslation(validate, translator, languageTag, languageText)
}
