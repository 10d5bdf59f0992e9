package calendar

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/kalendar/core"
)

var (
	eventKindTag  = "eventkind"
	eventKindText = "must be one of class, meeting, exam or event"

	granularityTag  = "granularity"
	granularityText = "must be one of day, week or month"
)

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(eventKindTag, eventKindValidation)
	core.RegisterCustomTranslation(validate, translator, eventKindTag, eventKindText)

	_ = validate.RegisterValidation(granularityTag, granularityValidation)
	core.RegisterCustomTranslation(validate, translator, granularityTag, granularityText)
}

func eventKindValidation(fl validator.FieldLevel) bool {
	k := Kind(fl.Field().String())
	for _, kind := range Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func granularityValidation(fl validator.FieldLevel) bool {
	_, err := ParseGranularity(fl.Field().String())
	return err == nil
}
