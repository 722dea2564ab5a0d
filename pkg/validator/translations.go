package validator

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// customTranslations maps custom tags to their message templates.
var customTranslations = map[string]string{
	TagSlug:    "{0} must be a valid slug (lowercase letters, digits and hyphens)",
	TagTrimmed: "{0} must not have leading or trailing spaces",
}

// registerCustomTranslations registers messages for the custom rules.
func (v *Validator) registerCustomTranslations() {
	for tag, message := range customTranslations {
		tag, message := tag, message
		_ = v.validate.RegisterTranslation(tag, v.trans,
			func(ut ut.Translator) error {
				return ut.Add(tag, message, true)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				t, _ := ut.T(tag, fe.Field())
				return t
			},
		)
	}
}
