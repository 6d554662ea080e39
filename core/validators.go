package core

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/fr"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	fr_translations "github.com/go-playground/validator/v10/translations/fr"
)

// Enum is implemented by the closed string sets of the domain.
type Enum interface {
	IsValid() bool
}

var (
	// custom validation tags & texts
	emailShapeTag   = "emailshape"
	emailShapeText  = "format d'email invalide"
	emailShapeRegex = regexp.MustCompile(`\S+@\S+\.\S+`)

	alphaNumUnderTag   = "alphanum_"
	alphaNumUnderText  = "seuls les caractères alphanumériques, tirets et soulignés sont autorisés"
	alphaNumUnderRegex = regexp.MustCompile(`^[\w-]+$`)

	enumTag  = "enum"
	enumText = "valeur non autorisée"

	requiredTag  = "required"
	requiredText = "ce champ est requis"

	positiveTag  = "gt"
	positiveText = "la valeur doit être positive"
)

// NewTranslator returns the French translator used for validation messages.
func NewTranslator() ut.Translator {
	_fr := fr.New()
	uni := ut.New(_fr, _fr)
	translator, _ := uni.GetTranslator("fr")
	return translator
}

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = fr_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// dates are validated as time.Time so `required` rejects the zero Date
	validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		if d, ok := v.Interface().(Date); ok {
			return d.Time()
		}
		return nil
	}, Date{})

	// register custom validators
	_ = validate.RegisterValidation(emailShapeTag, emailShapeValidation)
	RegisterCustomTranslation(validate, translator, emailShapeTag, emailShapeText)

	_ = validate.RegisterValidation(alphaNumUnderTag, alphaNumUnderValidation)
	RegisterCustomTranslation(validate, translator, alphaNumUnderTag, alphaNumUnderText)

	_ = validate.RegisterValidation(enumTag, enumValidation)
	RegisterCustomTranslation(validate, translator, enumTag, enumText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, positiveTag, positiveText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// TranslateErrors flattens validator errors into FieldErrors keyed by JSON field name.
func TranslateErrors(err error, translator ut.Translator) error {
	vErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	flds := make([]FieldError, 0, len(vErrs))
	for _, vErr := range vErrs {
		flds = append(flds, FieldError{Field: vErr.Field(), Error: vErr.Translate(translator)})
	}
	return NewValidationError(nil, flds...)
}

// Custom Global Validators

// emailShapeValidation only checks for something@something.something
func emailShapeValidation(fl validator.FieldLevel) bool {
	return emailShapeRegex.MatchString(fl.Field().String())
}

// alphaNumUnderValidation only allows alphanumeric characters, dashes and underscores.
func alphaNumUnderValidation(fl validator.FieldLevel) bool {
	return alphaNumUnderRegex.MatchString(fl.Field().String())
}

// enumValidation accepts members of a closed string set.
func enumValidation(fl validator.FieldLevel) bool {
	if e, ok := fl.Field().Interface().(Enum); ok {
		return e.IsValid()
	}
	return false
}
