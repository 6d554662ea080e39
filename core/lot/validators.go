package lot

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pmezard/go-difflib/difflib"
)

const (
	regionTag     = "region"
	regionText    = "région inconnue"
	regionMinSim  = 0.6
	codeTakenText = "un lot avec ce code existe déjà"
)

// InitValidators registers the validation tags used by the lot models.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(regionTag, regionValidation)
	_ = validate.RegisterTranslation(
		regionTag, translator,
		func(t ut.Translator) error { return t.Add(regionTag, regionText, false) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(regionTag, fe.Field())
			if guess, ok := SuggestRegion(fmt.Sprint(fe.Value())); ok {
				s = fmt.Sprintf("%s, vouliez-vous dire « %s » ?", s, guess)
			}
			return s
		},
	)
}

func regionValidation(fl validator.FieldLevel) bool {
	return Region(fl.Field().String()).IsValid()
}

// SuggestRegion returns the listed Region closest to s, if any is close enough.
func SuggestRegion(s string) (Region, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", false
	}
	var best Region
	var bestRatio float64
	for _, reg := range Regions {
		ratio := difflib.NewMatcher(strings.Split(s, ""), strings.Split(strings.ToLower(string(reg)), "")).Ratio()
		if ratio > bestRatio {
			best, bestRatio = reg, ratio
		}
	}
	return best, bestRatio >= regionMinSim
}
