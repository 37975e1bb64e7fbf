package validator

import (
	"regexp"
	"sync"

	valid "github.com/go-playground/validator/v10"
)

var (
	// validatorM maps custom rule names to their implementations.
	validatorM map[string]valid.Func
	// patternM maps rule names to regular expressions used by the generic
	// regexp validator.
	patternM map[string]string

	once sync.Once
	v    *valid.Validate
)

func init() {
	validatorM = map[string]valid.Func{
		"unitname": rightUnitName,
		"algoaddr": regexpValidator,
	}
	patternM = map[string]string{
		// Algorand address: 58 chars of base32 (RFC 4648 alphabet, no padding).
		"algoaddr": `^[A-Z2-7]{58}$`,
	}
}

var (
	// rightUnitName checks an ASA unit symbol: non-empty string, at most 8 bytes
	// (the chain's unit name limit).
	rightUnitName valid.Func = func(fl valid.FieldLevel) bool {
		unit, ok := fl.Field().Interface().(string)
		if ok {
			return len(unit) > 0 && len(unit) <= 8
		}
		return false
	}

	// regexpValidator matches the field against the pattern registered under
	// the rule's own tag name.
	regexpValidator valid.Func = func(fl valid.FieldLevel) bool {
		key, _ := fl.Field().Interface().(string)
		pattern, ok := patternM[fl.GetTag()]
		if ok {
			match, _ := regexp.MatchString(pattern, key)
			return match
		}
		return false
	}
)

func instance() *valid.Validate {
	once.Do(func() {
		v = valid.New()
		for name, fn := range validatorM {
			// Registration only fails on empty names, which the map cannot hold.
			_ = v.RegisterValidation(name, fn)
		}
	})
	return v
}

// Verify runs struct validation over s, returning the first violation.
func Verify(s interface{}) error {
	return instance().Struct(s)
}
