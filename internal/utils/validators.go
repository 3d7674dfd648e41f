package utils

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	uaPhoneRegex  = regexp.MustCompile(`^\+38 \(0\d{2}\) \d{3}-\d{2}-\d{2}$`)
	fullNameRegex = regexp.MustCompile(`^\p{L}+( \p{L}+){1,2}$`)
)

// NewValidator returns a validator with storefront tags registered and json field names in errors.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("ua_phone", func(fl validator.FieldLevel) bool {
		return IsUkrainianPhone(fl.Field().String())
	})

	_ = v.RegisterValidation("full_name", func(fl validator.FieldLevel) bool {
		return IsFullName(fl.Field().String())
	})

	return v
}

// IsUkrainianPhone matches +38 (0XX) XXX-XX-XX.
func IsUkrainianPhone(s string) bool {
	return uaPhoneRegex.MatchString(s)
}

// IsFullName accepts two or three words made of letters only.
func IsFullName(s string) bool {
	return fullNameRegex.MatchString(strings.TrimSpace(s))
}
