// Package forms holds the form schemas submitted by the HTML pages, their validation rules and the
// explicit mapping between submitted values and stored documents.
//
// Validation is pure: Validate never touches the store. Checks that need the store (registration
// uniqueness) live in the service layer and report through the same Errors map.
package forms

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Field-level messages shown next to inputs.
const (
	MsgRequired     = "This field is required."
	MsgInvalidEmail = "Invalid email address."
	MsgNotEqual     = "Field must be equal to %s."
	MsgInvalidInt   = "Not a valid integer value."
	MsgInvalidURL   = "Invalid URL."
	MsgBadChoice    = "Not a valid choice."
	MsgInvalidValue = "Invalid value."
	MsgTooLong      = "Field cannot be longer than %s characters."
)

// MaxPasswordBytes is the longest password bcrypt will hash.
const MaxPasswordBytes = 72

// Errors maps a form field name to the message shown for it.
type Errors map[string]string

// Add records msg for field unless the field already has a message.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Has reports whether field failed validation.
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Get returns the message for field, or "".
func (e Errors) Get(field string) string { return e[field] }

// Empty reports whether there are no errors.
func (e Errors) Empty() bool { return len(e) == 0 }

// Merge copies other into e, keeping messages already present.
func (e Errors) Merge(other Errors) {
	for k, v := range other {
		e.Add(k, v)
	}
}

// Getter returns the submitted value for a form key, e.g. (*gin.Context).PostForm.
type Getter func(key string) string

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func engine() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		// Report fields by their HTML name so errors line up with inputs.
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
		mustRegister(v, "notblank", validators.NotBlank)
		mustRegister(v, "requiredint", requiredInt)
		mustRegister(v, "maxbytes", maxBytes)
		validate = v
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("forms: register " + tag + ": " + err.Error())
	}
}

// requiredInt accepts a base-10 integer other than zero; a zero value counts as missing.
func requiredInt(fl validator.FieldLevel) bool {
	n, err := parseInt(fl.Field().String())
	return err == nil && n != 0
}

// maxBytes limits the encoded length, unlike max which counts runes.
func maxBytes(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		panic("forms: maxbytes needs an integer param, got " + fl.Param())
	}
	return len(fl.Field().String()) <= n
}

func parseInt(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

// Validate checks form against its struct tags and returns per-field messages.
// form must be a struct value or pointer to one from this package.
func Validate(form any) Errors {
	out := Errors{}
	err := engine().Struct(form)
	if err == nil {
		return out
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError means a programming error, not bad input.
		panic("forms: " + err.Error())
	}
	for _, fe := range verrs {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return MsgRequired
	case "email":
		return MsgInvalidEmail
	case "eqfield":
		return strings.Replace(MsgNotEqual, "%s", strings.ToLower(fe.Param()), 1)
	case "requiredint":
		if s, ok := fe.Value().(string); ok && strings.TrimSpace(s) != "" {
			if n, err := parseInt(s); err != nil || n != 0 {
				return MsgInvalidInt
			}
		}
		return MsgRequired
	case "maxbytes":
		return strings.Replace(MsgTooLong, "%s", fe.Param(), 1)
	case "oneof":
		return MsgBadChoice
	case "url":
		return MsgInvalidURL
	default:
		return MsgInvalidValue
	}
}

// isChecked interprets a checkbox value.
func isChecked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "y", "yes", "on", "true", "1":
		return true
	default:
		return false
	}
}
