// Package validation wraps go-playground/validator with the tags and message
// lookup shared by every request DTO. DTOs declare their rules in `validate`
// struct tags and expose a Validate method that calls Struct with their own
// human-readable messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/user/recipefinder-go/apperror"
)

var (
	once     sync.Once
	validate *validator.Validate

	personNamePattern = regexp.MustCompile(`^[a-zA-Z\- ]+$`)
)

func instance() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// Report fields by their JSON names so messages match what clients sent.
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			switch name {
			case "-":
				return ""
			case "":
				return f.Name
			}
			return name
		})
		mustRegister(v, "notblank", notBlank)
		mustRegister(v, "personname", func(fl validator.FieldLevel) bool {
			return personNamePattern.MatchString(fl.Field().String())
		})
		mustRegister(v, "maxbytes", maxBytes)
		validate = v
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

// notBlank rejects empty and whitespace-only strings, empty collections and nil pointers.
func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		return strings.TrimSpace(field.String()) != ""
	case reflect.Slice, reflect.Array, reflect.Map:
		return field.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !field.IsNil()
	default:
		return !field.IsZero()
	}
}

// maxBytes limits the encoded length of a string, e.g. `maxbytes=72`. The
// builtin `max` counts runes, which lets multi-byte input slip past.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		panic(fmt.Sprintf("validation: bad maxbytes param %q", fl.Param()))
	}
	if fl.Field().Kind() != reflect.String {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// Messages maps "<json field>.<tag>" to the message reported for that failure,
// e.g. "email.notblank" -> "Email is required". Indexed fields such as
// "ingredients[2]" are looked up by their base name.
type Messages map[string]string

// Struct validates v and converts failures into an apperror ValidationError
// whose top-level message is the first failing field's message.
func Struct(v any, msgs Messages) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.NewBadRequestError("Invalid request", err)
	}

	fields := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperror.FieldError{
			Field:   fe.Field(),
			Message: lookup(fe, msgs),
		})
	}
	return apperror.NewValidationError("", fields...)
}

func lookup(fe validator.FieldError, msgs Messages) string {
	base := fe.Field()
	if i := strings.IndexByte(base, '['); i >= 0 {
		base = base[:i]
	}
	if msg, ok := msgs[base+"."+fe.Tag()]; ok {
		return msg
	}
	return fmt.Sprintf("%s is invalid", base)
}
