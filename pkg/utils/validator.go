package utils

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"
)

// Score bounds of a movie rating.
const (
	MinScore = 0
	MaxScore = 10
)

var validate = NewValidator(nil)

// NewValidator returns a validator that names fields after their form
// (or json) tag and knows the movie specific rules: score_range checks a
// numeric string against [MinScore, MaxScore], genre checks membership
// in the given catalog. A nil catalog accepts any genre. utf16min and
// utf16max bound a string's length in UTF-16 code units, the unit the
// backend and browser clients count in.
func NewValidator(genres func(string) bool) *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})

	_ = v.RegisterValidation("score_range", func(fl validator.FieldLevel) bool {
		score, err := strconv.ParseFloat(strings.TrimSpace(fl.Field().String()), 64)
		if err != nil {
			return false
		}
		return score >= MinScore && score <= MaxScore
	})

	_ = v.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
		if genres == nil {
			return true
		}
		return genres(fl.Field().String())
	})

	_ = v.RegisterValidation("utf16min", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		return err == nil && UTF16Len(fl.Field().String()) >= limit
	})

	_ = v.RegisterValidation("utf16max", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		return err == nil && UTF16Len(fl.Field().String()) <= limit
	})

	return v
}

// UTF16Len counts s in UTF-16 code units; runes outside the BMP count twice.
func UTF16Len(s string) int {
	return len(utf16.Encode([]rune(s)))
}

func ValidateStruct(data interface{}) map[string]string {
	return ValidateWith(validate, data)
}

// ValidateWith validates data with v and maps each failing field to a message.
func ValidateWith(v *validator.Validate, data interface{}) map[string]string {
	err := v.Struct(data)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, err := range validationErrors {
			errors[err.Field()] = getErrorMessage(err)
		}
	}

	return errors
}

// converts validator errors to human-readable messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "min", "utf16min":
		return fmt.Sprintf("Minimum length is %s", err.Param())
	case "max", "utf16max":
		return fmt.Sprintf("Maximum length is %s", err.Param())
	case "numeric":
		return "Must be a number"
	case "score_range":
		return fmt.Sprintf("Must be between %d and %d", MinScore, MaxScore)
	case "genre":
		return "Must be one of the catalog genres"
	case "oneof":
		options := strings.ReplaceAll(err.Param(), " ", ", ")
		return fmt.Sprintf("Must be one of: %s", options)
	case "uuid":
		return "Must be a valid UUID"
	case "gte":
		return fmt.Sprintf("Must be at least %s", err.Param())
	default:
		return fmt.Sprintf("Invalid %s field", err.Field())
	}
}

// formats validation errors map into single string
func FormatValidationErrors(errors map[string]string) string {
	var msgs []string
	for field, msg := range errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}
