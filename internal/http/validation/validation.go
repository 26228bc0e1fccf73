package validation

import (
	"errors"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

type FieldErrors map[string]string

// FromBindError turns a gin bind/validation error into a field->message map.
// dst is the bound struct pointer (needed to read form tags).
func FromBindError(err error, dst any) FieldErrors {
	out := FieldErrors{}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			key := fieldKey(dst, fe.StructField())
			out[key] = messageForTag(fe.Tag(), fe.Param())
		}
		return out
	}

	// Other bind failures (type mismatch etc.)
	out["_"] = "The submitted form data is invalid."
	return out
}

func fieldKey(dst any, structField string) string {
	t := reflect.TypeOf(dst)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return strings.ToLower(structField)
	}

	f, ok := t.FieldByName(structField)
	if !ok {
		return strings.ToLower(structField)
	}
	tag := f.Tag.Get("form")
	if tag == "" {
		return strings.ToLower(structField)
	}
	if i := strings.Index(tag, ","); i >= 0 {
		tag = tag[:i]
	}
	if tag == "" || tag == "-" {
		return strings.ToLower(structField)
	}
	return tag
}

func messageForTag(tag, param string) string {
	switch tag {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return "Must be at least " + param + " characters."
	case "max":
		return "Must be at most " + param + " characters."
	case "eqfield":
		return "Passwords do not match."
	default:
		return "Invalid value."
	}
}

// CheckPassword enforces the portal's password rules before anything is sent
// to the backend: at least 8 characters, a leading uppercase letter and at
// least one symbol.
func CheckPassword(pw string) string {
	if len(pw) < 8 {
		return "Password must be at least 8 characters long."
	}
	runes := []rune(pw)
	if !unicode.IsUpper(runes[0]) {
		return "Password must start with an uppercase letter."
	}
	hasSymbol := false
	for _, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			hasSymbol = true
			break
		}
	}
	if !hasSymbol {
		return "Password must contain at least one special character."
	}
	return ""
}
