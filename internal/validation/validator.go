// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package validation wraps go-playground/validator v10 for catalog rows and
// API requests.
//
// Custom tags:
//   - notblank: a string with at least one non-space character
//
// Field names in messages come from the param struct tag when present, so
// request structs report the query parameter a client actually sent:
//
//	type ContentRequest struct {
//	    Title string `param:"title" validate:"required_without=ItemID,omitempty,notblank,max=500"`
//	    Num   int    `param:"num" validate:"min=0,max=100"`
//	}
//
//	if errs := validation.ValidateStruct(&req); errs != nil {
//	    msg, details := errs.Summary()
//	    ...
//	}
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is one rejected field.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Value   interface{}
	Message string
}

func (e FieldError) Error() string { return e.Message }

// Errors holds every field rejected by a single validation pass.
// A nil Errors means the value was valid.
type Errors []FieldError

func (es Errors) Error() string {
	if len(es) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Summary renders the errors as an API error message plus details. One
// error reports its field directly; several are listed under "fields".
func (es Errors) Summary() (string, map[string]interface{}) {
	switch len(es) {
	case 0:
		return "Validation failed", nil
	case 1:
		e := es[0]
		return e.Message, map[string]interface{}{
			"field": e.Field,
			"tag":   e.Tag,
			"value": e.Value,
		}
	}

	fields := make([]map[string]interface{}, len(es))
	msgs := make([]string, len(es))
	for i, e := range es {
		fields[i] = map[string]interface{}{
			"field":   e.Field,
			"tag":     e.Tag,
			"message": e.Message,
		}
		msgs[i] = e.Field + ": " + e.Message
	}
	return strings.Join(msgs, "; "), map[string]interface{}{"fields": fields}
}

// GetValidator returns the shared validator, configured on first use.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("param"), ",")
			if name == "-" {
				return ""
			}
			return name
		})

		_ = validate.RegisterValidation("notblank", notBlank) //nolint:errcheck // static registration
	})
	return validate
}

// ValidateStruct checks s against its validate tags.
func ValidateStruct(s interface{}) Errors {
	if err := GetValidator().Struct(s); err != nil {
		return collect(err, "")
	}
	return nil
}

// ValidateVar checks a single value against a tag string built at runtime,
// such as rating bounds from configuration. field names the value in messages.
func ValidateVar(field string, value interface{}, tag string) Errors {
	if err := GetValidator().Var(value, tag); err != nil {
		return collect(err, field)
	}
	return nil
}

// collect converts validator output. A non-empty field replaces the empty
// name validator reports for Var.
func collect(err error, field string) Errors {
	var fes validator.ValidationErrors
	if !errors.As(err, &fes) {
		return Errors{{Field: "unknown", Tag: "unknown", Message: err.Error()}}
	}

	out := make(Errors, len(fes))
	for i, fe := range fes {
		name := fe.Field()
		if field != "" {
			name = field
		}
		out[i] = FieldError{
			Field:   name,
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Value:   fe.Value(),
			Message: message(fe, name),
		}
	}
	return out
}

var plainMessages = map[string]string{
	"required":         "%s is required",
	"required_without": "%s is required",
	"notblank":         "%s must not be blank",
	"url":              "%s must be a valid URL",
}

var paramMessages = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
}

func message(fe validator.FieldError, field string) string {
	tag, param := fe.Tag(), fe.Param()
	if tmpl, ok := plainMessages[tag]; ok {
		return fmt.Sprintf(tmpl, field)
	}
	if tmpl, ok := paramMessages[tag]; ok {
		return fmt.Sprintf(tmpl, field, param)
	}

	// min and max count characters for strings
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}
	switch tag {
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", field, param, unit)
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", field, param, unit)
	}
	return fmt.Sprintf("%s failed %s validation", field, tag)
}

func notBlank(fl validator.FieldLevel) bool {
	f := fl.Field()
	return f.Kind() == reflect.String && strings.TrimSpace(f.String()) != ""
}
