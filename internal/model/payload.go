// Package model defines the forum's value entities.
//
// Every entity is built from a raw keyed Payload by a NewXxx constructor.
// Constructors validate in two passes over the whole key set: first that
// every required key is present, then that every present value has the
// expected type. A payload missing a key therefore always fails with
// apperror.ErrMissingProperty, even if another key also has the wrong type.
package model

import (
	"github.com/go-playground/validator/v10"

	"github.com/sakif/forum-api/internal/apperror"
)

// Payload is a raw keyed record: a decoded JSON request body, or a row read
// back from storage.
type Payload map[string]any

// String returns the value at key if it holds a string, and "" otherwise.
func (p Payload) String(key string) string {
	s, _ := p[key].(string)
	return s
}

type kind int

const (
	kindString kind = iota
	kindBool
)

func (k kind) matches(v any) bool {
	switch k {
	case kindString:
		_, ok := v.(string)
		return ok
	case kindBool:
		_, ok := v.(bool)
		return ok
	default:
		return false
	}
}

type field struct {
	key      string
	kind     kind
	optional bool
}

// schema describes the keys of one entity's payload and the messages
// returned when validation fails.
type schema struct {
	entity     string
	fields     []field
	missingMsg string
	invalidMsg string
}

// validate is safe for concurrent use and caches parsed tags.
var validate = validator.New(validator.WithRequiredStructEnabled())

// check runs the presence pass and then the type pass.
//
// Presence uses the validator's "required" rule, so nil, "", 0 and false
// all count as missing. Optional keys that are absent or nil are skipped by
// the type pass.
func (s schema) check(p Payload) error {
	for _, f := range s.fields {
		if f.optional {
			continue
		}
		if err := validate.Var(p[f.key], "required"); err != nil {
			return apperror.MissingProperty(s.entity, f.key, s.missingMsg)
		}
	}

	for _, f := range s.fields {
		v, ok := p[f.key]
		if !ok || (f.optional && v == nil) {
			continue
		}
		if !f.kind.matches(v) {
			return apperror.InvalidType(s.entity, f.key, s.invalidMsg)
		}
	}

	return nil
}
