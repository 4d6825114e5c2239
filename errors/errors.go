package errors

import (
	// Go Internal Packages
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an error so transport layers can map it
// to a status code without inspecting message text.
type Kind uint8

const (
	Other    Kind = iota // unclassified
	Invalid              // bad input from the caller
	NotFound             // requested entity does not exist
	Conflict             // state does not permit the operation
	Upstream             // a third-party dependency failed
	Internal             // persistence or other internal failure
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case Upstream:
		return "upstream"
	case Internal:
		return "internal"
	}
	return "other"
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	if e.Msg == "" {
		return e.Err.Error()
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// E builds a kinded error. A nil err is allowed and keeps only the message.
func E(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf walks the error chain and returns the first kind found,
// or Other when the chain carries no *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Other
}

// Is reports whether any error in err's chain has the given kind.
func Is(kind Kind, err error) bool {
	return KindOf(err) == kind
}

// ValidationErrors collects per-field validation failures so callers
// can report all of them in one pass instead of failing on the first.
type ValidationErrors struct {
	fields []fieldError
}

type fieldError struct {
	field string
	msg   string
}

func ValidationErrs() *ValidationErrors {
	return &ValidationErrors{}
}

func (v *ValidationErrors) Add(field, msg string) {
	v.fields = append(v.fields, fieldError{field: field, msg: msg})
}

// Err returns nil when nothing was added, otherwise an Invalid error
// listing every field failure.
func (v *ValidationErrors) Err() error {
	if len(v.fields) == 0 {
		return nil
	}
	parts := make([]string, len(v.fields))
	for i, f := range v.fields {
		parts[i] = fmt.Sprintf("%s: %s", f.field, f.msg)
	}
	return &Error{Kind: Invalid, Msg: strings.Join(parts, "; ")}
}
