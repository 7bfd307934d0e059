package faults

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure so callers can branch on its cause.
type Kind int

const (
	KindUnknown Kind = iota
	KindInputAccess
	KindParse
	KindMissingField
	KindConfiguration
	KindOutputAccess
	KindInvalidField
)

var (
	ErrInputAccess   = errors.New("input error")
	ErrParse         = errors.New("parse error")
	ErrMissingField  = errors.New("missing field")
	ErrConfiguration = errors.New("configuration error")
	ErrOutputAccess  = errors.New("output error")
	ErrInvalidField  = errors.New("invalid field")
)

var markers = map[Kind]error{
	KindInputAccess:   ErrInputAccess,
	KindParse:         ErrParse,
	KindMissingField:  ErrMissingField,
	KindConfiguration: ErrConfiguration,
	KindOutputAccess:  ErrOutputAccess,
	KindInvalidField:  ErrInvalidField,
}

func (k Kind) String() string {
	switch k {
	case KindInputAccess:
		return "input-access"
	case KindParse:
		return "parse"
	case KindMissingField:
		return "missing-field"
	case KindConfiguration:
		return "configuration"
	case KindOutputAccess:
		return "output-access"
	case KindInvalidField:
		return "invalid-field"
	default:
		return "unknown"
	}
}

// Error is the tagged failure returned by every prettycue package.
type Error struct {
	Kind    Kind
	Op      string
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	parts := make([]string, 0, 4)
	if op := strings.TrimSpace(e.Op); op != "" {
		parts = append(parts, op)
	}
	if msg := strings.TrimSpace(e.Message); msg != "" {
		parts = append(parts, msg)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	if len(parts) == 0 {
		return e.marker().Error()
	}
	return e.marker().Error() + ": " + strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel marker for the error's kind, so
// errors.Is(err, faults.ErrParse) works on wrapped values.
func (e *Error) Is(target error) bool {
	return target == e.marker()
}

func (e *Error) marker() error {
	if m, ok := markers[e.Kind]; ok {
		return m
	}
	return errors.New("failure")
}

// Wrap tags err with kind and the operation that produced it. A nil err
// still yields an error carrying the message.
func Wrap(kind Kind, op, message string, err error) error {
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

// MissingField reports a required cue field that the parsed sheet lacks.
func MissingField(field string) error {
	return &Error{
		Kind:    KindMissingField,
		Op:      "render",
		Field:   field,
		Message: fmt.Sprintf("%s is not found", field),
	}
}

// InvalidField reports a field value that cannot be written back as cue text.
func InvalidField(field, reason string) error {
	return &Error{
		Kind:    KindInvalidField,
		Op:      "render",
		Field:   field,
		Message: fmt.Sprintf("%s %s", field, reason),
	}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

// FieldOf returns the field named by a missing- or invalid-field error.
func FieldOf(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Field
	}
	return ""
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrConfiguration):
		return 2
	default:
		return 1
	}
}
