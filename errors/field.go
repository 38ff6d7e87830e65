package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field attributes err to a single field of a validated value. It returns
// nil if err is nil, so validation results can be passed directly.
//
// The name follows the Go field name. Nested fields are joined with a dot
// and list elements are named by their index, for example
// Participants.2.Signature.
func Field(name string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) != 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{parent: err, field: name, desc: description}
}

// AppendField adds the field error, if any, to errs.
func AppendField(errs error, name string, err error) error {
	return Append(errs, Field(name, err, ""))
}

type fieldError struct {
	parent error
	field  string
	desc   string
}

func (e *fieldError) Error() string {
	msg := fmt.Sprintf("field %q", e.field)
	if e.desc != "" {
		msg += ": " + e.desc
	}
	return msg + ": " + e.parent.Error()
}

func (e *fieldError) Cause() error  { return e.parent }
func (e *fieldError) Field() string { return e.field }

// fielder is implemented by errors attributed to a field.
type fielder interface {
	Field() string
}

// FieldErrors collects all errors attributed to the named field, searching
// through wrapped and appended errors. An error of a field is returned as
// it is, errors it wraps are not inspected further.
func FieldErrors(err error, name string) []error {
	var found []error
	for !isNilErr(err) {
		if f, ok := err.(fielder); ok && f.Field() == name {
			return append(found, err)
		}
		if u, ok := err.(unpacker); ok {
			for _, e := range u.Unpack() {
				found = append(found, FieldErrors(e, name)...)
			}
			return found
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return found
}
