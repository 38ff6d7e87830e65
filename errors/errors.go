package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Root errors of this module. Extensions register their own, starting at
// code 1000.
var (
	// ErrUnauthorized means the caller may not do what it asked for.
	ErrUnauthorized = Register(2, "unauthorized")

	// ErrNotFound means the requested record does not exist.
	ErrNotFound = Register(3, "not found")

	// ErrModel means a stored model is invalid.
	ErrModel = Register(5, "invalid model")

	// ErrDuplicate means a value that must be unique is repeated.
	ErrDuplicate = Register(6, "duplicate")

	// ErrEmpty means a required value is missing.
	ErrEmpty = Register(9, "value is empty")

	// ErrState means an object is not in a state allowing the operation.
	ErrState = Register(10, "invalid state")

	// ErrType means a value is not of the expected type or format.
	ErrType = Register(11, "invalid type")

	// ErrAmount means an amount of coins is not acceptable.
	ErrAmount = Register(13, "invalid amount")

	// ErrInput means a request or a value failed validation.
	ErrInput = Register(14, "invalid input")

	// ErrOverflow means a result does not fit its type.
	ErrOverflow = Register(16, "an operation cannot be completed due to value overflow")

	// ErrCurrency means the currencies of two amounts do not match, or a
	// ticker is invalid.
	ErrCurrency = Register(17, "currency")

	// ErrDatabase means the store failed.
	ErrDatabase = Register(18, "database")

	// ErrMetadata means the metadata of an entity is missing or invalid.
	ErrMetadata = Register(19, "metadata")

	// ErrSchema means an entity cannot be migrated to the expected schema
	// version.
	ErrSchema = Register(20, "schema")

	// ErrPanic is set by Recover. The panic value is kept in the message.
	ErrPanic = Register(111222, "panic")
)

// codes holds every registered root error by code. Code 1 stands for
// errors that carry none.
var codes = map[uint32]*Error{
	1: {code: 1, desc: "internal"},
}

// Register declares a root error. It panics if code is taken, so call it
// only from package level variable declarations.
func Register(code uint32, description string) *Error {
	if e, ok := codes[code]; ok {
		panic(fmt.Sprintf("error with code %d is already registered: %q", code, e.desc))
	}
	e := &Error{code: code, desc: description}
	codes[code] = e
	return e
}

// Error is a root error. Errors returned at runtime wrap one of them, so
// that callers can tell their kind with Is and clients with Code.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

// Code returns the number registered for this error.
func (e Error) Code() uint32 {
	return e.code
}

// Is returns true if err is of this kind: it is this root error, wraps it,
// or is a multi error holding one of those. A nil kind matches only nil
// errors.
func (kind *Error) Is(err error) bool {
	if kind == nil {
		return isNilErr(err)
	}
	for err != nil {
		if err == kind {
			return true
		}
		if u, ok := err.(unpacker); ok {
			for _, e := range u.Unpack() {
				if kind.Is(e) {
					return true
				}
			}
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

// Code returns the code of the root error err wraps: 0 for nil and 1 for
// errors not built on a registered root.
func Code(err error) uint32 {
	if isNilErr(err) {
		return 0
	}
	for {
		if e, ok := err.(*Error); ok {
			return e.code
		}
		c, ok := err.(causer)
		if !ok {
			return 1
		}
		err = c.Cause()
	}
}

// Wrap adds description to err. It returns nil for a nil err, so that a
// result can be wrapped unconditionally. A stack trace is recorded by the
// innermost Wrap only.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{parent: err, msg: description}
}

// Wrapf is Wrap with a formatted description.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Format prints the stack trace of the innermost wrap when the %+v verb is
// used.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s: %+v", e.msg, e.parent)
		return
	}
	fmt.Fprint(s, e.Error())
}

// Recover turns a panic into an ErrPanic assigned to err. Call it with
// defer.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type causer interface {
	Cause() error
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the first stack trace found in the chain of err, or
// nil.
func stackTrace(err error) errors.StackTrace {
	for {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			return nil
		}
		err = c.Cause()
	}
}

// isNilErr returns true for nil and for typed nil pointers, such as a nil
// *Error stored in an error interface.
func isNilErr(err error) bool {
	if err == nil {
		return true
	}
	if v := reflect.ValueOf(err); v.Kind() == reflect.Ptr {
		return v.IsNil()
	}
	return false
}
