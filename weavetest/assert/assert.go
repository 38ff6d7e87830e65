/*
Package assert provides the few assertions used across the tests of this
module. Every assertion stops the test on failure.
*/
package assert

import (
	"reflect"
	"testing"

	"github.com/iov-one/weave-escrow/errors"
)

// Tester is the part of testing.TB the assertions need.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil fails unless value is nil. Typed nil pointers, maps, slices and
// alike count as nil.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		// %+v prints the stack trace of errors that carry one.
		t.Fatalf("want a nil value, got %+v", value)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}

// Equal fails unless both values are deeply equal.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values not equal \nwant %T %v\n got %T %v", want, want, got, got)
	}
}

// Panics fails unless fn panics.
func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	fn()
}

// FieldError fails unless err holds exactly one error for the named field
// and that error is of the wanted kind. A nil want requires that there is
// no error for the field.
func FieldError(t testing.TB, err error, field string, want *errors.Error) {
	t.Helper()

	errs := errors.FieldErrors(err, field)
	logAll := func() {
		for i, e := range errs {
			t.Logf("\terror %d: %q", i+1, e)
		}
	}

	if want == nil {
		if len(errs) != 0 {
			logAll()
			t.Fatalf("want no %q error, got %d", field, len(errs))
		}
		return
	}

	switch len(errs) {
	case 0:
		t.Fatalf("no %q error found", field)
	case 1:
		if !want.Is(errs[0]) {
			t.Fatalf("unexpected %q error: %q", field, errs[0])
		}
	default:
		logAll()
		t.Fatalf("want one %q error, got %d", field, len(errs))
	}
}

// IsErr fails unless got is want or, for a registered error, of its kind.
func IsErr(t testing.TB, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if kind, ok := want.(interface{ Is(error) bool }); ok && kind.Is(got) {
		return
	}
	t.Fatalf("want %q, got %+v", want, got)
}
