package signature

import (
	"reflect"
	"runtime"
)

// funcValue checks that fn is a non-nil function and returns its reflect.Value.
func funcValue(fn any) (reflect.Value, error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return reflect.Value{}, &ResolveError{
			Code:    ErrCodeNotAFunc,
			Message: "expected a function, got " + typeString(fn),
		}
	}
	if v.IsNil() {
		return reflect.Value{}, &ResolveError{
			Code:    ErrCodeNotAFunc,
			Message: "nil function",
		}
	}
	return v, nil
}

// CodePointer returns the entry address of fn's code. All closures created
// from the same function literal share one code pointer.
func CodePointer(fn any) (uintptr, error) {
	v, err := funcValue(fn)
	if err != nil {
		return 0, err
	}
	return v.Pointer(), nil
}

// FuncName returns the fully qualified runtime name of fn.
func FuncName(fn any) string {
	pc, err := CodePointer(fn)
	if err != nil {
		return ""
	}
	if rf := runtime.FuncForPC(pc); rf != nil {
		return rf.Name()
	}
	return ""
}

func typeString(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
