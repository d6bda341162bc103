package reflection

import (
	"fmt"
	"reflect"
	"runtime/debug"
)

// ArgumentError reports an argument that cannot be passed to a constructor
// parameter.
type ArgumentError struct {
	Index int
	Want  reflect.Type
	Got   reflect.Type
}

func (e ArgumentError) Error() string {
	return fmt.Sprintf("argument %d: cannot use %s as %s", e.Index, e.Got, e.Want)
}

// PanicError captures a constructor panic and the stack it happened on.
type PanicError struct {
	Value any
	Stack []byte
}

func (e PanicError) Error() string {
	return fmt.Sprintf("constructor panicked: %v", e.Value)
}

// Invoke calls the analyzed constructor with args in declaration order.
//
// A nil argument becomes the zero value of its parameter type. A panic inside
// the constructor is returned as PanicError; the constructor's own error is
// returned unchanged.
func Invoke(info *ConstructorInfo, args []any) (result any, err error) {
	if len(args) != len(info.Parameters) {
		return nil, fmt.Errorf("constructor %s expects %d arguments, got %d",
			info.Type, len(info.Parameters), len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		v, convErr := argumentValue(info.Parameters[i].Type, i, arg)
		if convErr != nil {
			return nil, convErr
		}
		in[i] = v
	}

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = PanicError{Value: r, Stack: debug.Stack()}
		}
	}()

	results := info.Value.Call(in)

	if info.HasErrorReturn {
		if last := results[len(results)-1]; !last.IsNil() {
			return nil, last.Interface().(error)
		}
	}

	return results[0].Interface(), nil
}

func argumentValue(want reflect.Type, index int, arg any) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(want), nil
	}

	v := reflect.ValueOf(arg)
	if v.Type().AssignableTo(want) {
		return v, nil
	}
	if Assignable(v.Type(), want) {
		return v.Convert(want), nil
	}

	return reflect.Value{}, ArgumentError{Index: index, Want: want, Got: v.Type()}
}

// Assignable reports whether a value of type got can be passed where want is
// expected. Besides Go assignability, string kinds convert into each other so
// identifiers can feed plain string parameters.
func Assignable(got, want reflect.Type) bool {
	if got.AssignableTo(want) {
		return true
	}
	return got.Kind() == reflect.String && want.Kind() == reflect.String
}
