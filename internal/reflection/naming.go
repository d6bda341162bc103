package reflection

import "reflect"

// TypeName returns the identifier of a Go type: the import path and name of
// named types ("net/http.Client"), one "*" per pointer level, and
// reflect.Type.String for unnamed types.
func TypeName(t reflect.Type) string {
	if t == nil {
		return ""
	}

	if t.Kind() == reflect.Pointer && t.Name() == "" {
		return "*" + TypeName(t.Elem())
	}

	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}

	return t.String()
}

// IsClassType reports whether t names a class-like type: a named interface,
// a named struct, or a pointer to a named struct. Such parameters carry a
// declared type and are resolved recursively.
func IsClassType(t reflect.Type) bool {
	if t == nil {
		return false
	}

	switch t.Kind() {
	case reflect.Interface, reflect.Struct:
		return t.Name() != "" && t.PkgPath() != ""
	case reflect.Pointer:
		elem := t.Elem()
		return elem.Kind() == reflect.Struct && elem.Name() != "" && elem.PkgPath() != ""
	default:
		return false
	}
}

// Instantiable reports whether a zero-argument instance of t can be made.
func Instantiable(t reflect.Type) bool {
	return t != nil && t.Kind() != reflect.Interface
}

// NewZero allocates an instance of t without a constructor. Pointer types get
// a freshly allocated element so the result is never a nil pointer.
func NewZero(t reflect.Type) any {
	if t.Kind() == reflect.Pointer {
		return reflect.New(t.Elem()).Interface()
	}
	return reflect.New(t).Elem().Interface()
}
