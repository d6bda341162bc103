package objgraph

import (
	"fmt"
	"reflect"
)

// Resolve is a generic helper function that resolves id as type T.
func Resolve[T any](c *Container, id Identifier) (T, error) {
	instance, err := c.Resolve(id)
	if err != nil {
		var zero T
		return zero, err
	}
	return assertAs[T](id, instance)
}

// ResolveType resolves the identifier of T itself, TypeID[T]().
func ResolveType[T any](c *Container) (T, error) {
	return Resolve[T](c, TypeID[T]())
}

// Get is a generic helper function that returns the value bound to id, or
// resolves it, as type T.
func Get[T any](c *Container, id Identifier) (T, error) {
	instance, err := c.Get(id)
	if err != nil {
		var zero T
		return zero, err
	}
	return assertAs[T](id, instance)
}

// MustResolve resolves id and panics on error.
func MustResolve[T any](c *Container, id Identifier) T {
	result, err := Resolve[T](c, id)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve %s: %v", id, err))
	}
	return result
}

// BindType binds value under TypeID[T]().
func BindType[T any](c *Container, value T) {
	c.Bind(TypeID[T](), value)
}

func assertAs[T any](id Identifier, instance any) (T, error) {
	if result, ok := instance.(T); ok {
		return result, nil
	}

	var zero T
	// A nil instance is a valid zero value for nilable T.
	if instance == nil {
		switch reflect.TypeOf((*T)(nil)).Elem().Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return zero, nil
		}
	}

	return zero, TypeMismatchError{
		ID:       id,
		Expected: reflect.TypeOf((*T)(nil)).Elem(),
		Actual:   reflect.TypeOf(instance),
		Context:  "assertion",
	}
}
