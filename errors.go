package objgraph

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/objgraph/objgraph/internal/graph"
)

// ========================================
// Core Error Values (Sentinel Errors)
// ========================================
// These are base errors matched with errors.Is. The typed errors below are
// what the container actually returns.

var (
	// Resolution errors.
	ErrNotFound         = errors.New("identifier not found")
	ErrUnresolvable     = errors.New("parameter cannot be resolved")
	ErrCyclicDependency = graph.ErrCircularDependency
	ErrMaxDepthExceeded = errors.New("maximum resolution depth exceeded")

	// Registration errors.
	ErrInvalidIdentifier = errors.New("identifier cannot be empty")
	ErrConstructorNil    = errors.New("constructor cannot be nil")
)

var (
	_ error = NotFoundError{}
	_ error = ResolutionError{}
	_ error = RegistrationError{}
	_ error = TypeMismatchError{}
	_ error = ConstructorInvocationError{}
	_ error = ConstructorPanicError{}
	_ error = LifetimeError{}
	_ error = CircularDependencyError{}
)

// ========================================
// Typed Errors for Rich Context
// ========================================

// CircularDependencyError reports an identifier that depends on itself,
// directly or through a chain of constructor parameters.
type CircularDependencyError = graph.CircularDependencyError

// NotFoundError indicates an identifier that is neither bound nor known to
// the introspector.
type NotFoundError struct {
	ID Identifier

	// Requested is the identifier originally asked for when ID is the
	// result of an interface redirection.
	Requested Identifier
}

func (e NotFoundError) Error() string {
	if e.Requested != "" && e.Requested != e.ID {
		return fmt.Sprintf("no entry for %s (redirected from %s)", e.ID, e.Requested)
	}
	return fmt.Sprintf("no entry for %s", e.ID)
}

func (e NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ResolutionError wraps a failure to resolve one constructor parameter.
// It nests: the Cause of an outer ResolutionError is the failure of the
// parameter's own resolution.
type ResolutionError struct {
	ID             Identifier // type being constructed
	Parameter      string
	DeclaringClass Identifier
	Cause          error
}

func (e ResolutionError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("cannot resolve parameter %q of %s", e.Parameter, e.ID))
	if e.DeclaringClass != "" && e.DeclaringClass != e.ID {
		b.WriteString(fmt.Sprintf(" (declared by %s)", e.DeclaringClass))
	}
	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}
	return b.String()
}

func (e ResolutionError) Unwrap() error {
	return e.Cause
}

func (e ResolutionError) Is(target error) bool {
	return target == ErrUnresolvable
}

// RegistrationError wraps errors during type registration.
type RegistrationError struct {
	ID        Identifier
	Operation string // "register", "analyze", "default", "inherit"
	Cause     error
}

func (e RegistrationError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.ID, e.Cause)
}

func (e RegistrationError) Unwrap() error {
	return e.Cause
}

// TypeMismatchError indicates a value of an unexpected type.
type TypeMismatchError struct {
	ID       Identifier
	Expected reflect.Type
	Actual   reflect.Type
	Context  string // "assertion", "argument", "default"
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch in %s for %s: expected %s, got %s",
		e.Context, e.ID, formatType(e.Expected), formatType(e.Actual))
}

// ConstructorInvocationError wraps an error returned by a constructor.
type ConstructorInvocationError struct {
	ID          Identifier
	Constructor reflect.Type
	Cause       error
}

func (e ConstructorInvocationError) Error() string {
	return fmt.Sprintf("failed to construct %s with %s: %v", e.ID, formatType(e.Constructor), e.Cause)
}

func (e ConstructorInvocationError) Unwrap() error {
	return e.Cause
}

// ConstructorPanicError indicates a constructor panicked during invocation.
// It captures the panic value and stack trace for debugging.
type ConstructorPanicError struct {
	ID          Identifier
	Constructor reflect.Type
	Panic       any
	Stack       []byte
}

func (e ConstructorPanicError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("constructor %s of %s panicked: %v\n", formatType(e.Constructor), e.ID, e.Panic))

	b.WriteString("\nTo resolve this:\n")
	b.WriteString("  • Check for nil dependencies; unresolved parameters are passed as zero values\n")
	b.WriteString("  • Bind or override the parameter that arrived empty\n")

	if len(e.Stack) > 0 {
		b.WriteString("\nStack trace:\n")
		b.Write(e.Stack)
	}

	return b.String()
}

// LifetimeError indicates an invalid lifetime value.
type LifetimeError struct {
	Value any
}

func (e LifetimeError) Error() string {
	return fmt.Sprintf("invalid lifetime: %v", e.Value)
}

// ========================================
// Error predicates
// ========================================

// IsNotFound reports whether err, or anything it wraps, is a NotFoundError.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnresolvable reports whether err is a parameter resolution failure.
func IsUnresolvable(err error) bool {
	return errors.Is(err, ErrUnresolvable)
}

// IsCircularDependency reports whether err stems from a dependency cycle.
func IsCircularDependency(err error) bool {
	return errors.Is(err, ErrCyclicDependency)
}

// formatType formats a reflect.Type for error messages.
func formatType(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind() {
	case reflect.Pointer:
		elem := t.Elem()
		if elem.PkgPath() != "" && elem.Name() != "" {
			return "*" + elem.Name()
		}
		return t.String()
	case reflect.Func:
		return t.String()
	default:
		if t.Name() != "" {
			return t.Name()
		}
		return t.String()
	}
}
