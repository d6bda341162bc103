package objgraph

import (
	"reflect"

	"github.com/objgraph/objgraph/internal/reflection"
)

// Identifier names a class, an interface or an arbitrary binding slot.
// Identifiers are compared as-is; callers supply a stable, fully-qualified
// form, such as the one returned by TypeID.
type Identifier string

// String implements fmt.Stringer.
func (id Identifier) String() string {
	return string(id)
}

// IdentifierOf returns the identifier of a Go type: "import/path.Name" for
// named types, prefixed with "*" per pointer level.
func IdentifierOf(t reflect.Type) Identifier {
	return Identifier(reflection.TypeName(t))
}

// TypeID returns the identifier of T. Interfaces are named by the interface
// itself, not by a pointer to it:
//
//	objgraph.TypeID[Logger]()         // "example.com/app.Logger"
//	objgraph.TypeID[*ConsoleLogger]() // "*example.com/app.ConsoleLogger"
func TypeID[T any]() Identifier {
	return IdentifierOf(reflect.TypeOf((*T)(nil)).Elem())
}
