package objgraph

import (
	"go.uber.org/dig"
)

// Provide exposes id to a dig container as a provider of T. The first time
// dig needs T, id is resolved through c with its bindings and overrides; dig
// keeps the result for the lifetime of dc.
//
//	dc := dig.New()
//	objgraph.Provide[Logger](c, dc, objgraph.TypeID[Logger]())
//	dc.Invoke(func(l Logger) { ... })
func Provide[T any](c *Container, dc *dig.Container, id Identifier, opts ...dig.ProvideOption) error {
	return dc.Provide(func() (T, error) {
		return Resolve[T](c, id)
	}, opts...)
}

// ProvideType is Provide for TypeID[T]().
func ProvideType[T any](c *Container, dc *dig.Container, opts ...dig.ProvideOption) error {
	return Provide[T](c, dc, TypeID[T](), opts...)
}
