package objgraph

import (
	"github.com/samber/do/v2"
)

// ProvideDo exposes id to a samber/do injector as a lazy provider of T.
// do invokes it once and keeps the instance, like any do service.
//
//	injector := do.New()
//	objgraph.ProvideDo[Logger](c, injector, objgraph.TypeID[Logger]())
//	logger := do.MustInvoke[Logger](injector)
//
// do panics when T is already provided in the injector.
func ProvideDo[T any](c *Container, injector do.Injector, id Identifier) {
	do.Provide(injector, func(do.Injector) (T, error) {
		return Resolve[T](c, id)
	})
}

// ProvideDoNamed is ProvideDo under an explicit service name, so several
// identifiers can be exposed as the same T.
func ProvideDoNamed[T any](c *Container, injector do.Injector, name string, id Identifier) {
	do.ProvideNamed(injector, name, func(do.Injector) (T, error) {
		return Resolve[T](c, id)
	})
}
