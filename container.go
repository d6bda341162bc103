package objgraph

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/objgraph/objgraph/internal/binding"
	"github.com/objgraph/objgraph/internal/override"
)

// Container registers bindings and resolves identifiers into instances.
//
// Bindings are expected to be registered during a setup phase before
// resolution starts. Registration and resolution are safe to call from
// multiple goroutines, but a resolution running concurrently with
// registration may observe either state.
type Container struct {
	id        string
	store     *binding.Store
	types     Introspector
	hierarchy override.Hierarchy
	logger    *zap.Logger
	lifetime  Lifetime
	maxDepth  int
}

// New creates a container resolving constructible identifiers through types.
// A nil introspector is replaced with an empty Catalog, leaving only bound
// identifiers resolvable.
func New(types Introspector, opts ...Option) *Container {
	if types == nil {
		types = NewCatalog()
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	id := uuid.NewString()
	c := &Container{
		id:       id,
		store:    binding.New(),
		types:    types,
		logger:   o.logger.With(zap.String("container", id)),
		lifetime: o.lifetime,
		maxDepth: o.maxDepth,
	}
	c.hierarchy = override.HierarchyFunc(func(class string) (string, bool) {
		parent, ok := c.types.Parent(Identifier(class))
		return string(parent), ok
	})

	return c
}

// ID returns the unique ID of this container.
func (c *Container) ID() string {
	return c.id
}

// Introspector returns the introspector the container constructs through.
func (c *Container) Introspector() Introspector {
	return c.types
}

// Lifetime returns the container's lifetime for constructed instances.
func (c *Container) Lifetime() Lifetime {
	return c.lifetime
}

// Has reports whether a value is bound to id.
func (c *Container) Has(id Identifier) bool {
	return c.store.Has(string(id))
}

// Get returns the value bound to id, or resolves id when nothing is bound.
// It fails with NotFoundError only when id is neither bound nor
// constructible.
func (c *Container) Get(id Identifier) (any, error) {
	if v, ok := c.store.Get(string(id)); ok {
		return v, nil
	}
	return c.Resolve(id)
}

// Bind binds value to id. Later lookups and resolutions of id return value
// without construction. Binding an id again replaces the previous value.
func (c *Container) Bind(id Identifier, value any) {
	c.store.Bind(string(id), value)
	c.logger.Debug("bound value", zap.Stringer("id", id))
}

// BindInterface resolves iface as concrete wherever it is requested.
func (c *Container) BindInterface(iface, concrete Identifier) {
	c.store.BindInterface(string(iface), string(concrete), "")
	c.logger.Debug("bound interface",
		zap.Stringer("interface", iface),
		zap.Stringer("concrete", concrete),
	)
}

// BindInterfaceFor resolves iface as concrete only when it is a parameter of
// a constructor declared by declaringClass. It takes precedence over an
// unscoped BindInterface.
func (c *Container) BindInterfaceFor(iface, concrete, declaringClass Identifier) {
	c.store.BindInterface(string(iface), string(concrete), string(declaringClass))
	c.logger.Debug("bound interface",
		zap.Stringer("interface", iface),
		zap.Stringer("concrete", concrete),
		zap.Stringer("declaring_class", declaringClass),
	)
}

// BindParameterByType supplies value to every parameter of declared type
// typeID in constructors declared by declaringClass or its descendants.
func (c *Container) BindParameterByType(typeID, declaringClass Identifier, value any) {
	c.store.BindParameterByType(string(typeID), string(declaringClass), value)
	c.logger.Debug("bound parameter by type",
		zap.Stringer("type", typeID),
		zap.Stringer("declaring_class", declaringClass),
	)
}

// BindParameterByName supplies value to the parameter called name in
// constructors declared by declaringClass or its descendants. At the same
// class it takes precedence over BindParameterByType.
func (c *Container) BindParameterByName(name string, declaringClass Identifier, value any) {
	c.store.BindParameterByName(name, string(declaringClass), value)
	c.logger.Debug("bound parameter by name",
		zap.String("parameter", name),
		zap.Stringer("declaring_class", declaringClass),
	)
}

// BindToDeclaringClass makes the parameter called name, in the constructor
// declared by declaringClass, receive the identifier of the class that
// requested the instance being built.
func (c *Container) BindToDeclaringClass(name string, declaringClass Identifier) {
	c.store.BindToDeclaringClass(name, string(declaringClass))
	c.logger.Debug("bound parameter to declaring class",
		zap.String("parameter", name),
		zap.Stringer("declaring_class", declaringClass),
	)
}

// Resolve returns the instance for id: the bound value if there is one,
// otherwise a newly constructed instance with every constructor parameter
// resolved recursively.
func (c *Container) Resolve(id Identifier) (any, error) {
	return c.ResolveFor(id, "")
}

// ResolveFor resolves id as if it were requested by a constructor declared by
// declaringClass, which scopes interface redirections and the declaring-class
// parameter flag.
func (c *Container) ResolveFor(id, declaringClass Identifier) (any, error) {
	r := &resolution{c: c}

	instance, _, err := r.resolve(id, declaringClass)
	if err != nil {
		c.logger.Debug("resolution failed",
			zap.Stringer("id", id),
			zap.Stringer("declaring_class", declaringClass),
			zap.Error(err),
		)
		return nil, err
	}

	return instance, nil
}
