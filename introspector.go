package objgraph

// Introspector is the host's reflection facility: it knows which identifiers
// are constructible, what their constructors take, how classes inherit from
// each other, and how to build an instance from resolved arguments.
//
// Catalog is the implementation shipped with this package.
type Introspector interface {
	// Describe returns the constructor description of id. Unknown
	// identifiers fail with an error matching ErrNotFound.
	Describe(id Identifier) (*TypeDescriptor, error)

	// Parent returns the direct ancestor of id, or false at the root of
	// its hierarchy.
	Parent(id Identifier) (Identifier, bool)

	// Instantiate builds a new instance of id. args are ordered like
	// TypeDescriptor.Parameters and empty when HasConstructor is false.
	Instantiate(id Identifier, args []any) (any, error)
}

// TypeDescriptor describes how to construct an identifier.
type TypeDescriptor struct {
	ID             Identifier
	HasConstructor bool
	Parameters     []Parameter
}

// Parameter describes one constructor parameter.
type Parameter struct {
	Name string

	// Type is the declared class or interface of the parameter, empty
	// for scalar parameters.
	Type Identifier

	// DeclaringClass is the class whose constructor declares the
	// parameter. It differs from the type being built when the
	// constructor is inherited.
	DeclaringClass Identifier

	HasDefault bool
	Default    any
}

// Typed reports whether the parameter carries a declared class or interface.
func (p Parameter) Typed() bool {
	return p.Type != ""
}

// ContainerAware is implemented by types that want the container that
// built them. SetContainer is called once, right after construction.
type ContainerAware interface {
	SetContainer(c *Container)
}
