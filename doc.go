// Package objgraph resolves object graphs from type identifiers.
//
// Given an identifier naming a class or an interface, a Container returns a
// previously bound value or constructs the type, resolving each constructor
// parameter recursively. What a parameter receives can be decided per
// declaring class, so the same interface can resolve differently depending
// on which constructor asked for it.
//
// # Overview
//
//   - Direct bindings: Bind an identifier to a prebuilt value
//   - Interface redirection: resolve an interface as a concrete type, globally
//     or only inside one declaring class
//   - Parameter overrides by declared type or by name, scoped to a declaring
//     class and inherited by its descendants
//   - Declaring-class injection: let a constructor learn which class requested it
//   - Cycle detection with the full dependency path in the error
//   - Optional memoization (Singleton lifetime)
//   - Dry-run plans of the object graph a resolution would build
//
// # Basic Usage
//
// Register constructors in a Catalog, create a Container over it, bind and
// resolve:
//
//	cat := objgraph.NewCatalog()
//	cat.MustRegister(objgraph.TypeID[*ConsoleLogger](), NewConsoleLogger)
//	cat.MustRegister(objgraph.TypeID[*Service](), NewService,
//	    objgraph.Params("logger", "name"),
//	    objgraph.Default("name", "default"),
//	)
//
//	c := objgraph.New(cat)
//	c.BindInterface(objgraph.TypeID[Logger](), objgraph.TypeID[*ConsoleLogger]())
//
//	svc, err := objgraph.Resolve[*Service](c, objgraph.TypeID[*Service]())
//
// # Identifiers
//
// Identifiers are opaque strings. TypeID and IdentifierOf derive a stable
// one from a Go type ("import/path.Name", prefixed with "*" for pointers),
// but any string can name a binding slot.
//
// # Parameter Resolution
//
// Each constructor parameter is decided by the first source that applies:
//
//  1. BindToDeclaringClass: the identifier of the class that requested the
//     instance being built
//  2. An override registered on the parameter's declaring class, then on each
//     of its ancestors in turn; at every level a BindParameterByName override
//     wins over a BindParameterByType one
//  3. Recursive resolution of the parameter's declared class or interface,
//     scoped to the parameter's declaring class
//  4. The parameter's default value
//  5. nil, passed to the constructor as the zero value
//
// Scalar parameters (strings, numbers, slices, maps, funcs) have no declared
// class and skip step 3.
//
// # Interface Redirection
//
//	c.BindInterface(loggerID, consoleLoggerID)                // everywhere
//	c.BindInterfaceFor(loggerID, fileLoggerID, serviceID)     // only in Service's constructor
//
// A scoped redirection wins over an unscoped one, which wins over the
// identifier itself.
//
// # Plans
//
// Plan runs the same decisions as Resolve without invoking any constructor
// and returns the object graph that would be built, with the source of every
// parameter value. It renders as text or Graphviz DOT:
//
//	plan, err := c.Plan(objgraph.TypeID[*Service]())
//	plan.WriteDOT(os.Stdout)
//
// # Interop
//
// Provide and ProvideType register an identifier with a go.uber.org/dig
// container; ProvideDo and ProvideDoNamed do the same for a samber/do
// injector. The identifier is resolved through the container, with its
// bindings and overrides, the first time the other container needs it.
//
// # Error Handling
//
// Failures are typed:
//   - NotFoundError: the identifier is neither bound nor constructible
//   - ResolutionError: a constructor parameter could not be resolved
//   - CircularDependencyError: an identifier depends on itself
//   - ConstructorInvocationError, ConstructorPanicError: the constructor failed
//   - TypeMismatchError: a value did not fit the expected type
//
// IsNotFound, IsUnresolvable and IsCircularDependency look through wrapping.
// A failed resolution never yields a partial object graph.
//
// # Configuration
//
// Options configure logging (zap), lifetime and the maximum nesting depth.
// The config package reads the same settings from the environment and .env
// files; NewFromConfig applies them.
package objgraph
