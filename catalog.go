package objgraph

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/objgraph/objgraph/internal/reflection"
)

// Catalog is an Introspector backed by registered constructor functions.
//
// Go reflection cannot see parameter names or class hierarchies, so both are
// declared at registration time:
//
//	cat := objgraph.NewCatalog()
//	cat.MustRegister(objgraph.TypeID[*Service](), NewService,
//	    objgraph.Params("logger", "name"),
//	    objgraph.Default("name", "default"),
//	)
//	cat.MustRegister(objgraph.TypeID[*AdminService](), NewAdminService,
//	    objgraph.Extends(objgraph.TypeID[*Service]()),
//	    objgraph.InheritConstructor(),
//	)
type Catalog struct {
	mu       sync.RWMutex
	analyzer *reflection.Analyzer
	types    map[Identifier]*catalogEntry
}

type catalogEntry struct {
	id       Identifier
	parent   Identifier
	info     *reflection.ConstructorInfo // nil for types without a constructor
	zeroType reflect.Type
	names    []string
	defaults map[string]any
	inherit  bool
}

// TypeOption configures a catalog registration.
type TypeOption func(*typeOptions)

type typeOptions struct {
	names    []string
	defaults map[string]any
	parent   Identifier
	inherit  bool
}

// Params names the constructor parameters in declaration order. Parameters
// left unnamed are called "arg0", "arg1", ...
func Params(names ...string) TypeOption {
	return func(o *typeOptions) {
		o.names = append(o.names, names...)
	}
}

// Default gives the named parameter a default value, used when nothing else
// supplies one.
func Default(name string, value any) TypeOption {
	return func(o *typeOptions) {
		if o.defaults == nil {
			o.defaults = make(map[string]any)
		}
		o.defaults[name] = value
	}
}

// Extends records parent as the direct ancestor of the registered type.
// Parameter overrides registered against parent apply to the type's
// constructor parameters as well.
func Extends(parent Identifier) TypeOption {
	return func(o *typeOptions) {
		o.parent = parent
	}
}

// InheritConstructor declares that the registered type uses its ancestor's
// constructor: parameter names, defaults and declaring class come from the
// nearest ancestor that declares its own constructor. The registered
// function must take the same parameter types.
func InheritConstructor() TypeOption {
	return func(o *typeOptions) {
		o.inherit = true
	}
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		analyzer: reflection.New(),
		types:    make(map[Identifier]*catalogEntry),
	}
}

// Register makes id constructible. ctor is either a constructor function
// returning T or (T, error), or a reflect.Type for a type without a
// constructor, which is instantiated as its zero value.
// Registering an id again replaces the previous registration.
func (c *Catalog) Register(id Identifier, ctor any, opts ...TypeOption) error {
	if id == "" {
		return RegistrationError{ID: id, Operation: "register", Cause: ErrInvalidIdentifier}
	}
	if ctor == nil {
		return RegistrationError{ID: id, Operation: "register", Cause: ErrConstructorNil}
	}

	o := &typeOptions{}
	for _, opt := range opts {
		opt(o)
	}

	entry := &catalogEntry{
		id:       id,
		parent:   o.parent,
		defaults: o.defaults,
		inherit:  o.inherit,
	}

	if o.inherit && o.parent == "" {
		return RegistrationError{ID: id, Operation: "inherit", Cause: errors.New("InheritConstructor requires Extends")}
	}

	if t, ok := ctor.(reflect.Type); ok {
		if err := entry.setZeroType(t, o); err != nil {
			return err
		}
	} else {
		info, err := c.analyzer.Analyze(ctor)
		if err != nil {
			return RegistrationError{ID: id, Operation: "analyze", Cause: err}
		}
		entry.info = info

		if err := entry.setNames(o.names); err != nil {
			return err
		}
		if o.inherit && len(o.defaults) > 0 {
			return RegistrationError{ID: id, Operation: "default",
				Cause: errors.New("defaults of an inherited constructor belong to the ancestor declaring it")}
		}
		if err := entry.checkDefaults(); err != nil {
			return err
		}
	}

	c.mu.Lock()
	c.types[id] = entry
	c.mu.Unlock()

	return nil
}

// MustRegister is like Register but panics on error.
func (c *Catalog) MustRegister(id Identifier, ctor any, opts ...TypeOption) {
	if err := c.Register(id, ctor, opts...); err != nil {
		panic(err)
	}
}

// RegisterType registers ctor under TypeID[T]().
func RegisterType[T any](c *Catalog, ctor any, opts ...TypeOption) error {
	return c.Register(TypeID[T](), ctor, opts...)
}

// Has reports whether id is registered.
func (c *Catalog) Has(id Identifier) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.types[id]
	return ok
}

// IDs returns every registered identifier, sorted.
func (c *Catalog) IDs() []Identifier {
	c.mu.RLock()
	ids := make([]Identifier, 0, len(c.types))
	for id := range c.types {
		ids = append(ids, id)
	}
	c.mu.RUnlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Describe implements Introspector.
func (c *Catalog) Describe(id Identifier) (*TypeDescriptor, error) {
	entry, ok := c.entry(id)
	if !ok {
		return nil, NotFoundError{ID: id}
	}

	if entry.info == nil {
		return &TypeDescriptor{ID: id}, nil
	}

	declarer := entry
	if entry.inherit {
		var err error
		declarer, err = c.constructorDeclarer(entry)
		if err != nil {
			return nil, err
		}
	}

	params := make([]Parameter, len(declarer.info.Parameters))
	for i, p := range declarer.info.Parameters {
		name := declarer.names[i]
		def, hasDefault := declarer.defaults[name]
		params[i] = Parameter{
			Name:           name,
			Type:           Identifier(p.Class),
			DeclaringClass: declarer.id,
			HasDefault:     hasDefault,
			Default:        def,
		}
	}

	return &TypeDescriptor{ID: id, HasConstructor: true, Parameters: params}, nil
}

// Parent implements Introspector.
func (c *Catalog) Parent(id Identifier) (Identifier, bool) {
	entry, ok := c.entry(id)
	if !ok || entry.parent == "" {
		return "", false
	}
	return entry.parent, true
}

// Instantiate implements Introspector.
func (c *Catalog) Instantiate(id Identifier, args []any) (any, error) {
	entry, ok := c.entry(id)
	if !ok {
		return nil, NotFoundError{ID: id}
	}

	if entry.info == nil {
		return reflection.NewZero(entry.zeroType), nil
	}

	instance, err := reflection.Invoke(entry.info, args)
	if err == nil {
		return instance, nil
	}

	var argErr reflection.ArgumentError
	var panicErr reflection.PanicError
	switch {
	case errors.As(err, &argErr):
		return nil, TypeMismatchError{
			ID:       id,
			Expected: argErr.Want,
			Actual:   argErr.Got,
			Context:  fmt.Sprintf("argument %q", c.argumentName(entry, argErr.Index)),
		}
	case errors.As(err, &panicErr):
		return nil, ConstructorPanicError{
			ID:          id,
			Constructor: entry.info.Type,
			Panic:       panicErr.Value,
			Stack:       panicErr.Stack,
		}
	default:
		return nil, ConstructorInvocationError{ID: id, Constructor: entry.info.Type, Cause: err}
	}
}

func (c *Catalog) entry(id Identifier) (*catalogEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.types[id]
	return entry, ok
}

// argumentName names the parameter at index the way Describe reports it.
func (c *Catalog) argumentName(entry *catalogEntry, index int) string {
	if entry.inherit {
		if declarer, err := c.constructorDeclarer(entry); err == nil {
			return declarer.names[index]
		}
	}
	return entry.names[index]
}

// constructorDeclarer finds the nearest ancestor of entry with its own
// constructor and checks the signatures agree.
func (c *Catalog) constructorDeclarer(entry *catalogEntry) (*catalogEntry, error) {
	seen := map[Identifier]struct{}{entry.id: {}}

	current := entry
	for current.inherit {
		parentID := current.parent
		if _, dup := seen[parentID]; dup {
			return nil, RegistrationError{ID: entry.id, Operation: "inherit",
				Cause: fmt.Errorf("ancestor chain loops at %s", parentID)}
		}
		seen[parentID] = struct{}{}

		parent, ok := c.entry(parentID)
		if !ok {
			return nil, RegistrationError{ID: entry.id, Operation: "inherit", Cause: NotFoundError{ID: parentID}}
		}
		if parent.info == nil {
			return nil, RegistrationError{ID: entry.id, Operation: "inherit",
				Cause: fmt.Errorf("ancestor %s has no constructor", parentID)}
		}
		current = parent
	}

	own, inherited := entry.info.Type, current.info.Type
	if own.NumIn() != inherited.NumIn() {
		return nil, RegistrationError{ID: entry.id, Operation: "inherit",
			Cause: fmt.Errorf("constructor takes %d parameters, %s declares %d", own.NumIn(), current.id, inherited.NumIn())}
	}
	for i := 0; i < own.NumIn(); i++ {
		if own.In(i) != inherited.In(i) {
			return nil, RegistrationError{ID: entry.id, Operation: "inherit",
				Cause: TypeMismatchError{ID: current.id, Expected: inherited.In(i), Actual: own.In(i), Context: "inherited parameter"}}
		}
	}

	return current, nil
}

func (e *catalogEntry) setZeroType(t reflect.Type, o *typeOptions) error {
	if !reflection.Instantiable(t) {
		return RegistrationError{ID: e.id, Operation: "register",
			Cause: fmt.Errorf("%s cannot be instantiated without a constructor", t)}
	}
	if len(o.names) > 0 || len(o.defaults) > 0 || o.inherit {
		return RegistrationError{ID: e.id, Operation: "register",
			Cause: errors.New("parameter options require a constructor function")}
	}
	e.zeroType = t
	return nil
}

func (e *catalogEntry) setNames(names []string) error {
	arity := len(e.info.Parameters)
	if len(names) > arity {
		return RegistrationError{ID: e.id, Operation: "register",
			Cause: fmt.Errorf("%d parameter names given for %d parameters", len(names), arity)}
	}

	e.names = make([]string, arity)
	seen := make(map[string]struct{}, arity)
	for i := range e.names {
		name := fmt.Sprintf("arg%d", i)
		if i < len(names) && names[i] != "" {
			name = names[i]
		}
		if _, dup := seen[name]; dup {
			return RegistrationError{ID: e.id, Operation: "register",
				Cause: fmt.Errorf("duplicate parameter name %q", name)}
		}
		seen[name] = struct{}{}
		e.names[i] = name
	}

	return nil
}

func (e *catalogEntry) checkDefaults() error {
	for name, value := range e.defaults {
		index := -1
		for i, n := range e.names {
			if n == name {
				index = i
				break
			}
		}
		if index < 0 {
			return RegistrationError{ID: e.id, Operation: "default",
				Cause: fmt.Errorf("no parameter named %q", name)}
		}
		if value == nil {
			continue
		}

		want := e.info.Parameters[index].Type
		if got := reflect.TypeOf(value); !reflection.Assignable(got, want) {
			return RegistrationError{ID: e.id, Operation: "default",
				Cause: TypeMismatchError{ID: e.id, Expected: want, Actual: got, Context: "default"}}
		}
	}

	return nil
}
