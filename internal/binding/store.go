package binding

import "sync"

// interfaceKey scopes an interface redirection. An empty DeclaringClass is the
// unscoped mapping.
type interfaceKey struct {
	Interface      string
	DeclaringClass string
}

// ParamKey identifies a parameter override. Param is either the parameter's
// declared type identifier or its bare name, depending on the table it is
// stored in.
type ParamKey struct {
	Param          string
	DeclaringClass string
}

// Store holds every binding table the resolver consults.
// It performs lookups only; resolution logic lives in the caller.
type Store struct {
	mu sync.RWMutex

	// id -> bound value
	entries map[string]any

	// (interface, declaring class) -> concrete id
	interfaces map[interfaceKey]string

	// (type id, declaring class) -> override value
	typed map[ParamKey]any

	// (parameter name, declaring class) -> override value
	named map[ParamKey]any

	// (parameter name, declaring class) flagged to receive the requesting class id
	declaring map[ParamKey]struct{}
}

// New creates an empty store.
func New() *Store {
	return &Store{
		entries:    make(map[string]any),
		interfaces: make(map[interfaceKey]string),
		typed:      make(map[ParamKey]any),
		named:      make(map[ParamKey]any),
		declaring:  make(map[ParamKey]struct{}),
	}
}

// Has reports whether a direct value binding exists for id.
func (s *Store) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[id]
	return ok
}

// Get returns the value bound to id.
func (s *Store) Get(id string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[id]
	return v, ok
}

// Bind registers value under id, replacing any previous binding.
func (s *Store) Bind(id string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = value
}

// BindIfAbsent registers value under id unless a binding already exists.
// It returns the value that ends up bound.
func (s *Store) BindIfAbsent(id string, value any) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.entries[id]; ok {
		return existing
	}
	s.entries[id] = value
	return value
}

// BindInterface redirects iface to concrete. An empty declaringClass registers
// the unscoped mapping.
func (s *Store) BindInterface(iface, concrete, declaringClass string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interfaces[interfaceKey{Interface: iface, DeclaringClass: declaringClass}] = concrete
}

// Interface returns the redirection registered for exactly (iface, declaringClass).
func (s *Store) Interface(iface, declaringClass string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	concrete, ok := s.interfaces[interfaceKey{Interface: iface, DeclaringClass: declaringClass}]
	return concrete, ok
}

// BindParameterByType overrides every parameter of declared type typeID in
// constructors declared by declaringClass.
func (s *Store) BindParameterByType(typeID, declaringClass string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.typed[ParamKey{Param: typeID, DeclaringClass: declaringClass}] = value
}

// BindParameterByName overrides the parameter called name in constructors
// declared by declaringClass.
func (s *Store) BindParameterByName(name, declaringClass string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.named[ParamKey{Param: name, DeclaringClass: declaringClass}] = value
}

// Typed returns the typed override for (typeID, declaringClass).
func (s *Store) Typed(typeID, declaringClass string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.typed[ParamKey{Param: typeID, DeclaringClass: declaringClass}]
	return v, ok
}

// Named returns the named override for (name, declaringClass).
func (s *Store) Named(name, declaringClass string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.named[ParamKey{Param: name, DeclaringClass: declaringClass}]
	return v, ok
}

// BindToDeclaringClass flags the parameter name of constructors declared by
// declaringClass.
func (s *Store) BindToDeclaringClass(name, declaringClass string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.declaring[ParamKey{Param: name, DeclaringClass: declaringClass}] = struct{}{}
}

// BoundToDeclaringClass reports whether the flag is set for (name, declaringClass).
func (s *Store) BoundToDeclaringClass(name, declaringClass string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.declaring[ParamKey{Param: name, DeclaringClass: declaringClass}]
	return ok
}

// Len returns the number of direct value bindings.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
