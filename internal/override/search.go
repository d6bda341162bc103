// Package override finds declaring-class scoped parameter overrides,
// climbing the declaring class's ancestor chain.
package override

// Source exposes the override tables.
type Source interface {
	Named(name, declaringClass string) (any, bool)
	Typed(typeID, declaringClass string) (any, bool)
}

// Hierarchy reports the direct ancestor of a class identifier.
type Hierarchy interface {
	Parent(id string) (string, bool)
}

// HierarchyFunc adapts a function to Hierarchy.
type HierarchyFunc func(id string) (string, bool)

// Parent implements Hierarchy.
func (f HierarchyFunc) Parent(id string) (string, bool) {
	return f(id)
}

// Param is the identity of a constructor parameter as far as overrides are
// concerned. Type is empty for untyped parameters.
type Param struct {
	Name string
	Type string
}

// Hit describes where an override was found.
type Hit struct {
	Value any

	// Class is the ancestor (or the declaring class itself) the override
	// was registered against.
	Class string

	// ByName is true for named overrides, false for typed ones.
	ByName bool
}

// Ancestors returns declaringClass followed by its ancestors, nearest first.
// The walk stops at the hierarchy root or at the first identifier already
// seen, so a malformed hierarchy cannot loop.
func Ancestors(h Hierarchy, declaringClass string) []string {
	if declaringClass == "" {
		return nil
	}

	chain := []string{declaringClass}
	seen := map[string]struct{}{declaringClass: {}}

	current := declaringClass
	for h != nil {
		parent, ok := h.Parent(current)
		if !ok || parent == "" {
			break
		}
		if _, dup := seen[parent]; dup {
			break
		}
		seen[parent] = struct{}{}
		chain = append(chain, parent)
		current = parent
	}

	return chain
}

// Find searches for an override of p, starting at declaringClass.
// At each level a named override is checked before a typed one.
func Find(src Source, h Hierarchy, p Param, declaringClass string) (Hit, bool) {
	for _, class := range Ancestors(h, declaringClass) {
		if v, ok := src.Named(p.Name, class); ok {
			return Hit{Value: v, Class: class, ByName: true}, true
		}

		if p.Type == "" {
			continue
		}

		if v, ok := src.Typed(p.Type, class); ok {
			return Hit{Value: v, Class: class}, true
		}
	}

	return Hit{}, false
}
