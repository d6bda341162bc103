// Package graph tracks the chain of identifiers under construction during a
// single resolution and reports cycles in it.
package graph

// Path is the stack of identifiers currently being constructed.
// The zero value is ready to use. It is not safe for concurrent use; each
// resolution owns its own Path.
type Path struct {
	stack []string
	index map[string]int
}

// Push enters id. It fails with CircularDependencyError when id is already on
// the path.
func (p *Path) Push(id string) error {
	if p.index == nil {
		p.index = make(map[string]int)
	}

	if at, ok := p.index[id]; ok {
		cycle := make([]string, len(p.stack)-at)
		copy(cycle, p.stack[at:])
		return CircularDependencyError{Node: id, Path: cycle}
	}

	p.index[id] = len(p.stack)
	p.stack = append(p.stack, id)
	return nil
}

// Pop leaves the innermost identifier.
func (p *Path) Pop() {
	if len(p.stack) == 0 {
		return
	}
	last := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	delete(p.index, last)
}

// Depth returns the number of identifiers on the path.
func (p *Path) Depth() int {
	return len(p.stack)
}

// Contains reports whether id is currently under construction.
func (p *Path) Contains(id string) bool {
	_, ok := p.index[id]
	return ok
}

// Current returns the innermost identifier, or "" when the path is empty.
func (p *Path) Current() string {
	if len(p.stack) == 0 {
		return ""
	}
	return p.stack[len(p.stack)-1]
}

// Snapshot returns a copy of the path, outermost first.
func (p *Path) Snapshot() []string {
	out := make([]string, len(p.stack))
	copy(out, p.stack)
	return out
}
