package graph

import (
	"fmt"
	"sync"
)

// Source tells where a constructor parameter got its value.
type Source string

const (
	SourceDeclaringClass Source = "declaring-class" // identifier of the requesting class
	SourceOverride       Source = "override"        // parameter override, by name or by type
	SourceResolved       Source = "resolved"        // recursive resolution of the declared type
	SourceDefault        Source = "default"         // the parameter's default value
	SourceZero           Source = "zero"            // nothing applied; zero value
)

// NodeKind tells how an identifier is satisfied.
type NodeKind int

const (
	// Constructed nodes are built by invoking their constructor.
	Constructed NodeKind = iota

	// Bound nodes return a value registered with Bind.
	Bound
)

func (k NodeKind) String() string {
	switch k {
	case Constructed:
		return "constructed"
	case Bound:
		return "bound"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// Decision records how one constructor parameter is decided.
type Decision struct {
	Parameter string
	Source    Source

	// Target is the resolved identifier for SourceResolved, the class the
	// override was registered on for SourceOverride, and the requesting
	// class for SourceDeclaringClass.
	Target string
}

// Node is an identifier in the dependency graph.
type Node struct {
	ID   string
	Kind NodeKind

	// Decisions are in parameter declaration order.
	Decisions []Decision

	Dependencies []string // identifiers this node is built from
	Dependents   []string // identifiers built from this node
	Depth        int      // longest dependency chain below the node
}

// DependencyGraph records the identifiers one resolution visits and the
// edges between them. Nodes keep insertion order so output is stable.
type DependencyGraph struct {
	mu    sync.RWMutex
	nodes map[string]*Node
	order []string
}

// New creates an empty graph.
func New() *DependencyGraph {
	return &DependencyGraph{
		nodes: make(map[string]*Node),
	}
}

// AddNode adds id, reporting false when it was already present. An existing
// node is returned unchanged.
func (g *DependencyGraph) AddNode(id string, kind NodeKind) (*Node, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if node, ok := g.nodes[id]; ok {
		return node, false
	}

	node := &Node{ID: id, Kind: kind}
	g.nodes[id] = node
	g.order = append(g.order, id)
	return node, true
}

// AddDecision appends a parameter decision to the node for id.
func (g *DependencyGraph) AddDecision(id string, d Decision) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if node, ok := g.nodes[id]; ok {
		node.Decisions = append(node.Decisions, d)
	}
}

// AddEdge records that from is built from to. Both nodes must exist;
// duplicate edges are ignored.
func (g *DependencyGraph) AddEdge(from, to string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	src, ok := g.nodes[from]
	if !ok {
		return
	}
	dst, ok := g.nodes[to]
	if !ok {
		return
	}

	for _, existing := range src.Dependencies {
		if existing == to {
			return
		}
	}
	src.Dependencies = append(src.Dependencies, to)
	dst.Dependents = append(dst.Dependents, from)
}

// Node returns the node for id, or nil.
func (g *DependencyGraph) Node(id string) *Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.nodes[id]
}

// Nodes returns every node in insertion order.
func (g *DependencyGraph) Nodes() []*Node {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]*Node, len(g.order))
	for i, id := range g.order {
		out[i] = g.nodes[id]
	}
	return out
}

// Size returns the number of nodes.
func (g *DependencyGraph) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *DependencyGraph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	count := 0
	for _, node := range g.nodes {
		count += len(node.Dependencies)
	}
	return count
}

// Roots returns the nodes nothing depends on, in insertion order.
func (g *DependencyGraph) Roots() []*Node {
	g.mu.RLock()
	defer g.mu.RUnlock()

	roots := make([]*Node, 0)
	for _, id := range g.order {
		if node := g.nodes[id]; len(node.Dependents) == 0 {
			roots = append(roots, node)
		}
	}
	return roots
}

// Leaves returns the nodes without dependencies, in insertion order.
func (g *DependencyGraph) Leaves() []*Node {
	g.mu.RLock()
	defer g.mu.RUnlock()

	leaves := make([]*Node, 0)
	for _, id := range g.order {
		if node := g.nodes[id]; len(node.Dependencies) == 0 {
			leaves = append(leaves, node)
		}
	}
	return leaves
}

// TopologicalSort returns nodes in construction order (dependencies first).
// Ties keep insertion order.
func (g *DependencyGraph) TopologicalSort() ([]*Node, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	// Kahn's algorithm over the number of unsorted dependencies
	pending := make(map[string]int, len(g.nodes))
	queue := make([]string, 0)
	for _, id := range g.order {
		pending[id] = len(g.nodes[id].Dependencies)
		if pending[id] == 0 {
			queue = append(queue, id)
		}
	}

	result := make([]*Node, 0, len(g.nodes))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		node := g.nodes[current]
		result = append(result, node)

		for _, dependent := range node.Dependents {
			pending[dependent]--
			if pending[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(result) != len(g.nodes) {
		return nil, fmt.Errorf("%w: graph contains %d nodes but only %d could be sorted",
			ErrCircularDependency, len(g.nodes), len(result))
	}

	return result, nil
}

// CalculateDepths assigns each node the length of its longest dependency
// chain. Leaves have depth 0.
func (g *DependencyGraph) CalculateDepths() {
	sorted, err := g.TopologicalSort()
	if err != nil {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for _, node := range sorted {
		node.Depth = 0
		for _, dep := range node.Dependencies {
			if d := g.nodes[dep].Depth + 1; d > node.Depth {
				node.Depth = d
			}
		}
	}
}

// String returns a string representation of the node
func (n *Node) String() string {
	return fmt.Sprintf("Node{%s, %s, deps:%d, dependents:%d, depth:%d}",
		n.ID, n.Kind, len(n.Dependencies), len(n.Dependents), n.Depth)
}
