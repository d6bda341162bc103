package objgraph

import (
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/objgraph/objgraph/internal/graph"
)

// Source tells where a constructor parameter got its value in a Plan.
type Source = graph.Source

const (
	SourceDeclaringClass = graph.SourceDeclaringClass
	SourceOverride       = graph.SourceOverride
	SourceResolved       = graph.SourceResolved
	SourceDefault        = graph.SourceDefault
	SourceZero           = graph.SourceZero
)

// Decision records how one constructor parameter is decided in a Plan.
type Decision = graph.Decision

// Plan is the object graph a resolution would build, computed without
// invoking any constructor. It fails exactly where Resolve would fail before
// construction: unknown identifiers, unresolvable parameters, cycles.
type Plan struct {
	root  Identifier
	graph *graph.DependencyGraph
}

// Plan computes the object graph for id without constructing it.
func (c *Container) Plan(id Identifier) (*Plan, error) {
	return c.PlanFor(id, "")
}

// PlanFor is Plan as if id were requested by a constructor declared by
// declaringClass.
func (c *Container) PlanFor(id, declaringClass Identifier) (*Plan, error) {
	r := &resolution{c: c, plan: graph.New()}

	_, root, err := r.resolve(id, declaringClass)
	if err != nil {
		c.logger.Debug("planning failed",
			zap.Stringer("id", id),
			zap.Stringer("declaring_class", declaringClass),
			zap.Error(err),
		)
		return nil, err
	}

	c.logger.Debug("planned resolution",
		zap.Stringer("id", root),
		zap.Int("nodes", r.plan.Size()),
	)

	return &Plan{root: root, graph: r.plan}, nil
}

// Root returns the identifier the plan resolves, after interface
// redirection.
func (p *Plan) Root() Identifier {
	return p.root
}

// Identifiers returns every identifier in the plan in construction order:
// dependencies before the identifiers built from them.
func (p *Plan) Identifiers() []Identifier {
	nodes, err := p.graph.TopologicalSort()
	if err != nil {
		nodes = p.graph.Nodes()
	}

	ids := make([]Identifier, len(nodes))
	for i, node := range nodes {
		ids[i] = Identifier(node.ID)
	}
	return ids
}

// Bound reports whether id is satisfied by a bound value rather than by
// construction. It is false for identifiers not in the plan.
func (p *Plan) Bound(id Identifier) bool {
	node := p.graph.Node(string(id))
	return node != nil && node.Kind == graph.Bound
}

// Dependencies returns the identifiers id is built from, in parameter order.
func (p *Plan) Dependencies(id Identifier) []Identifier {
	node := p.graph.Node(string(id))
	if node == nil {
		return nil
	}

	deps := make([]Identifier, len(node.Dependencies))
	for i, dep := range node.Dependencies {
		deps[i] = Identifier(dep)
	}
	return deps
}

// Decisions returns how each constructor parameter of id is decided, in
// declaration order. Bound identifiers have none.
func (p *Plan) Decisions(id Identifier) []Decision {
	node := p.graph.Node(string(id))
	if node == nil {
		return nil
	}

	out := make([]Decision, len(node.Decisions))
	copy(out, node.Decisions)
	return out
}

// WriteDOT writes the plan in Graphviz DOT format.
func (p *Plan) WriteDOT(w io.Writer) error {
	return graph.NewVisualizer(p.graph).WriteDOT(w)
}

// WriteText writes a human-readable listing of the plan.
func (p *Plan) WriteText(w io.Writer) error {
	return graph.NewVisualizer(p.graph).WriteText(w)
}

// String returns the text listing of the plan.
func (p *Plan) String() string {
	var b strings.Builder
	_ = p.WriteText(&b)
	return b.String()
}
