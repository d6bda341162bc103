package graph

import (
	"fmt"
	"io"
	"strings"
)

// Visualizer renders a dependency graph.
type Visualizer struct {
	graph *DependencyGraph
}

// NewVisualizer creates a new graph visualizer
func NewVisualizer(graph *DependencyGraph) *Visualizer {
	return &Visualizer{graph: graph}
}

// WriteDOT writes the graph in Graphviz DOT format. Edges point from a node
// to the dependencies it is built from and are labelled with the parameter.
func (v *Visualizer) WriteDOT(w io.Writer) error {
	nodes := v.graph.Nodes()

	var b strings.Builder
	b.WriteString("digraph dependencies {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box];\n")

	nodeIDs := make(map[string]string, len(nodes))
	for i, node := range nodes {
		nodeIDs[node.ID] = fmt.Sprintf("n%d", i)
	}

	for _, node := range nodes {
		fmt.Fprintf(&b, "  %s [label=%q, fillcolor=%q, style=filled];\n",
			nodeIDs[node.ID], shortName(node.ID), nodeColor(node))
	}

	for _, node := range nodes {
		for _, dep := range node.Dependencies {
			labels := make([]string, 0, 1)
			for _, d := range node.Decisions {
				if d.Source == SourceResolved && d.Target == dep {
					labels = append(labels, d.Parameter)
				}
			}
			fmt.Fprintf(&b, "  %s -> %s [label=%q];\n",
				nodeIDs[node.ID], nodeIDs[dep], strings.Join(labels, ", "))
		}
	}

	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteText writes the nodes grouped by depth, leaves first, with the
// decision taken for every parameter.
func (v *Visualizer) WriteText(w io.Writer) error {
	var b strings.Builder
	b.WriteString("Dependency Graph:\n")
	b.WriteString("=================\n\n")

	v.graph.CalculateDepths()

	sorted, err := v.graph.TopologicalSort()
	if err != nil {
		fmt.Fprintf(&b, "Warning: %v\n\n", err)
		sorted = v.graph.Nodes()
	}

	depthGroups := make(map[int][]*Node)
	maxDepth := 0
	for _, node := range sorted {
		depthGroups[node.Depth] = append(depthGroups[node.Depth], node)
		if node.Depth > maxDepth {
			maxDepth = node.Depth
		}
	}

	for depth := 0; depth <= maxDepth; depth++ {
		nodes, ok := depthGroups[depth]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "Level %d:\n", depth)
		b.WriteString("--------\n")
		for _, node := range nodes {
			writeNodeDetails(&b, node, "  ")
		}
		b.WriteString("\n")
	}

	v.writeStatistics(&b)

	_, err = io.WriteString(w, b.String())
	return err
}

func writeNodeDetails(b *strings.Builder, node *Node, indent string) {
	fmt.Fprintf(b, "%s%s (%s)\n", indent, node.ID, node.Kind)

	for _, d := range node.Decisions {
		switch {
		case d.Target != "":
			fmt.Fprintf(b, "%s  %s: %s %s\n", indent, d.Parameter, d.Source, d.Target)
		default:
			fmt.Fprintf(b, "%s  %s: %s\n", indent, d.Parameter, d.Source)
		}
	}
}

func (v *Visualizer) writeStatistics(b *strings.Builder) {
	b.WriteString("Statistics:\n")
	b.WriteString("-----------\n")
	fmt.Fprintf(b, "  Total nodes: %d\n", v.graph.Size())
	fmt.Fprintf(b, "  Total edges: %d\n", v.graph.EdgeCount())
	fmt.Fprintf(b, "  Leaf nodes (no dependencies): %d\n", len(v.graph.Leaves()))

	// Find node with most dependents
	var shared *Node
	for _, node := range v.graph.Nodes() {
		if len(node.Dependents) > 1 && (shared == nil || len(node.Dependents) > len(shared.Dependents)) {
			shared = node
		}
	}
	if shared != nil {
		fmt.Fprintf(b, "  Most dependents: %s (%d)\n", shared.ID, len(shared.Dependents))
	}
}

// shortName drops the import path for readability.
func shortName(id string) string {
	prefix := ""
	for strings.HasPrefix(id, "*") {
		prefix += "*"
		id = id[1:]
	}
	if i := strings.LastIndex(id, "/"); i >= 0 {
		id = id[i+1:]
	}
	return prefix + id
}

func nodeColor(node *Node) string {
	switch {
	case node.Kind == Bound:
		return "lightblue"
	case len(node.Dependencies) == 0:
		return "lightyellow"
	default:
		return "lightgreen"
	}
}
