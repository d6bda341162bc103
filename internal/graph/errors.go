package graph

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCircularDependency is matched by every CircularDependencyError.
var ErrCircularDependency = errors.New("circular dependency detected")

// CircularDependencyError reports an identifier that re-entered the
// resolution path while it was still being constructed.
type CircularDependencyError struct {
	// Node is the identifier that closed the cycle.
	Node string

	// Path lists the identifiers under construction, outermost first,
	// starting at the first occurrence of Node.
	Path []string
}

func (e CircularDependencyError) Error() string {
	var b strings.Builder
	b.WriteString("circular dependency detected:\n\n")

	if len(e.Path) == 0 {
		b.WriteString(fmt.Sprintf("    %s\n", e.Node))
		b.WriteString("      ↓\n")
		b.WriteString(fmt.Sprintf("    %s (cycle)\n", e.Node))
	} else {
		for _, node := range e.Path {
			b.WriteString(fmt.Sprintf("    %s\n", node))
			b.WriteString("      ↓\n")
		}
		b.WriteString(fmt.Sprintf("    %s (cycle)\n", e.Node))
	}

	b.WriteString("\nTo resolve this:\n")
	b.WriteString("  • Bind one of the identifiers to a prebuilt value\n")
	b.WriteString("  • Override the offending parameter for its declaring class\n")
	b.WriteString("  • Restructure to remove the circular relationship\n")

	return b.String()
}

// Is makes errors.Is(err, ErrCircularDependency) hold.
func (e CircularDependencyError) Is(target error) bool {
	return target == ErrCircularDependency
}

// Cycle returns the identifiers forming the cycle, closing node included.
func (e CircularDependencyError) Cycle() []string {
	out := make([]string, 0, len(e.Path)+1)
	out = append(out, e.Path...)
	return append(out, e.Node)
}
