package compile

import (
	"fmt"
	"strings"

	"github.com/sbl8/patchgraph/graph"
)

// ErrUnconnectedInput is returned when a reachable node has a mandatory
// input with no producing edge.
type ErrUnconnectedInput struct {
	Node  graph.NodeKey
	Input int
}

func (e *ErrUnconnectedInput) Error() string {
	return fmt.Sprintf("node %d input %d has no producer", e.Node, e.Input)
}

// ErrCycleDetected is returned when the dependency-first traversal
// re-enters a node that is still on its own DFS stack.
type ErrCycleDetected struct {
	Path []graph.NodeKey
}

func (e *ErrCycleDetected) Error() string {
	parts := make([]string, len(e.Path))
	for i, n := range e.Path {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("cycle detected: %s", strings.Join(parts, " -> "))
}
