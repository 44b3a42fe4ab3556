// Package node defines the contract a dataflow node implements: a fixed
// input/output socket schema plus a Bind operation that produces a work
// unit closed over a set of arena cells.
package node

import "github.com/sbl8/patchgraph/socket"

// WorkUnit is a callable bound to a fixed set of cell addresses. It reads
// from its captured input cells and writes to its captured output cells,
// runs to completion without suspension, and may carry node-local state
// captured at bind time (closure variables).
type WorkUnit func()

// Params is the canonical, single-pass sequence of erased cells a Bind call
// receives: all input cells in ascending input-index order, followed by all
// output cells in ascending output-index order.
type Params []Cell

// Input returns the i'th input cell (0-based, within the input run).
func (p Params) Input(i int) Cell { return p[i] }

// Output returns the j'th output cell, given the node's declared input
// count, so callers don't need to do the index arithmetic by hand.
func (p Params) Output(inputCount, j int) Cell { return p[inputCount+j] }

// Node is a polymorphic dataflow unit. Declared socket counts are fixed for
// an instance's lifetime; InputSocket/OutputSocket return false once the
// ascending index run past the declared count, and callers must treat
// sockets as dense [0, count).
type Node interface {
	// InputSocket returns the descriptor for input i, or false if i is out
	// of range (i.e. i >= the node's declared input count).
	InputSocket(i int) (socket.Descriptor, bool)

	// OutputSocket returns the descriptor for output j, or false if j is
	// out of range.
	OutputSocket(j int) (socket.Descriptor, bool)

	// Bind consumes params in canonical order and returns the work unit
	// that performs this node's computation on every pipeline run. Bind
	// must not retain any reference to params or its cells beyond what it
	// captures into the returned closure; it must not retain the closure's
	// captured cells beyond the owning pipeline's lifetime.
	Bind(params Params) WorkUnit
}

// InputCount and OutputCount are convenience helpers a compiler (or test)
// can use to learn a node's declared arity by probing InputSocket/
// OutputSocket until they report false.
func InputCount(n Node) int {
	i := 0
	for {
		if _, ok := n.InputSocket(i); !ok {
			return i
		}
		i++
	}
}

func OutputCount(n Node) int {
	j := 0
	for {
		if _, ok := n.OutputSocket(j); !ok {
			return j
		}
		j++
	}
}
