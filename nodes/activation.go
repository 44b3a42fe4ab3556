package nodes

import (
	"github.com/sbl8/patchgraph/node"
	"github.com/sbl8/patchgraph/socket"
)

// reluNode is one input, one output, zeroing negative values — a pure
// dataflow re-expression of the teacher's in-place relu kernel.
type reluNode[T Numeric] struct {
	desc socket.Descriptor
}

// ReLU returns a node computing max(0, x).
func ReLU[T Numeric]() node.Node {
	return &reluNode[T]{desc: socket.Of[T]()}
}

func (n *reluNode[T]) InputSocket(i int) (socket.Descriptor, bool) {
	if i == 0 {
		return n.desc, true
	}
	return socket.Descriptor{}, false
}

func (n *reluNode[T]) OutputSocket(j int) (socket.Descriptor, bool) {
	if j == 0 {
		return n.desc, true
	}
	return socket.Descriptor{}, false
}

func (n *reluNode[T]) Bind(params node.Params) node.WorkUnit {
	in := params.Input(0)
	out := params.Output(1, 0)
	return func() {
		x := node.Read[T](in)
		var zero T
		if x < zero {
			x = zero
		}
		node.Write(out, x)
	}
}

// clampNode is one input, one output, bounded to [lo, hi].
type clampNode[T Numeric] struct {
	lo, hi T
	desc   socket.Descriptor
}

// Clamp returns a node bounding its input to [lo, hi].
func Clamp[T Numeric](lo, hi T) node.Node {
	return &clampNode[T]{lo: lo, hi: hi, desc: socket.Of[T]()}
}

func (n *clampNode[T]) InputSocket(i int) (socket.Descriptor, bool) {
	if i == 0 {
		return n.desc, true
	}
	return socket.Descriptor{}, false
}

func (n *clampNode[T]) OutputSocket(j int) (socket.Descriptor, bool) {
	if j == 0 {
		return n.desc, true
	}
	return socket.Descriptor{}, false
}

func (n *clampNode[T]) Bind(params node.Params) node.WorkUnit {
	in := params.Input(0)
	out := params.Output(1, 0)
	lo, hi := n.lo, n.hi
	return func() {
		x := node.Read[T](in)
		if x < lo {
			x = lo
		} else if x > hi {
			x = hi
		}
		node.Write(out, x)
	}
}

// mixNode is an n-ary weighted sum: output = sum(input[i] * weights[i]).
// Grounded on the Mix/audiomixer concept in the DSP-graph reference
// (buildMixNode), re-expressed here as a pure numeric node with no
// GStreamer or audio-buffer dependency.
type mixNode[T Numeric] struct {
	weights []T
	desc    socket.Descriptor
}

// Mix returns a node with len(weights) inputs and one output, the weighted
// sum of its inputs.
func Mix[T Numeric](weights []T) node.Node {
	w := make([]T, len(weights))
	copy(w, weights)
	return &mixNode[T]{weights: w, desc: socket.Of[T]()}
}

func (n *mixNode[T]) InputSocket(i int) (socket.Descriptor, bool) {
	if i >= 0 && i < len(n.weights) {
		return n.desc, true
	}
	return socket.Descriptor{}, false
}

func (n *mixNode[T]) OutputSocket(j int) (socket.Descriptor, bool) {
	if j == 0 {
		return n.desc, true
	}
	return socket.Descriptor{}, false
}

func (n *mixNode[T]) Bind(params node.Params) node.WorkUnit {
	inputs := make([]node.Cell, len(n.weights))
	for i := range n.weights {
		inputs[i] = params.Input(i)
	}
	out := params.Output(len(n.weights), 0)
	weights := n.weights
	return func() {
		var total T
		for i, c := range inputs {
			total += node.Read[T](c) * weights[i]
		}
		node.Write(out, total)
	}
}
