package nodes

import (
	"github.com/sbl8/patchgraph/node"
	"github.com/sbl8/patchgraph/socket"
)

// constNode has no inputs and one output, written to v on every run.
type constNode[T any] struct {
	v    T
	desc socket.Descriptor
}

// Const returns a node with zero inputs and one output, writing v each run.
func Const[T any](v T) node.Node {
	return &constNode[T]{v: v, desc: socket.Of[T]()}
}

func (n *constNode[T]) InputSocket(i int) (socket.Descriptor, bool) {
	return socket.Descriptor{}, false
}

func (n *constNode[T]) OutputSocket(j int) (socket.Descriptor, bool) {
	if j == 0 {
		return n.desc, true
	}
	return socket.Descriptor{}, false
}

func (n *constNode[T]) Bind(params node.Params) node.WorkUnit {
	out := params.Output(0, 0)
	v := n.v
	return func() {
		node.Write(out, v)
	}
}
