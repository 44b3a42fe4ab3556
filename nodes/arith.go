package nodes

import (
	"github.com/sbl8/patchgraph/node"
	"github.com/sbl8/patchgraph/socket"
)

// binaryNode is the shared shape for Add and Mul: two inputs, one output,
// all of the same type T.
type binaryNode[T Numeric] struct {
	desc socket.Descriptor
	op   func(a, b T) T
}

// Add returns a node with two inputs and one output computing their sum,
// generalized from the teacher's vectorAdd kernel.
func Add[T Numeric]() node.Node {
	return &binaryNode[T]{desc: socket.Of[T](), op: func(a, b T) T { return a + b }}
}

// Mul returns a node with two inputs and one output computing their
// product, generalized from the teacher's vectorMul kernel.
func Mul[T Numeric]() node.Node {
	return &binaryNode[T]{desc: socket.Of[T](), op: func(a, b T) T { return a * b }}
}

func (n *binaryNode[T]) InputSocket(i int) (socket.Descriptor, bool) {
	if i == 0 || i == 1 {
		return n.desc, true
	}
	return socket.Descriptor{}, false
}

func (n *binaryNode[T]) OutputSocket(j int) (socket.Descriptor, bool) {
	if j == 0 {
		return n.desc, true
	}
	return socket.Descriptor{}, false
}

func (n *binaryNode[T]) Bind(params node.Params) node.WorkUnit {
	a, b := params.Input(0), params.Input(1)
	out := params.Output(2, 0)
	op := n.op
	return func() {
		node.Write(out, op(node.Read[T](a), node.Read[T](b)))
	}
}

// sumNode is an n-ary generalization of binaryNode: n inputs, one output,
// the running sum of all of them — grounded on the teacher's vectorSum
// kernel, which folded a whole payload down to its first element.
type sumNode[T Numeric] struct {
	n    int
	desc socket.Descriptor
}

// Sum returns a node with n inputs and one output holding their sum.
func Sum[T Numeric](n int) node.Node {
	return &sumNode[T]{n: n, desc: socket.Of[T]()}
}

func (n *sumNode[T]) InputSocket(i int) (socket.Descriptor, bool) {
	if i >= 0 && i < n.n {
		return n.desc, true
	}
	return socket.Descriptor{}, false
}

func (n *sumNode[T]) OutputSocket(j int) (socket.Descriptor, bool) {
	if j == 0 {
		return n.desc, true
	}
	return socket.Descriptor{}, false
}

func (n *sumNode[T]) Bind(params node.Params) node.WorkUnit {
	inputs := make([]node.Cell, n.n)
	for i := 0; i < n.n; i++ {
		inputs[i] = params.Input(i)
	}
	out := params.Output(n.n, 0)
	return func() {
		var total T
		for _, c := range inputs {
			total += node.Read[T](c)
		}
		node.Write(out, total)
	}
}

// scaleNode is one input, one output, multiplied by a constant factor
// captured at construction time — grounded on the teacher's sqrPlusX-style
// in-place single-operand kernels.
type scaleNode[T Numeric] struct {
	factor T
	desc   socket.Descriptor
}

// Scale returns a node with one input and one output equal to the input
// times factor.
func Scale[T Numeric](factor T) node.Node {
	return &scaleNode[T]{factor: factor, desc: socket.Of[T]()}
}

func (n *scaleNode[T]) InputSocket(i int) (socket.Descriptor, bool) {
	if i == 0 {
		return n.desc, true
	}
	return socket.Descriptor{}, false
}

func (n *scaleNode[T]) OutputSocket(j int) (socket.Descriptor, bool) {
	if j == 0 {
		return n.desc, true
	}
	return socket.Descriptor{}, false
}

func (n *scaleNode[T]) Bind(params node.Params) node.WorkUnit {
	in := params.Input(0)
	out := params.Output(1, 0)
	factor := n.factor
	return func() {
		node.Write(out, node.Read[T](in)*factor)
	}
}
