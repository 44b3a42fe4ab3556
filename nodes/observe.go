package nodes

import (
	"github.com/sbl8/patchgraph/node"
	"github.com/sbl8/patchgraph/socket"
)

// passthroughNode is the common shape of Probe and Observe: one input, one
// output equal to the input, so either can serve directly as a pipeline's
// compiled sink while also recording what it saw.
type passthroughNode[T any] struct {
	desc   socket.Descriptor
	onRead func(T)
}

func (n *passthroughNode[T]) InputSocket(i int) (socket.Descriptor, bool) {
	if i == 0 {
		return n.desc, true
	}
	return socket.Descriptor{}, false
}

func (n *passthroughNode[T]) OutputSocket(j int) (socket.Descriptor, bool) {
	if j == 0 {
		return n.desc, true
	}
	return socket.Descriptor{}, false
}

func (n *passthroughNode[T]) Bind(params node.Params) node.WorkUnit {
	in := params.Input(0)
	out := params.Output(1, 0)
	onRead := n.onRead
	return func() {
		v := node.Read[T](in)
		node.Write(out, v)
		if onRead != nil {
			onRead(v)
		}
	}
}

// ProbeNode is a Probe's handle: one input, one output (passthrough), and
// the last value it observed, for tests to assert against after a run.
type ProbeNode[T any] struct {
	passthroughNode[T]
	last T
}

// Probe returns a node recording the last value written to it, for use as
// a pipeline's observation sink.
func Probe[T any]() *ProbeNode[T] {
	p := &ProbeNode[T]{}
	p.desc = socket.Of[T]()
	p.onRead = func(v T) { p.last = v }
	return p
}

// Last returns the most recent value this probe observed.
func (p *ProbeNode[T]) Last() T { return p.last }

// Observe returns a node that, in addition to passing its input through,
// appends every value it sees onto sink — useful when a test wants the
// full run history rather than just the latest value.
func Observe[T any](sink *[]T) node.Node {
	n := &passthroughNode[T]{desc: socket.Of[T]()}
	n.onRead = func(v T) { *sink = append(*sink, v) }
	return n
}
