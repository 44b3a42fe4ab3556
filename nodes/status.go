package nodes

import (
	"github.com/sbl8/patchgraph/node"
	"github.com/sbl8/patchgraph/socket"
)

// statusDesc is the descriptor for the extra boolean output WithStatus
// appends: true if the wrapped node's work unit returned normally, false if
// it panicked.
var statusDesc = socket.Of[bool]()

// statusNode wraps a node.Node, appending one extra output that reports
// whether the wrapped work unit completed without panicking. This is the
// recoverable-failure pattern the core's failure semantics endorse in place
// of a built-in retry or error channel: a node that can fail reports it
// through an ordinary output instead.
type statusNode struct {
	base node.Node
}

// WithStatus wraps base, appending a boolean status output after base's own
// declared outputs. The base node's work unit is run under a recover; a
// panic is converted to a false status instead of propagating, and base's
// own outputs are left however the panicking call last wrote them.
func WithStatus(base node.Node) node.Node {
	return &statusNode{base: base}
}

func (n *statusNode) InputSocket(i int) (socket.Descriptor, bool) {
	return n.base.InputSocket(i)
}

func (n *statusNode) OutputSocket(j int) (socket.Descriptor, bool) {
	baseOut := node.OutputCount(n.base)
	if j < baseOut {
		return n.base.OutputSocket(j)
	}
	if j == baseOut {
		return statusDesc, true
	}
	return socket.Descriptor{}, false
}

func (n *statusNode) Bind(params node.Params) node.WorkUnit {
	inCount := node.InputCount(n.base)
	baseOut := node.OutputCount(n.base)
	baseParams := params[:inCount+baseOut]
	statusCell := params[inCount+baseOut]

	baseFn := n.base.Bind(baseParams)
	return func() {
		ok := true
		func() {
			defer func() {
				if recover() != nil {
					ok = false
				}
			}()
			baseFn()
		}()
		node.Write(statusCell, ok)
	}
}
