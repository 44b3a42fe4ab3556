package graph

import "fmt"

// SocketKind distinguishes an input socket from an output socket in error
// messages.
type SocketKind int

const (
	Input SocketKind = iota
	Output
)

func (k SocketKind) String() string {
	if k == Input {
		return "input"
	}
	return "output"
}

// ErrNoSuchSocket is returned by Connect and Compile when an endpoint names
// a socket index beyond the node's declared count.
type ErrNoSuchSocket struct {
	Node  NodeKey
	Index int
	Kind  SocketKind
}

func (e *ErrNoSuchSocket) Error() string {
	return fmt.Sprintf("node %d has no %s socket at index %d", e.Node, e.Kind, e.Index)
}

// ErrIncompatibleSockets is returned by Connect and Compile when a
// producer's output descriptor is not compatible with a consumer's input
// descriptor.
type ErrIncompatibleSockets struct {
	Producer    NodeKey
	ProducerOut int
	Consumer    NodeKey
	ConsumerIn  int
	Detail      string
}

func (e *ErrIncompatibleSockets) Error() string {
	return fmt.Sprintf("cannot connect node %d output %d to node %d input %d: %s",
		e.Producer, e.ProducerOut, e.Consumer, e.ConsumerIn, e.Detail)
}
