// Package graph implements the mutable container of owned nodes and edges
// that the compiler consumes: a dense NodeKey per inserted node, and an edge
// table keyed by consumer endpoint so the compiler can resolve "who produces
// this input?" in O(1).
package graph

import (
	"github.com/sbl8/patchgraph/node"
	"github.com/sbl8/patchgraph/socket"
)

// NodeKey is a dense, opaque identifier assigned by the graph on Insert. It
// is never reused and stays stable for the graph's lifetime. Density lets
// the graph use it directly as an index into its node slice; callers should
// otherwise treat it as opaque.
type NodeKey uint32

// Endpoint names one socket of one node: an output endpoint (producer,
// output index) or an input endpoint (consumer, input index).
type Endpoint struct {
	Node  NodeKey
	Index int
}

// Graph owns a set of node instances and the edge table wiring them
// together. It is not safe for concurrent use; callers must externally
// serialize edits.
type Graph struct {
	nodes []node.Node
	// edges maps a consumer input endpoint to the producer output endpoint
	// feeding it — the pull-model lookup the compiler needs.
	edges map[Endpoint]Endpoint
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{edges: make(map[Endpoint]Endpoint)}
}

// Insert takes ownership of n, assigns it a fresh NodeKey, and returns it.
func (g *Graph) Insert(n node.Node) NodeKey {
	key := NodeKey(len(g.nodes))
	g.nodes = append(g.nodes, n)
	return key
}

// NodeCount returns the number of nodes currently owned by the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// Node returns the node instance for key, or false if key is out of range.
func (g *Graph) Node(key NodeKey) (node.Node, bool) {
	if int(key) < 0 || int(key) >= len(g.nodes) {
		return nil, false
	}
	return g.nodes[key], true
}

// socketDescriptors resolves the declared descriptors for an output and an
// input endpoint, validating both indices are in range.
func (g *Graph) socketDescriptors(producer NodeKey, producerOut int, consumer NodeKey, consumerIn int) (socket.Descriptor, socket.Descriptor, error) {
	pn, ok := g.Node(producer)
	if !ok {
		return socket.Descriptor{}, socket.Descriptor{}, &ErrNoSuchSocket{Node: producer, Index: producerOut, Kind: Output}
	}
	cn, ok := g.Node(consumer)
	if !ok {
		return socket.Descriptor{}, socket.Descriptor{}, &ErrNoSuchSocket{Node: consumer, Index: consumerIn, Kind: Input}
	}
	outDesc, ok := pn.OutputSocket(producerOut)
	if !ok {
		return socket.Descriptor{}, socket.Descriptor{}, &ErrNoSuchSocket{Node: producer, Index: producerOut, Kind: Output}
	}
	inDesc, ok := cn.InputSocket(consumerIn)
	if !ok {
		return socket.Descriptor{}, socket.Descriptor{}, &ErrNoSuchSocket{Node: consumer, Index: consumerIn, Kind: Input}
	}
	return outDesc, inDesc, nil
}

// Connect establishes or replaces the edge feeding (consumer, consumerIn)
// from (producer, producerOut). An existing edge to the same consumer input
// is silently replaced. Fails with ErrNoSuchSocket if either index is out of
// range for its node, or ErrIncompatibleSockets if the descriptors are not
// socket.Compatible.
func (g *Graph) Connect(producer NodeKey, producerOut int, consumer NodeKey, consumerIn int) error {
	outDesc, inDesc, err := g.socketDescriptors(producer, producerOut, consumer, consumerIn)
	if err != nil {
		return err
	}
	if !socket.Compatible(outDesc, inDesc) {
		return &ErrIncompatibleSockets{
			Producer: producer, ProducerOut: producerOut,
			Consumer: consumer, ConsumerIn: consumerIn,
			Detail: socket.Mismatch(outDesc, inDesc),
		}
	}
	g.edges[Endpoint{Node: consumer, Index: consumerIn}] = Endpoint{Node: producer, Index: producerOut}
	return nil
}

// Disconnect removes the edge feeding (consumer, consumerIn), if any. It is
// a no-op if no such edge exists.
func (g *Graph) Disconnect(consumer NodeKey, consumerIn int) {
	delete(g.edges, Endpoint{Node: consumer, Index: consumerIn})
}

// Producer returns the producer endpoint feeding (consumer, consumerIn), if
// an edge exists.
func (g *Graph) Producer(consumer NodeKey, consumerIn int) (Endpoint, bool) {
	ep, ok := g.edges[Endpoint{Node: consumer, Index: consumerIn}]
	return ep, ok
}
