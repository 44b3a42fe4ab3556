// Package compile turns a graph rooted at a chosen sink into a runnable
// pipeline: a dependency-first, depth-first traversal that visits each
// reachable node exactly once, binds it to freshly allocated arena cells,
// and records the bound work units in dependency order.
//
// This replaces the teacher's DSL-driven compiler.Compile (sbl8-sublation's
// compiler/compiler.go parsed a textual node/payload/iterate format that
// has no place once nodes are typed Go values wired through graph.Graph),
// but keeps its shape: validate, detect cycles, topologically order, emit.
// Cycle detection in particular is reimplemented rather than reused — the
// teacher's detectCycles only ever returns a bare "cycle detected in graph"
// error with no path, whereas callers here get the full cycle back via
// ErrCycleDetected.Path.
package compile

import (
	"github.com/sbl8/patchgraph/arena"
	"github.com/sbl8/patchgraph/graph"
	"github.com/sbl8/patchgraph/node"
	"github.com/sbl8/patchgraph/pipeline"
	"github.com/sbl8/patchgraph/socket"
)

// Compile performs a dependency-first DFS from (sink, sinkOut), allocating
// one arena cell per reachable output socket, binding each reachable node
// to its cells exactly once, and returning the resulting Pipeline.
//
// Traversal order: for each node, inputs are resolved in ascending index
// order before that node's own outputs are allocated and it is bound,
// giving a post-order (dependency-first) work unit list. A node already
// fully bound when reached again simply contributes its previously
// allocated cell; a node still on the current DFS stack when reached again
// means the graph has a cycle, reported as ErrCycleDetected with the full
// path from sink to the repeated node.
func Compile(g *graph.Graph, sink graph.NodeKey, sinkOut int, opts ...Option) (*pipeline.Pipeline, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &compiler{
		g:         g,
		a:         arena.New(0),
		opts:      o,
		visited:   make(map[graph.NodeKey]bool),
		onStack:   make(map[graph.NodeKey]bool),
		cells:     make(map[pipeline.CellKey]node.Cell),
		binds:     make(map[graph.NodeKey]node.WorkUnit),
		outputsOf: make(map[graph.NodeKey][]int),
	}
	if o.elideUnusedOutputs {
		c.required = collectRequired(g, sink, sinkOut)
	}

	sinkCell, err := c.visit(sink, sinkOut)
	if err != nil {
		return nil, err
	}
	return pipeline.New(c.a, c.order, c.binds, c.outputsOf, sink, sinkCell), nil
}

type compiler struct {
	g    *graph.Graph
	a    *arena.Arena
	opts options

	visited   map[graph.NodeKey]bool
	onStack   map[graph.NodeKey]bool
	stackPath []graph.NodeKey
	required  map[pipeline.CellKey]bool // nil unless WithElideUnusedOutputs

	cells     map[pipeline.CellKey]node.Cell
	binds     map[graph.NodeKey]node.WorkUnit
	order     []graph.NodeKey
	outputsOf map[graph.NodeKey][]int
}

func (c *compiler) visit(n graph.NodeKey, requestedOut int) (node.Cell, error) {
	if c.onStack[n] {
		path := append(append([]graph.NodeKey{}, c.stackPath...), n)
		return node.Cell{}, &ErrCycleDetected{Path: path}
	}
	if c.visited[n] {
		return c.cells[pipeline.CellKey{Node: n, Output: requestedOut}], nil
	}

	nd, ok := c.g.Node(n)
	if !ok {
		return node.Cell{}, &graph.ErrNoSuchSocket{Node: n, Index: requestedOut, Kind: graph.Output}
	}

	c.onStack[n] = true
	c.stackPath = append(c.stackPath, n)

	inCount := node.InputCount(nd)
	inputs := make(node.Params, 0, inCount)
	for i := 0; i < inCount; i++ {
		producer, ok := c.g.Producer(n, i)
		if !ok {
			return node.Cell{}, &ErrUnconnectedInput{Node: n, Input: i}
		}
		producerNode, ok := c.g.Node(producer.Node)
		if !ok {
			return node.Cell{}, &graph.ErrNoSuchSocket{Node: producer.Node, Index: producer.Index, Kind: graph.Output}
		}
		outDesc, ok := producerNode.OutputSocket(producer.Index)
		if !ok {
			return node.Cell{}, &graph.ErrNoSuchSocket{Node: producer.Node, Index: producer.Index, Kind: graph.Output}
		}
		inDesc, ok := nd.InputSocket(i)
		if !ok {
			return node.Cell{}, &graph.ErrNoSuchSocket{Node: n, Index: i, Kind: graph.Input}
		}
		if !socket.Compatible(outDesc, inDesc) {
			return node.Cell{}, &graph.ErrIncompatibleSockets{
				Producer: producer.Node, ProducerOut: producer.Index,
				Consumer: n, ConsumerIn: i,
				Detail: socket.Mismatch(outDesc, inDesc),
			}
		}
		cell, err := c.visit(producer.Node, producer.Index)
		if err != nil {
			return node.Cell{}, err
		}
		inputs = append(inputs, cell)
	}

	outCount := node.OutputCount(nd)
	outputs := make(node.Params, 0, outCount)
	indices := make([]int, outCount)
	for j := 0; j < outCount; j++ {
		desc, ok := nd.OutputSocket(j)
		if !ok {
			return node.Cell{}, &graph.ErrNoSuchSocket{Node: n, Index: j, Kind: graph.Output}
		}
		if c.opts.elideUnusedOutputs && !c.required[pipeline.CellKey{Node: n, Output: j}] {
			c.opts.logger.Debug().Uint32("node", uint32(n)).Int("output", j).Msg("output unused by any reachable consumer")
		}
		// Always allocate the output's full declared size: a node's Bind
		// closure has no way to learn that an output went unrequested, so it
		// writes through the cell at full width regardless. Shrinking the
		// cell here would turn that ordinary write into an out-of-bounds one.
		ptr := c.a.Allocate(desc.Size, desc.Align)
		cell := node.CellFor(ptr)
		outputs = append(outputs, cell)
		c.cells[pipeline.CellKey{Node: n, Output: j}] = cell
		indices[j] = j
	}

	params := make(node.Params, 0, inCount+outCount)
	params = append(params, inputs...)
	params = append(params, outputs...)
	c.binds[n] = nd.Bind(params)
	c.outputsOf[n] = indices
	c.order = append(c.order, n)

	c.stackPath = c.stackPath[:len(c.stackPath)-1]
	c.onStack[n] = false
	c.visited[n] = true

	if requestedOut < 0 || requestedOut >= len(outputs) {
		return node.Cell{}, &graph.ErrNoSuchSocket{Node: n, Index: requestedOut, Kind: graph.Output}
	}
	return outputs[requestedOut], nil
}

// collectRequired runs a lightweight DFS from (sink, sinkOut) that records
// every (node, output) pair actually demanded by the traversal, without
// allocating or binding anything. Unlike visit, it marks an output as
// required on every call that reaches it, even for a node it has already
// fully explored, so a node with two distinct requested outputs records
// both.
func collectRequired(g *graph.Graph, sink graph.NodeKey, sinkOut int) map[pipeline.CellKey]bool {
	required := make(map[pipeline.CellKey]bool)
	visited := make(map[graph.NodeKey]bool)
	onStack := make(map[graph.NodeKey]bool)

	var visit func(n graph.NodeKey, out int)
	visit = func(n graph.NodeKey, out int) {
		required[pipeline.CellKey{Node: n, Output: out}] = true
		if onStack[n] || visited[n] {
			return
		}
		onStack[n] = true
		nd, ok := g.Node(n)
		if ok {
			inCount := node.InputCount(nd)
			for i := 0; i < inCount; i++ {
				if producer, ok := g.Producer(n, i); ok {
					visit(producer.Node, producer.Index)
				}
			}
		}
		onStack[n] = false
		visited[n] = true
	}
	visit(sink, sinkOut)
	return required
}
