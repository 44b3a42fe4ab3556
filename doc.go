// Package patchgraph compiles a typed dataflow graph into a flat, runnable
// pipeline of closures over stably-addressed memory cells.
//
// A graph is a set of nodes, each with a fixed number of typed input and
// output sockets, wired together by directed edges. Compiling a graph picks
// one node's output as the sink, walks the graph dependency-first from
// there, allocates one arena cell per output socket of each reachable node, and binds each node
// to the cells its edges connect it to. The result is a pipeline: a plain
// ordered list of work units with no further graph structure to walk at run
// time.
//
// # Architecture
//
//   - socket: type identity and memory layout for one input or output
//   - node: the Node contract (declared sockets, Bind to a work unit) and
//     the erased Cell handle a bound node reads and writes through
//   - arena: the chunked bump allocator backing every cell
//   - graph: the mutable node/edge container compiled graphs are built from
//   - compile: the dependency-first DFS that turns a graph into a pipeline
//   - pipeline: the compiled, runnable form and its single-threaded executor
//   - nodes: a small builtin library (constants, arithmetic, activations,
//     observation sinks)
//   - declare: a reflection-based helper for wrapping an ordinary function
//     as a node.Node without hand-writing the socket/Bind boilerplate
//
// # Basic usage
//
//	g := graph.New()
//	a := g.Insert(nodes.Const[float64](1.5))
//	b := g.Insert(nodes.Const[float64](2.25))
//	add := g.Insert(nodes.Add[float64]())
//	probe := nodes.Probe[float64]()
//	sink := g.Insert(probe)
//
//	g.Connect(a, 0, add, 0)
//	g.Connect(b, 0, add, 1)
//	g.Connect(add, 0, sink, 0)
//
//	pl, err := compile.Compile(g, sink, 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := pl.Run(); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(probe.Last()) // 3.75
package patchgraph
