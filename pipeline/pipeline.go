// Package pipeline is the compiled, runnable form of a graph: a flat,
// dependency-ordered list of work units closed over arena cells, plus the
// arena that owns their storage.
//
// This is the direct descendant of the teacher's runtime.Engine
// (sbl8-sublation's runtime/runtime.go), but deliberately stripped of its
// StreamScheduler/worker-goroutine machinery: Run executes the work unit
// list straight-line, single-threaded, start to finish, with no suspension
// point and no locking on the hot path. The only thing kept from the
// teacher's concurrency era is the ExecutionStats/RWMutex pattern, narrowed
// to its one legitimate remaining purpose — letting a monitoring goroutine
// call Stats() safely while a run is in flight, never guarding the run
// itself.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sbl8/patchgraph/arena"
	"github.com/sbl8/patchgraph/graph"
	"github.com/sbl8/patchgraph/node"
	"github.com/xlab/treeprint"
)

// CellKey names one output cell by the node and output index that produced
// it — the key the compiler uses to remember where each producer wrote so
// later consumers can be bound to the same address.
type CellKey struct {
	Node   graph.NodeKey
	Output int
}

// unit pairs a bound work unit with the node it was produced from, purely
// for Explain's debug rendering; the runtime loop never consults anything
// but Fn.
type unit struct {
	Node graph.NodeKey
	Fn   node.WorkUnit
}

// ExecutionStats tallies cheap counters across Run calls. Never consulted
// by Run itself; Stats() copies it out under a read lock for an observer
// goroutine.
type ExecutionStats struct {
	TotalRuns     uint64
	LastRunError  error
	TotalDuration time.Duration
}

// Pipeline is the compiled, executable form of a graph rooted at one sink.
// Not safe for concurrent Run calls; Stats may be read concurrently with a
// Run in flight.
type Pipeline struct {
	arena     *arena.Arena
	units     []unit
	sinkCell  node.Cell
	sinkNode  graph.NodeKey
	outputsOf map[graph.NodeKey][]int // declared output indices per node, for Explain

	mu    sync.RWMutex
	stats ExecutionStats
}

// New assembles a Pipeline from a compiler's output. It is exported for the
// compile package; callers outside a compiler have no way to produce a
// correctly-ordered unit list and should use compile.Compile instead.
func New(a *arena.Arena, order []graph.NodeKey, binds map[graph.NodeKey]node.WorkUnit, outputsOf map[graph.NodeKey][]int, sinkNode graph.NodeKey, sinkCell node.Cell) *Pipeline {
	units := make([]unit, 0, len(order))
	for _, key := range order {
		units = append(units, unit{Node: key, Fn: binds[key]})
	}
	return &Pipeline{
		arena:     a,
		units:     units,
		sinkCell:  sinkCell,
		sinkNode:  sinkNode,
		outputsOf: outputsOf,
	}
}

// Run executes every work unit once, in dependency order, start to finish.
// The unit loop never suspends and takes no lock; the run's statistics are
// recorded under the stats mutex once the last unit has returned.
func (p *Pipeline) Run() error {
	start := time.Now()
	for _, u := range p.units {
		u.Fn()
	}
	p.recordRun(time.Since(start), nil)
	return nil
}

// RunContext behaves like Run but checks ctx before each work unit, so a
// caller can cancel a long pipeline between node executions. Individual
// work units are never preempted mid-execution.
func (p *Pipeline) RunContext(ctx context.Context) error {
	start := time.Now()
	for _, u := range p.units {
		if err := ctx.Err(); err != nil {
			p.recordRun(time.Since(start), err)
			return err
		}
		u.Fn()
	}
	p.recordRun(time.Since(start), nil)
	return nil
}

func (p *Pipeline) recordRun(d time.Duration, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stats.TotalRuns++
	p.stats.TotalDuration += d
	p.stats.LastRunError = err
}

// Stats returns a snapshot of execution counters, safe to call while a Run
// is concurrently in flight from another goroutine.
func (p *Pipeline) Stats() ExecutionStats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stats
}

// Sink returns the cell holding the pipeline's terminal observed value.
func (p *Pipeline) Sink() node.Cell { return p.sinkCell }

// NumUnits reports how many work units the pipeline will execute per Run.
func (p *Pipeline) NumUnits() int { return len(p.units) }

// Explain renders the work-unit order as a tree: a "pipeline (N units)"
// root with one child per unit, in run order, naming its node and how many
// outputs that node declares. It is purely for debugging — grounded on npillmayer-fp's use of treeprint in its
// btree test suite to dump structures under test.
func (p *Pipeline) Explain() string {
	tree := treeprint.New()
	tree.SetValue(fmt.Sprintf("pipeline (%d units)", len(p.units)))
	for i, u := range p.units {
		tree.AddNode(fmt.Sprintf("[%d] node %d (%d outputs)", i, u.Node, len(p.outputsOf[u.Node])))
	}
	return tree.String()
}
