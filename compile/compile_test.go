package compile_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbl8/patchgraph/compile"
	"github.com/sbl8/patchgraph/graph"
	"github.com/sbl8/patchgraph/node"
	"github.com/sbl8/patchgraph/nodes"
	"github.com/sbl8/patchgraph/socket"
)

// S1: a constant-add-observe graph: 1.5 + 2.25 observed as 3.75.
func TestScenarioS1ConstantAddObserve(t *testing.T) {
	g := graph.New()
	a := g.Insert(nodes.Const[float64](1.5))
	b := g.Insert(nodes.Const[float64](2.25))
	add := g.Insert(nodes.Add[float64]())
	probe := nodes.Probe[float64]()
	sink := g.Insert(probe)

	require.NoError(t, g.Connect(a, 0, add, 0))
	require.NoError(t, g.Connect(b, 0, add, 1))
	require.NoError(t, g.Connect(add, 0, sink, 0))

	pl, err := compile.Compile(g, sink, 0)
	require.NoError(t, err)
	require.NoError(t, pl.Run())
	assert.Equal(t, 3.75, probe.Last())
}

// S2: a diamond graph. Double(3.5) = 7.0 on each branch, recombined as
// 7.0 + 7.0 = 14.0.
func TestScenarioS2Diamond(t *testing.T) {
	g := graph.New()
	src := g.Insert(nodes.Const[float64](3.5))
	left := g.Insert(nodes.Scale[float64](2))
	right := g.Insert(nodes.Scale[float64](2))
	add := g.Insert(nodes.Add[float64]())
	probe := nodes.Probe[float64]()
	sink := g.Insert(probe)

	require.NoError(t, g.Connect(src, 0, left, 0))
	require.NoError(t, g.Connect(src, 0, right, 0))
	require.NoError(t, g.Connect(left, 0, add, 0))
	require.NoError(t, g.Connect(right, 0, add, 1))
	require.NoError(t, g.Connect(add, 0, sink, 0))

	pl, err := compile.Compile(g, sink, 0)
	require.NoError(t, err)
	require.NoError(t, pl.Run())
	assert.Equal(t, 14.0, probe.Last())
}

// S3: an unreachable node (not wired to the sink) must not appear in the
// compiled work-unit order.
func TestScenarioS3UnreachableExclusion(t *testing.T) {
	g := graph.New()
	a := g.Insert(nodes.Const[float64](1))
	probe := nodes.Probe[float64]()
	sink := g.Insert(probe)
	require.NoError(t, g.Connect(a, 0, sink, 0))

	// Unreachable: never connected to anything the sink depends on.
	g.Insert(nodes.Const[float64](999))

	pl, err := compile.Compile(g, sink, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, pl.NumUnits())
}

// S4: reconnecting a consumer input replaces the prior edge.
func TestScenarioS4EdgeReplacement(t *testing.T) {
	g := graph.New()
	a := g.Insert(nodes.Const[float64](1))
	b := g.Insert(nodes.Const[float64](100))
	probe := nodes.Probe[float64]()
	sink := g.Insert(probe)

	require.NoError(t, g.Connect(a, 0, sink, 0))
	require.NoError(t, g.Connect(b, 0, sink, 0))

	pl, err := compile.Compile(g, sink, 0)
	require.NoError(t, err)
	require.NoError(t, pl.Run())
	assert.Equal(t, float64(100), probe.Last())
}

// S5: a cycle must be rejected with the offending path.
func TestScenarioS5CycleRejection(t *testing.T) {
	g := graph.New()
	x := g.Insert(nodes.Scale[float64](1))
	y := g.Insert(nodes.Scale[float64](1))
	require.NoError(t, g.Connect(x, 0, y, 0))
	require.NoError(t, g.Connect(y, 0, x, 0))

	_, err := compile.Compile(g, y, 0)
	require.Error(t, err)
	var cyc *compile.ErrCycleDetected
	require.True(t, errors.As(err, &cyc))
	assert.NotEmpty(t, cyc.Path)
}

// S6: a type mismatch is rejected at Connect time, before Compile is ever
// reached.
func TestScenarioS6TypeMismatch(t *testing.T) {
	g := graph.New()
	f := g.Insert(nodes.Const[float64](1))
	add := g.Insert(nodes.Add[int32]())
	err := g.Connect(f, 0, add, 0)
	require.Error(t, err)
}

// mutableDescNode is a minimal node whose declared input/output descriptor
// can be swapped after construction, used to simulate a descriptor altered
// after Connect already validated it — the defense-in-depth half of S6
// spec.md §4.5 calls for at Compile time.
type mutableDescNode struct {
	desc socket.Descriptor
}

func (n *mutableDescNode) InputSocket(i int) (socket.Descriptor, bool) {
	if i == 0 {
		return n.desc, true
	}
	return socket.Descriptor{}, false
}

func (n *mutableDescNode) OutputSocket(j int) (socket.Descriptor, bool) {
	if j == 0 {
		return n.desc, true
	}
	return socket.Descriptor{}, false
}

func (n *mutableDescNode) Bind(params node.Params) node.WorkUnit {
	return func() {}
}

// S6 (continued): a descriptor altered after Connect already validated it
// is caught again by Compile, not just smuggled through to a bad Bind call.
func TestScenarioS6TypeMismatchCaughtAtCompileAfterConnect(t *testing.T) {
	g := graph.New()
	producer := &mutableDescNode{desc: socket.Of[float64]()}
	consumer := &mutableDescNode{desc: socket.Of[float64]()}
	p := g.Insert(producer)
	c := g.Insert(consumer)
	require.NoError(t, g.Connect(p, 0, c, 0))

	// Smuggle in a type change after Connect already approved the wiring.
	producer.desc = socket.Of[int32]()

	_, err := compile.Compile(g, c, 0)
	require.Error(t, err)
	var mismatch *graph.ErrIncompatibleSockets
	require.True(t, errors.As(err, &mismatch))
}

func TestUnconnectedInputFails(t *testing.T) {
	g := graph.New()
	add := g.Insert(nodes.Add[float64]())
	_, err := compile.Compile(g, add, 0)
	require.Error(t, err)
	var unconnected *compile.ErrUnconnectedInput
	require.True(t, errors.As(err, &unconnected))
}

func TestElideUnusedOutputsStillCompiles(t *testing.T) {
	g := graph.New()
	a := g.Insert(nodes.Const[float64](1))
	probe := nodes.Probe[float64]()
	sink := g.Insert(probe)
	require.NoError(t, g.Connect(a, 0, sink, 0))

	pl, err := compile.Compile(g, sink, 0, compile.WithElideUnusedOutputs(true))
	require.NoError(t, err)
	require.NoError(t, pl.Run())
	assert.Equal(t, float64(1), probe.Last())
}

// A node wrapped in WithStatus writes its full-width base output even when
// nothing downstream consumes it — eliding down to a placeholder cell for
// that output would make this an out-of-bounds write. Only the bool status
// output is wired to the sink here.
func TestElideUnusedOutputsDoesNotShrinkAnUnconsumedWrite(t *testing.T) {
	g := graph.New()
	a := g.Insert(nodes.Const[float64](2))
	b := g.Insert(nodes.Const[float64](3))
	add := g.Insert(nodes.WithStatus(nodes.Add[float64]()))
	probe := nodes.Probe[bool]()
	sink := g.Insert(probe)

	require.NoError(t, g.Connect(a, 0, add, 0))
	require.NoError(t, g.Connect(b, 0, add, 1))
	require.NoError(t, g.Connect(add, 1, sink, 0))

	pl, err := compile.Compile(g, sink, 0, compile.WithElideUnusedOutputs(true))
	require.NoError(t, err)
	require.NoError(t, pl.Run())
	assert.Equal(t, true, probe.Last())
}
