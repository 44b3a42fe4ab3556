package pipeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbl8/patchgraph/compile"
	"github.com/sbl8/patchgraph/graph"
	"github.com/sbl8/patchgraph/nodes"
	"github.com/sbl8/patchgraph/pipeline"
)

func buildConstantAdd(t *testing.T) (*nodes.ProbeNode[float64], *pipeline.Pipeline) {
	t.Helper()
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
	return probe, pl
}

func TestRunProducesExpectedSinkValue(t *testing.T) {
	probe, pl := buildConstantAdd(t)
	require.NoError(t, pl.Run())
	assert.Equal(t, 3.75, probe.Last())
}

func TestRunIsRepeatable(t *testing.T) {
	probe, pl := buildConstantAdd(t)
	require.NoError(t, pl.Run())
	require.NoError(t, pl.Run())
	assert.Equal(t, 3.75, probe.Last())
	assert.EqualValues(t, 2, pl.Stats().TotalRuns)
}

func TestRunContextHonorsCancellation(t *testing.T) {
	_, pl := buildConstantAdd(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := pl.RunContext(ctx)
	require.Error(t, err)
}

func TestExplainListsEveryUnit(t *testing.T) {
	_, pl := buildConstantAdd(t)
	out := pl.Explain()
	assert.Contains(t, out, "pipeline")
	assert.Equal(t, 4, pl.NumUnits()) // two consts, one add, one probe
	assert.Contains(t, out, "pipeline (4 units)")
	assert.Contains(t, out, "[0] node 0 (1 outputs)")
	assert.Contains(t, out, "[1] node 1 (1 outputs)")
	assert.Contains(t, out, "[2] node 2 (1 outputs)")
	assert.Contains(t, out, "[3] node 3 (1 outputs)")
}
