package nodes_test

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbl8/patchgraph/node"
	"github.com/sbl8/patchgraph/nodes"
	"github.com/sbl8/patchgraph/socket"
)

// bindWith allocates zeroed backing storage for a node's declared inputs
// and outputs, binds it, and returns the bound cells alongside the work
// unit so a test can set inputs and inspect outputs directly.
func bindWith[T any](n node.Node, inputs []T) (node.WorkUnit, []node.Cell, []node.Cell) {
	inCount := node.InputCount(n)
	outCount := node.OutputCount(n)
	if inCount != len(inputs) {
		panic("bindWith: input count mismatch")
	}

	backing := make([]T, inCount+outCount)
	params := make(node.Params, inCount+outCount)
	for i := range backing {
		params[i] = node.CellFor(unsafe.Pointer(&backing[i]))
	}
	for i, v := range inputs {
		node.Write(params[i], v)
	}

	fn := n.Bind(params)
	return fn, params[:inCount], params[inCount:]
}

func TestConstWritesValueEveryRun(t *testing.T) {
	n := nodes.Const[float64](42)
	fn, _, outs := bindWith[float64](n, nil)
	fn()
	assert.Equal(t, 42.0, node.Read[float64](outs[0]))
}

func TestAdd(t *testing.T) {
	n := nodes.Add[float64]()
	fn, _, outs := bindWith(n, []float64{2, 3})
	fn()
	assert.Equal(t, 5.0, node.Read[float64](outs[0]))
}

func TestMul(t *testing.T) {
	n := nodes.Mul[float64]()
	fn, _, outs := bindWith(n, []float64{2, 3})
	fn()
	assert.Equal(t, 6.0, node.Read[float64](outs[0]))
}

func TestSum(t *testing.T) {
	n := nodes.Sum[float64](4)
	fn, _, outs := bindWith(n, []float64{1, 2, 3, 4})
	fn()
	assert.Equal(t, 10.0, node.Read[float64](outs[0]))
}

func TestScale(t *testing.T) {
	n := nodes.Scale[float64](2.5)
	fn, _, outs := bindWith(n, []float64{4})
	fn()
	assert.Equal(t, 10.0, node.Read[float64](outs[0]))
}

func TestReLU(t *testing.T) {
	n := nodes.ReLU[float64]()
	fn, ins, outs := bindWith(n, []float64{-3})
	fn()
	assert.Equal(t, 0.0, node.Read[float64](outs[0]))

	node.Write(ins[0], 3.0)
	fn()
	assert.Equal(t, 3.0, node.Read[float64](outs[0]))
}

func TestClamp(t *testing.T) {
	n := nodes.Clamp[float64](0, 10)
	fn, ins, outs := bindWith(n, []float64{-5})
	fn()
	assert.Equal(t, 0.0, node.Read[float64](outs[0]))

	node.Write(ins[0], 50.0)
	fn()
	assert.Equal(t, 10.0, node.Read[float64](outs[0]))
}

func TestMix(t *testing.T) {
	n := nodes.Mix([]float64{0.5, 2})
	fn, _, outs := bindWith(n, []float64{10, 3})
	fn()
	assert.Equal(t, 11.0, node.Read[float64](outs[0])) // 10*0.5 + 3*2
}

func TestProbeRecordsLastValue(t *testing.T) {
	p := nodes.Probe[float64]()
	fn, ins, _ := bindWith[float64](p, []float64{0})
	node.Write(ins[0], 9.0)
	fn()
	assert.Equal(t, 9.0, p.Last())
}

func TestObserveAppendsEveryValue(t *testing.T) {
	var history []float64
	n := nodes.Observe(&history)
	fn, ins, _ := bindWith[float64](n, []float64{0})

	node.Write(ins[0], 1.0)
	fn()
	node.Write(ins[0], 2.0)
	fn()

	assert.Equal(t, []float64{1, 2}, history)
}

func TestWithStatusReportsSuccess(t *testing.T) {
	n := nodes.WithStatus(nodes.Add[float64]())
	fn, _, outs := bindWith(n, []float64{2, 3})
	fn()
	require.Equal(t, 5.0, node.Read[float64](outs[0]))
	assert.Equal(t, true, node.Read[bool](outs[1]))
}

// panickingNode wraps Add but its work unit always panics, used to
// exercise WithStatus's recover path.
type panickingNode struct {
	base node.Node
}

func (p *panickingNode) InputSocket(i int) (socket.Descriptor, bool)  { return p.base.InputSocket(i) }
func (p *panickingNode) OutputSocket(j int) (socket.Descriptor, bool) { return p.base.OutputSocket(j) }
func (p *panickingNode) Bind(params node.Params) node.WorkUnit {
	return func() { panic("boom") }
}

func TestWithStatusReportsFailureOnPanic(t *testing.T) {
	n := nodes.WithStatus(&panickingNode{base: nodes.Add[float64]()})
	fn, _, outs := bindWith(n, []float64{1, 2})
	fn()
	assert.Equal(t, false, node.Read[bool](outs[1]))
}
