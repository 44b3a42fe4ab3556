// Package declare provides the ergonomic, reflection-based alternative to
// hand-writing a node.Node: wrap an ordinary Go function and get a node
// back, with its socket descriptors derived from the function's own
// parameter types.
//
// This is the one corner of the system that is necessarily stdlib-only.
// No repo in the reference pack ships a safe, general "wrap an arbitrary
// function as a typed closure over erased memory" library — this is a
// small, narrowly scoped use of reflect, not a hand-rolled framework.
package declare

import (
	"fmt"
	"reflect"

	"github.com/sbl8/patchgraph/node"
	"github.com/sbl8/patchgraph/socket"
)

// Func wraps fn as a node.Node with numIn declared inputs. fn must be a Go
// function shaped as:
//
//	func(state1 S1, state2 S2, ..., in1 *T1, in2 *T2, ..., out1 *U1, out2 *U2, ...)
//
// where the leading parameters match state (passed by value, fixed at
// declare time), followed by exactly numIn pointer parameters (the node's
// inputs, read-only by convention), followed by the node's output pointer
// parameters (however many params remain). fn must not return anything;
// nodes.WithStatus layers a success/failure output over a node that can
// fail, rather than fn reporting it itself.
func Func(numIn int, fn any, state ...any) node.Node {
	fv := reflect.ValueOf(fn)
	ft := fv.Type()
	if ft.Kind() != reflect.Func {
		panic("declare.Func: fn must be a function")
	}
	if ft.NumOut() != 0 {
		panic("declare.Func: fn must not return any values")
	}

	numState := len(state)
	numPtrParams := ft.NumIn() - numState
	if numPtrParams < numIn {
		panic(fmt.Sprintf("declare.Func: fn declares %d pointer parameters, fewer than numIn=%d", numPtrParams, numIn))
	}
	numOut := numPtrParams - numIn

	stateValues := make([]reflect.Value, numState)
	for i, s := range state {
		want := ft.In(i)
		got := reflect.ValueOf(s)
		if got.Type() != want {
			panic(fmt.Sprintf("declare.Func: state[%d] has type %s, fn expects %s", i, got.Type(), want))
		}
		stateValues[i] = got
	}

	inElems := make([]reflect.Type, numIn)
	inDescs := make([]socket.Descriptor, numIn)
	for i := 0; i < numIn; i++ {
		pt := ft.In(numState + i)
		if pt.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("declare.Func: input parameter %d must be a pointer, got %s", i, pt))
		}
		inElems[i] = pt.Elem()
		inDescs[i] = socket.OfType(pt.Elem())
	}

	outElems := make([]reflect.Type, numOut)
	outDescs := make([]socket.Descriptor, numOut)
	for j := 0; j < numOut; j++ {
		pt := ft.In(numState + numIn + j)
		if pt.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("declare.Func: output parameter %d must be a pointer, got %s", j, pt))
		}
		outElems[j] = pt.Elem()
		outDescs[j] = socket.OfType(pt.Elem())
	}

	return &funcNode{
		fv:          fv,
		stateValues: stateValues,
		inElems:     inElems,
		outElems:    outElems,
		inDescs:     inDescs,
		outDescs:    outDescs,
	}
}

type funcNode struct {
	fv          reflect.Value
	stateValues []reflect.Value
	inElems     []reflect.Type
	outElems    []reflect.Type
	inDescs     []socket.Descriptor
	outDescs    []socket.Descriptor
}

func (n *funcNode) InputSocket(i int) (socket.Descriptor, bool) {
	if i < 0 || i >= len(n.inDescs) {
		return socket.Descriptor{}, false
	}
	return n.inDescs[i], true
}

func (n *funcNode) OutputSocket(j int) (socket.Descriptor, bool) {
	if j < 0 || j >= len(n.outDescs) {
		return socket.Descriptor{}, false
	}
	return n.outDescs[j], true
}

func (n *funcNode) Bind(params node.Params) node.WorkUnit {
	numIn := len(n.inElems)
	numOut := len(n.outElems)
	inCells := make([]node.Cell, numIn)
	for i := 0; i < numIn; i++ {
		inCells[i] = params.Input(i)
	}
	outCells := make([]node.Cell, numOut)
	for j := 0; j < numOut; j++ {
		outCells[j] = params.Output(numIn, j)
	}

	argc := len(n.stateValues) + numIn + numOut
	return func() {
		args := make([]reflect.Value, 0, argc)
		args = append(args, n.stateValues...)
		for i, c := range inCells {
			args = append(args, reflect.NewAt(n.inElems[i], c.Addr()))
		}
		for j, c := range outCells {
			args = append(args, reflect.NewAt(n.outElems[j], c.Addr()))
		}
		n.fv.Call(args)
	}
}
