// Package nodes is a small builtin library of dataflow nodes: constants,
// arithmetic, activations, and observation sinks. Each node is a thin
// generic wrapper that declares its socket.Descriptors from a type
// parameter and binds a closure performing the same arithmetic the
// teacher's kernels.Catalog performed in place on raw byte buffers
// (sbl8-sublation's kernels/ops.go), re-expressed here as pure dataflow
// over typed arena cells instead of opcode-dispatched byte kernels.
package nodes

// Numeric bounds the type parameter accepted by arithmetic nodes.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}
