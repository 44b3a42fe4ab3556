package node

import "unsafe"

// Cell is an erased, writable handle to one arena-resident value. It carries
// no type information of its own — the node that declared the socket knows
// the payload type statically and reinterprets the cell accordingly, the
// same pattern the teacher's core.Sublate used for its AsFloat32Prev/
// AsUint32Prev typed views, generalized from "always float32/uint32" to "any
// T the node's author names".
type Cell struct {
	ptr unsafe.Pointer
}

// CellFor wraps a raw pointer into a Cell. The compiler uses it to wrap the
// arena addresses it allocates; tests use it to wrap ordinary variables.
func CellFor(ptr unsafe.Pointer) Cell { return Cell{ptr: ptr} }

// Addr exposes the raw pointer, for callers (the compiler, tests) that need
// to compare cell identity or verify address stability.
func (c Cell) Addr() unsafe.Pointer { return c.ptr }

// As reinterprets the cell as a typed pointer to T. The caller is
// responsible for T matching the socket.Descriptor that produced this cell
// (the compiler guarantees this via socket.Compatible at wiring time).
func As[T any](c Cell) *T {
	return (*T)(c.ptr)
}

// Read is a convenience wrapper around As that dereferences the cell.
func Read[T any](c Cell) T {
	return *As[T](c)
}

// Write is a convenience wrapper around As that stores into the cell.
func Write[T any](c Cell, v T) {
	*As[T](c) = v
}

// Float32 and Float64 are named typed-view accessors kept alongside the
// generic As/Read/Write trio for callers migrating from the teacher's
// AsFloat32Prev-style fixed-type helpers.
func (c Cell) Float32() *float32 { return As[float32](c) }
func (c Cell) Float64() *float64 { return As[float64](c) }

// Bytes reinterprets the cell as a byte slice of length n, for callers that
// need raw access (serialization, debugging) rather than a typed view.
func (c Cell) Bytes(n int) []byte {
	return unsafe.Slice((*byte)(c.ptr), n)
}
