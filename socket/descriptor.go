// Package socket describes the memory layout and type identity carried by a
// single input or output of a node.
//
// A Descriptor never owns memory itself; it only describes how much an
// arena cell for that socket must reserve, and carries an opaque TypeTag
// used to reject wiring two incompatible payload types together.
package socket

import (
	"fmt"
	"reflect"
)

// TypeTag is an opaque runtime type identity. Two descriptors with equal
// tags denote interchangeable payloads within this process; the tag makes
// no portability or serialization guarantee across processes.
type TypeTag struct {
	rt reflect.Type
}

// String renders the tag's underlying type name, useful in error messages.
func (t TypeTag) String() string {
	if t.rt == nil {
		return "<untyped>"
	}
	return t.rt.String()
}

// Descriptor is a socket's declared memory footprint and type identity.
type Descriptor struct {
	Size  uintptr
	Align uintptr
	Tag   TypeTag
}

// Of builds the descriptor for payload type T. Align and Size come from the
// Go type's own layout; the tag is the type itself.
func Of[T any]() Descriptor {
	var zero T
	return OfType(reflect.TypeOf(&zero).Elem())
}

// OfType builds the descriptor for a reflect.Type directly, for callers
// (declare.Func) that only learn a socket's payload type at run time.
func OfType(rt reflect.Type) Descriptor {
	return Descriptor{
		Size:  rt.Size(),
		Align: uintptr(rt.Align()),
		Tag:   TypeTag{rt: rt},
	}
}

// Compatible reports whether a producer's output descriptor may feed a
// consumer's input descriptor: equal type tags, and (as a defense-in-depth
// check — true whenever tags are equal) matching size and alignment.
func Compatible(producerOut, consumerIn Descriptor) bool {
	if producerOut.Tag.rt != consumerIn.Tag.rt {
		return false
	}
	return producerOut.Size == consumerIn.Size && producerOut.Align == consumerIn.Align
}

// Mismatch renders a human-readable explanation of why two descriptors are
// not compatible, for use in error messages.
func Mismatch(producerOut, consumerIn Descriptor) string {
	return fmt.Sprintf("producer type %s is not compatible with consumer type %s", producerOut.Tag, consumerIn.Tag)
}
