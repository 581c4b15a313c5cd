// Package converter defines the two-way mapping between a metadata object of
// the file format and its thrift wire record.
package converter

// Converter is implemented by metadata objects that have a wire form T.
//
// ConvertToThrift must not modify the receiver and must succeed for every
// state the receiver can be in. ConvertToTSF replaces the receiver's state
// with the contents of metadata; applying the same record twice leaves the
// receiver as after the first application.
type Converter[T any] interface {
	ConvertToThrift() T
	ConvertToTSF(metadata T)
}
