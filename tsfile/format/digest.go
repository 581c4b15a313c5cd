package format

import (
	"context"
	"fmt"

	"github.com/apache/thrift/lib/go/thrift"
)

// Statistics is the view of a page's computed statistics the format needs:
// whether anything was recorded, and the serialized bounds.
type Statistics interface {
	IsEmpty() bool
	MaxBytes() []byte
	MinBytes() []byte
}

// Digest carries the serialized max and min value of a page. The bytes are
// opaque here; readers reinterpret them with the column's declared type.
type Digest struct {
	Max []byte
	Min []byte
}

// NewDigest returns the digest for stats, or nil when stats recorded nothing.
// Page header builders go through here so that empty statistics never produce
// a digest on the wire.
func NewDigest(stats Statistics) *Digest {
	if stats == nil || stats.IsEmpty() {
		return nil
	}
	return &Digest{
		Max: stats.MaxBytes(),
		Min: stats.MinBytes(),
	}
}

func (d *Digest) IsSetMax() bool { return d.Max != nil }

func (d *Digest) IsSetMin() bool { return d.Min != nil }

func (d *Digest) Write(ctx context.Context, oprot thrift.TProtocol) error {
	const record = "Digest"
	if d == nil {
		return invalidData("%s: nil digest", record)
	}
	if err := writeStructBegin(ctx, oprot, record); err != nil {
		return err
	}
	if d.IsSetMax() {
		if err := writeBinaryField(ctx, oprot, record, "max", 1, d.Max); err != nil {
			return err
		}
	}
	if d.IsSetMin() {
		if err := writeBinaryField(ctx, oprot, record, "min", 2, d.Min); err != nil {
			return err
		}
	}
	return writeStructEnd(ctx, oprot, record)
}

func (d *Digest) Read(ctx context.Context, iprot thrift.TProtocol) error {
	const record = "Digest"
	d.Max, d.Min = nil, nil
	return readStruct(ctx, iprot, record, func(id int16, typeID thrift.TType) (bool, error) {
		if typeID != thrift.STRING {
			return false, nil
		}
		var err error
		switch id {
		case 1:
			d.Max, err = readBinary(ctx, iprot, record, id)
		case 2:
			d.Min, err = readBinary(ctx, iprot, record, id)
		default:
			return false, nil
		}
		return true, err
	})
}

func (d *Digest) String() string {
	if d == nil {
		return "<nil>"
	}
	return fmt.Sprintf("Digest{Max=%x,Min=%x}", d.Max, d.Min)
}
