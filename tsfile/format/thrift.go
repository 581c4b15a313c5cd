package format

import (
	"context"
	"fmt"

	"github.com/apache/thrift/lib/go/thrift"
)

// Record is a structure that can be written to and read from a thrift
// protocol. Every top level record of the format satisfies it.
type Record interface {
	thrift.TStruct
	RecordName() string
}

func invalidData(format string, args ...interface{}) error {
	return thrift.NewTProtocolExceptionWithType(thrift.INVALID_DATA, fmt.Errorf(format, args...))
}

func missingField(record, field string) error {
	return invalidData("%s: required field %s is not set", record, field)
}

func writeFieldBegin(ctx context.Context, oprot thrift.TProtocol, record, name string, typeID thrift.TType, id int16) error {
	if err := oprot.WriteFieldBegin(ctx, name, typeID, id); err != nil {
		return thrift.PrependError(fmt.Sprintf("%s write field begin error %d:%s: ", record, id, name), err)
	}
	return nil
}

func writeFieldEnd(ctx context.Context, oprot thrift.TProtocol, record, name string, id int16) error {
	if err := oprot.WriteFieldEnd(ctx); err != nil {
		return thrift.PrependError(fmt.Sprintf("%s write field end error %d:%s: ", record, id, name), err)
	}
	return nil
}

func writeI32Field(ctx context.Context, oprot thrift.TProtocol, record, name string, id int16, v int32) error {
	if err := writeFieldBegin(ctx, oprot, record, name, thrift.I32, id); err != nil {
		return err
	}
	if err := oprot.WriteI32(ctx, v); err != nil {
		return thrift.PrependError(fmt.Sprintf("%s.%s (%d) field write error: ", record, name, id), err)
	}
	return writeFieldEnd(ctx, oprot, record, name, id)
}

func writeI64Field(ctx context.Context, oprot thrift.TProtocol, record, name string, id int16, v int64) error {
	if err := writeFieldBegin(ctx, oprot, record, name, thrift.I64, id); err != nil {
		return err
	}
	if err := oprot.WriteI64(ctx, v); err != nil {
		return thrift.PrependError(fmt.Sprintf("%s.%s (%d) field write error: ", record, name, id), err)
	}
	return writeFieldEnd(ctx, oprot, record, name, id)
}

func writeBinaryField(ctx context.Context, oprot thrift.TProtocol, record, name string, id int16, v []byte) error {
	if err := writeFieldBegin(ctx, oprot, record, name, thrift.STRING, id); err != nil {
		return err
	}
	if err := oprot.WriteBinary(ctx, v); err != nil {
		return thrift.PrependError(fmt.Sprintf("%s.%s (%d) field write error: ", record, name, id), err)
	}
	return writeFieldEnd(ctx, oprot, record, name, id)
}

func writeStringField(ctx context.Context, oprot thrift.TProtocol, record, name string, id int16, v string) error {
	if err := writeFieldBegin(ctx, oprot, record, name, thrift.STRING, id); err != nil {
		return err
	}
	if err := oprot.WriteString(ctx, v); err != nil {
		return thrift.PrependError(fmt.Sprintf("%s.%s (%d) field write error: ", record, name, id), err)
	}
	return writeFieldEnd(ctx, oprot, record, name, id)
}

func writeStructField(ctx context.Context, oprot thrift.TProtocol, record, name string, id int16, v thrift.TStruct) error {
	if err := writeFieldBegin(ctx, oprot, record, name, thrift.STRUCT, id); err != nil {
		return err
	}
	if err := v.Write(ctx, oprot); err != nil {
		return thrift.PrependError(fmt.Sprintf("%s.%s (%d) field write error: ", record, name, id), err)
	}
	return writeFieldEnd(ctx, oprot, record, name, id)
}

func writeStructBegin(ctx context.Context, oprot thrift.TProtocol, record string) error {
	if err := oprot.WriteStructBegin(ctx, record); err != nil {
		return thrift.PrependError(fmt.Sprintf("%s write struct begin error: ", record), err)
	}
	return nil
}

func writeStructEnd(ctx context.Context, oprot thrift.TProtocol, record string) error {
	if err := oprot.WriteFieldStop(ctx); err != nil {
		return thrift.PrependError(fmt.Sprintf("%s write field stop error: ", record), err)
	}
	if err := oprot.WriteStructEnd(ctx); err != nil {
		return thrift.PrependError(fmt.Sprintf("%s write struct stop error: ", record), err)
	}
	return nil
}

// fieldVisitor handles one field of a struct being read. It reports false
// when it did not consume the field, which is then skipped.
type fieldVisitor func(id int16, typeID thrift.TType) (bool, error)

// readStruct drives the read loop shared by every record: fields are visited
// in wire order until the stop marker, unknown ones are skipped.
func readStruct(ctx context.Context, iprot thrift.TProtocol, record string, visit fieldVisitor) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return thrift.PrependError(fmt.Sprintf("%s read error: ", record), err)
	}
	for {
		_, typeID, id, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return thrift.PrependError(fmt.Sprintf("%s field %d read error: ", record, id), err)
		}
		if typeID == thrift.STOP {
			break
		}
		consumed, err := visit(id, typeID)
		if err != nil {
			return err
		}
		if !consumed {
			if err := iprot.Skip(ctx, typeID); err != nil {
				return thrift.PrependError(fmt.Sprintf("%s field %d skip error: ", record, id), err)
			}
		}
		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	if err := iprot.ReadStructEnd(ctx); err != nil {
		return thrift.PrependError(fmt.Sprintf("%s read struct end error: ", record), err)
	}
	return nil
}

func readI32(ctx context.Context, iprot thrift.TProtocol, record string, id int16) (int32, error) {
	v, err := iprot.ReadI32(ctx)
	if err != nil {
		return 0, thrift.PrependError(fmt.Sprintf("%s error reading field %d: ", record, id), err)
	}
	return v, nil
}

func readI64(ctx context.Context, iprot thrift.TProtocol, record string, id int16) (int64, error) {
	v, err := iprot.ReadI64(ctx)
	if err != nil {
		return 0, thrift.PrependError(fmt.Sprintf("%s error reading field %d: ", record, id), err)
	}
	return v, nil
}

func readBinary(ctx context.Context, iprot thrift.TProtocol, record string, id int16) ([]byte, error) {
	v, err := iprot.ReadBinary(ctx)
	if err != nil {
		return nil, thrift.PrependError(fmt.Sprintf("%s error reading field %d: ", record, id), err)
	}
	return v, nil
}

func readString(ctx context.Context, iprot thrift.TProtocol, record string, id int16) (string, error) {
	v, err := iprot.ReadString(ctx)
	if err != nil {
		return "", thrift.PrependError(fmt.Sprintf("%s error reading field %d: ", record, id), err)
	}
	return v, nil
}
