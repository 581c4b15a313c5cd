// Package fileio provides random access readers over TsFile bytes.
package fileio

import (
	"io"
	"os"

	"github.com/juju/errors"

	"github.com/hailanwhu/tsfile/util"
)

// Reader gives random access to the bytes of a file. Read follows io.Reader
// and additionally reads until p is full: it returns len(p) or an error,
// io.EOF when nothing was left and io.ErrUnexpectedEOF on a short read.
type Reader interface {
	io.Reader
	io.ByteReader
	io.Closer

	Seek(offset int64) error
	// Position returns the offset the next read starts at.
	Position() int64
	Length() (int64, error)
	// ReadInt reads a big-endian int32.
	ReadInt() (int32, error)
}

// LocalFileReader reads a file on the local file system.
type LocalFileReader struct {
	file     *os.File
	position int64
}

func OpenLocalFileReader(path string) (*LocalFileReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Annotatef(err, "os.Open(%s)", path)
	}
	return &LocalFileReader{file: f}, nil
}

func (r *LocalFileReader) Seek(offset int64) error {
	if offset < 0 {
		return errors.NotValidf("seek offset %d", offset)
	}
	if _, err := r.file.Seek(offset, io.SeekStart); err != nil {
		return errors.Annotatef(err, "seek(%s, %d)", r.file.Name(), offset)
	}
	r.position = offset
	return nil
}

func (r *LocalFileReader) Position() int64 {
	return r.position
}

func (r *LocalFileReader) Read(p []byte) (int, error) {
	n, err := io.ReadFull(r.file, p)
	r.position += int64(n)
	return n, err
}

func (r *LocalFileReader) ReadByte() (byte, error) {
	var b [1]byte
	if _, err := r.Read(b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *LocalFileReader) Length() (int64, error) {
	info, err := r.file.Stat()
	if err != nil {
		return 0, errors.Annotatef(err, "stat(%s)", r.file.Name())
	}
	return info.Size(), nil
}

func (r *LocalFileReader) ReadInt() (int32, error) {
	return readInt(r)
}

func (r *LocalFileReader) Close() error {
	return errors.Trace(r.file.Close())
}

// BytesReader serves reads from an in-memory copy of a file.
type BytesReader struct {
	data     []byte
	position int64
}

func NewBytesReader(data []byte) *BytesReader {
	return &BytesReader{data: data}
}

func (r *BytesReader) Seek(offset int64) error {
	if offset < 0 || offset > int64(len(r.data)) {
		return errors.NotValidf("seek offset %d for %d bytes", offset, len(r.data))
	}
	r.position = offset
	return nil
}

func (r *BytesReader) Position() int64 {
	return r.position
}

func (r *BytesReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	remaining := int64(len(r.data)) - r.position
	if remaining <= 0 {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.position:])
	r.position += int64(n)
	if n < len(p) {
		return n, io.ErrUnexpectedEOF
	}
	return n, nil
}

func (r *BytesReader) ReadByte() (byte, error) {
	if r.position >= int64(len(r.data)) {
		return 0, io.EOF
	}
	b := r.data[r.position]
	r.position++
	return b, nil
}

func (r *BytesReader) Length() (int64, error) {
	return int64(len(r.data)), nil
}

func (r *BytesReader) ReadInt() (int32, error) {
	return readInt(r)
}

func (r *BytesReader) Close() error {
	r.data = nil
	r.position = 0
	return nil
}

func readInt(r io.Reader) (int32, error) {
	var buf [4]byte
	if _, err := r.Read(buf[:]); err != nil {
		return 0, err
	}
	return util.ReadB4Byte2Int32(buf[:]), nil
}

// ReadAt reads length bytes starting at offset and leaves the reader
// positioned after them. A range past the end of the file is refused before
// anything is allocated.
func ReadAt(r Reader, offset int64, length int) ([]byte, error) {
	if length < 0 {
		return nil, errors.NotValidf("read length %d", length)
	}
	total, err := r.Length()
	if err != nil {
		return nil, errors.Trace(err)
	}
	if offset < 0 || offset > total || int64(length) > total-offset {
		return nil, errors.NotValidf("read of %d bytes at %d in %d bytes", length, offset, total)
	}
	if err := r.Seek(offset); err != nil {
		return nil, err
	}
	buf := make([]byte, length)
	if _, err := r.Read(buf); err != nil {
		return nil, errors.Annotatef(err, "read %d bytes at %d", length, offset)
	}
	return buf, nil
}
