package fileio

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fileContent = []byte{0x00, 0x00, 0x00, 0x64, 0xff, 0xff, 0xff, 0xfe, 'h', 'i'}

func openReaders(t *testing.T) map[string]Reader {
	path := filepath.Join(t.TempDir(), "data.tsfile")
	require.NoError(t, os.WriteFile(path, fileContent, 0644))
	local, err := OpenLocalFileReader(path)
	require.NoError(t, err)
	t.Cleanup(func() { local.Close() })

	return map[string]Reader{
		"local": local,
		"bytes": NewBytesReader(fileContent),
	}
}

func TestReader(t *testing.T) {
	for name, r := range openReaders(t) {
		t.Run(name, func(t *testing.T) {
			length, err := r.Length()
			require.NoError(t, err)
			assert.Equal(t, int64(len(fileContent)), length)

			v, err := r.ReadInt()
			require.NoError(t, err)
			assert.Equal(t, int32(100), v)

			v, err = r.ReadInt()
			require.NoError(t, err)
			assert.Equal(t, int32(-2), v)
			assert.Equal(t, int64(8), r.Position())

			b, err := r.ReadByte()
			require.NoError(t, err)
			assert.Equal(t, byte('h'), b)

			require.NoError(t, r.Seek(8))
			buf := make([]byte, 4)
			n, err := r.Read(buf)
			assert.Equal(t, 2, n)
			assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

			_, err = r.ReadByte()
			assert.ErrorIs(t, err, io.EOF)

			n, err = r.Read(buf)
			assert.Equal(t, 0, n)
			assert.ErrorIs(t, err, io.EOF)

			assert.Error(t, r.Seek(-1))
		})
	}
}

func TestReadAt(t *testing.T) {
	for name, r := range openReaders(t) {
		t.Run(name, func(t *testing.T) {
			data, err := ReadAt(r, 8, 2)
			require.NoError(t, err)
			assert.Equal(t, []byte("hi"), data)
			assert.Equal(t, int64(10), r.Position())

			data, err = ReadAt(r, 0, 0)
			require.NoError(t, err)
			assert.Empty(t, data)

			_, err = ReadAt(r, 6, 8)
			assert.Error(t, err)

			_, err = ReadAt(r, 0, -1)
			assert.Error(t, err)
		})
	}
}

func TestReadAtRefusesRangePastEnd(t *testing.T) {
	for name, r := range openReaders(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, r.Seek(4))

			_, err := ReadAt(r, 7, 2000000000)
			require.Error(t, err)
			assert.True(t, errors.IsNotValid(err), "%v", err)
			assert.Equal(t, int64(4), r.Position(), "a refused read must not move the reader")

			_, err = ReadAt(r, int64(len(fileContent))+1, 0)
			assert.True(t, errors.IsNotValid(err), "%v", err)

			_, err = ReadAt(r, 1, int(^uint(0)>>1))
			assert.True(t, errors.IsNotValid(err), "%v", err)

			data, err := ReadAt(r, int64(len(fileContent)), 0)
			require.NoError(t, err)
			assert.Empty(t, data)
		})
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := OpenLocalFileReader(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
