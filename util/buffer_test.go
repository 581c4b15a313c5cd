package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadB4(t *testing.T) {
	cases := map[int32][]byte{
		0:           {0x00, 0x00, 0x00, 0x00},
		100:         {0x00, 0x00, 0x00, 0x64},
		-1:          {0xff, 0xff, 0xff, 0xff},
		-2147483648: {0x80, 0x00, 0x00, 0x00},
		0x01020304:  {0x01, 0x02, 0x03, 0x04},
	}
	for want, buf := range cases {
		assert.Equal(t, want, ReadB4Byte2Int32(buf))
	}

	cursor, v := ReadB4([]byte{0xaa, 0x00, 0x00, 0x01, 0x00}, 1)
	assert.Equal(t, 5, cursor)
	assert.Equal(t, int32(256), v)
}

func TestPathExists(t *testing.T) {
	dir := t.TempDir()
	ok, err := PathExists(dir)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = PathExists(filepath.Join(dir, "none"))
	assert.NoError(t, err)
	assert.False(t, ok)

	f := filepath.Join(dir, "f")
	assert.NoError(t, os.WriteFile(f, nil, 0644))
	ok, _ = PathExists(f)
	assert.True(t, ok)
}
