// Test Zwrap
package zwrap_test

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/andrew-torda/pdbfreq/pdb/zwrap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const content = "HEADER    TEST\nATOM      1  N   ALA A   1\nEND\n"

func gzipped(t *testing.T, s string) []byte {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// Both files hold the same text, but the second is compressed. The
// name does not say so, since we go by the contents.
func TestOpen(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		data       []byte
		compressed bool
	}{
		{[]byte(content), false},
		{gzipped(t, content), true},
	}
	for i, tt := range tests {
		fname := filepath.Join(dir, "x"+string(rune('0'+i))+".pdb")
		require.NoError(t, os.WriteFile(fname, tt.data, 0o644))
		fz, err := zwrap.Open(fname)
		require.NoError(t, err)
		assert.Equal(t, tt.compressed, fz.Compressed())
		got, err := io.ReadAll(fz)
		require.NoError(t, err)
		assert.Equal(t, content, string(got))
		assert.NoError(t, fz.Close())
	}
}

func TestOpenEmpty(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "empty.pdb")
	require.NoError(t, os.WriteFile(fname, nil, 0o644))
	fz, err := zwrap.Open(fname)
	require.NoError(t, err)
	got, err := io.ReadAll(fz)
	assert.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, fz.Close())
}

func TestOpenBroken(t *testing.T) {
	dir := t.TempDir()
	truncated := filepath.Join(dir, "trunc.pdb.gz")
	require.NoError(t, os.WriteFile(truncated, []byte{0x1f, 0x8b, 0x08}, 0o644))
	for _, fname := range []string{"/does/not/exist", dir, truncated} {
		fz, err := zwrap.Open(fname)
		assert.Error(t, err, fname)
		assert.Nil(t, fz)
	}
}
