package textdump

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteValues(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "output")
	w := NewWriter(dir)

	require.NoError(t, w.WriteValues("NN_Hidden_Bias.txt", []int16{1, -2, 32767, -32768, 0}))

	got, err := os.ReadFile(filepath.Join(dir, "NN_Hidden_Bias.txt"))
	require.NoError(t, err)
	assert.Equal(t, "1\n-2\n32767\n-32768\n0\n", string(got))
}

func TestWriteValuesEmpty(t *testing.T) {
	w := NewWriter(t.TempDir())

	require.NoError(t, w.WriteValues("empty.txt", nil))

	info, err := os.Stat(w.Path("empty.txt"))
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestWriteValuesOverwrites(t *testing.T) {
	w := NewWriter(t.TempDir())
	require.NoError(t, os.WriteFile(w.Path("seg.txt"), []byte("stale\nstale\nstale\n"), 0o644))

	require.NoError(t, w.WriteValues("seg.txt", []int16{7}))

	got, err := os.ReadFile(w.Path("seg.txt"))
	require.NoError(t, err)
	assert.Equal(t, "7\n", string(got))
}

func TestWriteAll(t *testing.T) {
	w := NewWriter(t.TempDir())

	require.NoError(t, w.WriteAll([]int16{1}))

	got, err := os.ReadFile(filepath.Join(w.Dir, FullDumpFile))
	require.NoError(t, err)
	assert.Equal(t, "1\n", string(got))
}

func TestWriteValuesDirIsFile(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "output")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	err := NewWriter(blocker).WriteValues("x.txt", []int16{1})
	assert.Error(t, err)
}
