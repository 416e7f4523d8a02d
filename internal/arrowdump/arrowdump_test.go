package arrowdump

import (
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/23skdu/longbow-bullet/internal/weights"
)

var smallTopology = weights.Topology{InputSize: 2, HiddenSize: 2, OutputSize: 1, Perspectives: 2}

func TestExportRoundTrip(t *testing.T) {
	w := []int16{1, -2, 3, -4, 5, 6, 7, 8, 9, 10, 11}
	res, err := weights.Partition(w, smallTopology, weights.PolicyLenient)
	require.NoError(t, err)

	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	path := filepath.Join(t.TempDir(), "weights.arrow")
	require.NoError(t, NewExporter(mem).Export(path, res))
	mem.AssertSize(t, 0)

	segs, schema, err := Segments(path)
	require.NoError(t, err)

	assert.Equal(t, []int16{1, -2, 3, -4}, segs["H"])
	assert.Equal(t, []int16{5, 6}, segs["b"])
	assert.Equal(t, []int16{7, 8, 9, 10}, segs["O"])
	assert.Equal(t, []int16{11}, segs["c"])

	md := schema.Metadata()
	idx := md.FindKey(MetaHiddenSize)
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "2", md.Values()[idx])
	idx = md.FindKey(MetaOutcome)
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "exact", md.Values()[idx])
}

func TestExportShortLeavesEmptySegments(t *testing.T) {
	res, err := weights.Partition([]int16{42}, smallTopology, weights.PolicyLenient)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "weights.arrow")
	require.NoError(t, Export(path, res))

	segs, _, err := Segments(path)
	require.NoError(t, err)
	assert.Equal(t, []int16{42}, segs["H"])
	assert.Empty(t, segs["b"])
	assert.Empty(t, segs["O"])
	assert.Empty(t, segs["c"])
}

func TestExportBadPath(t *testing.T) {
	res, err := weights.Partition(nil, smallTopology, weights.PolicyLenient)
	require.NoError(t, err)

	err = Export(filepath.Join(t.TempDir(), "missing", "weights.arrow"), res)
	assert.Error(t, err)
}

func TestSchemaFields(t *testing.T) {
	s := Schema(weights.DefaultTopology(), weights.OutcomeTruncated)
	require.Len(t, s.Fields(), 3)
	assert.Equal(t, "segment", s.Field(0).Name)
	assert.Equal(t, "index", s.Field(1).Name)
	assert.Equal(t, "value", s.Field(2).Name)
}
