// Package arrowdump exports partitioned weights as an Arrow IPC file so
// they can be loaded column-wise by pyarrow, polars or DuckDB.
package arrowdump

import (
	"fmt"
	"os"
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/23skdu/longbow-bullet/internal/weights"
)

// Schema metadata keys
const (
	MetaInputSize    = "bullet.input_size"
	MetaHiddenSize   = "bullet.hidden_size"
	MetaOutputSize   = "bullet.output_size"
	MetaPerspectives = "bullet.perspectives"
	MetaOutcome      = "bullet.outcome"
)

// Schema builds the export schema for a topology and outcome.
func Schema(t weights.Topology, outcome weights.Outcome) *arrow.Schema {
	md := arrow.NewMetadata(
		[]string{MetaInputSize, MetaHiddenSize, MetaOutputSize, MetaPerspectives, MetaOutcome},
		[]string{
			strconv.Itoa(t.InputSize),
			strconv.Itoa(t.HiddenSize),
			strconv.Itoa(t.OutputSize),
			strconv.Itoa(t.Perspectives),
			outcome.String(),
		},
	)
	return arrow.NewSchema([]arrow.Field{
		{Name: "segment", Type: arrow.BinaryTypes.String},
		{Name: "index", Type: arrow.PrimitiveTypes.Int32},
		{Name: "value", Type: arrow.PrimitiveTypes.Int16},
	}, &md)
}

// Exporter writes partition results with a configurable allocator.
type Exporter struct {
	mem memory.Allocator
}

func NewExporter(mem memory.Allocator) *Exporter {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	return &Exporter{mem: mem}
}

// Export writes one record batch per segment, in slicing order.
func (e *Exporter) Export(path string, res *weights.Result) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create arrow file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close arrow file: %w", cerr)
		}
	}()

	schema := Schema(res.Topology, res.Outcome)
	w, err := ipc.NewFileWriter(f, ipc.WithSchema(schema), ipc.WithAllocator(e.mem))
	if err != nil {
		return fmt.Errorf("open arrow writer: %w", err)
	}

	b := array.NewRecordBuilder(e.mem, schema)
	defer b.Release()

	for _, seg := range res.Segments {
		name := seg.Spec.Kind.String()
		segB := b.Field(0).(*array.StringBuilder)
		idxB := b.Field(1).(*array.Int32Builder)
		valB := b.Field(2).(*array.Int16Builder)

		segB.Reserve(len(seg.Values))
		idxB.Reserve(len(seg.Values))
		for i := range seg.Values {
			segB.Append(name)
			idxB.Append(int32(i))
		}
		valB.AppendValues(seg.Values, nil)

		rec := b.NewRecord()
		werr := w.Write(rec)
		rec.Release()
		if werr != nil {
			_ = w.Close()
			return fmt.Errorf("write segment %s: %w", name, werr)
		}
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("finish arrow file: %w", err)
	}
	return nil
}

// Export writes res to path using the Go allocator.
func Export(path string, res *weights.Result) error {
	return NewExporter(nil).Export(path, res)
}

// Segments reads an exported file back into per-segment value slices
// keyed by segment name.
func Segments(path string) (map[string][]int16, *arrow.Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open arrow file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	r, err := ipc.NewFileReader(f, ipc.WithAllocator(memory.NewGoAllocator()))
	if err != nil {
		return nil, nil, fmt.Errorf("open arrow reader: %w", err)
	}
	defer r.Close()

	out := make(map[string][]int16)
	for i := 0; i < r.NumRecords(); i++ {
		rec, err := r.Record(i)
		if err != nil {
			return nil, nil, fmt.Errorf("read record %d: %w", i, err)
		}
		segs := rec.Column(0).(*array.String)
		vals := rec.Column(2).(*array.Int16)
		for j := 0; j < vals.Len(); j++ {
			name := segs.Value(j)
			out[name] = append(out[name], vals.Value(j))
		}
	}
	return out, r.Schema(), nil
}
