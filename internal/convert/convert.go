// Package convert runs the weight dump pipeline: read, full dump,
// partition, segment dumps and the optional Arrow and metrics exports.
package convert

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/23skdu/longbow-bullet/internal/arrowdump"
	"github.com/23skdu/longbow-bullet/internal/config"
	"github.com/23skdu/longbow-bullet/internal/logger"
	"github.com/23skdu/longbow-bullet/internal/metrics"
	"github.com/23skdu/longbow-bullet/internal/textdump"
	"github.com/23skdu/longbow-bullet/internal/weights"
)

// Report summarizes a completed run.
type Report struct {
	Decoded  int
	Outcome  weights.Outcome
	Dropped  int
	Missing  int
	Segments map[weights.SegmentKind]int
	Files    []string
	FullDump string
}

// Run converts cfg.InputPath into text files under cfg.OutputDir.
// The first I/O error aborts the run; files already written stay.
func Run(ctx context.Context, cfg config.Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	out := textdump.NewWriter(cfg.OutputDir)
	rep := &Report{Segments: make(map[weights.SegmentKind]int)}

	var vals []int16
	err := stage(ctx, "decode", func() error {
		var err error
		vals, err = weights.ReadFile(cfg.InputPath)
		if err != nil {
			return err
		}
		rep.Decoded = len(vals)
		metrics.RecordDecode(len(vals))
		logger.Log.Debug("decoded weights", "path", cfg.InputPath, "values", len(vals))
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = stage(ctx, "full_dump", func() error {
		if err := out.WriteAll(vals); err != nil {
			return err
		}
		rep.FullDump = out.Path(textdump.FullDumpFile)
		rep.Files = append(rep.Files, rep.FullDump)
		metrics.RecordFileWritten()
		return nil
	})
	if err != nil {
		return nil, err
	}

	var res *weights.Result
	err = stage(ctx, "partition", func() error {
		var err error
		res, err = weights.Partition(vals, cfg.WeightTopology(), cfg.Policy())
		if err != nil {
			return err
		}
		rep.Outcome, rep.Dropped, rep.Missing = res.Outcome, res.Dropped, res.Missing
		metrics.RecordPartition(res.Outcome.String(), res.Dropped, res.Missing)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = stage(ctx, "segments", func() error {
		for _, seg := range res.Segments {
			name := seg.Spec.Kind.FileName()
			if err := out.WriteValues(name, seg.Values); err != nil {
				return err
			}
			rep.Segments[seg.Spec.Kind] = len(seg.Values)
			rep.Files = append(rep.Files, out.Path(name))
			metrics.RecordSegment(seg.Spec.Kind.String(), len(seg.Values))
			metrics.RecordFileWritten()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if cfg.ArrowExport {
		err = stage(ctx, "arrow", func() error {
			path := filepath.Join(cfg.OutputDir, config.ArrowFile)
			if err := arrowdump.Export(path, res); err != nil {
				return err
			}
			rep.Files = append(rep.Files, path)
			metrics.RecordFileWritten()
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	logger.Log.Info(fmt.Sprintf("Conversion complete. Full weights saved to %s", rep.FullDump), "outcome", rep.Outcome.String(), "files", len(rep.Files))

	// Written last so the textfile covers every stage above.
	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			return nil, err
		}
	}
	return rep, nil
}

func stage(ctx context.Context, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	start := time.Now()
	err := fn()
	metrics.RecordStage(name, time.Since(start), err)
	if err != nil {
		logger.Log.Error("stage failed", "stage", name, "error", err)
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
