package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ValuesDecodedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bullet_values_decoded_total",
		Help: "Total number of int16 values decoded from weight files",
	})

	ValuesTrimmedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bullet_values_trimmed_total",
		Help: "Total number of surplus trailing values dropped before slicing",
	})

	ValuesMissingTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bullet_values_missing_total",
		Help: "Total number of values lacking from short weight files",
	})

	PartitionOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bullet_partition_outcomes_total",
		Help: "Partition results by outcome",
	}, []string{"outcome"})

	SegmentLength = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "bullet_segment_length",
		Help: "Number of values written for each segment in the last run",
	}, []string{"segment"})

	StageDuration = promauto.NewSummaryVec(prometheus.SummaryOpts{
		Name: "bullet_stage_duration_seconds",
		Help: "Duration of conversion stages",
	}, []string{"stage"})

	StageErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bullet_stage_errors_total",
		Help: "Total number of failed conversion stages",
	}, []string{"stage"})

	OutputFilesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bullet_output_files_total",
		Help: "Total number of output files written",
	})
)

// RecordDecode records a decoded weight vector
func RecordDecode(values int) {
	ValuesDecodedTotal.Add(float64(values))
}

// RecordPartition records a partition outcome with its trim / shortfall counts
func RecordPartition(outcome string, dropped, missing int) {
	PartitionOutcomes.WithLabelValues(outcome).Inc()
	if dropped > 0 {
		ValuesTrimmedTotal.Add(float64(dropped))
	}
	if missing > 0 {
		ValuesMissingTotal.Add(float64(missing))
	}
}

// RecordSegment sets the written length of a segment
func RecordSegment(segment string, length int) {
	SegmentLength.WithLabelValues(segment).Set(float64(length))
}

// RecordStage records how long a stage took and whether it failed
func RecordStage(stage string, d time.Duration, err error) {
	StageDuration.WithLabelValues(stage).Observe(d.Seconds())
	if err != nil {
		StageErrors.WithLabelValues(stage).Inc()
	}
}

// RecordFileWritten counts one output file
func RecordFileWritten() {
	OutputFilesTotal.Inc()
}

// WriteTextfile exports every registered metric in the text exposition
// format, for node_exporter's textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
