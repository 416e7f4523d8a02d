package weights

import (
	"fmt"

	"github.com/23skdu/longbow-bullet/internal/logger"
)

// Outcome classifies how the decoded length compared to the topology.
type Outcome uint8

const (
	OutcomeExact Outcome = iota
	OutcomeTruncated
	OutcomeShort
)

func (o Outcome) String() string {
	switch o {
	case OutcomeExact:
		return "exact"
	case OutcomeTruncated:
		return "truncated"
	case OutcomeShort:
		return "short"
	default:
		return fmt.Sprintf("UNKNOWN_OUTCOME_%d", o)
	}
}

// Policy selects how a size mismatch is handled.
type Policy uint8

const (
	// PolicyLenient trims surplus values and slices short vectors best effort.
	PolicyLenient Policy = iota
	// PolicyStrict fails with ErrSizeMismatch on any mismatch.
	PolicyStrict
)

func (p Policy) String() string {
	if p == PolicyStrict {
		return "strict"
	}
	return "lenient"
}

// Segment is a named, contiguous run of the weight vector.
// Values aliases the input slice.
type Segment struct {
	Spec   SegmentSpec
	Values []int16
}

// Short reports whether fewer values than nominal were available.
func (s Segment) Short() bool {
	return len(s.Values) < s.Spec.Size
}

// Result is the partitioned weight vector.
type Result struct {
	Topology Topology
	Outcome  Outcome
	Total    int // decoded length before trimming
	Dropped  int // trailing values discarded, set for OutcomeTruncated
	Missing  int // values lacking, set for OutcomeShort
	Segments []Segment
}

// Segment returns the segment of the given kind.
func (r *Result) Segment(kind SegmentKind) Segment {
	for _, s := range r.Segments {
		if s.Spec.Kind == kind {
			return s
		}
	}
	return Segment{}
}

// Partition slices w into the topology's segments in fixed order.
// Surplus values are trimmed from the tail. A short vector is sliced as
// far as it goes, leaving later segments short or empty. In strict mode
// both cases return an ErrSizeMismatch instead.
func Partition(w []int16, t Topology, policy Policy) (*Result, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	expected := t.ExpectedTotal()
	res := &Result{Topology: t, Total: len(w)}

	switch {
	case len(w) > expected:
		if policy == PolicyStrict {
			return nil, ErrSizeMismatch{Expected: expected, Got: len(w)}
		}
		res.Outcome = OutcomeTruncated
		res.Dropped = len(w) - expected
		logger.Log.Warn(fmt.Sprintf("Trimming %d extra padded weights.", res.Dropped), "expected", expected, "found", len(w))
		w = w[:expected]
	case len(w) < expected:
		if policy == PolicyStrict {
			return nil, ErrSizeMismatch{Expected: expected, Got: len(w)}
		}
		res.Outcome = OutcomeShort
		res.Missing = expected - len(w)
		logger.Log.Warn(fmt.Sprintf("Expected %d weights, but only found %d.", expected, len(w)), "missing", res.Missing)
	default:
		res.Outcome = OutcomeExact
	}

	c := cursor{data: w}
	for _, spec := range t.Layout() {
		res.Segments = append(res.Segments, Segment{Spec: spec, Values: c.take(spec.Size)})
	}

	logger.Log.Info("Parameter counts", "outcome", res.Outcome.String())
	for _, s := range res.Segments {
		logger.Log.Info(s.Spec.Kind.Description(), "count", len(s.Values), "nominal", s.Spec.Size)
	}
	return res, nil
}

// cursor hands out consecutive, non-overlapping windows of data.
type cursor struct {
	data []int16
	pos  int
}

// take returns up to n values; fewer, possibly none, at the end.
func (c *cursor) take(n int) []int16 {
	end := c.pos + n
	if end > len(c.data) {
		end = len(c.data)
	}
	out := c.data[c.pos:end:end]
	c.pos = end
	return out
}
