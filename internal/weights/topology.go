package weights

import "fmt"

// Perspective network defaults.
const (
	DefaultInputSize    = 768
	DefaultHiddenSize   = 128
	DefaultOutputSize   = 1
	DefaultPerspectives = 2
)

// Segment file names, in slicing order.
const (
	InputToHiddenFile = "NN_Input_to_Hidden_Weights.txt"
	HiddenBiasFile    = "NN_Hidden_Bias.txt"
	OutputWeightsFile = "NN_Output_Weights.txt"
	OutputBiasFile    = "NN_Output_Bias.txt"
)

type SegmentKind uint8

const (
	SegmentInputToHidden SegmentKind = iota // H
	SegmentHiddenBias                       // b
	SegmentOutputWeights                    // O
	SegmentOutputBias                       // c
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentInputToHidden:
		return "H"
	case SegmentHiddenBias:
		return "b"
	case SegmentOutputWeights:
		return "O"
	case SegmentOutputBias:
		return "c"
	default:
		return fmt.Sprintf("UNKNOWN_SEGMENT_%d", k)
	}
}

// Description is the human readable label used in diagnostics.
func (k SegmentKind) Description() string {
	switch k {
	case SegmentInputToHidden:
		return "Input-to-hidden (H)"
	case SegmentHiddenBias:
		return "Hidden bias (b)"
	case SegmentOutputWeights:
		return "Output weights (O)"
	case SegmentOutputBias:
		return "Output bias (c)"
	default:
		return k.String()
	}
}

// FileName is the text dump name for the segment.
func (k SegmentKind) FileName() string {
	switch k {
	case SegmentInputToHidden:
		return InputToHiddenFile
	case SegmentHiddenBias:
		return HiddenBiasFile
	case SegmentOutputWeights:
		return OutputWeightsFile
	case SegmentOutputBias:
		return OutputBiasFile
	default:
		return ""
	}
}

// SegmentSpec is one entry of a topology layout.
type SegmentSpec struct {
	Kind SegmentKind
	Size int
}

// Topology describes a single hidden layer perspective network.
// The output layer carries one weight set per perspective.
type Topology struct {
	InputSize    int
	HiddenSize   int
	OutputSize   int
	Perspectives int
}

func DefaultTopology() Topology {
	return Topology{
		InputSize:    DefaultInputSize,
		HiddenSize:   DefaultHiddenSize,
		OutputSize:   DefaultOutputSize,
		Perspectives: DefaultPerspectives,
	}
}

func (t Topology) Validate() error {
	if t.InputSize <= 0 {
		return fmt.Errorf("%w: input_size %d (must be positive)", ErrInvalidTopology, t.InputSize)
	}
	if t.HiddenSize <= 0 {
		return fmt.Errorf("%w: hidden_size %d (must be positive)", ErrInvalidTopology, t.HiddenSize)
	}
	if t.OutputSize <= 0 {
		return fmt.Errorf("%w: output_size %d (must be positive)", ErrInvalidTopology, t.OutputSize)
	}
	if t.Perspectives <= 0 {
		return fmt.Errorf("%w: perspectives %d (must be positive)", ErrInvalidTopology, t.Perspectives)
	}
	return nil
}

// Layout returns the segment sizes in the order they appear on disk.
func (t Topology) Layout() []SegmentSpec {
	return []SegmentSpec{
		{Kind: SegmentInputToHidden, Size: t.InputSize * t.HiddenSize},
		{Kind: SegmentHiddenBias, Size: t.HiddenSize},
		{Kind: SegmentOutputWeights, Size: t.Perspectives * t.HiddenSize},
		{Kind: SegmentOutputBias, Size: t.OutputSize},
	}
}

// ExpectedTotal is the number of int16 values a complete file holds.
func (t Topology) ExpectedTotal() int {
	total := 0
	for _, s := range t.Layout() {
		total += s.Size
	}
	return total
}

func (t Topology) String() string {
	return fmt.Sprintf("%dx%d->%d (perspectives=%d)", t.InputSize, t.HiddenSize, t.OutputSize, t.Perspectives)
}
