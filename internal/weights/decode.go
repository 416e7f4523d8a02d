package weights

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/23skdu/longbow-bullet/internal/logger"
)

// SampleSize is the width in bytes of one quantized weight.
const SampleSize = 2

// Decode interprets buf as consecutive little-endian int16 values.
// A trailing unpaired byte is dropped.
func Decode(buf []byte) []int16 {
	n := len(buf) / SampleSize
	out := make([]int16, n)
	for i := 0; i < n; i++ {
		out[i] = int16(binary.LittleEndian.Uint16(buf[i*SampleSize:]))
	}
	return out
}

// Encode is the inverse of Decode.
func Encode(values []int16) []byte {
	buf := make([]byte, len(values)*SampleSize)
	for i, v := range values {
		binary.LittleEndian.PutUint16(buf[i*SampleSize:], uint16(v))
	}
	return buf
}

// ReadFile loads a raw quantized weight file. The file has no header,
// length field or checksum.
func ReadFile(path string) ([]int16, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read weights: %w", err)
	}
	if len(data)%SampleSize != 0 {
		logger.Log.Warn("odd weight file length, ignoring trailing byte", "path", path, "bytes", len(data))
	}
	return Decode(data), nil
}
