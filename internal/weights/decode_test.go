package weights

import (
	"bytes"
	"errors"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeLittleEndian(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want []int16
	}{
		{"empty", nil, []int16{}},
		{"one", []byte{0x01, 0x00}, []int16{1}},
		{"minus one", []byte{0xff, 0xff}, []int16{-1}},
		{"min", []byte{0x00, 0x80}, []int16{-32768}},
		{"max", []byte{0xff, 0x7f}, []int16{32767}},
		{"two values", []byte{0x34, 0x12, 0xfe, 0xff}, []int16{0x1234, -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(tt.buf)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("value %d = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, n := range []int{0, 2, 16, 1024, 4096} {
		buf := make([]byte, n)
		rng.Read(buf)

		vals := Decode(buf)
		if len(vals) != n/2 {
			t.Fatalf("bytes %d: decoded %d values, want %d", n, len(vals), n/2)
		}
		if got := Encode(vals); !bytes.Equal(got, buf) {
			t.Errorf("bytes %d: re-encoded buffer differs", n)
		}
	}
}

func TestDecodeOddLengthDropsTrailingByte(t *testing.T) {
	buf := []byte{0x01, 0x00, 0x02, 0x00, 0x7f}

	odd := Decode(buf)
	even := Decode(buf[:len(buf)-1])

	if len(odd) != 2 {
		t.Fatalf("expected 2 values, got %d", len(odd))
	}
	for i := range even {
		if odd[i] != even[i] {
			t.Errorf("value %d: odd=%d even=%d", i, odd[i], even[i])
		}
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quantised.bin")
	if err := os.WriteFile(path, Encode([]int16{5, -7, 300}), 0o644); err != nil {
		t.Fatal(err)
	}

	vals, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := []int16{5, -7, 300}
	if len(vals) != len(want) {
		t.Fatalf("got %d values, want %d", len(vals), len(want))
	}
	for i := range want {
		if vals[i] != want[i] {
			t.Errorf("value %d = %d, want %d", i, vals[i], want[i])
		}
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.bin"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

