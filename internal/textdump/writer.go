// Package textdump writes weight vectors as newline-delimited decimal text.
package textdump

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// FullDumpFile receives the whole, unsegmented weight vector.
const FullDumpFile = "all_values_translated_res.txt"

// Writer places dump files under Dir, creating it on first use.
type Writer struct {
	Dir string
}

func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir}
}

// Path returns the location name would be written to.
func (w *Writer) Path(name string) string {
	return filepath.Join(w.Dir, name)
}

// WriteValues writes one integer per line to Dir/name, replacing any
// existing file. An empty slice produces an empty file.
func (w *Writer) WriteValues(name string, values []int16) (err error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	f, err := os.Create(w.Path(name))
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", name, cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	var scratch [8]byte
	for _, v := range values {
		line := strconv.AppendInt(scratch[:0], int64(v), 10)
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", name, err)
	}
	return nil
}

// WriteAll dumps the full decoded vector to FullDumpFile.
func (w *Writer) WriteAll(values []int16) error {
	return w.WriteValues(FullDumpFile, values)
}
