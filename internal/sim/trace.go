package sim

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// TraceRecord is one row of the per-tick trace.
type TraceRecord struct {
	Tick          int     `csv:"tick"`
	Time          float32 `csv:"time"`
	X             float32 `csv:"x"`
	Y             float32 `csv:"y"`
	Z             float32 `csv:"z"`
	VelX          float32 `csv:"vel_x"`
	VelY          float32 `csv:"vel_y"`
	VelZ          float32 `csv:"vel_z"`
	Yaw           float32 `csv:"yaw_deg"`
	Grounded      bool    `csv:"grounded"`
	Crouching     bool    `csv:"crouching"`
	Dead          bool    `csv:"dead"`
	Forward       float32 `csv:"forward"`
	Turn          float32 `csv:"turn"`
	CapsuleHeight float32 `csv:"capsule_height"`
	Clip          string  `csv:"clip"`
	Triggers      string  `csv:"triggers"`
	Attack        string  `csv:"attack"`
}

// TraceWriter appends trace records as CSV, writing the header once.
type TraceWriter struct {
	out           io.Writer
	closer        io.Closer
	headerWritten bool
	rows          int
}

// NewTraceWriter creates the trace file and its parent directory.
// Returns nil if path is empty (tracing disabled).
func NewTraceWriter(path string) (*TraceWriter, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating trace directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating trace: %w", err)
	}
	return &TraceWriter{out: f, closer: f}, nil
}

// newTraceWriterTo writes to w without owning it.
func newTraceWriterTo(w io.Writer) *TraceWriter {
	return &TraceWriter{out: w}
}

// Write appends one record.
func (tw *TraceWriter) Write(rec TraceRecord) error {
	if tw == nil {
		return nil
	}

	records := []TraceRecord{rec}

	if !tw.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, tw.out); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
		tw.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, tw.out); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
	}
	tw.rows++
	return nil
}

// Rows returns the number of records written.
func (tw *TraceWriter) Rows() int {
	if tw == nil {
		return 0
	}
	return tw.rows
}

// Close closes the underlying file, if the writer owns one.
func (tw *TraceWriter) Close() error {
	if tw == nil || tw.closer == nil {
		return nil
	}
	return tw.closer.Close()
}
