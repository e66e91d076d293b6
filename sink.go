package qrtext

import (
	"bufio"
	"io"
)

// LineSink receives rendered lines, one at a time and without a trailing
// newline.
type LineSink interface {
	WriteLine(line string) error
}

// LineSinkFunc adapts a function to LineSink.
type LineSinkFunc func(line string) error

// WriteLine calls f(line).
func (f LineSinkFunc) WriteLine(line string) error {
	return f(line)
}

// WriterSink writes each line followed by '\n' to an io.Writer through a
// buffer. Call Flush once rendering is done.
type WriterSink struct {
	w *bufio.Writer
}

// NewWriterSink returns a WriterSink for w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: bufio.NewWriter(w)}
}

// WriteLine implements LineSink.
func (s *WriterSink) WriteLine(line string) error {
	if _, err := s.w.WriteString(line); err != nil {
		return err
	}
	return s.w.WriteByte('\n')
}

// Flush writes any buffered lines to the underlying writer.
func (s *WriterSink) Flush() error {
	return s.w.Flush()
}

// LineCollector keeps every line it receives.
type LineCollector struct {
	Lines []string
}

// WriteLine implements LineSink.
func (c *LineCollector) WriteLine(line string) error {
	c.Lines = append(c.Lines, line)
	return nil
}

// Reset drops collected lines.
func (c *LineCollector) Reset() {
	c.Lines = c.Lines[:0]
}
