package feed

import (
	"bufio"
	"fmt"
	"os"
)

// Recorder appends raw update payloads, one per line and verbatim, to the
// update log. The backtest replays exactly this file, so the recorder must
// never alter a payload on the way through.
type Recorder struct {
	f *os.File
	w *bufio.Writer
}

// OpenRecorder opens (or creates) the log in append mode.
func OpenRecorder(path string) (*Recorder, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open update log: %w", err)
	}
	return &Recorder{f: f, w: bufio.NewWriter(f)}, nil
}

// Record writes one raw payload followed by a newline.
func (r *Recorder) Record(raw []byte) error {
	if _, err := r.w.Write(raw); err != nil {
		return err
	}
	return r.w.WriteByte('\n')
}

// Close flushes buffered records and closes the file.
func (r *Recorder) Close() error {
	if err := r.w.Flush(); err != nil {
		r.f.Close()
		return err
	}
	return r.f.Close()
}
