// Package logging provides the file-backed record writer used by the report
// emitters. Records are appended as timestamped lines so an external
// collector can tail the file while a run is being processed.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// recordTimeFormat matches the `YYYY-MM-DD hh:mm:ss,mmm` layout collectors
// expect on every line.
const recordTimeFormat = "2006-01-02 15:04:05,000"

// Level is the severity tag written into each record line.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelError Level = "ERROR"
)

// RecordWriter appends leveled, timestamped record lines to a file and
// mirrors them to an optional console writer. The file is opened for each
// write and closed before returning, so a crash between records never
// leaves the log truncated mid-line.
type RecordWriter struct {
	path    string
	console io.Writer
	now     func() time.Time
	mu      sync.Mutex
}

// NewRecordWriter creates a writer appending to the file at path. A nil
// console suppresses mirroring.
func NewRecordWriter(path string, console io.Writer) *RecordWriter {
	return &RecordWriter{
		path:    path,
		console: console,
		now:     time.Now,
	}
}

// Path returns the file the writer appends to.
func (w *RecordWriter) Path() string {
	return w.path
}

// Info appends an INFO record.
func (w *RecordWriter) Info(record string) error {
	return w.write(LevelInfo, record)
}

// Error appends an ERROR record.
func (w *RecordWriter) Error(record string) error {
	return w.write(LevelError, record)
}

func (w *RecordWriter) write(level Level, record string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	line := fmt.Sprintf("%s - %s - %s\n", w.now().UTC().Format(recordTimeFormat), level, record)

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open record log %s: %w", w.path, err)
	}
	_, werr := f.WriteString(line)
	cerr := f.Close()

	if w.console != nil {
		fmt.Fprint(w.console, line)
	}

	if werr != nil {
		return fmt.Errorf("failed to write record log %s: %w", w.path, werr)
	}
	if cerr != nil {
		return fmt.Errorf("failed to close record log %s: %w", w.path, cerr)
	}
	return nil
}
