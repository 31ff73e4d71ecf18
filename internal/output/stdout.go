package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
)

// StdoutWriter represents a writer that writes to stdout.
type StdoutWriter struct {
	logger *slog.Logger
}

// NewStdoutWriter returns a new StdoutWriter.
func NewStdoutWriter(wc *WriterConfig) *StdoutWriter {
	return &StdoutWriter{
		logger: slog.With(slog.String("writer", string(STDOUT_WRITER_TYPE))),
	}
}

func (w *StdoutWriter) Write(recordChan <-chan Record) {
	for record := range recordChan {
		b, err := encodeRecord(record)
		if err != nil {
			w.logger.Error(fmt.Sprintf("error while writing record %v: %v", record, err))
			continue
		}
		fmt.Print(string(b))
	}
}

// encodeRecord marshals a record without escaping html characters; selectors
// regularly contain '<', '>' and '&' and must survive a round trip through
// the output unchanged.
func encodeRecord(r Record) ([]byte, error) {
	buffer := &bytes.Buffer{}
	encoder := json.NewEncoder(buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(r); err != nil {
		return nil, err
	}
	var indentBuffer bytes.Buffer
	if err := json.Indent(&indentBuffer, buffer.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	return indentBuffer.Bytes(), nil
}
