// Package output provides the interface, configuration and implementations
// for writers that emit generated selector records.
package output

import "fmt"

// A Record is one generation result as emitted to a writer.
type Record struct {
	PageURL   string `json:"pageUrl"`
	Target    string `json:"target"` // the one-off query used to locate the target
	Selector  string `json:"selector"`
	Score     int    `json:"score"`
	InnerText string `json:"innerText,omitempty"`
}

// Writer defines the interface for all writers that are responsible for
// writing generated records to a specific output, eg stdout.
type Writer interface {
	Write(recordChan <-chan Record)
}

// WriterType encapsulates the type of a writer. See below constants for
// possible types.
type WriterType string

const (
	STDOUT_WRITER_TYPE WriterType = "stdout"
	FILE_WRITER_TYPE   WriterType = "file"
)

// WriterConfig defines the necessary parameters to make a new writer.
type WriterConfig struct {
	Type     WriterType `yaml:"type" env:"PINPOINT_WRITER_TYPE" env-default:"stdout"`
	FilePath string     `yaml:"filepath" env:"PINPOINT_WRITER_FILEPATH"`
}

// NewWriter creates a new writer based on the given configuration.
func NewWriter(wc *WriterConfig) (Writer, error) {
	switch wc.Type {
	case STDOUT_WRITER_TYPE, "":
		return NewStdoutWriter(wc), nil
	case FILE_WRITER_TYPE:
		return NewFileWriter(wc), nil
	default:
		return nil, fmt.Errorf("writer type not implemented: %s", wc.Type)
	}
}
