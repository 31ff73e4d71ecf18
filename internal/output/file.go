package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// FileWriter writes all records to a single json file.
type FileWriter struct {
	writerConfig *WriterConfig
}

// NewFileWriter returns a new FileWriter.
func NewFileWriter(wc *WriterConfig) *FileWriter {
	return &FileWriter{writerConfig: wc}
}

func (fw *FileWriter) Write(recordChan <-chan Record) {
	logger := slog.With(slog.String("writer", string(FILE_WRITER_TYPE)))
	f, err := os.Create(fw.writerConfig.FilePath)
	if err != nil {
		logger.Error(fmt.Sprintf("error while trying to open file: %v", err))
		os.Exit(1)
	}
	defer f.Close()

	allRecords := []Record{}
	for record := range recordChan {
		allRecords = append(allRecords, record)
	}

	buffer := &bytes.Buffer{}
	encoder := json.NewEncoder(buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(allRecords); err != nil {
		logger.Error(fmt.Sprintf("error while encoding records: %v", err))
		return
	}
	var indentBuffer bytes.Buffer
	if err := json.Indent(&indentBuffer, buffer.Bytes(), "", "  "); err != nil {
		logger.Error(fmt.Sprintf("error while indenting json: %v", err))
		return
	}
	if _, err = f.Write(indentBuffer.Bytes()); err != nil {
		logger.Error(fmt.Sprintf("error while writing json to file: %v", err))
	} else {
		logger.Info(fmt.Sprintf("wrote %d records to file %s", len(allRecords), fw.writerConfig.FilePath))
	}
}
