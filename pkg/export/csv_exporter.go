package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Dataset defines tabular export content shared by every renderer.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// Sheet is a named Dataset inside a workbook export.
type Sheet struct {
	Name string
	Data Dataset
}

// CSVExporter renders Dataset records into CSV bytes. Output uses a
// semicolon delimiter and a UTF-8 BOM so that Cyrillic content opens
// correctly in spreadsheet applications.
type CSVExporter struct {
	Comma   rune
	WithBOM bool
}

// NewCSVExporter builds a CSV exporter with spreadsheet-friendly defaults.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{Comma: ';', WithBOM: true}
}

// Render produces CSV encoded bytes for the dataset.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := &bytes.Buffer{}
	if e.WithBOM {
		buf.Write([]byte{0xEF, 0xBB, 0xBF})
	}
	writer := csv.NewWriter(buf)
	if e.Comma != 0 {
		writer.Comma = e.Comma
	}
	if err := writer.Write(data.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range data.Rows {
		record := make([]string, len(data.Headers))
		for i, header := range data.Headers {
			record[i] = row[header]
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
