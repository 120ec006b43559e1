package core

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"

	"github.com/huangsam/covidash/schema"
)

// ToCSVBytes encodes a table as comma-separated UTF-8 text with a header row.
// Fields are quoted per RFC 4180 and lines end with "\n". A record holding a
// single empty field is written as `""` so that it is not read back as a blank
// line. The download files are exactly these bytes.
func ToCSVBytes(table schema.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := writeCSVRecord(&buf, w, table.Columns); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range table.Rows {
		if err := writeCSVRecord(&buf, w, row); err != nil {
			return nil, fmt.Errorf("failed to write CSV rows: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write CSV rows: %w", err)
	}
	return buf.Bytes(), nil
}

func writeCSVRecord(buf *bytes.Buffer, w *csv.Writer, record []string) error {
	if len(record) != 1 || record[0] != "" {
		return w.Write(record)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	buf.WriteString("\"\"\n")
	return nil
}

// ParseCSVTable decodes bytes produced by ToCSVBytes back into a table.
// A "\r\n" inside a quoted field reads back as "\n".
func ParseCSVTable(data []byte) (schema.Table, error) {
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return schema.Table{}, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return schema.Table{}, errors.New("CSV has no header row")
	}
	return schema.Table{Columns: records[0], Rows: records[1:]}, nil
}
