package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/gabriel-vasile/mimetype"
)

const utf8BOM = "\ufeff"

var spreadsheetExts = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".xltx": true,
	".xltm": true,
}

// DecodeText parses delimiter separated text. The first non-blank line is the header; every
// later non-blank line becomes a record zipped positionally with it. Short rows are padded
// with empty strings and surplus values are dropped. Quoting never spans lines, so a stray
// quote only affects the row it appears on.
func DecodeText(text string, delimiter rune) ([]Record, error) {
	if delimiter == 0 {
		delimiter = ','
	}

	var rows [][]string
	for n, line := range strings.Split(strings.TrimPrefix(text, utf8BOM), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		row, err := splitLine(line, delimiter)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n+1, err)
		}
		if isBlankRow(row) {
			continue
		}
		rows = append(rows, row)
	}

	return zipRows(rows)
}

// splitLine reads the fields of a single line. Leading space is only skipped for printable
// delimiters: with a tab or space delimiter it would swallow empty cells.
func splitLine(line string, delimiter rune) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = !unicode.IsSpace(delimiter)

	row, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	return row, err
}

// DecodeFile picks a decoder for an uploaded file by extension and, failing that, by
// sniffing its content. Spreadsheets go through DecodeSheet, anything textual through
// DecodeText with a comma delimiter.
func DecodeFile(name string, r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(name))
	switch {
	case spreadsheetExts[ext]:
		return DecodeSheet(bytes.NewReader(data))
	case ext == ".csv" || ext == ".txt":
		return DecodeText(string(data), ',')
	}

	mt := mimetype.Detect(data)
	switch {
	case mt.Is("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"),
		mt.Is("application/zip"):
		return DecodeSheet(bytes.NewReader(data))
	case strings.HasPrefix(mt.String(), "text/"):
		return DecodeText(string(data), ',')
	default:
		return nil, fmt.Errorf("%w: unsupported content type %s", ErrUnreadableFile, mt.String())
	}
}

// zipRows treats rows[0] as the header and builds one record per later row.
func zipRows(rows [][]string) ([]Record, error) {
	if len(rows) < 2 {
		return nil, ErrNoDataRows
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = normalizeHeader(h)
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if _, dup := rec[h]; dup {
				continue
			}
			if i < len(row) {
				rec[h] = strings.TrimSpace(row[i])
			} else {
				rec[h] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, utf8BOM)))
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
