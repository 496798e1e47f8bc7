package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// DecodeSheet reads the first sheet of a workbook. The first row names the fields and every
// later non-empty row becomes a record; cells missing at the end of a row read as "".
func DecodeSheet(r io.Reader) (records []Record, err error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close workbook: %w", cerr)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoDataRows
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}

	nonBlank := make([][]string, 0, len(rows))
	for _, row := range rows {
		if isBlankRow(row) {
			continue
		}
		nonBlank = append(nonBlank, row)
	}

	return zipRows(nonBlank)
}
