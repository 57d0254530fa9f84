package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// TableXLSX renders the table as a single-sheet workbook: title row,
// header row, then data rows, with a generation timestamp at the bottom.
func TableXLSX(t Table, generatedAt time.Time) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(file.GetActiveSheetIndex())

	if err := setCell(file, sheet, 1, 1, t.Title); err != nil {
		return nil, err
	}
	for col, header := range t.Headers {
		if err := setCell(file, sheet, col+1, 2, header); err != nil {
			return nil, err
		}
	}
	for rowIndex, row := range t.Rows {
		for col, value := range row {
			if err := setCell(file, sheet, col+1, rowIndex+3, value); err != nil {
				return nil, err
			}
		}
	}
	if err := setCell(file, sheet, 1, len(t.Rows)+4, timestampLine(generatedAt)); err != nil {
		return nil, err
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setCell(file *excelize.File, sheet string, col, row int, value string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell coordinates: %w", err)
	}
	if err := file.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("set cell %s: %w", cell, err)
	}
	return nil
}
