package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// CellValue is the text content of one cell. Hyperlink-bearing cells keep
// their target alongside the display text; only Text takes part in
// matching and field extraction.
type CellValue struct {
	Text      string
	Hyperlink string
}

// Sheet is a read-only view over one named sheet of a workbook. Row and
// column reads always cover the full configured cell range so empty cells
// keep their positions.
type Sheet struct {
	file     *excelize.File
	name     string
	startRow int
	lastRow  int
	lastCol  int
}

// Open opens the named sheet of an xlsx workbook. A missing sheet is a
// fatal configuration error and must abort the run before any output is
// written.
func Open(path, sheetName string, startRow int, lastColumn string) (*Sheet, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}

	idx, err := file.GetSheetIndex(sheetName)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to look up sheet %s: %w", sheetName, err)
	}
	if idx == -1 {
		file.Close()
		return nil, fmt.Errorf("sheet %s not found in %s", sheetName, path)
	}

	lastCol, err := excelize.ColumnNameToNumber(lastColumn)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("invalid last column %s: %w", lastColumn, err)
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheetName, err)
	}

	return &Sheet{
		file:     file,
		name:     sheetName,
		startRow: startRow,
		lastRow:  len(rows),
		lastCol:  lastCol,
	}, nil
}

// Close releases the underlying workbook.
func (s *Sheet) Close() error {
	return s.file.Close()
}

// StartRow returns the first data row (1-based).
func (s *Sheet) StartRow() int {
	return s.startRow
}

// LastRow returns the last populated row of the sheet.
func (s *Sheet) LastRow() int {
	return s.lastRow
}

// Column reads one column across all data rows. Every row from StartRow
// to LastRow is present in the result, empty cells included.
func (s *Sheet) Column(column string) (map[int]CellValue, error) {
	cells := make(map[int]CellValue)

	for row := s.startRow; row <= s.lastRow; row++ {
		axis, err := excelize.JoinCellName(column, row)
		if err != nil {
			return nil, fmt.Errorf("invalid cell address %s%d: %w", column, row, err)
		}

		cell, err := s.cell(axis)
		if err != nil {
			return nil, err
		}
		cells[row] = cell
	}

	return cells, nil
}

// Row reads the full cell range of one row, columns A through the
// configured last column, empty cells included.
func (s *Sheet) Row(row int) ([]CellValue, error) {
	cells := make([]CellValue, 0, s.lastCol)

	for col := 1; col <= s.lastCol; col++ {
		axis, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return nil, fmt.Errorf("invalid cell coordinates (%d,%d): %w", col, row, err)
		}

		cell, err := s.cell(axis)
		if err != nil {
			return nil, err
		}
		cells = append(cells, cell)
	}

	return cells, nil
}

// cell reads a single cell as a CellValue.
func (s *Sheet) cell(axis string) (CellValue, error) {
	text, err := s.file.GetCellValue(s.name, axis)
	if err != nil {
		return CellValue{}, fmt.Errorf("failed to read cell %s: %w", axis, err)
	}

	linked, target, err := s.file.GetCellHyperLink(s.name, axis)
	if err != nil {
		return CellValue{}, fmt.Errorf("failed to read hyperlink at %s: %w", axis, err)
	}

	cell := CellValue{Text: text}
	if linked {
		cell.Hyperlink = target
	}
	return cell, nil
}
