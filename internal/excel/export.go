package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// NotMatchSheet is the sheet name of the unmatched-row workbook.
const NotMatchSheet = "NotMatch"

// ExportUnmatched writes the unmatched source rows to a fresh single-sheet
// workbook. Each source row is re-read in full, blanks included, and
// appended verbatim so the reviewer can line the export up against the
// original layout. Row numbers are expected in ascending order.
func ExportUnmatched(src *Sheet, rowNumbers []int, path string) error {
	out := excelize.NewFile()
	defer out.Close()

	if err := out.SetSheetName("Sheet1", NotMatchSheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", NotMatchSheet, err)
	}

	for i, srcRow := range rowNumbers {
		cells, err := src.Row(srcRow)
		if err != nil {
			return fmt.Errorf("failed to re-read row %d: %w", srcRow, err)
		}

		for col, cell := range cells {
			axis, err := excelize.CoordinatesToCellName(col+1, i+1)
			if err != nil {
				return fmt.Errorf("invalid cell coordinates (%d,%d): %w", col+1, i+1, err)
			}

			if err := out.SetCellStr(NotMatchSheet, axis, cell.Text); err != nil {
				return fmt.Errorf("failed to write cell %s: %w", axis, err)
			}
			if cell.Hyperlink != "" {
				if err := out.SetCellHyperLink(NotMatchSheet, axis, cell.Hyperlink, "External"); err != nil {
					return fmt.Errorf("failed to write hyperlink at %s: %w", axis, err)
				}
			}
		}
	}

	if err := out.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}

	return nil
}
