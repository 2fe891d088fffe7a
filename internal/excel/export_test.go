package excel

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Every cell of an unmatched source row must appear in the export at the
// same column position, explicit blanks included.
func TestExportUnmatchedRoundTrip(t *testing.T) {
	sheet, err := Open(writeFixture(t), "リスト", 2, "N")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer sheet.Close()

	outPath := filepath.Join(t.TempDir(), "not_match.xlsx")
	if err := ExportUnmatched(sheet, []int{3, 4}, outPath); err != nil {
		t.Fatalf("ExportUnmatched() error = %v", err)
	}

	out, err := excelize.OpenFile(outPath)
	if err != nil {
		t.Fatalf("failed to reopen export: %v", err)
	}
	defer out.Close()

	idx, err := out.GetSheetIndex(NotMatchSheet)
	if err != nil || idx == -1 {
		t.Fatalf("export has no %s sheet (idx %d, err %v)", NotMatchSheet, idx, err)
	}

	// Exported row 1 mirrors source row 3, row 2 mirrors source row 4.
	for exportRow, srcRow := range map[int]int{1: 3, 2: 4} {
		srcCells, err := sheet.Row(srcRow)
		if err != nil {
			t.Fatalf("failed to read source row %d: %v", srcRow, err)
		}

		for col, want := range srcCells {
			axis, err := excelize.CoordinatesToCellName(col+1, exportRow)
			if err != nil {
				t.Fatalf("invalid coordinates: %v", err)
			}
			got, err := out.GetCellValue(NotMatchSheet, axis)
			if err != nil {
				t.Fatalf("failed to read export cell %s: %v", axis, err)
			}
			if got != want.Text {
				t.Errorf("export cell %s = %q, want %q (source row %d)", axis, got, want.Text, srcRow)
			}
		}
	}
}

func TestExportUnmatchedEmptyPartition(t *testing.T) {
	sheet, err := Open(writeFixture(t), "リスト", 2, "N")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer sheet.Close()

	outPath := filepath.Join(t.TempDir(), "not_match.xlsx")
	if err := ExportUnmatched(sheet, nil, outPath); err != nil {
		t.Fatalf("ExportUnmatched() error = %v", err)
	}

	out, err := excelize.OpenFile(outPath)
	if err != nil {
		t.Fatalf("failed to reopen export: %v", err)
	}
	defer out.Close()

	rows, err := out.GetRows(NotMatchSheet)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("empty partition produced %d rows", len(rows))
	}
}
