package script

import (
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/prospect-recon/internal/config"
	"github.com/prospect-recon/internal/excel"
)

// MatchedRow identifies one matched source row: its number plus the
// normalized identifying values that key the generated WHERE clause.
type MatchedRow struct {
	Number int
	Name   string
	Tel    string
}

// safety toggle wrapped around the statement block; the content-keyed
// WHERE clause trips MySQL safe-update mode otherwise.
const (
	preamble  = "SET SQL_SAFE_UPDATES = 0;"
	postamble = "SET SQL_SAFE_UPDATES = 1;"
)

// Generate builds the UPDATE script for the matched rows, one statement
// per row in row order. Each row's full cell range is re-read from the
// source sheet so empty cells keep their column positions; the leading
// descriptive columns are skipped and every remaining column must resolve
// through the update mapping. Output is deterministic: identical input
// produces byte-identical script text.
//
// Field values are embedded without escaping of single quotes. Input data
// containing unescaped quotes must be sanitized upstream.
func Generate(sheet *excel.Sheet, matched []MatchedRow, cfg *config.Config) (string, error) {
	var b strings.Builder
	b.WriteString(preamble)
	b.WriteString("\n")

	for _, row := range matched {
		stmt, err := statement(sheet, row, cfg)
		if err != nil {
			return "", err
		}
		b.WriteString(stmt)
		b.WriteString("\n")
	}

	b.WriteString(postamble)
	b.WriteString("\n")
	return b.String(), nil
}

// statement builds the UPDATE for one matched row. The WHERE clause
// re-derives the row's identity from content instead of a possibly stale
// row id, so the script stays correct against a drifted dataset.
func statement(sheet *excel.Sheet, row MatchedRow, cfg *config.Config) (string, error) {
	cells, err := sheet.Row(row.Number)
	if err != nil {
		return "", fmt.Errorf("failed to re-read row %d: %w", row.Number, err)
	}

	var assignments []string
	for i := cfg.SkipColumns; i < len(cells); i++ {
		column, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return "", fmt.Errorf("invalid column number %d: %w", i+1, err)
		}

		field, ok := cfg.UpdateColumns[column]
		if !ok {
			// A data column without a mapping entry would silently
			// truncate the UPDATE; abort instead.
			return "", fmt.Errorf("no update mapping for column %s (row %d)", column, row.Number)
		}

		// Hyperlink cells contribute their display text, which is what
		// CellValue.Text already carries.
		value := cells[i].Text

		if column == cfg.IPOColumn {
			if code, ok := cfg.IPOCode(value); ok {
				assignments = append(assignments, fmt.Sprintf("%s=%d", field, code))
			} else {
				assignments = append(assignments, field+"=null")
			}
			continue
		}

		assignments = append(assignments, fmt.Sprintf("%s='%s'", field, value))
	}

	return fmt.Sprintf("UPDATE %s SET %s WHERE name = '%s' OR tel = '%s';",
		cfg.UpdateTable, strings.Join(assignments, ", "), row.Name, row.Tel), nil
}

// Write persists the generated script as a single text artifact.
func Write(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write script %s: %w", path, err)
	}
	return nil
}
