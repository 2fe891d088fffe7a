package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries the fixed layout of a reconciliation run: workbook
// location, the column contract of the prospect sheet, the update-column
// mapping and the output artifact paths. It is built once at the top
// level and passed into each component.
type Config struct {
	// WorkbookPath is the prospect list export to reconcile.
	WorkbookPath string
	// SheetName is the sheet holding the prospect rows.
	SheetName string
	// StartRow is the first data row (1-based); rows above it are headers.
	StartRow int

	// NameColumn and PhoneColumn are the identifying source columns.
	NameColumn  string
	PhoneColumn string

	// LastColumn bounds the cell range of a row. Re-reads for export and
	// script generation always cover the full A..LastColumn range so
	// column positions survive empty cells.
	LastColumn string
	// SkipColumns is the count of leading columns excluded from the
	// update script (identifying/descriptive data, not subject to update).
	SkipColumns int

	// UpdateTable is the authoritative table the script updates.
	UpdateTable string
	// UpdateColumns maps a data column letter to its store field name.
	UpdateColumns map[string]string
	// IPOColumn is the one column whose display text is translated
	// through the listing-status code table instead of being quoted.
	IPOColumn string

	// NotMatchPath receives the workbook of unmatched rows.
	NotMatchPath string
	// ScriptPath receives the generated UPDATE script.
	ScriptPath string
}

// ipoCodes maps listing-status display text to its stored code. 未選択 is
// the dropdown's empty selection and carries no code; unknown labels are
// treated the same way.
var ipoCodes = map[string]int{
	"東証グロース":   1,
	"東証スタンダード": 2,
	"東証プライム":   3,
	"名証プレミア":   4,
	"名証メイン":    5,
	"福証":       6,
	"札証":       7,
	"未上場":      8,
}

// IPOCode resolves a listing-status label to its stored code. The second
// return is false when the label carries no code (未選択 or unrecognized
// text), in which case the field must be written as SQL null.
func (c *Config) IPOCode(label string) (int, bool) {
	code, ok := ipoCodes[label]
	return code, ok
}

// Default returns the canonical column contract for the prospect list
// export.
func Default() *Config {
	return &Config{
		WorkbookPath: GetEnv("PROSPECT_WORKBOOK", "prospects.xlsx"),
		SheetName:    GetEnv("PROSPECT_SHEET", "リスト"),
		StartRow:     2,
		NameColumn:   "C",
		PhoneColumn:  "D",
		LastColumn:   "N",
		SkipColumns:  5,
		UpdateTable:  "companies",
		UpdateColumns: map[string]string{
			"F": "email",
			"G": "main_business_sector",
			"H": "other_business_sector",
			"I": "ipo_type",
			"J": "office_number",
			"K": "office_name",
			"L": "office_type_name1",
			"M": "office_type_name2",
			"N": "url",
		},
		IPOColumn:    "I",
		NotMatchPath: GetEnv("NOT_MATCH_PATH", "not_match.xlsx"),
		ScriptPath:   GetEnv("UPDATE_SCRIPT_PATH", "update_companies.sql"),
	}
}

// LoadEnv loads environment variables from a .env file in the current or
// a parent directory. Variables already set in the environment win.
func LoadEnv() error {
	envPaths := []string{".env", "../.env", "../../.env"}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			return godotenv.Load(envPath)
		}
	}
	return nil
}

// GetEnv gets environment variable with default
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvInt gets integer environment variable with default
func GetEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
