package normalize

import (
	"strings"
)

// FieldKind selects which normalization rule applies to an identifying column.
type FieldKind int

const (
	// Name is a company name column.
	Name FieldKind = iota
	// Phone is a telephone number column.
	Phone
)

// corporatePrefix is stripped from company names wherever it appears,
// not only at the start of the string.
const corporatePrefix = "株式会社"

// phoneHyphens covers the separator characters seen in exported phone
// numbers: ASCII hyphen plus the full-width and long-dash variants that
// Japanese spreadsheet input methods produce.
var phoneHyphens = []string{"-", "－", "ー", "‐"}

// Normalize canonicalizes a raw cell value for matching. An empty raw
// value normalizes to the empty string for both field kinds.
func Normalize(raw string, kind FieldKind) string {
	if raw == "" {
		return ""
	}

	switch kind {
	case Name:
		return strings.ReplaceAll(raw, corporatePrefix, "")
	case Phone:
		result := raw
		for _, h := range phoneHyphens {
			result = strings.ReplaceAll(result, h, "")
		}
		return result
	}

	return raw
}
