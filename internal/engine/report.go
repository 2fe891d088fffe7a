package engine

import (
	"sort"
	"strings"

	"github.com/prospect-recon/internal/store"
)

// MatchRow is the reconciliation result for one source row: its number,
// normalized identifying values and the candidate records attributed to
// it from the batch pool.
type MatchRow struct {
	Number     int
	Name       string
	Phone      string
	Candidates []store.Company
}

// Report partitions the source rows. Every row lands in exactly one of
// the two slices: Matched when its candidate set is non-empty, Unmatched
// otherwise. Both follow ascending row order.
type Report struct {
	Matched   []MatchRow
	Unmatched []MatchRow
}

// BuildReport attributes the batch candidate pool back to individual rows.
// The per-row filter is the same predicate the batch query used, evaluated
// against one row's values, so a candidate fetched for row A's phone can
// also attach to row B when row B's name happens to be a substring of the
// candidate's name. Row numbers are taken from the phone column; both
// identifying columns were read from the same sheet range.
func BuildReport(names, phones map[int]string, pool []store.Company) *Report {
	numbers := make([]int, 0, len(phones))
	for row := range phones {
		numbers = append(numbers, row)
	}
	sort.Ints(numbers)

	report := &Report{}
	for _, number := range numbers {
		row := MatchRow{
			Number: number,
			Name:   names[number],
			Phone:  phones[number],
		}

		for _, candidate := range pool {
			if rowMatches(row, candidate) {
				row.Candidates = append(row.Candidates, candidate)
			}
		}

		if len(row.Candidates) > 0 {
			report.Matched = append(report.Matched, row)
		} else {
			report.Unmatched = append(report.Unmatched, row)
		}
	}

	return report
}

// rowMatches checks one candidate against one row: exact tel equality or
// substring name containment, empty values excluded from both arms.
func rowMatches(row MatchRow, candidate store.Company) bool {
	if row.Phone != "" && candidate.Tel == row.Phone {
		return true
	}
	if row.Name != "" && strings.Contains(candidate.Name, row.Name) {
		return true
	}
	return false
}
