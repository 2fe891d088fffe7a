package engine

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/prospect-recon/internal/config"
	"github.com/prospect-recon/internal/debug"
	"github.com/prospect-recon/internal/excel"
	"github.com/prospect-recon/internal/normalize"
	"github.com/prospect-recon/internal/script"
	"github.com/prospect-recon/internal/store"
)

// Pipeline runs one reconciliation pass: read the identifying columns,
// fetch the candidate pool, partition the rows and write the two output
// artifacts. The job runs once, synchronously, to completion or fails
// outright; there are no retries.
type Pipeline struct {
	cfg   *config.Config
	store *store.Store
	log   *logrus.Logger
}

// Summary holds the counters of a completed run.
type Summary struct {
	TotalRows  int
	Matched    int
	Unmatched  int
	Candidates int
}

// NewPipeline creates a new reconciliation pipeline
func NewPipeline(cfg *config.Config, st *store.Store, log *logrus.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, store: st, log: log}
}

// Run executes the pipeline against the configured workbook.
func (p *Pipeline) Run() (*Summary, error) {
	sheet, err := excel.Open(p.cfg.WorkbookPath, p.cfg.SheetName, p.cfg.StartRow, p.cfg.LastColumn)
	if err != nil {
		return nil, err
	}
	defer sheet.Close()

	p.log.WithFields(logrus.Fields{
		"workbook": p.cfg.WorkbookPath,
		"sheet":    p.cfg.SheetName,
		"rows":     sheet.LastRow() - sheet.StartRow() + 1,
	}).Info("starting reconciliation")

	// The two identifying columns are independent read-only projections
	// of the same sheet; read them concurrently and join before matching.
	var (
		wg                  sync.WaitGroup
		nameCells, telCells map[int]excel.CellValue
		nameErr, telErr     error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		nameCells, nameErr = sheet.Column(p.cfg.NameColumn)
	}()
	go func() {
		defer wg.Done()
		telCells, telErr = sheet.Column(p.cfg.PhoneColumn)
	}()
	wg.Wait()
	if nameErr != nil {
		return nil, fmt.Errorf("failed to read name column: %w", nameErr)
	}
	if telErr != nil {
		return nil, fmt.Errorf("failed to read phone column: %w", telErr)
	}

	names := normalizeColumn(nameCells, normalize.Name)
	phones := normalizeColumn(telCells, normalize.Phone)

	done := debug.Timing(p.log, "candidate pool query")
	pool, err := p.store.FindCandidates(batchValues(names), batchValues(phones))
	done()
	if err != nil {
		return nil, err
	}
	p.log.WithField("candidates", len(pool)).Info("candidate pool fetched")

	report := BuildReport(names, phones, pool)

	// The writers operate on disjoint partitions with no ordering
	// dependency on each other; neither starts before the report is
	// complete.
	var exportErr, scriptErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		exportErr = excel.ExportUnmatched(sheet, rowNumbers(report.Unmatched), p.cfg.NotMatchPath)
	}()
	go func() {
		defer wg.Done()
		scriptErr = p.writeScript(sheet, report.Matched)
	}()
	wg.Wait()
	if exportErr != nil {
		return nil, fmt.Errorf("failed to export unmatched rows: %w", exportErr)
	}
	if scriptErr != nil {
		return nil, scriptErr
	}

	summary := &Summary{
		TotalRows:  len(report.Matched) + len(report.Unmatched),
		Matched:    len(report.Matched),
		Unmatched:  len(report.Unmatched),
		Candidates: len(pool),
	}
	p.log.WithFields(logrus.Fields{
		"total":     summary.TotalRows,
		"matched":   summary.Matched,
		"unmatched": summary.Unmatched,
	}).Info("reconciliation complete")

	return summary, nil
}

// writeScript generates and persists the UPDATE script for the matched
// partition.
func (p *Pipeline) writeScript(sheet *excel.Sheet, matched []MatchRow) error {
	rows := make([]script.MatchedRow, 0, len(matched))
	for _, row := range matched {
		rows = append(rows, script.MatchedRow{
			Number: row.Number,
			Name:   row.Name,
			Tel:    row.Phone,
		})
	}

	text, err := script.Generate(sheet, rows, p.cfg)
	if err != nil {
		return err
	}
	return script.Write(p.cfg.ScriptPath, text)
}

// normalizeColumn normalizes every cell of an identifying column. Only
// the display text of a cell participates; hyperlink targets are ignored.
func normalizeColumn(cells map[int]excel.CellValue, kind normalize.FieldKind) map[int]string {
	values := make(map[int]string, len(cells))
	for row, cell := range cells {
		values[row] = normalize.Normalize(cell.Text, kind)
	}
	return values
}

// batchValues collects the distinct normalized values of a column in a
// stable order for the batch query.
func batchValues(column map[int]string) []string {
	seen := make(map[string]bool, len(column))
	var values []string
	for _, v := range column {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// rowNumbers extracts the row numbers of a partition in ascending order.
func rowNumbers(rows []MatchRow) []int {
	numbers := make([]int, 0, len(rows))
	for _, row := range rows {
		numbers = append(numbers, row.Number)
	}
	sort.Ints(numbers)
	return numbers
}
