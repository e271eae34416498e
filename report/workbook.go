package report

import (
	"math"
	"os"
	"path/filepath"

	"github.com/carbocation/genepanel/correlation"
	"github.com/carbocation/genepanel/expression"
	"github.com/carbocation/pfx"
	"github.com/xuri/excelize/v2"
)

// Workbook sheet names.
const (
	MatrixSheet = "Correlation_Matrix"
	PairsSheet  = "Top_Correlations"
	StatsSheet  = "Expression_Stats"
)

// WriteWorkbook saves the correlation matrix, the given pairs and the
// per-sample summary statistics as three sheets of an .xlsx workbook. Missing
// values are left as empty cells.
func WriteWorkbook(path string, m *correlation.Matrix, pairs []correlation.Pair, stats []expression.SampleSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", MatrixSheet); err != nil {
		return pfx.Err(err)
	}
	for _, sheet := range []string{PairsSheet, StatsSheet} {
		if _, err := f.NewSheet(sheet); err != nil {
			return pfx.Err(err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return pfx.Err(err)
	}

	w := sheetWriter{f: f, bold: bold}

	// Correlation matrix: genes across and down
	w.sheet = MatrixSheet
	w.header(1, append([]string{""}, m.Genes...))
	for i, gene := range m.Genes {
		w.label(1, i+2, gene)
		for j := 0; j < m.Size(); j++ {
			w.number(j+2, i+2, m.At(i, j))
		}
	}

	// Ranked pairs, numbered from 1
	w.sheet = PairsSheet
	w.header(1, []string{"Rank", "Gene1", "Gene2", "Correlation", "Abs_Correlation"})
	for i, p := range pairs {
		row := i + 2
		w.number(1, row, float64(i+1))
		w.text(2, row, p.Gene1)
		w.text(3, row, p.Gene2)
		w.number(4, row, p.Correlation)
		w.number(5, row, p.AbsCorrelation)
	}

	// Summary statistics: one row per statistic, one column per sample
	w.sheet = StatsSheet
	header := []string{""}
	for _, s := range stats {
		header = append(header, s.Sample)
	}
	w.header(1, header)
	for r, name := range expression.SummaryRows {
		w.label(1, r+2, name)
		for c, s := range stats {
			w.number(c+2, r+2, s.Values()[r])
		}
	}

	if w.err != nil {
		return pfx.Err(w.err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return pfx.Err(err)
	}
	if err := f.SaveAs(path); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// sheetWriter remembers the first error so that cell writes can be chained.
// Columns and rows are 1-based.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	bold  int
	err   error
}

func (w *sheetWriter) cell(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil && w.err == nil {
		w.err = err
	}
	return name
}

func (w *sheetWriter) set(col, row int, value interface{}) {
	cell := w.cell(col, row)
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellValue(w.sheet, cell, value)
}

func (w *sheetWriter) text(col, row int, value string) {
	w.set(col, row, value)
}

func (w *sheetWriter) number(col, row int, value float64) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return
	}
	w.set(col, row, value)
}

func (w *sheetWriter) label(col, row int, value string) {
	w.set(col, row, value)
	if w.err != nil {
		return
	}
	cell := w.cell(col, row)
	w.err = w.f.SetCellStyle(w.sheet, cell, cell, w.bold)
}

func (w *sheetWriter) header(row int, values []string) {
	for i, v := range values {
		w.label(i+1, row, v)
	}
}
