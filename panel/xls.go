package panel

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/extrame/xls"
)

// IsSpreadsheet reports whether the panel path names a legacy Excel workbook.
func IsSpreadsheet(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xls")
}

// ReadXLS reads gene identifiers from the first cell of every row of the first
// sheet. A first row whose value looks like a column title ("gene", "symbol")
// is skipped.
func ReadXLS(path string) (Panel, error) {
	spreadsheet, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, pfx.Err(err)
	}

	if spreadsheet.NumSheets() < 1 {
		return nil, fmt.Errorf("%s contains no sheets", path)
	}

	sheet := spreadsheet.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("%s: first sheet could not be read", path)
	}

	out := make(Panel, 0, int(sheet.MaxRow)+1)
	for rowID := 0; rowID <= int(sheet.MaxRow); rowID++ {
		row := sheetRow(sheet, rowID)
		if row == nil {
			continue
		}

		gene := strings.TrimSpace(row.Col(0))
		if gene == "" {
			continue
		}

		if rowID == 0 && isHeader(gene) {
			continue
		}

		out = append(out, gene)
	}

	return out.Unique(), nil
}

// sheetRow returns nil for rows the sheet never stored. WorkSheet.Row
// dereferences the missing entry instead of reporting it.
func sheetRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()

	return sheet.Row(i)
}

func isHeader(cell string) bool {
	switch strings.ToLower(cell) {
	case "gene", "genes", "symbol", "gene_symbol", "hugo_symbol", "gene_id":
		return true
	}

	return false
}
