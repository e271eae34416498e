package expression

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"github.com/carbocation/pfx"
)

// WriteCSV writes the table as comma-separated values: a header holding the
// index name and the sample identifiers, then one row per gene.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(append([]string{t.IndexName}, t.Samples...)); err != nil {
		return pfx.Err(err)
	}

	row := make([]string, len(t.Samples)+1)
	for i, gene := range t.Genes {
		row[0] = gene
		for j := range t.Samples {
			row[j+1] = FormatValue(t.At(i, j))
		}
		if err := cw.Write(row); err != nil {
			return pfx.Err(err)
		}
	}

	cw.Flush()

	return pfx.Err(cw.Error())
}

// WriteCSVFile writes the table to path, creating parent directories and
// replacing any existing file.
func WriteCSVFile(path string, t *Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return pfx.Err(err)
	}

	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := WriteCSV(bw, t); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return pfx.Err(err)
	}

	return pfx.Err(f.Close())
}

// ReadCSV reads a table written by WriteCSV.
func ReadCSV(r io.Reader) (*Table, error) {
	return ReadMatrix(r, ',')
}

// ReadCSVFile reads a table written by WriteCSVFile.
func ReadCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	return ReadCSV(bufio.NewReader(f))
}
