package expression

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
)

// ReadMatrix parses a delimited genes×samples matrix. The header row lists the
// sample identifiers; its first field names the gene column. Files written by
// R omit that first field, so a header one field shorter than the data rows is
// also accepted. The first column of every data row is the gene identifier.
// Only the first row of a repeated gene identifier is kept.
func ReadMatrix(r io.Reader, delimiter rune) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("the expression matrix is empty")
	} else if err != nil {
		return nil, pfx.Err(err)
	}
	header = append([]string(nil), header...)

	var (
		indexName string
		samples   []string
		genes     = make([]string, 0)
		data      = make([]float64, 0)
		seen      = make(map[string]struct{})
		dupes     = make([]string, 0)
		line      = 1
	)

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, pfx.Err(err)
		}
		line++

		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}

		if samples == nil {
			indexName, samples, err = splitHeader(header, len(row))
			if err != nil {
				return nil, err
			}
		}

		if len(row) != len(samples)+1 {
			return nil, fmt.Errorf("line %d has %d fields, but the header implies %d", line, len(row), len(samples)+1)
		}

		gene := strings.TrimSpace(row[0])
		if _, exists := seen[gene]; exists {
			dupes = append(dupes, gene)
			continue
		}
		seen[gene] = struct{}{}

		for col, field := range row[1:] {
			v, err := ParseValue(field)
			if err != nil {
				return nil, fmt.Errorf("line %d, sample %s: %w", line, samples[col], err)
			}
			data = append(data, v)
		}
		genes = append(genes, gene)
	}

	if samples == nil {
		indexName, samples, _ = splitHeader(header, len(header))
	}

	t, err := NewTable(indexName, genes, samples, data)
	if err != nil {
		return nil, err
	}
	t.Duplicates = dupes

	return t, nil
}

func splitHeader(header []string, rowWidth int) (indexName string, samples []string, err error) {
	switch len(header) {
	case rowWidth:
		return strings.TrimSpace(header[0]), trimAll(header[1:]), nil
	case rowWidth - 1:
		return "", trimAll(header), nil
	}

	return "", nil, fmt.Errorf("header has %d fields but the first data row has %d", len(header), rowWidth)
}

func trimAll(fields []string) []string {
	out := make([]string, len(fields))
	for i, v := range fields {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

// ParseValue converts one matrix cell. Empty cells and the usual missing-value
// spellings become NaN.
func ParseValue(field string) (float64, error) {
	field = strings.TrimSpace(field)

	switch strings.ToLower(field) {
	case "", "na", "nan", "null", "n/a":
		return math.NaN(), nil
	}

	return strconv.ParseFloat(field, 64)
}

// FormatValue is the inverse of ParseValue; NaN is written as an empty cell.
func FormatValue(v float64) string {
	if math.IsNaN(v) {
		return ""
	}

	return strconv.FormatFloat(v, 'g', -1, 64)
}
