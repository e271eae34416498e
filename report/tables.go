// Package report writes the tabular results of a correlation analysis and its
// console summary.
package report

import (
	"bufio"
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/carbocation/genepanel/cluster"
	"github.com/carbocation/genepanel/correlation"
	"github.com/carbocation/genepanel/expression"
	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// ClusterAssignment is one row of the flat cluster table.
type ClusterAssignment struct {
	Order   int    `csv:"Order"`
	Gene    string `csv:"Gene"`
	Cluster int    `csv:"Cluster"`
}

func create(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	return os.Create(path)
}

// WriteMatrixCSV writes the square matrix with an unnamed corner cell, the
// genes across the header and down the first column.
func WriteMatrixCSV(path string, m *correlation.Matrix) error {
	f, err := create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	buf := bufio.NewWriter(f)
	w := csv.NewWriter(buf)

	if err := w.Write(append([]string{""}, m.Genes...)); err != nil {
		return pfx.Err(err)
	}

	row := make([]string, m.Size()+1)
	for i, gene := range m.Genes {
		row[0] = gene
		for j := 0; j < m.Size(); j++ {
			row[j+1] = expression.FormatValue(m.At(i, j))
		}
		if err := w.Write(row); err != nil {
			return pfx.Err(err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return pfx.Err(err)
	}
	if err := buf.Flush(); err != nil {
		return pfx.Err(err)
	}

	return f.Close()
}

// WritePairsCSV writes every ranked pair with the header
// Gene1,Gene2,Correlation,Abs_Correlation.
func WritePairsCSV(path string, pairs []correlation.Pair) error {
	f, err := create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	if pairs == nil {
		pairs = []correlation.Pair{}
	}

	if err := gocsv.MarshalFile(&pairs, f); err != nil {
		return pfx.Err(err)
	}

	return f.Close()
}

// ClusterAssignments lists the genes in dendrogram leaf order with their flat
// cluster at the given cut height.
func ClusterAssignments(d *cluster.Dendrogram, height float64) []ClusterAssignment {
	clusters := d.Cut(height)

	out := make([]ClusterAssignment, 0, d.Len())
	for i, leaf := range d.Leaves() {
		out = append(out, ClusterAssignment{
			Order:   i + 1,
			Gene:    d.Labels[leaf],
			Cluster: clusters[leaf],
		})
	}

	return out
}

// WriteClustersCSV writes ClusterAssignments as Order,Gene,Cluster.
func WriteClustersCSV(path string, d *cluster.Dendrogram, height float64) error {
	rows := ClusterAssignments(d, height)

	f, err := create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return pfx.Err(err)
	}

	return f.Close()
}
