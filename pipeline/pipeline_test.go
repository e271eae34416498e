package pipeline

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/carbocation/genepanel/expression"
	"github.com/carbocation/genepanel/panel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quiet = log.New(io.Discard, "", 0)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
}

func subsetOptions(dir string) SubsetOptions {
	opts := DefaultSubsetOptions()
	opts.GenePanel = filepath.Join(dir, DefaultGenePanel)
	opts.Matrix = filepath.Join(dir, DefaultMatrix)
	opts.Output = filepath.Join(dir, DefaultSubset)
	opts.Log = quiet
	opts.Out = io.Discard
	return opts
}

func correlateOptions(dir string) CorrelateOptions {
	opts := DefaultCorrelateOptions()
	opts.Input = filepath.Join(dir, DefaultSubset)
	opts.FiguresDir = filepath.Join(dir, DefaultFiguresDir)
	opts.TablesDir = filepath.Join(dir, DefaultTablesDir)
	opts.Log = quiet
	opts.Out = io.Discard
	return opts
}

func TestSubsetScenario(t *testing.T) {
	dir := t.TempDir()
	opts := subsetOptions(dir)

	writeFile(t, opts.GenePanel, "F2\nF5\n\nMISSING_GENE\n")
	writeFile(t, opts.Matrix, strings.Join([]string{
		"gene_id\tS1\tS2\tS3",
		"F2\t1\t2\t3",
		"OTHER\t9\t9\t9",
		"F5\t4\t5\t6",
	}, "\n")+"\n")

	res, err := Subset(opts)
	require.NoError(t, err)

	assert.Equal(t, panel.Panel{"F2", "F5"}, res.Found)
	assert.Equal(t, panel.Panel{"MISSING_GENE"}, res.NotFound)
	assert.Equal(t, 3, res.MatrixGenes)
	assert.Equal(t, 3, res.MatrixSamples)
	assert.True(t, res.Written)

	written, err := expression.ReadCSVFile(opts.Output)
	require.NoError(t, err)

	genes, samples := written.Dims()
	assert.Equal(t, 2, genes)
	assert.Equal(t, 3, samples)
	assert.Equal(t, []string{"F2", "F5"}, written.Genes)
	assert.Equal(t, []string{"S1", "S2", "S3"}, written.Samples)
	assert.Equal(t, []float64{4, 5, 6}, written.Row(1))

	require.Len(t, res.Means, 2)
	assert.Equal(t, 2.0, res.Means[0].Mean)
	assert.Equal(t, 5.0, res.Means[1].Mean)
}

func TestSubsetUnderscoreGeneIDs(t *testing.T) {
	dir := t.TempDir()
	opts := subsetOptions(dir)

	writeFile(t, opts.GenePanel, "F2_2147\nPROC_5624\n")
	writeFile(t, opts.Matrix, strings.Join([]string{
		"gene_id\tS1\tS2\tS3",
		"F2_2147\t1\t2\t3",
		"F5_2153\t4\t5\t6",
		"PROC_5624\t7\t8\t9",
	}, "\n")+"\n")

	// The separator guess must not depend on map iteration order.
	for i := 0; i < 40; i++ {
		res, err := Subset(opts)
		require.NoError(t, err, "run %d", i)
		assert.Equal(t, panel.Panel{"F2_2147", "PROC_5624"}, res.Found, "run %d", i)
		assert.Equal(t, 3, res.MatrixSamples, "run %d", i)
	}
}

func TestSubsetMissingInputs(t *testing.T) {
	dir := t.TempDir()
	opts := subsetOptions(dir)

	_, err := Subset(opts)
	require.Error(t, err)
	assert.True(t, IsMissingInput(err))
	assert.Contains(t, err.Error(), opts.GenePanel)

	writeFile(t, opts.GenePanel, "F2\n")
	_, err = Subset(opts)
	require.Error(t, err)
	assert.True(t, IsMissingInput(err))
	assert.Contains(t, err.Error(), opts.Matrix)

	_, err = os.Stat(opts.Output)
	assert.True(t, os.IsNotExist(err))
}

func TestSubsetNothingFound(t *testing.T) {
	dir := t.TempDir()
	opts := subsetOptions(dir)

	writeFile(t, opts.GenePanel, "MISSING_GENE\n")
	writeFile(t, opts.Matrix, "gene_id\tS1\nF2\t1\n")

	res, err := Subset(opts)
	require.NoError(t, err)
	assert.False(t, res.Written)
	assert.Empty(t, res.Found)

	_, err = os.Stat(opts.Output)
	assert.True(t, os.IsNotExist(err))
}

func TestCorrelateWithoutSubsetWritesNothing(t *testing.T) {
	dir := t.TempDir()

	_, err := Correlate(correlateOptions(dir))
	require.Error(t, err)
	assert.True(t, IsMissingInput(err))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCorrelate(t *testing.T) {
	dir := t.TempDir()
	opts := correlateOptions(dir)

	writeFile(t, opts.Input, strings.Join([]string{
		"gene_id,S1,S2,S3,S4,S5",
		"A,1,2,3,4,5",
		"B,1,2,3,4,5",
		"C,2,5,1,4,3",
	}, "\n")+"\n")

	res, err := Correlate(opts)
	require.NoError(t, err)

	require.Len(t, res.Ranked, 3)
	assert.Equal(t, "A", res.Ranked[0].Gene1)
	assert.Equal(t, "B", res.Ranked[0].Gene2)
	assert.InDelta(t, 1.0, res.Ranked[0].Correlation, 1e-12)

	assert.Equal(t, 3, res.Findings.Pairs)
	assert.True(t, res.Findings.HasTop)
	require.Len(t, res.Clusters, 3)
	require.Len(t, res.Stats, 5)

	for _, name := range []string{ClusteredHeatmapPNG, ClusteredHeatmapPDF, CorrelationHeatmap, StrongCorrelations, TopCorrelationsBar} {
		assert.FileExists(t, filepath.Join(opts.FiguresDir, name))
	}
	for _, name := range []string{CorrelationMatrixCSV, TopCorrelationsCSV, GeneClustersCSV, ResultsWorkbook} {
		assert.FileExists(t, filepath.Join(opts.TablesDir, name))
	}
	assert.Len(t, res.Figures, 5)
	assert.Len(t, res.Tables, 4)
}

func TestCorrelateSkipFigures(t *testing.T) {
	dir := t.TempDir()
	opts := correlateOptions(dir)
	opts.SkipFigures = true

	writeFile(t, opts.Input, "gene_id,S1,S2,S3\nA,1,2,3\nB,3,2,1\n")

	res, err := Correlate(opts)
	require.NoError(t, err)
	assert.Empty(t, res.Figures)
	assert.Len(t, res.Tables, 4)

	_, err = os.Stat(opts.FiguresDir)
	assert.True(t, os.IsNotExist(err))
}

func TestStagesChain(t *testing.T) {
	dir := t.TempDir()
	sOpts := subsetOptions(dir)

	writeFile(t, sOpts.GenePanel, "F2\nF5\nPROC\n")
	writeFile(t, sOpts.Matrix, strings.Join([]string{
		"gene_id\tS1\tS2\tS3\tS4",
		"F2\t1\t2\t3\t4",
		"F5\t2\t4\t6\t9",
		"PROC\t4\t3\t2\tNA",
	}, "\n")+"\n")

	_, err := Subset(sOpts)
	require.NoError(t, err)

	cOpts := correlateOptions(dir)
	cOpts.SkipFigures = true
	res, err := Correlate(cOpts)
	require.NoError(t, err)

	assert.Equal(t, []string{"F2", "F5", "PROC"}, res.Matrix.Genes)
	assert.InDelta(t, 1.0, res.Matrix.At(0, 1), 1e-12)
	assert.InDelta(t, -1.0, res.Matrix.At(0, 2), 1e-12)
	assert.Equal(t, 3, res.Findings.Strong)
}
