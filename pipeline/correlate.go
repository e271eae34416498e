package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"

	"github.com/carbocation/genepanel"
	"github.com/carbocation/genepanel/cluster"
	"github.com/carbocation/genepanel/correlation"
	"github.com/carbocation/genepanel/expression"
	"github.com/carbocation/genepanel/heatmap"
	"github.com/carbocation/genepanel/report"
)

// CorrelateOptions configure the correlation and clustering stage.
type CorrelateOptions struct {
	Input      string
	FiguresDir string
	TablesDir  string

	Method correlation.Method

	// Threshold is the cutoff of the thresholded heatmap view.
	Threshold float64

	// Strong is the cutoff above which a pair counts as strongly correlated.
	Strong float64

	// TopN pairs are printed and charted; WorkbookTop pairs go to the workbook.
	TopN        int
	WorkbookTop int

	// CutHeight is the dendrogram height at which flat gene clusters are
	// formed.
	CutHeight float64

	// PanelName appears in figure titles.
	PanelName string

	// PDF also writes the clustered heatmap as a PDF at DPI.
	PDF bool
	DPI float64

	// SkipFigures runs only the numeric and tabular parts.
	SkipFigures bool

	Log *log.Logger
	Out io.Writer
}

// DefaultCorrelateOptions uses the fixed default paths and cutoffs.
func DefaultCorrelateOptions() CorrelateOptions {
	return CorrelateOptions{
		Input:       DefaultSubset,
		FiguresDir:  DefaultFiguresDir,
		TablesDir:   DefaultTablesDir,
		Method:      correlation.Spearman,
		Threshold:   0.6,
		Strong:      0.7,
		TopN:        10,
		WorkbookTop: 20,
		CutHeight:   0.5,
		PanelName:   "Thrombophilia Genes",
		PDF:         true,
		DPI:         300,
	}
}

// CorrelateResult holds everything the stage computed and the files it wrote.
type CorrelateResult struct {
	Table      *expression.Table
	Matrix     *correlation.Matrix
	Ranked     []correlation.Pair
	Strong     *correlation.Matrix
	Dendrogram *cluster.Dendrogram
	Clusters   []report.ClusterAssignment
	Stats      []expression.SampleSummary
	Findings   report.Findings

	Figures []string
	Tables  []string
}

// Correlate reads the subset written by Subset, correlates every pair of
// genes, ranks the pairs, clusters the genes and writes figures and tables. If
// the subset does not exist a *MissingInputError is returned and nothing is
// written.
func Correlate(opts CorrelateOptions) (*CorrelateResult, error) {
	ctx := context.Background()
	say := newNarration(opts.Log, opts.Out)

	input := genepanel.ExpandHome(opts.Input)
	figures := genepanel.ExpandHome(opts.FiguresDir)
	tables := genepanel.ExpandHome(opts.TablesDir)

	if err := requireInput(ctx, input, nil, "Please run panelsubset first to produce it."); err != nil {
		return nil, err
	}

	say.log.Println("Loading processed data", input)
	t, err := readSubset(ctx, input)
	if err != nil {
		return nil, err
	}
	nGenes, nSamples := t.Dims()
	say.log.Printf("Loaded %d genes, %d samples\n", nGenes, nSamples)

	out := &CorrelateResult{Table: t}

	say.log.Printf("Computing %s correlations between genes\n", opts.Method.Title())
	if out.Matrix, err = correlation.Compute(t, opts.Method); err != nil {
		return nil, err
	}
	out.Ranked = out.Matrix.Ranked()
	out.Strong = out.Matrix.Threshold(opts.Threshold)

	say.log.Println("Clustering genes by correlation distance with average linkage")
	if out.Dendrogram, err = cluster.Genes(t); err != nil {
		return nil, err
	}
	out.Clusters = report.ClusterAssignments(out.Dendrogram, opts.CutHeight)
	out.Stats = expression.Describe(t)
	out.Findings = report.Summarize(out.Ranked, opts.Strong)

	if !opts.SkipFigures {
		if err := writeFigures(say, out, opts, figures); err != nil {
			return nil, err
		}
	}

	if err := writeTables(say, out, opts, tables); err != nil {
		return nil, err
	}

	fmt.Fprintf(say.out, "Top %d strongest gene correlations:\n", opts.TopN)
	report.PrintTopPairs(say.out, out.Ranked, opts.TopN)
	fmt.Fprintln(say.out)
	if err := report.PrintDistribution(say.out, out.Ranked, 10); err != nil {
		return nil, err
	}
	fmt.Fprintln(say.out)
	report.PrintFindings(say.out, out.Findings)

	return out, nil
}

func readSubset(ctx context.Context, path string) (*expression.Table, error) {
	f, err := genepanel.Open(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := expression.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return t, nil
}

func writeFigures(say narration, res *CorrelateResult, opts CorrelateOptions, dir string) error {
	save := func(name string, render func(path string) error) error {
		path := filepath.Join(dir, name)
		if err := render(path); err != nil {
			return err
		}
		res.Figures = append(res.Figures, path)
		say.log.Println("Saved", path)
		return nil
	}

	clustered, err := heatmap.Clustered(res.Table, res.Dendrogram, heatmap.Options{
		Title: fmt.Sprintf("Clustered Heatmap: %s Expression Patterns (Genes Clustered by Correlation)", opts.PanelName),
	})
	if err != nil {
		return err
	}
	if err := save(ClusteredHeatmapPNG, func(path string) error { return heatmap.SavePNG(clustered, path) }); err != nil {
		return err
	}
	if opts.PDF {
		if err := save(ClusteredHeatmapPDF, func(path string) error { return heatmap.SavePDF(clustered, path, opts.DPI) }); err != nil {
			return err
		}
	}

	triangle := heatmap.LowerTriangle(res.Matrix, heatmap.Options{
		Title: fmt.Sprintf("Correlation Matrix: %s Co-expression Patterns", opts.PanelName),
	})
	if err := save(CorrelationHeatmap, func(path string) error { return heatmap.SavePNG(triangle, path) }); err != nil {
		return err
	}

	strong := heatmap.Full(res.Strong, heatmap.Options{
		Title:         fmt.Sprintf("Strong Correlations Between %s (Threshold: |r| > %g)", opts.PanelName, opts.Threshold),
		ColorbarLabel: fmt.Sprintf("Correlation > %g", opts.Threshold),
		Annotate:      true,
	})
	if err := save(StrongCorrelations, func(path string) error { return heatmap.SavePNG(strong, path) }); err != nil {
		return err
	}

	title := fmt.Sprintf("Top %d Gene Pairs by |%s r|", opts.TopN, opts.Method.Title())
	return save(TopCorrelationsBar, func(path string) error {
		return heatmap.TopPairsChart(res.Ranked, opts.TopN, title, path)
	})
}

func writeTables(say narration, res *CorrelateResult, opts CorrelateOptions, dir string) error {
	save := func(name string, write func(path string) error) error {
		path := filepath.Join(dir, name)
		if err := write(path); err != nil {
			return err
		}
		res.Tables = append(res.Tables, path)
		say.log.Println("Saved", path)
		return nil
	}

	if err := save(CorrelationMatrixCSV, func(path string) error { return report.WriteMatrixCSV(path, res.Matrix) }); err != nil {
		return err
	}
	if err := save(TopCorrelationsCSV, func(path string) error { return report.WritePairsCSV(path, res.Ranked) }); err != nil {
		return err
	}
	if err := save(GeneClustersCSV, func(path string) error {
		return report.WriteClustersCSV(path, res.Dendrogram, opts.CutHeight)
	}); err != nil {
		return err
	}

	return save(ResultsWorkbook, func(path string) error {
		return report.WriteWorkbook(path, res.Matrix, correlation.Top(res.Ranked, opts.WorkbookTop), res.Stats)
	})
}
