package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"

	"cloud.google.com/go/storage"
	"github.com/carbocation/genepanel"
	"github.com/carbocation/genepanel/expression"
	"github.com/carbocation/genepanel/panel"
	"github.com/carbocation/pfx"
)

const previewWidth = 100

// SubsetOptions configure the loading stage.
type SubsetOptions struct {
	GenePanel string
	Matrix    string
	Output    string

	// PreviewLines of the raw matrix are shown before it is parsed.
	PreviewLines int

	// Client is needed only for gs:// inputs.
	Client *storage.Client

	Log *log.Logger
	Out io.Writer
}

// DefaultSubsetOptions uses the fixed default paths.
func DefaultSubsetOptions() SubsetOptions {
	return SubsetOptions{
		GenePanel:    DefaultGenePanel,
		Matrix:       DefaultMatrix,
		Output:       DefaultSubset,
		PreviewLines: 5,
	}
}

// SubsetResult describes what the loading stage read and wrote.
type SubsetResult struct {
	Panel    panel.Panel
	Found    panel.Panel
	NotFound panel.Panel

	// MatrixGenes and MatrixSamples are the dimensions of the full matrix.
	MatrixGenes   int
	MatrixSamples int

	Subset *expression.Table
	Means  []expression.GeneMean

	// Written is false when no panel gene was present, in which case no file
	// was created.
	Written bool
	Output  string
}

// Subset reads the gene panel and the expression matrix, reports which panel
// genes the matrix contains and their mean expression, and writes those genes'
// rows, in panel order, to opts.Output. A missing input yields a
// *MissingInputError before anything is written.
func Subset(opts SubsetOptions) (*SubsetResult, error) {
	ctx := context.Background()
	say := newNarration(opts.Log, opts.Out)

	genesPath := genepanel.ExpandHome(opts.GenePanel)
	matrixPath := genepanel.ExpandHome(opts.Matrix)
	outputPath := genepanel.ExpandHome(opts.Output)

	if err := requireInput(ctx, genesPath, opts.Client, "Make sure this file exists: "+genesPath); err != nil {
		return nil, err
	}
	if err := requireInput(ctx, matrixPath, opts.Client, fmt.Sprintf("Please follow the instructions in %s to download the data and place it in %s", DownloadInstructions, filepath.Dir(DownloadInstructions))); err != nil {
		return nil, err
	}

	say.log.Println("Loading gene panel", genesPath)
	genes, err := panel.Read(ctx, genesPath, opts.Client)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(say.out, "Found %d genes in the panel:\n", len(genes))
	for i, gene := range genes {
		fmt.Fprintf(say.out, "   %2d. %s\n", i+1, gene)
	}

	if opts.PreviewLines > 0 {
		if err := previewMatrix(ctx, say, matrixPath, opts.Client, opts.PreviewLines); err != nil {
			return nil, err
		}
	}

	say.log.Println("Loading full expression matrix. This may take a moment for large files.")
	full, err := loadMatrix(ctx, matrixPath, opts.Client)
	if err != nil {
		return nil, err
	}

	nGenes, nSamples := full.Dims()
	say.log.Printf("Loaded %d genes x %d samples\n", nGenes, nSamples)
	if len(full.Duplicates) > 0 {
		say.log.Printf("Ignored later rows of %d repeated gene identifiers\n", len(full.Duplicates))
	}

	sub, found, notFound := full.Subset(genes)

	out := &SubsetResult{
		Panel:         genes,
		Found:         found,
		NotFound:      notFound,
		MatrixGenes:   nGenes,
		MatrixSamples: nSamples,
		Subset:        sub,
		Output:        outputPath,
	}

	fmt.Fprintf(say.out, "Found %d panel genes in the matrix:\n", len(found))
	for _, gene := range found {
		fmt.Fprintf(say.out, "   + %s\n", gene)
	}
	if len(notFound) > 0 {
		fmt.Fprintf(say.out, "%d panel genes were not found in the matrix:\n", len(notFound))
		for _, gene := range notFound {
			fmt.Fprintf(say.out, "   - %s\n", gene)
		}
	}

	if len(found) == 0 {
		say.log.Println("No panel gene is present in the matrix. Nothing was written.")
		return out, nil
	}

	out.Means = sub.RowMeans()
	fmt.Fprintln(say.out, "Mean expression across all samples:")
	for _, m := range out.Means {
		fmt.Fprintf(say.out, "   %s: %.2f\n", m.Gene, m.Mean)
	}

	if err := expression.WriteCSVFile(outputPath, sub); err != nil {
		return nil, err
	}
	out.Written = true
	say.log.Println("Saved panel expression subset to", outputPath)

	return out, nil
}

func requireInput(ctx context.Context, path string, client *storage.Client, remedy string) error {
	exists, err := genepanel.Exists(ctx, path, client)
	if err != nil {
		return err
	}
	if !exists {
		return &MissingInputError{Path: path, Remedy: remedy}
	}

	return nil
}

func previewMatrix(ctx context.Context, say narration, path string, client *storage.Client, lines int) error {
	f, err := genepanel.Open(ctx, path, client)
	if err != nil {
		return err
	}
	defer f.Close()

	head, err := genepanel.Preview(f, lines, previewWidth)
	if err != nil {
		return pfx.Err(err)
	}

	fmt.Fprintln(say.out, "File structure preview:")
	for i, line := range head {
		fmt.Fprintf(say.out, "   Line %d: %s\n", i, line)
	}

	return nil
}

func loadMatrix(ctx context.Context, path string, client *storage.Client) (*expression.Table, error) {
	f, err := genepanel.Open(ctx, path, client)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	br := bufio.NewReaderSize(f, 1<<20)
	delim := genepanel.PeekDelimiter(br, 5)

	t, err := expression.ReadMatrix(br, delim)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return t, nil
}
