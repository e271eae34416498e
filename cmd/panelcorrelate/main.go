// panelcorrelate correlates and clusters the genes of the subset written by
// panelsubset, then writes heatmaps, tables and a results workbook.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/carbocation/genepanel/compileinfo"
	"github.com/carbocation/genepanel/correlation"
	"github.com/carbocation/genepanel/pipeline"
)

func main() {
	compileinfo.PrintToStdErr()

	opts := pipeline.DefaultCorrelateOptions()
	method := opts.Method.String()
	flag.StringVar(&opts.Input, "input", opts.Input, "Path to the expression subset CSV written by panelsubset.")
	flag.StringVar(&opts.FiguresDir, "figures", opts.FiguresDir, "Directory for the figures.")
	flag.StringVar(&opts.TablesDir, "tables", opts.TablesDir, "Directory for the tables and workbook.")
	flag.StringVar(&method, "method", method, "Correlation method: spearman or pearson.")
	flag.Float64Var(&opts.Threshold, "threshold", opts.Threshold, "Cells with |r| at or below this are shown as 0 in the strong-correlation heatmap.")
	flag.Float64Var(&opts.Strong, "strong", opts.Strong, "Pairs with |r| above this are counted as strong correlations.")
	flag.IntVar(&opts.TopN, "top", opts.TopN, "Number of top-ranked pairs to print and chart.")
	flag.IntVar(&opts.WorkbookTop, "workbook-top", opts.WorkbookTop, "Number of top-ranked pairs in the workbook.")
	flag.Float64Var(&opts.CutHeight, "cut", opts.CutHeight, "Dendrogram height (1 - Pearson r) at which flat gene clusters are formed.")
	flag.BoolVar(&opts.PDF, "pdf", opts.PDF, "Also save the clustered heatmap as a PDF.")
	flag.Parse()

	if opts.TopN < 0 || opts.WorkbookTop < 0 {
		flag.PrintDefaults()
		log.Fatalln("-top and -workbook-top must not be negative")
	}

	m, err := correlation.ParseMethod(method)
	if err != nil {
		flag.PrintDefaults()
		log.Fatalln(err)
	}
	opts.Method = m

	if err := run(opts); err != nil {
		if pipeline.IsMissingInput(err) {
			fmt.Fprintln(os.Stdout, "ERROR:", err)
			os.Exit(1)
		}
		log.Fatalln(err)
	}
}

func run(opts pipeline.CorrelateOptions) error {
	opts.Log = log.New(os.Stdout, "", 0)
	opts.Out = os.Stdout

	opts.Log.Println("Starting cluster and correlation analysis")

	res, err := pipeline.Correlate(opts)
	if err != nil {
		return err
	}

	opts.Log.Printf("Generated %d figures and %d tables\n", len(res.Figures), len(res.Tables))

	return nil
}
