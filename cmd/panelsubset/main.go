// panelsubset restricts a genes×samples expression matrix to the genes of a
// panel, reports which genes were found and their mean expression, and saves
// the subset as CSV for panelcorrelate.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/genepanel"
	"github.com/carbocation/genepanel/compileinfo"
	"github.com/carbocation/genepanel/pipeline"
)

func main() {
	compileinfo.PrintToStdErr()

	opts := pipeline.DefaultSubsetOptions()
	flag.StringVar(&opts.GenePanel, "genes", opts.GenePanel, "Path to the gene panel: one gene identifier per line, or an .xls whose first column lists them. May be a gs:// path.")
	flag.StringVar(&opts.Matrix, "matrix", opts.Matrix, "Path to the tab-delimited expression matrix (genes in rows, samples in columns). May be compressed or a gs:// path.")
	flag.StringVar(&opts.Output, "output", opts.Output, "Path where the panel's expression subset will be written as CSV.")
	flag.IntVar(&opts.PreviewLines, "preview", opts.PreviewLines, "Number of lines of the matrix to show before loading it. 0 disables the preview.")
	flag.Parse()

	if err := run(opts); err != nil {
		if pipeline.IsMissingInput(err) {
			fmt.Fprintln(os.Stdout, "ERROR:", err)
			os.Exit(1)
		}
		log.Fatalln(err)
	}
}

func run(opts pipeline.SubsetOptions) error {
	opts.Log = log.New(os.Stdout, "", 0)
	opts.Out = os.Stdout

	// Initialize the Google Storage client only if we're pointing to Google
	// Storage paths.
	if genepanel.IsGoogleStoragePath(opts.GenePanel) || genepanel.IsGoogleStoragePath(opts.Matrix) {
		client, err := storage.NewClient(context.Background())
		if err != nil {
			return err
		}
		defer client.Close()
		opts.Client = client
	}

	opts.Log.Println("Gene panel expression subsetting")

	res, err := pipeline.Subset(opts)
	if err != nil {
		return err
	}

	if res.Written {
		opts.Log.Println("Done. Next, run panelcorrelate on", res.Output)
	}

	return nil
}
