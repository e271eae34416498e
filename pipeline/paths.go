// Package pipeline runs the two analysis stages as functions from input paths
// to output paths: subsetting an expression matrix to a gene panel, then
// correlating and clustering the subset.
package pipeline

import "path/filepath"

// Default locations, relative to the working directory.
var (
	DefaultGenePanel  = filepath.Join("data", "thrombophilia_genes.txt")
	DefaultMatrix     = filepath.Join("data", "raw", "TCGA_BRCA_RNAseq_Expression.txt")
	DefaultSubset     = filepath.Join("data", "processed", "thrombophilia_expression_subset.csv")
	DefaultFiguresDir = filepath.Join("results", "figures")
	DefaultTablesDir  = filepath.Join("results", "tables")
)

// Output file names. They do not depend on the input, so every run replaces
// the previous one's files.
const (
	ClusteredHeatmapPNG = "Figure5_clustered_heatmap.png"
	ClusteredHeatmapPDF = "Figure5_clustered_heatmap.pdf"
	CorrelationHeatmap  = "Figure6_correlation_heatmap.png"
	StrongCorrelations  = "Figure7_strong_correlations.png"
	TopCorrelationsBar  = "Figure8_top_correlations.png"

	CorrelationMatrixCSV = "correlation_matrix.csv"
	TopCorrelationsCSV   = "top_correlations.csv"
	GeneClustersCSV      = "gene_clusters.csv"
	ResultsWorkbook      = "cluster_correlation_results.xlsx"
)

// DownloadInstructions describes how to obtain the raw expression matrix.
var DownloadInstructions = filepath.Join("data", "raw", "DOWNLOAD_INSTRUCTIONS.md")
