package expression

import (
	"bytes"
	"math"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/carbocation/genepanel/panel"
)

const rawMatrix = "gene_id\tS1\tS2\tS3\n" +
	"F2\t1\t2\t3\n" +
	"OTHER\t9\t9\t9\n" +
	"F5\t4\tNA\t8\n"

func readRaw(t *testing.T) *Table {
	t.Helper()

	tab, err := ReadMatrix(strings.NewReader(rawMatrix), '\t')
	if err != nil {
		t.Fatal(err)
	}

	return tab
}

func TestReadMatrix(t *testing.T) {
	tab := readRaw(t)

	if genes, samples := tab.Dims(); genes != 3 || samples != 3 {
		t.Fatalf("Expected 3x3, got %dx%d", genes, samples)
	}
	if tab.IndexName != "gene_id" {
		t.Errorf("Unexpected index name %q", tab.IndexName)
	}
	if !reflect.DeepEqual(tab.Samples, []string{"S1", "S2", "S3"}) {
		t.Errorf("Unexpected samples %v", tab.Samples)
	}
	if !math.IsNaN(tab.At(2, 1)) {
		t.Errorf("Expected NA to parse as NaN, got %f", tab.At(2, 1))
	}
}

func TestReadMatrixShortHeader(t *testing.T) {
	tab, err := ReadMatrix(strings.NewReader("S1\tS2\nF2\t1\t2\nF2\t5\t6\n"), '\t')
	if err != nil {
		t.Fatal(err)
	}

	if tab.IndexName != "" || !reflect.DeepEqual(tab.Samples, []string{"S1", "S2"}) {
		t.Errorf("Unexpected header parse: %q %v", tab.IndexName, tab.Samples)
	}
	if len(tab.Genes) != 1 || tab.At(0, 1) != 2 {
		t.Errorf("Expected only the first F2 row to be kept")
	}
	if !reflect.DeepEqual(tab.Duplicates, []string{"F2"}) {
		t.Errorf("Unexpected duplicates %v", tab.Duplicates)
	}
}

func TestReadMatrixErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"gene\tS1\tS2\nF2\t1\n",
		"gene\tS1\nF2\tabc\n",
		"gene\tS1\tS2\tS3\tS4\nF2\t1\n",
	} {
		if _, err := ReadMatrix(strings.NewReader(input), '\t'); err == nil {
			t.Errorf("Expected an error for %q", input)
		}
	}
}

func TestSubset(t *testing.T) {
	tab := readRaw(t)

	sub, found, notFound := tab.Subset(panel.Panel{"F5", "F2", "MISSING_GENE", "F5"})

	if !reflect.DeepEqual(found, panel.Panel{"F5", "F2"}) {
		t.Errorf("Unexpected found %v", found)
	}
	if !reflect.DeepEqual(notFound, panel.Panel{"MISSING_GENE"}) {
		t.Errorf("Unexpected not found %v", notFound)
	}
	if !reflect.DeepEqual(sub.Genes, []string{"F5", "F2"}) {
		t.Errorf("Subset rows must follow panel order, got %v", sub.Genes)
	}
	if !reflect.DeepEqual(sub.Samples, tab.Samples) {
		t.Errorf("Subset columns %v differ from %v", sub.Samples, tab.Samples)
	}
	if !reflect.DeepEqual(sub.Row(1), []float64{1, 2, 3}) {
		t.Errorf("Unexpected F2 row %v", sub.Row(1))
	}
}

func TestSubsetScenario(t *testing.T) {
	tab := readRaw(t)

	sub, found, notFound := tab.Subset(panel.Panel{"F2", "F5", "MISSING_GENE"})
	if len(found) != 2 || len(notFound) != 1 {
		t.Fatalf("found=%v notFound=%v", found, notFound)
	}
	if genes, samples := sub.Dims(); genes != 2 || samples != 3 {
		t.Errorf("Expected 2x3 subset, got %dx%d", genes, samples)
	}
}

func TestSubsetNothingFound(t *testing.T) {
	tab := readRaw(t)

	sub, found, _ := tab.Subset(panel.Panel{"NOPE"})
	if len(found) != 0 || sub.Values != nil || len(sub.Samples) != 3 {
		t.Errorf("Expected an empty subset with all samples, got %+v", sub)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	tab := readRaw(t)
	sub, _, _ := tab.Subset(panel.Panel{"F2", "F5"})

	path := filepath.Join(t.TempDir(), "processed", "subset.csv")
	if err := WriteCSVFile(path, sub); err != nil {
		t.Fatal(err)
	}

	back, err := ReadCSVFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if back.IndexName != "gene_id" || !reflect.DeepEqual(back.Genes, sub.Genes) || !reflect.DeepEqual(back.Samples, sub.Samples) {
		t.Errorf("Round trip changed the labels: %+v", back)
	}
	if !math.IsNaN(back.At(1, 1)) || back.At(1, 2) != 8 {
		t.Errorf("Round trip changed the values: %v", back.Row(1))
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, sub); err != nil {
		t.Fatal(err)
	}
	if first := strings.SplitN(buf.String(), "\n", 2)[0]; first != "gene_id,S1,S2,S3" {
		t.Errorf("Unexpected header %q", first)
	}
}

func TestRowMeans(t *testing.T) {
	tab := readRaw(t)

	means := tab.RowMeans()
	if len(means) != 3 {
		t.Fatalf("Expected 3 means, got %d", len(means))
	}

	for _, v := range []struct {
		Row  int
		Gene string
		N    int
		Mean float64
	}{
		{0, "F2", 3, 2},
		{1, "OTHER", 3, 9},
		{2, "F5", 2, 6},
	} {
		got := means[v.Row]
		if got.Gene != v.Gene || got.N != v.N || math.Abs(got.Mean-v.Mean) > 1e-12 {
			t.Errorf("Got %+v, expected %+v", got, v)
		}
	}
}

func TestDescribe(t *testing.T) {
	tab, err := NewTable("", []string{"A", "B", "C", "D"}, []string{"S1", "S2"}, []float64{
		1, math.NaN(),
		2, math.NaN(),
		3, math.NaN(),
		4, 7,
	})
	if err != nil {
		t.Fatal(err)
	}

	summary := Describe(tab)
	if len(summary) != 2 {
		t.Fatalf("Expected 2 summaries, got %d", len(summary))
	}

	s1 := summary[0]
	if s1.Count != 4 || s1.Mean != 2.5 || s1.Min != 1 || s1.Max != 4 || s1.Median != 2.5 {
		t.Errorf("Unexpected S1 summary %+v", s1)
	}
	if math.Abs(s1.Std-math.Sqrt(5.0/3.0)) > 1e-12 {
		t.Errorf("Unexpected sample SD %f", s1.Std)
	}
	if math.Abs(s1.Q1-1.75) > 1e-12 || math.Abs(s1.Q3-3.25) > 1e-12 {
		t.Errorf("Unexpected quartiles %+v", s1)
	}

	s2 := summary[1]
	if s2.Count != 1 || s2.Mean != 7 || !math.IsNaN(s2.Std) || s2.Q1 != 7 || s2.Q3 != 7 {
		t.Errorf("Unexpected S2 summary %+v", s2)
	}
	if len(s2.Values()) != len(SummaryRows) {
		t.Errorf("Values and SummaryRows disagree")
	}
}
