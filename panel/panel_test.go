package panel

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	p, err := Parse(strings.NewReader("F2\n  F5 \n\n# comment\nSERPINC1\nF5\n"))
	if err != nil {
		t.Fatal(err)
	}

	if expected := (Panel{"F2", "F5", "SERPINC1"}); !reflect.DeepEqual(p, expected) {
		t.Errorf("Got %v, expected %v", p, expected)
	}
}

func TestPartition(t *testing.T) {
	matrix := map[string]bool{"F2": true, "F5": true, "OTHER": true}

	found, notFound := Panel{"F2", "F5", "MISSING_GENE"}.Partition(func(gene string) bool { return matrix[gene] })

	if !reflect.DeepEqual(found, Panel{"F2", "F5"}) {
		t.Errorf("Unexpected found genes %v", found)
	}
	if !reflect.DeepEqual(notFound, Panel{"MISSING_GENE"}) {
		t.Errorf("Unexpected missing genes %v", notFound)
	}
}

func TestReadTextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thrombophilia_genes.txt")
	if err := os.WriteFile(path, []byte("PROC\r\nPROS1\r\n"), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := Read(context.Background(), path, nil)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(p, Panel{"PROC", "PROS1"}) {
		t.Errorf("Unexpected panel %v", p)
	}
}

func TestIsSpreadsheet(t *testing.T) {
	for path, expected := range map[string]bool{
		"genes.xls":  true,
		"GENES.XLS":  true,
		"genes.txt":  false,
		"genes.xlsx": false,
	} {
		if IsSpreadsheet(path) != expected {
			t.Errorf("%s: expected %v", path, expected)
		}
	}
}

func TestReadXLS(t *testing.T) {
	// The fixture has a "Gene" title row, an absent row 3, a blank first cell
	// on row 4 and a repeated F2.
	p, err := Read(context.Background(), filepath.Join("testdata", "genes.xls"), nil)
	if err != nil {
		t.Fatal(err)
	}

	if expected := (Panel{"F2", "F5", "SERPINC1"}); !reflect.DeepEqual(p, expected) {
		t.Errorf("Got %v, expected %v", p, expected)
	}
}
