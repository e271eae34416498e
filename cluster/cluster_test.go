package cluster

import (
	"math"
	"reflect"
	"testing"

	"github.com/carbocation/genepanel/expression"
)

func lineDistance(positions ...float64) func(i, j int) float64 {
	return func(i, j int) float64 {
		return math.Abs(positions[i] - positions[j])
	}
}

func TestAverage(t *testing.T) {
	d, err := Average([]string{"A", "B", "C", "D"}, lineDistance(0, 1, 5, 6))
	if err != nil {
		t.Fatal(err)
	}

	expected := []Merge{
		{Left: 0, Right: 1, Height: 1, Size: 2},
		{Left: 2, Right: 3, Height: 1, Size: 2},
		{Left: 4, Right: 5, Height: 5, Size: 4},
	}
	if !reflect.DeepEqual(d.Merges, expected) {
		t.Errorf("Got merges %+v, expected %+v", d.Merges, expected)
	}

	if got := d.Leaves(); !reflect.DeepEqual(got, []int{0, 1, 2, 3}) {
		t.Errorf("Unexpected leaf order %v", got)
	}

	for _, v := range []struct {
		Height   float64
		Expected []int
	}{
		{0.5, []int{1, 2, 3, 4}},
		{1, []int{1, 1, 2, 2}},
		{2, []int{1, 1, 2, 2}},
		{10, []int{1, 1, 1, 1}},
	} {
		if got := d.Cut(v.Height); !reflect.DeepEqual(got, v.Expected) {
			t.Errorf("Cut(%f) = %v, expected %v", v.Height, got, v.Expected)
		}
	}
}

func TestLeafOrder(t *testing.T) {
	d, err := Average([]string{"A", "B", "C"}, lineDistance(0, 10, 1))
	if err != nil {
		t.Fatal(err)
	}

	// The second merge joins slot 0 (cluster 3) with slot 1 (leaf 1); the
	// lower number still goes left.
	expected := []Merge{
		{Left: 0, Right: 2, Height: 1, Size: 2},
		{Left: 1, Right: 3, Height: 9.5, Size: 3},
	}
	if !reflect.DeepEqual(d.Merges, expected) {
		t.Errorf("Got merges %+v, expected %+v", d.Merges, expected)
	}

	if got := d.LeafLabels(); !reflect.DeepEqual(got, []string{"B", "A", "C"}) {
		t.Errorf("Unexpected leaf labels %v", got)
	}

	// Numbered by leaf order, indexed by leaf
	if got := d.Cut(5); !reflect.DeepEqual(got, []int{2, 1, 2}) {
		t.Errorf("Unexpected clusters %v", got)
	}

	if d.MaxHeight() != 9.5 {
		t.Errorf("Unexpected max height %f", d.MaxHeight())
	}
}

func TestMergeLeftIsLowerNumber(t *testing.T) {
	d, err := Average([]string{"A", "B", "C", "D", "E", "F"}, lineDistance(0, 20, 1, 21, 50, 3))
	if err != nil {
		t.Fatal(err)
	}

	for k, m := range d.Merges {
		if m.Left >= m.Right {
			t.Errorf("Merge %d: left %d is not below right %d", k, m.Left, m.Right)
		}
		if m.Right >= d.Len()+k {
			t.Errorf("Merge %d refers to cluster %d before it exists", k, m.Right)
		}
	}
}

func TestAverageSmall(t *testing.T) {
	d, err := Average(nil, lineDistance())
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Leaves()) != 0 || len(d.Cut(1)) != 0 {
		t.Errorf("Expected an empty dendrogram")
	}

	d, err = Average([]string{"ONLY"}, lineDistance(0))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(d.Leaves(), []int{0}) || !reflect.DeepEqual(d.Cut(0), []int{1}) {
		t.Errorf("Unexpected single-leaf dendrogram %+v", d)
	}
}

func TestAverageRejectsNaN(t *testing.T) {
	_, err := Average([]string{"A", "B"}, func(i, j int) float64 { return math.NaN() })
	if err == nil {
		t.Errorf("Expected an error for a NaN distance")
	}
}

func TestGenes(t *testing.T) {
	tab, err := expression.NewTable("", []string{"UP", "FLAT", "UP2", "DOWN"}, []string{"S1", "S2", "S3", "S4"}, []float64{
		1, 2, 3, 4,
		5, 5, 5, 5,
		2, 4, 6, 8.5,
		4, 3, 2, 1,
	})
	if err != nil {
		t.Fatal(err)
	}

	dist := CorrelationDistance(tab)
	if v := dist(0, 3); math.Abs(v-2) > 1e-12 {
		t.Errorf("Anticorrelated rows should be at distance 2, got %f", v)
	}
	if v := dist(0, 1); v != 2 {
		t.Errorf("A constant row should be at distance 2, got %f", v)
	}

	d, err := Genes(tab)
	if err != nil {
		t.Fatal(err)
	}

	first := d.Merges[0]
	if first.Left != 0 || first.Right != 2 {
		t.Errorf("Expected UP and UP2 to merge first, got %+v", first)
	}
	if len(d.Leaves()) != 4 {
		t.Errorf("Expected 4 leaves, got %v", d.Leaves())
	}
}
