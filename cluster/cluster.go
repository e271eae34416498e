// Package cluster builds average-linkage hierarchical clusterings of genes.
package cluster

import (
	"fmt"
	"math"

	"github.com/theodesp/unionfind"
)

// Merge joins two clusters. Leaves are numbered 0..n-1 and the cluster
// created by the k'th merge is numbered n+k. Left is always the lower number.
type Merge struct {
	Left   int
	Right  int
	Height float64
	Size   int
}

// Dendrogram is the sequence of n-1 merges over n labelled leaves, in the
// order they were made. Heights never decrease.
type Dendrogram struct {
	Labels []string
	Merges []Merge
}

// Average clusters the labels with unweighted average linkage (UPGMA). dist
// must be symmetric, non-negative and defined for every pair. When several
// pairs are equally close, the pair with the lowest indices merges first.
func Average(labels []string, dist func(i, j int) float64) (*Dendrogram, error) {
	n := len(labels)
	out := &Dendrogram{
		Labels: append([]string(nil), labels...),
		Merges: make([]Merge, 0, n),
	}
	if n < 2 {
		return out, nil
	}

	// d[i][j] for i<j holds the distance between the clusters in slots i and j
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
		for j := i + 1; j < n; j++ {
			v := dist(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return nil, fmt.Errorf("distance between %s and %s is %v", labels[i], labels[j], v)
			}
			d[i][j] = v
		}
	}

	ids := make([]int, n)
	sizes := make([]int, n)
	active := make([]bool, n)
	for i := range ids {
		ids[i] = i
		sizes[i] = 1
		active[i] = true
	}

	pair := func(i, j int) float64 {
		if i > j {
			i, j = j, i
		}
		return d[i][j]
	}

	for k := 0; k < n-1; k++ {
		bi, bj := -1, -1
		best := math.Inf(1)
		for i := 0; i < n; i++ {
			if !active[i] {
				continue
			}
			for j := i + 1; j < n; j++ {
				if !active[j] {
					continue
				}
				if d[i][j] < best {
					best, bi, bj = d[i][j], i, j
				}
			}
		}

		size := sizes[bi] + sizes[bj]
		left, right := ids[bi], ids[bj]
		if left > right {
			left, right = right, left
		}
		out.Merges = append(out.Merges, Merge{
			Left:   left,
			Right:  right,
			Height: best,
			Size:   size,
		})

		for x := 0; x < n; x++ {
			if !active[x] || x == bi || x == bj {
				continue
			}
			v := (float64(sizes[bi])*pair(bi, x) + float64(sizes[bj])*pair(bj, x)) / float64(size)
			if x < bi {
				d[x][bi] = v
			} else {
				d[bi][x] = v
			}
		}

		active[bj] = false
		ids[bi] = n + k
		sizes[bi] = size
	}

	return out, nil
}

// Len is the number of leaves.
func (d *Dendrogram) Len() int {
	return len(d.Labels)
}

// MaxHeight is the height of the final merge, or 0 for fewer than two leaves.
func (d *Dendrogram) MaxHeight() float64 {
	if len(d.Merges) == 0 {
		return 0
	}
	return d.Merges[len(d.Merges)-1].Height
}

// Leaves returns leaf indices in the order they appear when the tree is drawn,
// left subtree first.
func (d *Dendrogram) Leaves() []int {
	n := d.Len()
	if n == 0 {
		return nil
	}
	if len(d.Merges) == 0 {
		return []int{0}
	}

	out := make([]int, 0, n)
	stack := []int{n + len(d.Merges) - 1}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if id < n {
			out = append(out, id)
			continue
		}

		m := d.Merges[id-n]
		stack = append(stack, m.Right, m.Left)
	}

	return out
}

// LeafLabels returns the labels in leaf order.
func (d *Dendrogram) LeafLabels() []string {
	leaves := d.Leaves()
	out := make([]string, len(leaves))
	for i, leaf := range leaves {
		out[i] = d.Labels[leaf]
	}

	return out
}

// Cut assigns every leaf to a flat cluster by joining all merges made at or
// below height. The result is indexed by leaf; clusters are numbered from 1
// in the order their first member appears in Leaves.
func (d *Dendrogram) Cut(height float64) []int {
	n := d.Len()
	if n == 0 {
		return nil
	}

	uf := unionfind.NewThreadSafeUnionFind(n)

	// Any leaf stands in for the cluster it belongs to
	rep := make([]int, n+len(d.Merges))
	for i := 0; i < n; i++ {
		rep[i] = i
	}
	for k, m := range d.Merges {
		rep[n+k] = rep[m.Left]
		if m.Height <= height {
			uf.Union(rep[m.Left], rep[m.Right])
		}
	}

	out := make([]int, n)
	numbers := make(map[int]int)
	for _, leaf := range d.Leaves() {
		root := uf.Root(leaf)
		if root < 0 {
			root = leaf
		}
		if _, exists := numbers[root]; !exists {
			numbers[root] = len(numbers) + 1
		}
		out[leaf] = numbers[root]
	}

	return out
}
