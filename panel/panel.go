// Package panel loads the curated list of genes under study.
package panel

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/genepanel"
	"github.com/carbocation/pfx"
)

// Panel is an ordered list of gene identifiers. It is not modified after it
// has been read.
type Panel []string

// Read loads a gene panel from a plain-text list (one identifier per line) or,
// if the path ends in .xls, from the first column of the first worksheet.
// Identifiers that occur more than once keep their first position.
func Read(ctx context.Context, path string, client *storage.Client) (Panel, error) {
	if IsSpreadsheet(path) {
		return ReadXLS(path)
	}

	f, err := genepanel.Open(ctx, path, client)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads one gene identifier per line. Blank lines and lines starting with
// # are skipped; surrounding whitespace is trimmed.
func Parse(r io.Reader) (Panel, error) {
	out := make(Panel, 0)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		gene := strings.TrimSpace(scanner.Text())
		if gene == "" || strings.HasPrefix(gene, "#") {
			continue
		}
		out = append(out, gene)
	}
	if err := scanner.Err(); err != nil {
		return nil, pfx.Err(err)
	}

	return out.Unique(), nil
}

// Unique returns the panel without repeated identifiers, preserving the order
// of first appearance.
func (p Panel) Unique() Panel {
	seen := make(map[string]struct{}, len(p))
	out := make(Panel, 0, len(p))
	for _, gene := range p {
		if _, exists := seen[gene]; exists {
			continue
		}
		seen[gene] = struct{}{}
		out = append(out, gene)
	}

	return out
}

// Partition splits the panel into the genes for which has returns true and the
// genes for which it does not. Both keep panel order. Missing genes are not an
// error: they are reported and excluded downstream.
func (p Panel) Partition(has func(gene string) bool) (found, notFound Panel) {
	found = make(Panel, 0, len(p))
	notFound = make(Panel, 0)

	for _, gene := range p {
		if has(gene) {
			found = append(found, gene)
		} else {
			notFound = append(notFound, gene)
		}
	}

	return found, notFound
}

func (p Panel) String() string {
	return fmt.Sprintf("%d genes: %s", len(p), strings.Join(p, ", "))
}
