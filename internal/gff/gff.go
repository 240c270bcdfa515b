// Package gff provides GFF3 annotation parsing: gene features with their
// genomic positions and chromosome lengths from ##sequence-region headers.
package gff

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/poatools/poatools/internal/interval"
)

// Gene is a positioned gene extracted from a GFF3 gene feature.
type Gene struct {
	Name   string // from ID=, gene_id= or Name= attribute
	Chrom  string
	Start  int64 // 1-based
	End    int64 // 1-based, inclusive
	Strand string
}

// Length returns the gene span in bases.
func (g *Gene) Length() int64 {
	return g.End - g.Start + 1
}

// Annotation holds everything read from a GFF file that the pipeline needs.
type Annotation struct {
	Genes   []*Gene
	Lengths interval.Lengths // from ##sequence-region headers
}

// GeneByName returns a name-indexed lookup of the annotation's genes.
// Duplicate names keep the first occurrence.
func (a *Annotation) GeneByName() map[string]*Gene {
	byName := make(map[string]*Gene, len(a.Genes))
	for _, g := range a.Genes {
		if _, ok := byName[g.Name]; !ok {
			byName[g.Name] = g
		}
	}
	return byName
}

// ReadFile parses a GFF3 file. Gzipped files (.gz) are handled transparently.
func ReadFile(path string) (*Annotation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open GFF file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return Read(reader)
}

// Read parses GFF3 content. Only "gene" feature rows are kept; rows without
// a recognizable gene identifier and malformed rows are skipped, not fatal —
// reporting data-quality anomalies is the caller's concern.
func Read(r io.Reader) (*Annotation, error) {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for long lines
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	ann := &Annotation{Lengths: make(interval.Lengths)}

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "##sequence-region") {
			if chrom, length, ok := parseSequenceRegion(line); ok {
				ann.Lengths[chrom] = length
			}
			continue
		}
		if strings.HasPrefix(line, "#") || line == "" {
			continue
		}

		gene, err := parseGeneLine(line)
		if err != nil || gene == nil {
			continue
		}
		ann.Genes = append(ann.Genes, gene)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan GFF: %w", err)
	}

	return ann, nil
}

// parseSequenceRegion parses a "##sequence-region <chrom> <start> <end>"
// header line and returns the chromosome and its end coordinate.
func parseSequenceRegion(line string) (string, int64, bool) {
	parts := strings.Fields(line)
	if len(parts) < 4 {
		return "", 0, false
	}
	length, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return "", 0, false
	}
	return parts[1], length, true
}

// parseGeneLine parses a single GFF3 feature line. Returns nil for feature
// types other than "gene".
func parseGeneLine(line string) (*Gene, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 9 {
		return nil, fmt.Errorf("invalid GFF line: expected 9 fields, got %d", len(fields))
	}

	if fields[2] != "gene" {
		return nil, nil
	}

	start, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse start: %w", err)
	}
	end, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse end: %w", err)
	}

	name := geneName(fields[8])
	if name == "" {
		return nil, nil
	}

	return &Gene{
		Name:   name,
		Chrom:  fields[0],
		Start:  start,
		End:    end,
		Strand: fields[6],
	}, nil
}

// geneName extracts the gene identifier from a GFF3 attribute column,
// trying ID=, then gene_id=, then Name=. The first attribute that carries
// one of the keys wins.
func geneName(attrStr string) string {
	for _, attr := range strings.Split(attrStr, ";") {
		attr = strings.TrimSpace(attr)
		for _, key := range []string{"ID=", "gene_id=", "Name="} {
			if idx := strings.Index(attr, key); idx != -1 {
				return attr[idx+len(key):]
			}
		}
	}
	return ""
}
