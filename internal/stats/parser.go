// Package stats provides gene score statistics table parsing.
//
// A stats file is a delimited table with a header row carrying at least the
// columns Gene, A, B, AB, NAB and AXB. Files ending in .csv are
// comma-separated, everything else is tab-separated. Gzipped files and
// stdin ("-") are supported.
package stats

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Score column names
const (
	ColGene = "Gene"
	ColA    = "A"
	ColB    = "B"
	ColAB   = "AB"
	ColNAB  = "NAB"
	ColAXB  = "AXB"
)

// GeneScores holds the raw per-class scores for one gene.
type GeneScores struct {
	Gene string
	A    float64
	B    float64
	AB   float64
	NAB  float64
	AXB  float64
}

// Total returns the sum of all class scores.
func (s *GeneScores) Total() float64 {
	return s.A + s.B + s.AB + s.NAB + s.AXB
}

// columnIndices holds the positions of the required columns.
type columnIndices struct {
	gene int
	a    int
	b    int
	ab   int
	nab  int
	axb  int
}

// Parser reads gene scores from a stats file.
type Parser struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	sep        string
	lineNumber int
	columns    columnIndices
}

// NewParser creates a parser for the given stats file. Use "-" for stdin.
func NewParser(path string) (*Parser, error) {
	if path == "-" {
		return NewParserFromReader(os.Stdin, "\t")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stats file: %w", err)
	}

	p := &Parser{file: file, sep: separatorFor(path)}

	// Check for gzip magic bytes
	buf := make([]byte, 2)
	if _, err := file.Read(buf); err != nil {
		file.Close()
		return nil, fmt.Errorf("read stats header: %w", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek stats file: %w", err)
	}

	if buf[0] == 0x1f && buf[1] == 0x8b {
		p.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		p.reader = bufio.NewReader(p.gzipReader)
	} else {
		p.reader = bufio.NewReader(file)
	}

	if err := p.readHeader(); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

// NewParserFromReader creates a parser reading from r with the given field
// separator.
func NewParserFromReader(r io.Reader, sep string) (*Parser, error) {
	p := &Parser{reader: bufio.NewReader(r), sep: sep}
	if err := p.readHeader(); err != nil {
		return nil, err
	}
	return p, nil
}

// separatorFor picks the field separator from the file extension: .csv is
// comma-separated, anything else tab-separated. A trailing .gz is ignored.
func separatorFor(path string) string {
	lower := strings.ToLower(path)
	lower = strings.TrimSuffix(lower, ".gz")
	if strings.HasSuffix(lower, ".csv") {
		return ","
	}
	return "\t"
}

// readHeader locates the required columns in the header row.
func (p *Parser) readHeader() error {
	line, err := p.readLine()
	if err != nil {
		return fmt.Errorf("read stats header: %w", err)
	}

	idx := map[string]int{}
	for i, col := range strings.Split(line, p.sep) {
		idx[strings.TrimSpace(col)] = i
	}

	required := []string{ColGene, ColA, ColB, ColAB, ColNAB, ColAXB}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return fmt.Errorf("stats file missing required column %q", col)
		}
	}

	p.columns = columnIndices{
		gene: idx[ColGene],
		a:    idx[ColA],
		b:    idx[ColB],
		ab:   idx[ColAB],
		nab:  idx[ColNAB],
		axb:  idx[ColAXB],
	}
	return nil
}

// Next returns the next gene's scores, or nil at end of input.
func (p *Parser) Next() (*GeneScores, error) {
	for {
		line, err := p.readLine()
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if line == "" {
			continue
		}

		fields := strings.Split(line, p.sep)
		maxIdx := p.columns.gene
		for _, i := range []int{p.columns.a, p.columns.b, p.columns.ab, p.columns.nab, p.columns.axb} {
			if i > maxIdx {
				maxIdx = i
			}
		}
		if len(fields) <= maxIdx {
			return nil, fmt.Errorf("line %d: expected at least %d fields, got %d",
				p.lineNumber, maxIdx+1, len(fields))
		}

		s := &GeneScores{Gene: strings.TrimSpace(fields[p.columns.gene])}
		for _, c := range []struct {
			idx int
			dst *float64
		}{
			{p.columns.a, &s.A},
			{p.columns.b, &s.B},
			{p.columns.ab, &s.AB},
			{p.columns.nab, &s.NAB},
			{p.columns.axb, &s.AXB},
		} {
			v, err := strconv.ParseFloat(strings.TrimSpace(fields[c.idx]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: parse score: %w", p.lineNumber, err)
			}
			*c.dst = v
		}
		return s, nil
	}
}

// ReadAll returns all remaining gene scores.
func (p *Parser) ReadAll() ([]*GeneScores, error) {
	var all []*GeneScores
	for {
		s, err := p.Next()
		if err != nil {
			return nil, err
		}
		if s == nil {
			return all, nil
		}
		all = append(all, s)
	}
}

// readLine returns the next line without its trailing newline.
func (p *Parser) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	} else if err != nil {
		return "", err
	}
	p.lineNumber++
	return strings.TrimRight(line, "\r\n"), nil
}

// Close closes the underlying file, if any.
func (p *Parser) Close() error {
	if p.gzipReader != nil {
		p.gzipReader.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}
