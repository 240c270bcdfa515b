// Package output provides result table writers and the summary report.
package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/poatools/poatools/internal/classify"
	"github.com/poatools/poatools/internal/interval"
)

// ClassificationWriter writes classified genes in tab-delimited format.
type ClassificationWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewClassificationWriter creates a new tab-delimited classification writer.
func NewClassificationWriter(w io.Writer) *ClassificationWriter {
	return &ClassificationWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"Gene",
			"Chromosome",
			"Start",
			"End",
			"Strand",
			"A",
			"B",
			"AB",
			"NAB",
			"AXB",
			"Total_Score",
			"A_ratio",
			"B_ratio",
			"AB_ratio",
			"NAB_ratio",
			"AXB_ratio",
			"Max_Ratio",
			"Primary_Class",
			"Confidence",
			"Composite_Class",
			"Center",
		},
	}
}

// WriteHeader writes the header line.
func (cw *ClassificationWriter) WriteHeader() error {
	_, err := cw.w.WriteString(strings.Join(cw.columns, "\t") + "\n")
	return err
}

// Write writes a single classified gene. Position columns hold "-" for
// genes that had no GFF match.
func (cw *ClassificationWriter) Write(g *classify.Gene) error {
	chrom, start, end, strand, center := "-", "-", "-", "-", "-"
	if g.Positioned {
		chrom = g.Chrom
		start = strconv.FormatInt(g.Start, 10)
		end = strconv.FormatInt(g.End, 10)
		strand = g.Strand
		center = formatFloat(g.Center)
	}

	values := []string{
		g.Name,
		chrom,
		start,
		end,
		strand,
		formatFloat(g.Scores.A),
		formatFloat(g.Scores.B),
		formatFloat(g.Scores.AB),
		formatFloat(g.Scores.NAB),
		formatFloat(g.Scores.AXB),
		formatFloat(g.Scores.Total()),
		formatFloat(g.RatioA),
		formatFloat(g.RatioB),
		formatFloat(g.RatioAB),
		formatFloat(g.RatioNAB),
		formatFloat(g.RatioAXB),
		formatFloat(g.MaxRatio),
		g.Primary,
		g.Confidence,
		g.Composite,
		center,
	}

	_, err := cw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// WriteAll writes the header and all genes, then flushes.
func (cw *ClassificationWriter) WriteAll(genes []*classify.Gene) error {
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	for _, g := range genes {
		if err := cw.Write(g); err != nil {
			return err
		}
	}
	return cw.Flush()
}

// Flush flushes any buffered data to the underlying writer.
func (cw *ClassificationWriter) Flush() error {
	return cw.w.Flush()
}

// IntervalWriter writes partition intervals in tab-delimited format.
type IntervalWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewIntervalWriter creates a new tab-delimited interval writer.
func NewIntervalWriter(w io.Writer) *IntervalWriter {
	return &IntervalWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"Chromosome",
			"Start",
			"End",
			"Primary_Class",
			"Center",
			"Length",
		},
	}
}

// WriteHeader writes the header line.
func (iw *IntervalWriter) WriteHeader() error {
	_, err := iw.w.WriteString(strings.Join(iw.columns, "\t") + "\n")
	return err
}

// Write writes a single interval.
func (iw *IntervalWriter) Write(iv interval.Interval) error {
	values := []string{
		iv.Chrom,
		strconv.FormatInt(iv.Start, 10),
		strconv.FormatInt(iv.End, 10),
		iv.Class,
		formatFloat(iv.Center),
		strconv.FormatInt(iv.Length, 10),
	}
	_, err := iw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// WriteAll writes the header and all intervals, then flushes.
func (iw *IntervalWriter) WriteAll(ivs []interval.Interval) error {
	if err := iw.WriteHeader(); err != nil {
		return err
	}
	for _, iv := range ivs {
		if err := iw.Write(iv); err != nil {
			return err
		}
	}
	return iw.Flush()
}

// Flush flushes any buffered data to the underlying writer.
func (iw *IntervalWriter) Flush() error {
	return iw.w.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
