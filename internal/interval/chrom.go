package interval

import (
	"regexp"
	"sort"
	"strconv"
)

var (
	chromDigits = regexp.MustCompile(`\d+`)
	chromLetter = regexp.MustCompile(`[ABD]`)
)

// chromKey extracts the natural-sort key for a chromosome name: the first
// run of digits, then the first letter from the fixed subgenome set {A,B,D}
// (e.g. wheat "2B" -> (2, "B")). Names without digits sort last.
func chromKey(chrom string) (int64, string) {
	num := int64(1<<63 - 1)
	if m := chromDigits.FindString(chrom); m != "" {
		if n, err := strconv.ParseInt(m, 10, 64); err == nil {
			num = n
		}
	}
	return num, chromLetter.FindString(chrom)
}

// ChromLess reports whether chromosome a orders before b under natural
// ordering. Presentation-only: the interval algebra itself is
// per-chromosome and order-independent.
func ChromLess(a, b string) bool {
	aNum, aLetter := chromKey(a)
	bNum, bLetter := chromKey(b)
	if aNum != bNum {
		return aNum < bNum
	}
	if aLetter != bLetter {
		return aLetter < bLetter
	}
	return a < b
}

// SortChromosomes sorts chromosome names in natural order, in place.
func SortChromosomes(chroms []string) {
	sort.Slice(chroms, func(i, j int) bool {
		return ChromLess(chroms[i], chroms[j])
	})
}
