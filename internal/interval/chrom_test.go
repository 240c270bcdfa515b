package interval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChromLess(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"1A", "2A", true},
		{"2A", "1A", false},
		{"1A", "1B", true},
		{"1D", "1B", false},
		{"2B", "10A", true}, // numeric, not lexicographic
		{"chr1", "chr2", true},
		{"1", "1A", true}, // no letter sorts before A
		{"Un", "1A", false},
		{"1A", "Un", true}, // names without digits sort last
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ChromLess(tt.a, tt.b), "ChromLess(%q, %q)", tt.a, tt.b)
	}
}

func TestSortChromosomes(t *testing.T) {
	chroms := []string{"7D", "1B", "10A", "2A", "1A", "Un"}
	SortChromosomes(chroms)
	assert.Equal(t, []string{"1A", "1B", "2A", "7D", "10A", "Un"}, chroms)
}
