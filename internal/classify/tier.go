package classify

// Tier selects a confidence subset of classified genes. Interval partitions
// and classification tables are produced once per tier.
type Tier int

const (
	// TierHigh keeps only High confidence genes.
	TierHigh Tier = iota
	// TierMediumAndAbove keeps High and Medium confidence genes.
	TierMediumAndAbove
	// TierAll keeps every gene.
	TierAll
)

// Tiers lists all confidence tiers from strictest to loosest.
var Tiers = []Tier{TierHigh, TierMediumAndAbove, TierAll}

// Includes reports whether a gene with the given confidence belongs to the
// tier.
func (t Tier) Includes(confidence string) bool {
	switch t {
	case TierHigh:
		return confidence == ConfidenceHigh
	case TierMediumAndAbove:
		return confidence == ConfidenceHigh || confidence == ConfidenceMedium
	default:
		return true
	}
}

// Name returns the tier's file-name component for interval tables.
func (t Tier) Name() string {
	switch t {
	case TierHigh:
		return "high_confidence"
	case TierMediumAndAbove:
		return "medium_confidence"
	default:
		return "all_confidence"
	}
}

// TableSuffix returns the tier's file-name component for classification
// tables.
func (t Tier) TableSuffix() string {
	switch t {
	case TierHigh:
		return "high_only"
	case TierMediumAndAbove:
		return "medium_and_above"
	default:
		return "all_confidence"
	}
}

// Filter returns the subset of genes belonging to the tier, preserving
// order.
func Filter(genes []*Gene, t Tier) []*Gene {
	if t == TierAll {
		return genes
	}
	var out []*Gene
	for _, g := range genes {
		if t.Includes(g.Confidence) {
			out = append(out, g)
		}
	}
	return out
}
