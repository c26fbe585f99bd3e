package scoring

// Tier is one of five priority buckets, TIER 1 highest.
type Tier string

const (
	Tier1 Tier = "TIER 1"
	Tier2 Tier = "TIER 2"
	Tier3 Tier = "TIER 3"
	Tier4 Tier = "TIER 4"
	Tier5 Tier = "TIER 5"
)

type tierBand struct {
	min            int
	tier           Tier
	label          string
	recommendation Recommendation
}

// tierBands partitions [0, 30] exhaustively: bands are inclusive on
// their lower bound and the first band whose minimum the score reaches
// wins.
var tierBands = []tierBand{
	{min: 20, tier: Tier1, label: "TOP PRIORITY", recommendation: RecommendPursue},
	{min: 15, tier: Tier2, label: "QUALIFIED LEAD", recommendation: RecommendPursue},
	{min: 10, tier: Tier3, label: "MONITOR", recommendation: RecommendMonitor},
	{min: 5, tier: Tier4, label: "LOW PRIORITY", recommendation: RecommendMonitor},
	{min: 0, tier: Tier5, label: "REJECT", recommendation: RecommendReject},
}

func assignTier(score int) tierBand {
	for _, b := range tierBands {
		if score >= b.min {
			return b
		}
	}
	return tierBands[len(tierBands)-1]
}
