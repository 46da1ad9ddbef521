package domain

// Tier names an advisory band of predicted temperature.
type Tier string

const (
	TierUrgent    Tier = "urgent"
	TierCritical  Tier = "critical"
	TierImportant Tier = "important"
	TierPositive  Tier = "positive"
)

type advisoryTier struct {
	tier Tier
	// matches is nil for the fallback tier.
	matches    func(t float64) bool
	advisories []string
}

// advisoryTiers is evaluated top-down; the first matching tier wins.
var advisoryTiers = []advisoryTier{
	{
		tier:    TierUrgent,
		matches: func(t float64) bool { return t > 3 },
		advisories: []string{
			"Urgent: Immediate global action required to limit carbon emissions and prevent severe global warming.",
			"Massive shift to renewable energy sources (solar, wind) is essential.",
			"Increase efforts on reforestation and protecting biodiversity.",
			"Promote sustainable agricultural practices to reduce emissions.",
			"Adapt to the risks of extreme weather events: floods, droughts, and storms.",
		},
	},
	{
		tier:    TierCritical,
		matches: func(t float64) bool { return t >= 2 && t <= 3 },
		advisories: []string{
			"Critical: Strengthening international climate agreements and transitioning to a carbon-neutral economy.",
			"Increase the adoption of electric vehicles and sustainable transportation.",
			"Boost investments in green technologies and energy-efficient infrastructure.",
			"Prepare for severe droughts and floods; invest in climate-resilient infrastructure.",
			"Ensure the protection of vulnerable populations from climate impacts.",
		},
	},
	{
		tier:    TierImportant,
		matches: func(t float64) bool { return t >= 1 && t < 2 },
		advisories: []string{
			"Important: Gradual transition to sustainable energy and reduction in carbon emissions.",
			"Support conservation of forests and ecosystems that act as carbon sinks.",
			"Encourage sustainable water use practices to mitigate the impacts of climate change.",
			"Invest in early warning systems for climate-related disasters.",
		},
	},
	{
		tier: TierPositive,
		advisories: []string{
			"Positive: Continue efforts to reduce carbon emissions and promote sustainable practices.",
			"Focus on enhancing global awareness and climate education.",
			"Monitor and protect the environment, aiming for a carbon-neutral world.",
		},
	},
}

func tierFor(t float64) advisoryTier {
	for _, at := range advisoryTiers {
		if at.matches == nil || at.matches(t) {
			return at
		}
	}
	return advisoryTiers[len(advisoryTiers)-1]
}

// ClassifyTier returns the advisory tier for a predicted temperature.
func ClassifyTier(t float64) Tier {
	return tierFor(t).tier
}

// Classify returns the ordered advisories for a predicted temperature.
// The returned slice is never empty and is safe to modify.
func Classify(t float64) []string {
	return cloneStrings(tierFor(t).advisories)
}

// Advisories returns the advisories of a tier, or nil for an unknown tier.
func Advisories(tier Tier) []string {
	for _, at := range advisoryTiers {
		if at.tier == tier {
			return cloneStrings(at.advisories)
		}
	}
	return nil
}

// Tiers returns every tier in evaluation order.
func Tiers() []Tier {
	out := make([]Tier, len(advisoryTiers))
	for i, at := range advisoryTiers {
		out[i] = at.tier
	}
	return out
}

func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
