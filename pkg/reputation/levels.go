package reputation

// Tier maps a reputation threshold to a display label. Thresholds are fixed;
// labels are configuration.
type Tier struct {
	Threshold uint64
	Label     string
}

// DefaultTiers is evaluated top-down, highest qualifying tier wins.
var DefaultTiers = []Tier{
	{900, "Legendary"},
	{750, "Expert"},
	{500, "Advanced"},
	{250, "Intermediate"},
	{0, "Novice"},
}

// LevelTable resolves a reputation score to a tier label. A table is
// immutable after construction, making LevelFor a pure function.
type LevelTable struct {
	tiers []Tier
}

func NewLevelTable(tiers []Tier) *LevelTable {
	if len(tiers) == 0 {
		tiers = DefaultTiers
	}

	return &LevelTable{tiers: tiers}
}

// LevelFor is monotonic non-decreasing: raising reputation never demotes.
func (t *LevelTable) LevelFor(reputation uint64) string {
	for _, tier := range t.tiers {
		if reputation >= tier.Threshold {
			return tier.Label
		}
	}

	return t.tiers[len(t.tiers)-1].Label
}

// Base returns the lowest tier label, assigned at registration.
func (t *LevelTable) Base() string {
	return t.tiers[len(t.tiers)-1].Label
}
