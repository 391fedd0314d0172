package reaction

// Tier is a qualitative feedback level for a reaction time.
type Tier int

const (
	TierLightningFast Tier = iota
	TierSuperQuick
	TierGreat
	TierGood
	TierKeepPracticing
)

var tierLabels = [...]string{
	TierLightningFast:  "Lightning Fast",
	TierSuperQuick:     "Super Quick",
	TierGreat:          "Great",
	TierGood:           "Good",
	TierKeepPracticing: "Keep Practicing",
}

// Label returns the English tier text, which doubles as the i18n message key.
func (t Tier) Label() string {
	if t < 0 || int(t) >= len(tierLabels) {
		return ""
	}
	return tierLabels[t]
}

func (t Tier) String() string {
	return t.Label()
}

// Classify maps a reaction time in milliseconds to its tier.
// Upper bounds are exclusive.
func Classify(ms int64) Tier {
	switch {
	case ms < 200:
		return TierLightningFast
	case ms < 300:
		return TierSuperQuick
	case ms < 400:
		return TierGreat
	case ms < 500:
		return TierGood
	default:
		return TierKeepPracticing
	}
}
