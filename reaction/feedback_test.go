package reaction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ReactionTest/reaction"
)

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		ms   int64
		want reaction.Tier
	}{
		{0, reaction.TierLightningFast},
		{199, reaction.TierLightningFast},
		{200, reaction.TierSuperQuick},
		{299, reaction.TierSuperQuick},
		{300, reaction.TierGreat},
		{399, reaction.TierGreat},
		{400, reaction.TierGood},
		{499, reaction.TierGood},
		{500, reaction.TierKeepPracticing},
		{10000, reaction.TierKeepPracticing},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, reaction.Classify(tc.ms), "Classify(%d)", tc.ms)
	}
}

func TestTierLabels(t *testing.T) {
	assert.Equal(t, "Lightning Fast", reaction.TierLightningFast.Label())
	assert.Equal(t, "Super Quick", reaction.TierSuperQuick.Label())
	assert.Equal(t, "Great", reaction.TierGreat.Label())
	assert.Equal(t, "Good", reaction.TierGood.Label())
	assert.Equal(t, "Keep Practicing", reaction.TierKeepPracticing.Label())
	assert.Empty(t, reaction.Tier(42).Label())
}
