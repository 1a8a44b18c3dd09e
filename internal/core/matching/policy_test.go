package matching_test

import (
	"testing"

	"fridge-chef/internal/core/matching"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_Classify(t *testing.T) {
	p := matching.DefaultPolicy()

	tests := []struct {
		cleaned string
		want    matching.Category
	}{
		{"다진마늘", matching.Ignorable},
		{"대파", matching.Ignorable},
		{"소금", matching.Ignorable},
		{"물", matching.Ignorable},
		{"찬 물", matching.Ignorable},
		{"파", matching.Ignorable},
		{"콩나물", matching.Literal},
		{"파프리카", matching.Literal},
		{"돼지고기 목살", matching.MeatEquivalent},
		{"삼겹살", matching.MeatEquivalent},
		{"다짐육", matching.MeatEquivalent},
		{"김치", matching.Literal},
		{"", matching.Literal},
	}

	for _, tt := range tests {
		t.Run(tt.cleaned, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Classify(tt.cleaned))
		})
	}
}

func TestPolicy_ClassifyIsOrderIndependent(t *testing.T) {
	p := matching.DefaultPolicy()
	segments := matching.SplitSegments("콩나물, 돼지고기, 대파, 소금, 김치")

	forward := make([]matching.Category, len(segments))
	for i, s := range segments {
		forward[i] = p.Classify(matching.Normalize(s))
	}
	for i := len(segments) - 1; i >= 0; i-- {
		assert.Equal(t, forward[i], p.Classify(matching.Normalize(segments[i])))
	}
}

func TestNewPolicy_ExtraTerms(t *testing.T) {
	p := matching.NewPolicy([]string{"깨소금", "  "}, []string{"Ham (슬라이스)"})

	assert.Equal(t, matching.Ignorable, p.Classify("볶은 깨소금"))
	assert.Equal(t, matching.MeatEquivalent, p.Classify("통조림 ham"))

	pantry := p.NormalizePantry([]string{"HAM"})
	assert.True(t, pantry.Has(matching.GenericPork))
}

func TestCategory_String(t *testing.T) {
	assert.Equal(t, "literal", matching.Literal.String())
	assert.Equal(t, "ignorable", matching.Ignorable.String())
	assert.Equal(t, "meat_equivalent", matching.MeatEquivalent.String())
}
