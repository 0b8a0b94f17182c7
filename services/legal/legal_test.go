package legal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSectionsHaveUniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range Sections() {
		assert.False(t, seen[s.ID], s.ID)
		seen[s.ID] = true
		assert.NotEmpty(t, s.Content)
	}
}

func TestFind(t *testing.T) {
	s, ok := Find(TermsOfSaleID)
	assert.True(t, ok)
	assert.Contains(t, s.Content, "30%")

	_, ok = Find("missing")
	assert.False(t, ok)
}
