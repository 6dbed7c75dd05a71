package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yarberjoseph/seo-analyst-agent/internal/model"
	"github.com/yarberjoseph/seo-analyst-agent/pkg/dataforseo"
)

func TestClassifySERP(t *testing.T) {
	items := organicSERP("mycrm.com")

	position, url, competitors := classifySERP(items, "mycrm.com")

	assert.Equal(t, 4, position)
	assert.Equal(t, "https://mycrm.com/page", url)
	require.Len(t, competitors, 9)

	// Self never appears among competitors; order is by rank ascending.
	prev := 0
	for _, c := range competitors {
		assert.NotEqual(t, "mycrm.com", c.Domain)
		assert.Greater(t, c.Position, prev)
		prev = c.Position
	}
}

func TestClassifySERPNonOrganicDiscarded(t *testing.T) {
	items := []dataforseo.SERPItem{
		{Type: "paid", RankAbsolute: 1, Domain: "mycrm.com", URL: "https://mycrm.com/ad"},
		{Type: "featured_snippet", RankAbsolute: 2, Domain: "wiki.example", URL: "https://wiki.example/"},
		{Type: "organic", RankAbsolute: 3, Domain: "other.com", URL: "https://other.com/"},
	}

	position, url, competitors := classifySERP(items, "mycrm.com")

	// A paid placement of the self domain must not count as a ranking.
	assert.Equal(t, model.NotRanked, position)
	assert.Empty(t, url)
	require.Len(t, competitors, 1)
	assert.Equal(t, "other.com", competitors[0].Domain)
}

func TestClassifySERPNotRanked(t *testing.T) {
	items := organicSERP("unrelated.example")

	position, url, competitors := classifySERP(items, "missing.com")

	assert.Equal(t, model.NotRanked, position)
	assert.Empty(t, url)
	assert.Len(t, competitors, 10)
}

func TestClassifySERPCaseInsensitiveSubstring(t *testing.T) {
	items := []dataforseo.SERPItem{
		{Type: "organic", RankAbsolute: 2, Domain: "www.MyCRM.com", URL: "https://www.mycrm.com/x"},
	}

	position, url, competitors := classifySERP(items, "mycrm.com")

	assert.Equal(t, 2, position)
	assert.Equal(t, "https://www.mycrm.com/x", url)
	assert.Empty(t, competitors)
}
