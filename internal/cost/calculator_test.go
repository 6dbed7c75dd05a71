package cost

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testRates() Rates {
	return Rates{
		Anthropic: map[string]ModelRate{
			"claude-sonnet-4-5-20250929": {Input: 3.00, Output: 15.00},
		},
		DataForSEO: DataForSEORate{
			PerSERPCall:      0.002,
			PerBacklinksCall: 0.00003,
			PerKeywordCall:   0.0001,
		},
	}
}

func TestClaude(t *testing.T) {
	c := NewCalculator(testRates())

	// 1M input at $3 + 1M output at $15.
	assert.InDelta(t, 18.0, c.Claude("claude-sonnet-4-5-20250929", 1_000_000, 1_000_000), 1e-9)
	assert.InDelta(t, 0.033, c.Claude("claude-sonnet-4-5-20250929", 1000, 2000), 1e-9)
	assert.Zero(t, c.Claude("claude-sonnet-4-5-20250929", 0, 0))
}

func TestClaudeUnknownModel(t *testing.T) {
	c := NewCalculator(testRates())
	assert.Zero(t, c.Claude("claude-haiku-4-5", 1_000_000, 1_000_000))
}

func TestDataForSEO(t *testing.T) {
	c := NewCalculator(testRates())

	got := c.DataForSEO(1, 4, 1)
	assert.InDelta(t, 0.002+4*0.00003+0.0001, got, 1e-9)
	assert.Zero(t, c.DataForSEO(0, 0, 0))
}
