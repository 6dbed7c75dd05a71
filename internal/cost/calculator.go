package cost

// Rates holds per-provider pricing configuration.
type Rates struct {
	Anthropic  map[string]ModelRate `yaml:"anthropic" mapstructure:"anthropic"`
	DataForSEO DataForSEORate       `yaml:"dataforseo" mapstructure:"dataforseo"`
}

// ModelRate holds per-model token pricing (USD per million tokens).
type ModelRate struct {
	Input  float64 `yaml:"input" mapstructure:"input"`
	Output float64 `yaml:"output" mapstructure:"output"`
}

// DataForSEORate holds per-call credit prices for the ranking-data provider.
type DataForSEORate struct {
	PerSERPCall      float64 `yaml:"per_serp_call" mapstructure:"per_serp_call"`
	PerBacklinksCall float64 `yaml:"per_backlinks_call" mapstructure:"per_backlinks_call"`
	PerKeywordCall   float64 `yaml:"per_keyword_call" mapstructure:"per_keyword_call"`
}

// Calculator computes estimated USD costs for API usage in one analysis run.
type Calculator struct {
	rates Rates
}

// NewCalculator creates a Calculator with the given rates.
func NewCalculator(rates Rates) *Calculator {
	return &Calculator{rates: rates}
}

// Claude computes the cost of a Claude API call.
func (c *Calculator) Claude(model string, input, output int64) float64 {
	rate, ok := c.rates.Anthropic[model]
	if !ok {
		return 0
	}
	return (float64(input)/1e6)*rate.Input + (float64(output)/1e6)*rate.Output
}

// DataForSEO computes the cost of one run's provider calls.
func (c *Calculator) DataForSEO(serpCalls, backlinksCalls, keywordCalls int) float64 {
	r := c.rates.DataForSEO
	return float64(serpCalls)*r.PerSERPCall +
		float64(backlinksCalls)*r.PerBacklinksCall +
		float64(keywordCalls)*r.PerKeywordCall
}
