package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
)

// Location is a supported SERP market region.
type Location string

const (
	LocationUnitedStates  Location = "United States"
	LocationUnitedKingdom Location = "United Kingdom"
	LocationCanada        Location = "Canada"
	LocationAustralia     Location = "Australia"
)

// Locations lists the supported regions in display order.
func Locations() []Location {
	return []Location{
		LocationUnitedStates,
		LocationUnitedKingdom,
		LocationCanada,
		LocationAustralia,
	}
}

// Timeline is the target horizon for a ranking strategy.
type Timeline string

const (
	Timeline3Months  Timeline = "3 months"
	Timeline6Months  Timeline = "6 months"
	Timeline9Months  Timeline = "9 months"
	Timeline12Months Timeline = "12 months"
)

// Timelines lists the supported strategy horizons in display order.
func Timelines() []Timeline {
	return []Timeline{Timeline3Months, Timeline6Months, Timeline9Months, Timeline12Months}
}

// Credentials holds the provider login pair and the model API key for one run.
// Never persisted; the session store holds results, not credentials.
type Credentials struct {
	DataForSEOLogin    string `json:"-"`
	DataForSEOPassword string `json:"-"`
	AnthropicKey       string `json:"-"`
}

// ErrMissingCredentials indicates a required credential was absent before any
// network call was attempted.
var ErrMissingCredentials = eris.New("missing API credentials")

// Validate checks that every credential needed for a full run is present.
func (c Credentials) Validate() error {
	if c.DataForSEOLogin == "" || c.DataForSEOPassword == "" || c.AnthropicKey == "" {
		return ErrMissingCredentials
	}
	return nil
}

// AnalysisRequest is the input collected at the presentation boundary.
type AnalysisRequest struct {
	Domain   string   `json:"domain"`
	Keyword  string   `json:"keyword"`
	Location Location `json:"location"`
	Timeline Timeline `json:"timeline"`
}

// Validate checks required fields and enum membership.
func (r AnalysisRequest) Validate() error {
	if r.Domain == "" {
		return eris.New("domain is required")
	}
	if r.Keyword == "" {
		return eris.New("keyword is required")
	}
	if r.Location != "" && !validLocation(r.Location) {
		return eris.Errorf("unsupported location %q", r.Location)
	}
	if r.Timeline != "" && !validTimeline(r.Timeline) {
		return eris.Errorf("unsupported timeline %q", r.Timeline)
	}
	return nil
}

func validLocation(l Location) bool {
	for _, v := range Locations() {
		if v == l {
			return true
		}
	}
	return false
}

func validTimeline(t Timeline) bool {
	for _, v := range Timelines() {
		if v == t {
			return true
		}
	}
	return false
}

// KeywordMetrics holds provider-computed keyword statistics. Pointer fields
// distinguish "no data" from a legitimate zero.
type KeywordMetrics struct {
	Difficulty   *int     `json:"keyword_difficulty,omitempty"`
	SearchVolume *int64   `json:"search_volume,omitempty"`
	CPC          *float64 `json:"cpc,omitempty"`
}

// BacklinkProfile summarizes a domain's inbound link strength.
// Fetched reports whether the provider call actually succeeded; rendered
// values for an unfetched profile stay zero for compatibility with the
// upstream behavior.
type BacklinkProfile struct {
	Backlinks        int64 `json:"backlinks"`
	ReferringDomains int64 `json:"referring_domains"`
	Rank             int   `json:"rank"`
	Fetched          bool  `json:"fetched"`
}

// Competitor is one organic SERP entry that is not the analyzed domain.
type Competitor struct {
	Position    int              `json:"position"`
	Domain      string           `json:"domain"`
	URL         string           `json:"url"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Backlinks   *BacklinkProfile `json:"backlink_profile,omitempty"`
}

// NotRanked is the SelfPosition sentinel for a domain absent from the
// observed SERP depth. It is never reported as an actual rank.
const NotRanked = 0

// Landscape is the unified competitive record for one keyword, built once per
// run and immutable afterwards.
type Landscape struct {
	Keyword       string          `json:"keyword"`
	Metrics       KeywordMetrics  `json:"keyword_metrics"`
	SelfDomain    string          `json:"self_domain"`
	SelfPosition  int             `json:"self_position"`
	SelfURL       string          `json:"self_url,omitempty"`
	SelfBacklinks BacklinkProfile `json:"self_backlinks"`
	Depth         int             `json:"depth"`
	Competitors   []Competitor    `json:"competitors"`
}

// Ranked reports whether the analyzed domain appeared in the observed depth.
func (l Landscape) Ranked() bool {
	return l.SelfPosition != NotRanked
}

// PositionLabel renders the self position for display: the absolute rank, or
// the not-ranked sentinel text.
func (l Landscape) PositionLabel() string {
	if !l.Ranked() {
		return fmt.Sprintf("Not in top %d", l.Depth)
	}
	return fmt.Sprintf("#%d", l.SelfPosition)
}

// MarshalJSON adds explicit ranked fields so API consumers can tell the
// NotRanked sentinel in self_position from a real rank.
func (l Landscape) MarshalJSON() ([]byte, error) {
	type landscapeJSON Landscape
	return json.Marshal(struct {
		landscapeJSON
		SelfRanked        bool   `json:"self_ranked"`
		SelfPositionLabel string `json:"self_position_label"`
	}{landscapeJSON(l), l.Ranked(), l.PositionLabel()})
}

// AnalysisResult is one completed analysis: landscape plus strategy text.
// Appended to session history, never mutated.
type AnalysisResult struct {
	ID        string    `json:"id"`
	Keyword   string    `json:"keyword"`
	Domain    string    `json:"domain"`
	Timeline  Timeline  `json:"timeline"`
	CreatedAt time.Time `json:"created_at"`
	Landscape Landscape `json:"landscape"`
	Strategy  string    `json:"strategy"`
	CostUSD   float64   `json:"cost_usd"`
}
