package dataforseo

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

const (
	defaultBaseURL = "https://api.dataforseo.com/v3"

	// statusOK is the provider's body-level success sentinel, distinct from
	// the HTTP status.
	statusOK = 20000
)

// Client performs DataForSEO v3 API operations.
type Client interface {
	SERPLive(ctx context.Context, req SERPRequest) ([]SERPItem, error)
	BacklinksSummary(ctx context.Context, target string) (*BacklinksSummary, error)
	BulkKeywordDifficulty(ctx context.Context, keywords []string, locationCode int, languageCode string) ([]KeywordDifficultyItem, error)
}

// SERPRequest describes one live organic SERP lookup.
type SERPRequest struct {
	Keyword      string `json:"keyword"`
	LocationName string `json:"location_name"`
	LanguageName string `json:"language_name"`
	Device       string `json:"device"`
	Depth        int    `json:"depth"`
}

// SERPItem is a single result entry from a live SERP task.
type SERPItem struct {
	Type         string `json:"type"`
	RankAbsolute int    `json:"rank_absolute"`
	Domain       string `json:"domain"`
	URL          string `json:"url"`
	Title        string `json:"title"`
	Description  string `json:"description"`
}

// BacklinksSummary is the domain-level backlink summary result.
type BacklinksSummary struct {
	Target           string `json:"target"`
	Backlinks        int64  `json:"backlinks"`
	ReferringDomains int64  `json:"referring_domains"`
	Rank             int    `json:"rank"`
}

// KeywordDifficultyItem is one keyword's difficulty metrics. Pointer fields
// stay nil when the provider has no data for them.
type KeywordDifficultyItem struct {
	Keyword     string       `json:"keyword"`
	Difficulty  *int         `json:"keyword_difficulty"`
	KeywordInfo *KeywordInfo `json:"keyword_info"`
}

// KeywordInfo carries search-market metrics for a keyword.
type KeywordInfo struct {
	SearchVolume *int64   `json:"search_volume"`
	CPC          *float64 `json:"cpc"`
}

// ProviderError is a successful HTTP exchange the provider rejected with a
// non-20000 body status.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("dataforseo: provider status %d: %s", e.StatusCode, e.Message)
}

// IsProviderRejection reports whether err carries a ProviderError.
func IsProviderRejection(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	auth    string // precomputed Basic auth header value
	baseURL string
	http    *http.Client
}

// NewClient creates a DataForSEO API client using Basic auth derived from the
// account login and password.
func NewClient(login, password string, opts ...Option) Client {
	c := &httpClient{
		auth:    "Basic " + base64.StdEncoding.EncodeToString([]byte(login+":"+password)),
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// envelope is the provider's response wrapper shared by all endpoints.
type envelope struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Tasks         []task `json:"tasks"`
}

type task struct {
	StatusCode    int               `json:"status_code"`
	StatusMessage string            `json:"status_message"`
	Result        []json.RawMessage `json:"result"`
}

// post sends a single-task payload and returns the first task's result array.
// A nil slice with nil error means the task completed with an empty result.
func (c *httpClient) post(ctx context.Context, endpoint string, payload any) ([]json.RawMessage, error) {
	// Every live endpoint takes an array of task payloads; we always send one.
	body, err := json.Marshal([]any{payload})
	if err != nil {
		return nil, eris.Wrap(err, "dataforseo: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "dataforseo: create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.auth)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "dataforseo: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "dataforseo: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("dataforseo: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, eris.Wrap(err, "dataforseo: unmarshal response")
	}

	if env.StatusCode != statusOK {
		return nil, eris.Wrap(&ProviderError{StatusCode: env.StatusCode, Message: env.StatusMessage}, "dataforseo: "+endpoint)
	}
	if len(env.Tasks) == 0 {
		return nil, eris.Errorf("dataforseo: %s: empty task list", endpoint)
	}

	t := env.Tasks[0]
	if t.StatusCode != statusOK {
		return nil, eris.Wrap(&ProviderError{StatusCode: t.StatusCode, Message: t.StatusMessage}, "dataforseo: "+endpoint)
	}

	return t.Result, nil
}

func (c *httpClient) SERPLive(ctx context.Context, req SERPRequest) ([]SERPItem, error) {
	result, err := c.post(ctx, "serp/google/organic/live/advanced", req)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, nil
	}

	var page struct {
		Items []SERPItem `json:"items"`
	}
	if err := json.Unmarshal(result[0], &page); err != nil {
		return nil, eris.Wrap(err, "dataforseo: unmarshal serp result")
	}
	return page.Items, nil
}

func (c *httpClient) BacklinksSummary(ctx context.Context, target string) (*BacklinksSummary, error) {
	payload := struct {
		Target string `json:"target"`
		Mode   string `json:"mode"`
	}{Target: target, Mode: "domain"}

	result, err := c.post(ctx, "backlinks/summary/live", payload)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, nil
	}

	var summary BacklinksSummary
	if err := json.Unmarshal(result[0], &summary); err != nil {
		return nil, eris.Wrap(err, "dataforseo: unmarshal backlinks result")
	}
	return &summary, nil
}

func (c *httpClient) BulkKeywordDifficulty(ctx context.Context, keywords []string, locationCode int, languageCode string) ([]KeywordDifficultyItem, error) {
	payload := struct {
		Keywords     []string `json:"keywords"`
		LocationCode int      `json:"location_code"`
		LanguageCode string   `json:"language_code"`
	}{Keywords: keywords, LocationCode: locationCode, LanguageCode: languageCode}

	result, err := c.post(ctx, "dataforseo_labs/google/bulk_keyword_difficulty/live", payload)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, nil
	}

	var block struct {
		Items []KeywordDifficultyItem `json:"items"`
	}
	if err := json.Unmarshal(result[0], &block); err != nil {
		return nil, eris.Wrap(err, "dataforseo: unmarshal difficulty result")
	}
	return block.Items, nil
}
