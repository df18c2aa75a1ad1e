package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"resumatch/src/infrastructure/log"
)

const (
	DefaultURL = "https://api.tavily.com"

	maxSearchResults = 10
)

// SearchRequest represents the request structure for the search endpoint
type SearchRequest struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth"`
	MaxResults  int    `json:"max_results"`
}

// searchResponse represents the response structure from the search endpoint
type searchResponse struct {
	Results []searchResultItem `json:"results"`
	Data    []searchResultItem `json:"data"`
}

type searchResultItem struct {
	Title   string `json:"title"`
	Name    string `json:"name"`
	URL     string `json:"url"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Content string `json:"content"`
	Source  string `json:"source"`
}

// Result is a single normalized web search result
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`
}

// Client represents a Tavily search API client
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a new Tavily API client. An empty API key is allowed;
// searches then degrade to empty results instead of failing requests.
func NewClient(baseURL string, apiKey string, c *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}

	return &Client{
		httpClient: c,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

// Search performs a basic web search and normalizes the result items
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if c.apiKey == "" {
		log.Debug("skipping web search: no tavily api key configured")
		return nil, nil
	}

	if maxResults < 1 {
		maxResults = 1
	}
	if maxResults > maxSearchResults {
		maxResults = maxSearchResults
	}

	reqBody := SearchRequest{
		APIKey:      c.apiKey,
		Query:       query,
		SearchDepth: "basic",
		MaxResults:  maxResults,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/search", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search request failed with status %s", resp.Status)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	items := result.Results
	if len(items) == 0 {
		items = result.Data
	}

	normalized := make([]Result, 0, len(items))
	for _, item := range items {
		normalized = append(normalized, Result{
			Title:   firstNonEmpty(item.Title, item.Name),
			URL:     firstNonEmpty(item.URL, item.Link),
			Snippet: firstNonEmpty(item.Snippet, item.Content),
			Source:  firstNonEmpty(item.Source, "web"),
		})
	}

	return normalized, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
