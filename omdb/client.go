package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"moviehub/errs"
	"moviehub/movie"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "http://www.omdbapi.com/"
	DefaultTimeout = 10 * time.Second

	notAvailable = "N/A"
)

var ErrMissingAPIKey = errs.Errorf(errs.EINVALID, "OMDB_API_KEY must be provided")

type Options struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to the OMDb API and implements movie.Catalog.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient returns ErrMissingAPIKey when no API key is configured.
func NewClient(opts Options) (*Client, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, errs.Wrap(errs.EINVALID, err, "invalid OMDB_BASE_URL %q", baseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

type searchResponse struct {
	Response     string       `json:"Response"`
	Error        string       `json:"Error"`
	TotalResults string       `json:"totalResults"`
	Search       []searchItem `json:"Search"`
}

type searchItem struct {
	ImdbID string `json:"imdbID"`
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

type detailResponse struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
	ImdbID   string `json:"imdbID"`
	Title    string `json:"Title"`
	Director string `json:"Director"`
	Plot     string `json:"Plot"`
	Poster   string `json:"Poster"`
	Year     string `json:"Year"`
}

// Search fetches one page of keyword search results.
func (c *Client) Search(ctx context.Context, q movie.CatalogQuery) (movie.CatalogPage, error) {
	params := url.Values{}
	params.Set("s", q.Keyword)
	if q.Year != "" {
		params.Set("y", q.Year)
	}
	if q.Type != "" {
		params.Set("type", q.Type)
	}
	params.Set("page", strconv.Itoa(q.Page))

	var resp searchResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return movie.CatalogPage{}, fmt.Errorf("omdb search %q page %d: %w", q.Keyword, q.Page, err)
	}

	if resp.Response != "True" {
		return movie.CatalogPage{Found: false, Reason: resp.Error}, nil
	}

	total, err := strconv.Atoi(strings.TrimSpace(resp.TotalResults))
	if err != nil {
		return movie.CatalogPage{}, fmt.Errorf("omdb search %q page %d: invalid totalResults %q", q.Keyword, q.Page, resp.TotalResults)
	}

	items := make([]movie.CatalogItem, 0, len(resp.Search))
	for _, item := range resp.Search {
		if item.ImdbID == "" {
			continue
		}
		items = append(items, movie.CatalogItem{ExternalID: item.ImdbID, Title: item.Title})
	}

	return movie.CatalogPage{Found: true, TotalResults: total, Items: items}, nil
}

// Detail fetches the full record of one title, including the full plot.
func (c *Client) Detail(ctx context.Context, externalID string) (movie.Movie, error) {
	params := url.Values{}
	params.Set("i", externalID)
	params.Set("plot", "full")

	var resp detailResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return movie.Movie{}, fmt.Errorf("omdb detail %s: %w", externalID, err)
	}

	if resp.Response != "True" {
		return movie.Movie{}, fmt.Errorf("omdb detail %s: %s", externalID, resp.Error)
	}
	if resp.ImdbID == "" || strings.TrimSpace(resp.Title) == "" {
		return movie.Movie{}, fmt.Errorf("omdb detail %s: missing imdbID or title", externalID)
	}

	return movie.Movie{
		ExternalID: resp.ImdbID,
		Title:      strings.TrimSpace(resp.Title),
		Director:   available(resp.Director),
		Plot:       available(resp.Plot),
		Poster:     available(resp.Poster),
		Year:       parseYear(resp.Year),
	}, nil
}

func (c *Client) get(ctx context.Context, params url.Values, out interface{}) error {
	params.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func available(s string) string {
	s = strings.TrimSpace(s)
	if s == notAvailable {
		return ""
	}
	return s
}

// parseYear reads the leading four digits of OMDb's year field, which may
// be a range such as "2019–2020". Unknown years become 0.
func parseYear(s string) int {
	s = strings.TrimSpace(s)
	if len(s) < 4 {
		return 0
	}
	year, err := strconv.Atoi(s[:4])
	if err != nil {
		return 0
	}
	return year
}
