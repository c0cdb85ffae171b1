package artic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/artgrid/internal/models"
)

// DefaultBaseURL is the public Art Institute of Chicago API
const DefaultBaseURL = "https://api.artic.edu/api/v1"

// Client represents an artworks API client
type Client struct {
	BaseURL   string
	UserAgent string
	// Fields trims the response to the listed fields when set
	Fields     []string
	httpClient *http.Client
}

// NewClient creates a new artworks client. A zero timeout leaves requests unbounded.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Fields:  models.Fields,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// WithHTTPClient swaps the underlying transport, mostly for tests
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// FetchPage fetches one page of artworks
func (c *Client) FetchPage(ctx context.Context, page, limit int) ([]models.Artwork, error) {
	p, err := c.FetchPageInfo(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	return p.Data, nil
}

// FetchPageInfo fetches one page of artworks along with the paging block
func (c *Client) FetchPageInfo(ctx context.Context, page, limit int) (*models.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.pageURL(page, limit), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create artworks request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		// The AIC API asks clients to identify themselves with this header
		req.Header.Set("AIC-User-Agent", c.UserAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch artworks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("artworks API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var p models.Page
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode artworks response: %w", err)
	}
	if p.Data == nil {
		p.Data = []models.Artwork{}
	}

	return &p, nil
}

func (c *Client) pageURL(page, limit int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	if len(c.Fields) > 0 {
		q.Set("fields", strings.Join(c.Fields, ","))
	}
	return fmt.Sprintf("%s/artworks?%s", c.BaseURL, q.Encode())
}
