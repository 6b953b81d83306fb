package coingecko

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL       = "https://api.coingecko.com/api/v3"
	proBaseURL           = "https://pro-api.coingecko.com/api/v3"
	defaultHTTPTimeout   = 10 * time.Second
	defaultQuoteCurrency = "usd"
	maxErrorBody         = 512

	// PlanDemo authenticates with x_cg_demo_api_key; PlanPro with x_cg_pro_api_key.
	PlanDemo = "demo"
	PlanPro  = "pro"
)

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("coingecko: http status %d: %s", e.Code, e.Body)
}

// Client issues requests against the CoinGecko REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
	plan       string
	quote      string
}

// Option configures a new Client.
type Option func(*Client)

// WithHTTPClient injects a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithBaseURL overrides the API root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithAPIKey sets the credential sent with every request.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = strings.TrimSpace(key)
	}
}

// WithPlan selects the credential parameter, PlanDemo or PlanPro.
func WithPlan(plan string) Option {
	return func(c *Client) {
		if plan != "" {
			c.plan = strings.ToLower(plan)
		}
	}
}

// WithQuoteCurrency overrides the vs_currency parameter.
func WithQuoteCurrency(quote string) Option {
	return func(c *Client) {
		if quote != "" {
			c.quote = strings.ToLower(quote)
		}
	}
}

// NewClient constructs a CoinGecko API client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		plan:       PlanDemo,
		quote:      defaultQuoteCurrency,
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
		if client.plan == PlanPro {
			client.baseURL = proBaseURL
		}
	}
	return client
}

// GetCoinMarkets returns market rows for the given coin ids.
func (c *Client) GetCoinMarkets(ctx context.Context, ids ...string) ([]CoinMarket, error) {
	params := url.Values{}
	params.Set("ids", strings.Join(ids, ","))
	var out []CoinMarket
	if err := c.get(ctx, "/coins/markets", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetMarketChart returns daily price and volume points for the trailing days
// (a day count or "max").
func (c *Client) GetMarketChart(ctx context.Context, id, days string) (*MarketChart, error) {
	params := url.Values{}
	params.Set("days", days)
	params.Set("interval", "daily")
	var out MarketChart
	if err := c.get(ctx, "/coins/"+url.PathEscape(id)+"/market_chart", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetMarketChartRange returns price and volume points between from and to.
func (c *Client) GetMarketChartRange(ctx context.Context, id string, from, to time.Time) (*MarketChart, error) {
	params := url.Values{}
	params.Set("from", strconv.FormatInt(from.Unix(), 10))
	params.Set("to", strconv.FormatInt(to.Unix(), 10))
	var out MarketChart
	if err := c.get(ctx, "/coins/"+url.PathEscape(id)+"/market_chart/range", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetOHLC returns candles for the trailing days.
func (c *Client) GetOHLC(ctx context.Context, id, days string) ([]OHLCTuple, error) {
	params := url.Values{}
	params.Set("days", days)
	var out []OHLCTuple
	if err := c.get(ctx, "/coins/"+url.PathEscape(id)+"/ohlc", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) credentialParam() string {
	if c.plan == PlanPro {
		return "x_cg_pro_api_key"
	}
	return "x_cg_demo_api_key"
}

// get issues a GET request and decodes the JSON response into result.
func (c *Client) get(ctx context.Context, path string, params url.Values, result any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("vs_currency", c.quote)
	if c.apiKey != "" {
		params.Set(c.credentialParam(), c.apiKey)
	}
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("coingecko: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("coingecko: request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("coingecko: read response: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(result); err != nil {
		return fmt.Errorf("coingecko: decode response: %w", err)
	}
	return nil
}
