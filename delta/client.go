// Package delta is a client for the Delta Exchange India REST API: signed
// private requests, candle history, tickers, wallet balances, positions and
// order submission. The signal engine never talks to it directly; the bot
// runner feeds engine inputs from here and translates failures into
// "data unavailable this cycle".
package delta

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/trendbot/market"
)

// DefaultBaseURL is the production Delta Exchange India endpoint.
const DefaultBaseURL = "https://api.india.delta.exchange"

// Config describes client connectivity. Live=false keeps the client in
// dry-run mode: reads work normally, order posts are simulated.
type Config struct {
	BaseURL   string
	APIKey    string
	APISecret string
	Live      bool
	Timeout   time.Duration
	Retries   int
	Backoff   time.Duration
}

// Client is a Delta Exchange REST API client.
type Client struct {
	baseURL    string
	key        string
	secret     string
	live       bool
	retries    int
	backoff    time.Duration
	httpClient *http.Client
}

// NewClient creates a Delta Exchange client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 600 * time.Millisecond
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		key:     cfg.APIKey,
		secret:  cfg.APISecret,
		live:    cfg.Live,
		retries: cfg.Retries,
		backoff: cfg.Backoff,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Live reports whether order posts go to the exchange.
func (c *Client) Live() bool { return c.live }

// sign produces the request timestamp and HMAC-SHA256 signature over
// METHOD + timestamp + path + body, as the exchange requires.
func (c *Client) sign(method, path, body string) (ts, sig string) {
	ts = strconv.FormatInt(time.Now().Unix(), 10)
	mac := hmac.New(sha256.New, []byte(c.secret))
	mac.Write([]byte(strings.ToUpper(method) + ts + path + body))
	return ts, hex.EncodeToString(mac.Sum(nil))
}

// apiError is the error object Delta returns inside a failed envelope.
type apiError struct {
	Code    string `json:"code"`
	Context struct {
		ClientIP string `json:"client_ip"`
	} `json:"context"`
}

// envelope is the common Delta response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
	Error   *apiError       `json:"error"`
}

// RequestError carries the exchange error code plus the client IP the
// exchange saw, so callers can surface whitelist problems plainly.
type RequestError struct {
	Status   int
	Code     string
	ClientIP string
}

func (e *RequestError) Error() string {
	if e.ClientIP != "" {
		return fmt.Sprintf("api error %s (status %d): whitelist client ip %s", e.Code, e.Status, e.ClientIP)
	}
	return fmt.Sprintf("api error %s (status %d)", e.Code, e.Status)
}

// do executes one request against the API and decodes result into out.
// Private requests are signed; public ones are not.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, payload any, private bool, out any) error {
	var body string
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		body = string(b)
	}

	apiURL := c.baseURL + path
	if len(params) > 0 {
		apiURL += "?" + params.Encode()
	}

	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, apiURL, rdr)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "trendbot/1.0")
	if private {
		ts, sig := c.sign(method, path, body)
		req.Header.Set("api-key", c.key)
		req.Header.Set("timestamp", ts)
		req.Header.Set("signature", sig)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}

	if !env.Success {
		re := &RequestError{Status: resp.StatusCode}
		if env.Error != nil {
			re.Code = env.Error.Code
			re.ClientIP = env.Error.Context.ClientIP
		}
		return re
	}

	if out != nil {
		if err := json.Unmarshal(env.Result, out); err != nil {
			return fmt.Errorf("decode result: %w", err)
		}
	}
	return nil
}

// Candles fetches up to limit closed candles for one symbol and resolution,
// retrying transient failures with a fixed backoff. The raw records are
// normalized through market.ParseBars, so individually malformed bars are
// dropped rather than failing the fetch.
func (c *Client) Candles(ctx context.Context, symbol string, tf market.Timeframe, limit int) (market.Series, error) {
	interval := tf.Seconds()

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return market.Series{}, ctx.Err()
			case <-time.After(c.backoff):
			}
		}

		now := time.Now().Unix()
		params := url.Values{}
		params.Set("symbol", symbol)
		params.Set("resolution", string(tf))
		params.Set("start", strconv.FormatInt(now-int64(limit)*interval, 10))
		params.Set("end", strconv.FormatInt(now, 10))

		var raw []json.RawMessage
		if err := c.do(ctx, http.MethodGet, "/v2/history/candles", params, nil, false, &raw); err != nil {
			lastErr = err
			continue
		}
		return market.ParseBars(raw), nil
	}
	return market.Series{}, fmt.Errorf("fetch candles %s %s: %w", symbol, tf, lastErr)
}

type product struct {
	ID     int    `json:"id"`
	Symbol string `json:"symbol"`
}

// Products maps watched symbols to their product IDs.
func (c *Client) Products(ctx context.Context, watch []string) (map[string]int, error) {
	var result []product
	if err := c.do(ctx, http.MethodGet, "/v2/products", nil, nil, false, &result); err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}

	want := make(map[string]bool, len(watch))
	for _, s := range watch {
		want[strings.ToUpper(s)] = true
	}

	out := make(map[string]int, len(watch))
	for _, p := range result {
		sym := strings.ToUpper(p.Symbol)
		if want[sym] {
			out[sym] = p.ID
		}
	}
	return out, nil
}

type ticker struct {
	Symbol    string    `json:"symbol"`
	MarkPrice flexFloat `json:"mark_price"`
	LastPrice flexFloat `json:"last_price"`
	SpotPrice flexFloat `json:"spot_price"`
}

// Tickers returns the current price per symbol, preferring mark price over
// last trade over spot.
func (c *Client) Tickers(ctx context.Context) (map[string]float64, error) {
	var result []ticker
	if err := c.do(ctx, http.MethodGet, "/v2/tickers", nil, nil, false, &result); err != nil {
		return nil, fmt.Errorf("fetch tickers: %w", err)
	}

	out := make(map[string]float64, len(result))
	for _, t := range result {
		sym := strings.ToUpper(t.Symbol)
		if sym == "" {
			continue
		}
		switch {
		case t.MarkPrice != 0:
			out[sym] = float64(t.MarkPrice)
		case t.LastPrice != 0:
			out[sym] = float64(t.LastPrice)
		case t.SpotPrice != 0:
			out[sym] = float64(t.SpotPrice)
		}
	}
	return out, nil
}

// flexFloat decodes JSON numbers that arrive as either numbers or strings.
// Delta serializes most prices and balances as strings.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}
