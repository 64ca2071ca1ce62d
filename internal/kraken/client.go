package kraken

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
)

const userAgent = "krakenboard/1.0"

// APIError carries the messages of a non-empty "error" array in a Kraken response.
type APIError struct {
	Endpoint string
	Messages []string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("kraken %s: %s", e.Endpoint, strings.Join(e.Messages, "; "))
}

// envelope is the common shape of every Kraken REST response.
type envelope struct {
	Error  []string        `json:"error"`
	Result json.RawMessage `json:"result"`
}

// Client is a Kraken REST API client. It never retries.
type Client struct {
	http      *resty.Client
	apiKey    string
	secret    []byte
	lastNonce atomic.Int64
}

// NewClient creates a Kraken client. apiKey and secret may be empty for public-only use;
// secret is the base64-decoded private key.
func NewClient(baseURL string, timeout time.Duration, apiKey string, secret []byte) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimSuffix(baseURL, "/")).
			SetTimeout(timeout).
			SetHeader("User-Agent", userAgent),
		apiKey: apiKey,
		secret: secret,
	}
}

// public performs a GET against /0/public/{method}.
func (c *Client) public(ctx context.Context, method string, query map[string]string) (json.RawMessage, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get("/0/public/" + method)
	if err != nil {
		return nil, fmt.Errorf("executing %s request: %w", method, err)
	}
	return decode(method, resp)
}

// private performs a signed POST against /0/private/{method}.
func (c *Client) private(ctx context.Context, method string, params url.Values) (json.RawMessage, error) {
	if c.apiKey == "" || len(c.secret) == 0 {
		return nil, fmt.Errorf("%s requires API credentials", method)
	}

	path := "/0/private/" + method
	form := url.Values{}
	for k, v := range params {
		form[k] = v
	}
	nonce := c.nextNonce()
	form.Set("nonce", nonce)
	body := form.Encode()

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetHeader("API-Key", c.apiKey).
		SetHeader("API-Sign", sign(c.secret, path, nonce, body)).
		SetBody(body).
		Post(path)
	if err != nil {
		return nil, fmt.Errorf("executing %s request: %w", method, err)
	}
	return decode(method, resp)
}

func decode(method string, resp *resty.Response) (json.RawMessage, error) {
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("HTTP %d from %s: %s", resp.StatusCode(), method, strings.TrimSpace(string(resp.Body())))
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, fmt.Errorf("parsing JSON from %s: %w", method, err)
	}
	if len(env.Error) > 0 {
		return nil, &APIError{Endpoint: method, Messages: env.Error}
	}
	return env.Result, nil
}

// nextNonce returns a strictly increasing microsecond timestamp.
func (c *Client) nextNonce() string {
	for {
		last := c.lastNonce.Load()
		next := max(time.Now().UnixMicro(), last+1)
		if c.lastNonce.CompareAndSwap(last, next) {
			return strconv.FormatInt(next, 10)
		}
	}
}

// sign computes API-Sign: base64(HMAC-SHA512(secret, path + SHA256(nonce + body))).
func sign(secret []byte, path, nonce, body string) string {
	sum := sha256.Sum256([]byte(nonce + body))
	mac := hmac.New(sha512.New, secret)
	mac.Write([]byte(path))
	mac.Write(sum[:])
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
