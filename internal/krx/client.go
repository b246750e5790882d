// Package krx talks to the two public Korean market data sources the
// dashboard needs: the KIND listed-company directory and the Naver daily
// price chart endpoint.
package krx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

const (
	// DefaultDirectoryURL downloads every listed company as an HTML table
	DefaultDirectoryURL = "http://kind.krx.co.kr/corpgeneral/corpList.do?method=download&searchType=13"
	// DefaultPriceURL serves daily OHLCV series by ticker and date range
	DefaultPriceURL = "https://api.finance.naver.com/siseJson.naver"

	maxBodyBytes = 32 << 20
)

// Client is an HTTP client for the KIND directory and the Naver price endpoint
type Client struct {
	directoryURL string
	priceURL     string
	httpClient   *http.Client
}

// NewClient creates a new Client against the public endpoints
func NewClient() *Client {
	return NewClientWithURLs(DefaultDirectoryURL, DefaultPriceURL)
}

// NewClientWithURLs creates a new Client with custom endpoints (for configuration and testing)
func NewClientWithURLs(directoryURL, priceURL string) *Client {
	return &Client{
		directoryURL: directoryURL,
		priceURL:     priceURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// doRequest performs a GET and returns the body decoded to UTF-8.
func (c *Client) doRequest(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	reqURL := rawURL
	if len(params) > 0 {
		sep := "?"
		if u, err := url.Parse(rawURL); err == nil && u.RawQuery != "" {
			sep = "&"
		}
		reqURL += sep + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; krxdash/1.0)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return toUTF8(body)
}

// toUTF8 passes UTF-8 bodies through and decodes anything else as EUC-KR,
// which is what KIND serves its download in.
func toUTF8(body []byte) ([]byte, error) {
	if utf8.Valid(body) {
		return body, nil
	}
	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(body), korean.EUCKR.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("failed to decode EUC-KR response: %w", err)
	}
	return decoded, nil
}
