package translator

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Noooste/azuretls-client"

	"hovertrans/backend/internal/config"
	"hovertrans/backend/internal/network"
)

// maxResponseSize bounds how much of a response body is read.
const maxResponseSize = 4 << 20

type httpFetcher struct {
	clients *network.ClientFactory
	timeout time.Duration
}

// NewHTTPFetcher fetches with a standard net/http client from clients.
func NewHTTPFetcher(clients *network.ClientFactory, timeout time.Duration) Fetcher {
	return &httpFetcher{clients: clients, timeout: timeout}
}

func (f *httpFetcher) Fetch(ctx context.Context, rawURL string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("User-Agent", config.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.clients.NewHTTPClient(ctx, f.timeout).Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read body: %w", err)
	}
	return resp.StatusCode, body, nil
}

type browserFetcher struct {
	clients *network.ClientFactory
	timeout time.Duration
}

// NewBrowserFetcher fetches through an azuretls session carrying a Chrome
// TLS fingerprint, for networks that reject non-browser clients.
func NewBrowserFetcher(clients *network.ClientFactory, timeout time.Duration) Fetcher {
	return &browserFetcher{clients: clients, timeout: timeout}
}

func (f *browserFetcher) Fetch(ctx context.Context, rawURL string) (int, []byte, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}

	session, err := f.clients.NewAzureSession(ctx, f.timeout)
	if err != nil {
		return 0, nil, err
	}
	defer session.Close()

	resp, err := session.Do(&azuretls.Request{
		Method: http.MethodGet,
		Url:    rawURL,
		OrderedHeaders: azuretls.OrderedHeaders{
			{"accept", "application/json,text/plain,*/*"},
			{"sec-ch-ua", config.ChromeSecChUa},
			{"sec-ch-ua-mobile", "?0"},
			{"sec-ch-ua-platform", `"Windows"`},
			{"user-agent", config.ChromeUserAgent},
		},
	})
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, resp.Body, nil
}
