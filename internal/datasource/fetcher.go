package datasource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// fetcher retrieves one endpoint's decoded response
type fetcher interface {
	fetch(ctx context.Context, endpoint string, params url.Values) (*statsResponse, error)
}

// httpFetcher calls the live stats API through the rate limited client
type httpFetcher struct {
	client  *RateLimitedHTTPClient
	baseURL string
	apiKey  string
}

// statsHeaders are the browser-like headers stats.nba.com expects
var statsHeaders = map[string]string{
	"Accept":             "application/json, text/plain, */*",
	"Accept-Language":    "en-US,en;q=0.9",
	"Origin":             "https://www.nba.com",
	"Referer":            "https://www.nba.com/",
	"User-Agent":         "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
	"x-nba-stats-origin": "stats",
	"x-nba-stats-token":  "true",
}

func (f *httpFetcher) fetch(ctx context.Context, endpoint string, params url.Values) (*statsResponse, error) {
	endpointURL := strings.TrimRight(f.baseURL, "/") + "/" + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpointURL, nil)
	if err != nil {
		return nil, NewDataSourceError(SourceNBAStats, ErrCodeNetworkError, "failed to create request", err)
	}
	for k, v := range statsHeaders {
		req.Header.Set(k, v)
	}
	if f.apiKey != "" {
		req.Header.Set("x-api-key", f.apiKey)
	}

	resp, err := f.client.Do(ctx, req)
	if err != nil {
		return nil, NewDataSourceError(SourceNBAStats, ErrCodeNetworkError, "failed to fetch "+endpoint, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, NewDataSourceError(SourceNBAStats, ErrCodeAuthenticationFailed, "request rejected", ErrAuthenticationFailed)
	case resp.StatusCode == http.StatusNotFound:
		return nil, NewDataSourceError(SourceNBAStats, ErrCodeNotFound, endpoint+" not found", ErrNotFound)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, NewDataSourceError(SourceNBAStats, ErrCodeRateLimitExceeded, "rate limit exceeded", ErrRateLimitExceeded)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, NewDataSourceError(SourceNBAStats, ErrCodeServerError,
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), ErrServerError)
	}

	decoded, err := decodeStatsResponse(resp.Body)
	if err != nil {
		return nil, NewDataSourceError(SourceNBAStats, ErrCodeInvalidData, "failed to parse response", err)
	}
	return decoded, nil
}

// snapshotFetcher serves responses from JSON files saved earlier, named
// <endpoint>[_<measure type>][_<team id>].json
type snapshotFetcher struct {
	dir string
}

func snapshotFileName(endpoint string, params url.Values) string {
	parts := []string{endpoint}
	if measure := params.Get("MeasureType"); measure != "" {
		parts = append(parts, strings.ToLower(strings.ReplaceAll(measure, " ", "_")))
	}
	if teamID := params.Get("TeamID"); teamID != "" && teamID != "0" {
		parts = append(parts, teamID)
	}
	return strings.Join(parts, "_") + ".json"
}

func (f *snapshotFetcher) fetch(ctx context.Context, endpoint string, params url.Values) (*statsResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(f.dir, snapshotFileName(endpoint, params))
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, NewDataSourceError(SourceSnapshot, ErrCodeNotFound, "no snapshot "+path, ErrNotFound)
		}
		return nil, NewDataSourceError(SourceSnapshot, ErrCodeUnknown, "failed to open snapshot", err)
	}
	defer file.Close()

	decoded, err := decodeStatsResponse(file)
	if err != nil {
		return nil, NewDataSourceError(SourceSnapshot, ErrCodeInvalidData, "failed to parse "+path, err)
	}
	return decoded, nil
}
