package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/restockly/restock-dashboard/internal/metrics"
	domain "github.com/restockly/restock-dashboard/pkg/types"
)

const defaultPageLimit = 250

// RestClient implements Client against the restock-prediction REST API.
type RestClient struct {
	tokens      TokenProvider
	baseURL     string
	client      *http.Client
	rateLimiter *RateLimiter
	pageLimit   int
}

// RestOption configures the RestClient.
type RestOption func(*RestClient)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) RestOption {
	return func(c *RestClient) {
		c.client = hc
	}
}

// WithRateLimiter injects a rate limiter that controls per-second and daily
// API call limits. When set, every request goes through Wait() first.
func WithRateLimiter(r *RateLimiter) RestOption {
	return func(c *RestClient) {
		c.rateLimiter = r
	}
}

// WithPageLimit overrides the default per-request record limit.
func WithPageLimit(n int) RestOption {
	return func(c *RestClient) {
		c.pageLimit = n
	}
}

// NewRestClient creates a new restock backend client.
func NewRestClient(baseURL string, tokens TokenProvider, opts ...RestOption) *RestClient {
	c := &RestClient{
		tokens:    tokens,
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    &http.Client{Timeout: 30 * time.Second},
		pageLimit: defaultPageLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Predictions implements Client.Predictions.
func (c *RestClient) Predictions(
	ctx context.Context,
	req PredictionRequest,
) ([]domain.ProductRecord, error) {
	params := url.Values{}
	params.Set("store", req.Store)
	params.Set("limit", strconv.Itoa(c.pageLimit))
	params.Set("rangeDays1", strconv.Itoa(req.ShortRangeDays))
	params.Set("rangeDays2", strconv.Itoa(req.LongRangeDays))
	params.Set("futureDays", req.FutureDays)
	params.Set("status", string(req.Status))

	body, err := c.get(ctx, "/restock-prediction", params)
	if err != nil {
		return nil, err
	}

	return DecodeRecords(body), nil
}

// RangeProjections implements Client.RangeProjections.
func (c *RestClient) RangeProjections(
	ctx context.Context,
	req RangeRequest,
) ([]domain.RangeProjection, error) {
	params := url.Values{}
	params.Set("store", req.Store)
	params.Set("startDate", req.StartDate)
	params.Set("endDate", req.EndDate)
	params.Set("futureDays", req.FutureDays)
	params.Set("status", strings.ToLower(string(req.Status)))

	body, err := c.get(ctx, "/restock-prediction/range", params)
	if err != nil {
		return nil, err
	}

	// Same leniency as Predictions: a non-array body is an empty result.
	var projections []domain.RangeProjection
	if err := json.Unmarshal(body, &projections); err != nil {
		return []domain.RangeProjection{}, nil
	}
	return projections, nil
}

// TotalCount implements Client.TotalCount.
func (c *RestClient) TotalCount(
	ctx context.Context,
	store string,
	status domain.ProductStatus,
) (domain.Count, error) {
	params := url.Values{}
	params.Set("store", store)
	params.Set("status", string(status))

	body, err := c.get(ctx, "/products/total", params)
	if err != nil {
		return domain.Count{}, err
	}

	var count domain.Count
	if err := json.Unmarshal(body, &count); err != nil {
		return domain.Count{}, fmt.Errorf("parsing total count response: %w", err)
	}
	return count, nil
}

// ExportCSV implements Client.ExportCSV. The returned stream is the
// backend's opaque CSV blob; the caller must close it.
func (c *RestClient) ExportCSV(
	ctx context.Context,
	records []ExportRecord,
) (io.ReadCloser, error) {
	payload, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("marshaling export payload: %w", err)
	}

	httpReq, err := c.newRequest(
		ctx,
		http.MethodPost,
		c.baseURL+"/export/csv/specific-products",
		bytes.NewReader(payload),
	)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing export request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf(
			"restock API error (status %d): %s",
			resp.StatusCode,
			string(body),
		)
	}

	metrics.ExportsTotal.Inc()
	return resp.Body, nil
}

func (c *RestClient) get(
	ctx context.Context,
	path string,
	params url.Values,
) ([]byte, error) {
	u := c.baseURL + path + "?" + params.Encode()

	httpReq, err := c.newRequest(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"restock API error (status %d): %s",
			resp.StatusCode,
			string(body),
		)
	}

	return body, nil
}

func (c *RestClient) newRequest(
	ctx context.Context,
	method, u string,
	body io.Reader,
) (*http.Request, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			if errors.Is(err, ErrDailyLimitReached) {
				metrics.UpstreamDailyLimitHits.Inc()
			}
			return nil, fmt.Errorf("rate limit: %w", err)
		}
		metrics.UpstreamCallsTotal.Inc()
		metrics.UpstreamDailyUsage.Set(float64(c.rateLimiter.DailyCount()))
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting auth token: %w", err)
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	return httpReq, nil
}
