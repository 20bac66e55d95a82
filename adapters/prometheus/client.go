package prometheus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"myscraper/domain"
	"myscraper/service"
)

const queryPath = "/api/v1/query"

// statusSuccess is the status field of a successful query response.
const statusSuccess = "success"

// Client runs instant queries against the Prometheus HTTP API. It implements interfaces.MetricsSource.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a Client for baseURL (e.g. http://prometheus:9090, no trailing slash). Panics on empty baseURL or nil client.
func NewClient(baseURL string, client *http.Client) *Client {
	return &Client{
		baseURL: service.StrPanic(baseURL, "adapters.prometheus.client.go: baseURL is required"),
		client:  service.NilPanic(client, "adapters.prometheus.client.go: http client is required"),
	}
}

// queryResponse is the JSON shape of GET /api/v1/query.
type queryResponse struct {
	Status    string     `json:"status"`
	ErrorType string     `json:"errorType"`
	Error     string     `json:"error"`
	Data      *queryData `json:"data"`
}

type queryData struct {
	ResultType string        `json:"resultType"`
	Result     []queryResult `json:"result"`
}

type queryResult struct {
	Metric map[string]string `json:"metric"`
	Value  domain.Sample     `json:"value"`
}

// Query performs GET baseURL/api/v1/query?query=expr.
//
// Returns: (series, nil) on 200 with status "success"; (nil, error) on request error, non-200 status,
// JSON parse error, non-success status or missing data field.
func (c *Client) Query(ctx context.Context, expr string) ([]domain.Series, error) {
	reqURL := c.baseURL + queryPath + "?" + url.Values{"query": {expr}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("prometheus returned %d", resp.StatusCode)
	}
	var raw queryResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("can't decode prometheus response: %w", err)
	}
	if raw.Status != statusSuccess {
		return nil, fmt.Errorf("prometheus query status %q: %s %s", raw.Status, raw.ErrorType, raw.Error)
	}
	if raw.Data == nil {
		return nil, fmt.Errorf("prometheus response missing data field")
	}
	out := make([]domain.Series, 0, len(raw.Data.Result))
	for _, r := range raw.Data.Result {
		labels := r.Metric
		if labels == nil {
			labels = map[string]string{}
		}
		out = append(out, domain.Series{Labels: labels, Sample: r.Value})
	}
	return out, nil
}
