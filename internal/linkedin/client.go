package linkedin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultBaseURL = "https://api.scrapingdog.com"
	requestTimeout = 30 * time.Second
	maxBody        = 4 << 20
)

var (
	ErrNotConfigured   = errors.New("scraping provider is not configured")
	ErrCompanyNotFound = errors.New("linkedin company not found")
	ErrRateLimited     = errors.New("scraping provider rate limit reached")
)

// ProviderError is any other non-success reply from the scraping provider.
type ProviderError struct {
	Status int
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("scraping provider returned status %d", e.Status)
}

// Company is one scraped company profile. Raw keeps the provider payload.
type Company struct {
	Fields map[string]any
	Raw    json.RawMessage
}

// Fetcher loads a company profile by slug.
type Fetcher interface {
	FetchCompany(ctx context.Context, companyID string) (Company, error)
}

// Client calls the ScrapingDog LinkedIn profile endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    base,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

func (c *Client) FetchCompany(ctx context.Context, companyID string) (Company, error) {
	if c.apiKey == "" {
		return Company{}, ErrNotConfigured
	}

	ctx, span := otel.Tracer("jobpost-backend/linkedin").Start(ctx, "scrapingdog.profile", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(attribute.String("linkedin.company_id", companyID))

	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("id", companyID)
	q.Set("type", "company")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/profile?"+q.Encode(), nil)
	if err != nil {
		return Company{}, errors.Wrap(err, "build scrapingdog request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return Company{}, errors.Wrap(err, "scrapingdog request")
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Company{}, ErrCompanyNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return Company{}, ErrRateLimited
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		span.SetStatus(codes.Error, resp.Status)
		return Company{}, &ProviderError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return Company{}, errors.Wrap(err, "read scrapingdog response")
	}
	return decodeCompany(body)
}

// decodeCompany accepts either an object or an array whose first element
// is the company.
func decodeCompany(body []byte) (Company, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return Company{}, errors.Wrap(err, "decode scrapingdog response")
		}
		if len(items) == 0 {
			return Company{}, ErrCompanyNotFound
		}
		trimmed = bytes.TrimSpace(items[0])
	}
	var fields map[string]any
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return Company{}, errors.Wrap(err, "decode scrapingdog company")
	}
	if fields == nil {
		return Company{}, ErrCompanyNotFound
	}
	return Company{Fields: fields, Raw: append(json.RawMessage(nil), trimmed...)}, nil
}

var _ Fetcher = (*Client)(nil)
