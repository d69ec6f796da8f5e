// Package lookup wraps the public location and university directories.
// Failures never reach the caller: they are logged and an empty result is
// returned.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const userAgent = "unimate-service/1.0 (+https://unimate.app)"

type requester struct {
	name       string
	baseURL    string
	httpClient *http.Client
}

func (r requester) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	ctx, span := otel.Tracer("unimate/lookup").Start(ctx, r.name+".search", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	endpoint := r.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		return fmt.Errorf("request %s: %w", r.name, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		span.SetStatus(codes.Error, resp.Status)
		return fmt.Errorf("request %s: unexpected status %d", r.name, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		span.RecordError(err)
		return fmt.Errorf("decode %s response: %w", r.name, err)
	}
	return nil
}
