package sheet

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const defaultMaxBytes = 32 << 20

var tracer = otel.Tracer("hcdash/directory/sheet")

// HTTPSource reads a sheet published to the web as CSV. Each Fetch is a
// single GET; there is no retry.
type HTTPSource struct {
	url      string
	client   *http.Client
	maxBytes int64
}

type HTTPOption func(*HTTPSource)

func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) { s.client = c }
}

func WithMaxBytes(n int64) HTTPOption {
	return func(s *HTTPSource) { s.maxBytes = n }
}

func NewHTTPSource(url string, timeout time.Duration, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		url: url,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		maxBytes: defaultMaxBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *HTTPSource) Name() string {
	return "http:" + s.url
}

func (s *HTTPSource) Fetch(ctx context.Context) (string, error) {
	ctx, span := tracer.Start(ctx, "sheet.fetch")
	defer span.End()
	span.SetAttributes(attribute.String("sheet.url", s.url))

	text, err := s.fetch(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	span.SetAttributes(attribute.Int("sheet.bytes", len(text)))
	return text, nil
}

func (s *HTTPSource) fetch(ctx context.Context) (string, error) {
	fail := func(status int, err error) error {
		return &FetchError{Source: s.Name(), URL: s.url, StatusCode: status, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return "", fail(0, errors.Wrap(err, "build request"))
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fail(0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return "", fail(resp.StatusCode, nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes+1))
	if err != nil {
		return "", fail(0, errors.Wrap(err, "read body"))
	}
	if int64(len(body)) > s.maxBytes {
		return "", fail(0, errors.Errorf("body exceeds %d bytes", s.maxBytes))
	}
	text, _, err := Decode(body)
	if err != nil {
		return "", fail(0, err)
	}
	return text, nil
}
