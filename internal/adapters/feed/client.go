package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"park-safety-service/internal/domain/events"
	"park-safety-service/internal/platform/httpclient"
)

// Client consulta el feed de telemetría del parque. Devuelve el lote
// decodificado en el orden de llegada más el body crudo, que el driver de
// ingesta puede guardar para auditoría.
type Client struct {
	http *httpclient.Client
	url  string
}

func NewClient(url string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("feed: url required")
	}
	return &Client{
		http: httpclient.New(timeout),
		url:  url,
	}, nil
}

// NewClientWithTransport permite inyectar un RoundTripper en tests.
func NewClientWithTransport(url string, timeout time.Duration, tr http.RoundTripper) (*Client, error) {
	c, err := NewClient(url, timeout)
	if err != nil {
		return nil, err
	}
	c.http = httpclient.NewWithTransport(timeout, tr)
	return c, nil
}

func (c *Client) FetchEvents(ctx context.Context) ([]events.ParkEvent, []byte, error) {
	raw, err := c.http.GetRaw(ctx, c.url)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch feed: %w", err)
	}

	evs, err := events.DecodeBatch(raw)
	if err != nil {
		return nil, nil, err
	}
	return evs, raw, nil
}
