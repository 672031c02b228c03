package gps

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Dan9191/gps-gateway/internal/config"
	"github.com/Dan9191/gps-gateway/internal/metrics"
	"github.com/sirupsen/logrus"
)

// Client handles integration with the GPS card-management SOAP service
type Client struct {
	url     string
	client  *http.Client
	log     *logrus.Logger
	metrics *metrics.Metrics
}

// NewClient initializes a new GPS client.
// Certificate validation follows cfg.GPSInsecureSkipVerify; the production backend uses a self-signed certificate.
func NewClient(cfg *config.Config, log *logrus.Logger, m *metrics.Metrics) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: cfg.GPSInsecureSkipVerify, //nolint:gosec // configurable, see GPS_INSECURE_SKIP_VERIFY
	}

	return &Client{
		url: cfg.GPSURL,
		client: &http.Client{
			Timeout:   cfg.GPSTimeout,
			Transport: transport,
		},
		log:     log,
		metrics: m,
	}
}

// sendRequest posts a SOAP envelope for op and returns the raw response body.
// Every failure is returned as *BackendError.
func (c *Client) sendRequest(ctx context.Context, op operation, envelope []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(envelope))
	if err != nil {
		return nil, &BackendError{Operation: op.name, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", soapAction(op.name))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &BackendError{Operation: op.name, Err: fmt.Errorf("request failed: %w", stripURL(err))}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &BackendError{Operation: op.name, Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &BackendError{Operation: op.name, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	// Log the raw XML response for debugging
	c.log.Debugf("GPS %s XML response: %s", op.name, string(body))

	return body, nil
}

// Ping fetches the service WSDL to check the backend is reachable
func (c *Client) Ping(ctx context.Context) error {
	target, err := wsdlURL(c.url)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", stripURL(err))
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return nil
}

// wsdlURL appends the wsdl flag to the endpoint, keeping any query it already has
func wsdlURL(endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint: %w", err)
	}
	if u.RawQuery == "" {
		u.RawQuery = "wsdl"
	} else {
		u.RawQuery += "&wsdl"
	}
	return u.String(), nil
}

// stripURL drops the backend address from *url.Error so it never reaches API clients
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

func (c *Client) observe(op operation, outcome string, start time.Time) {
	c.metrics.BackendCalls.WithLabelValues(op.name, outcome).Inc()
	c.metrics.BackendDuration.WithLabelValues(op.name).Observe(time.Since(start).Seconds())
}
