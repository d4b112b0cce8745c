// internal/probe/httpreq.go
package probe

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/mwiater/benchmatrix/internal/matrix"
)

// httpProbe issues a GET request and drains the body. Any 2xx/3xx status
// counts as success; transport errors and error statuses are probe failures.
type httpProbe struct {
	client *http.Client
}

func init() { Register(&httpProbe{client: &http.Client{}}) }

func (*httpProbe) Name() string        { return "http_request" }
func (*httpProbe) Description() string { return "Time HTTP GET requests against configured URLs" }

func (*httpProbe) DefaultAxes() []matrix.Axis {
	return []matrix.Axis{
		{Name: "urls", Values: []any{"https://www.example.com"}},
	}
}

func (p *httpProbe) Run(ctx context.Context, tc matrix.TestCase, _ Deps) Outcome {
	url := StringValue(tc, "urls", "https://www.example.com")

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Failf(time.Since(start), "build request for %s: %v", url, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return Failf(time.Since(start), "GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	size, err := io.Copy(io.Discard, resp.Body)
	elapsed := time.Since(start)
	if err != nil {
		return Failf(elapsed, "read body from %s: %v", url, err)
	}
	if resp.StatusCode >= 400 {
		return Failf(elapsed, "GET %s: status %d", url, resp.StatusCode)
	}
	return Ok(elapsed, map[string]float64{
		"status_code":    float64(resp.StatusCode),
		"response_bytes": float64(size),
	})
}

func (p *httpProbe) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, "https://www.example.com", nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}
