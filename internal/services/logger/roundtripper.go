package logger

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const bodySnippetLimit = 2048

// Query parameters the providers use to carry the API key.
var secretParams = []string{"appid", "key"}

// RoundTripper records every outbound provider call in the HTTP trace log.
type RoundTripper struct {
	Logger *zap.Logger
	Proxy  http.RoundTripper
}

func NewRoundTripper(logger *zap.Logger) *RoundTripper {
	return &RoundTripper{
		Logger: logger,
		Proxy:  http.DefaultTransport,
	}
}

func (l *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := l.Proxy.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		l.Logger.Error("HTTP request failed",
			zap.String("method", req.Method),
			zap.String("url", RedactURL(req.URL)),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	// Only the snippet is buffered; the rest stays on the wire for the caller.
	snippet, err := io.ReadAll(io.LimitReader(resp.Body, bodySnippetLimit))
	if err != nil {
		_ = resp.Body.Close()
		l.Logger.Error("Failed to read response body",
			zap.String("method", req.Method),
			zap.String("url", RedactURL(req.URL)),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	resp.Body = &replayBody{
		Reader: io.MultiReader(bytes.NewReader(snippet), resp.Body),
		Closer: resp.Body,
	}

	l.Logger.Info("HTTP request completed",
		zap.String("method", req.Method),
		zap.String("url", RedactURL(req.URL)),
		zap.ByteString("body_snipped", snippet),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	return resp, nil
}

type replayBody struct {
	io.Reader
	io.Closer
}

// RedactURL renders u with API key parameters masked.
func RedactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	q := u.Query()
	changed := false
	for _, p := range secretParams {
		if q.Has(p) {
			q.Set(p, "REDACTED")
			changed = true
		}
	}
	if !changed {
		return u.String()
	}
	redacted := *u
	redacted.RawQuery = q.Encode()
	return redacted.String()
}
