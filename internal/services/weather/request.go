package weather

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"
)

// maxBodySize caps how much of a provider response we are willing to read.
const maxBodySize = 1 << 20

// get issues the single GET for a lookup and returns status and raw body.
// Transport failures come back as plain wrapped errors.
func get(
	ctx context.Context,
	httpClient HTTPClient,
	logger zerolog.Logger,
	provider, endpoint string,
	params url.Values,
) (int, []byte, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: invalid endpoint %q: %w", provider, endpoint, err)
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		logger.Warn().
			Ctx(ctx).
			Err(err).
			Str("provider", provider).
			Msg("failed to create HTTP request")
		return 0, nil, fmt.Errorf("%s: build request: %w", provider, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		logger.Warn().
			Ctx(ctx).
			Err(err).
			Str("provider", provider).
			Msg("error sending HTTP request")
		return 0, nil, fmt.Errorf("%s: request failed: %w", provider, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn().
				Ctx(ctx).
				Err(cerr).
				Str("provider", provider).
				Msg("failed to close response body")
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%s: read response: %w", provider, err)
	}

	logger.Debug().
		Ctx(ctx).
		Str("provider", provider).
		Int("status_code", resp.StatusCode).
		Int("body_bytes", len(body)).
		Msg("received provider response")

	return resp.StatusCode, body, nil
}
