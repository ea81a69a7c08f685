package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kyildiz/restkit/errors"
	"github.com/kyildiz/restkit/validation"
)

const contentTypeJSON = "application/json"

// Get performs a GET request and decodes the JSON response into R.
func Get[R any](c *Client, ctx context.Context, path string, opts ...RequestOption) (R, error) {
	return exchange[R](c, ctx, http.MethodGet, path, nil, opts)
}

// Post marshals body to JSON, performs a POST request and decodes the
// JSON response into R. A nil body sends no payload.
func Post[R any](c *Client, ctx context.Context, path string, body any, opts ...RequestOption) (R, error) {
	return exchange[R](c, ctx, http.MethodPost, path, body, opts)
}

// Put marshals body to JSON, performs a PUT request and decodes the JSON
// response into R.
func Put[R any](c *Client, ctx context.Context, path string, body any, opts ...RequestOption) (R, error) {
	return exchange[R](c, ctx, http.MethodPut, path, body, opts)
}

// Delete performs a DELETE request and decodes the JSON response into R.
func Delete[R any](c *Client, ctx context.Context, path string, opts ...RequestOption) (R, error) {
	return exchange[R](c, ctx, http.MethodDelete, path, nil, opts)
}

func exchange[R any](c *Client, ctx context.Context, method, path string, body any, opts []RequestOption) (R, error) {
	var result R

	req := newRequest(method, path, "", opts)
	ectx := restContext(c, method, path, req.Context)

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return result, ClassifyJSON(err, ectx).
				WithMessage(fmt.Sprintf("failed to encode request body: %v", err))
		}
		req.Body = string(data)
	}

	// JSON defaults yield to explicit per-request headers.
	req.Headers = MergeHeaders(map[string]string{
		"Content-Type": contentTypeJSON,
		"Accept":       contentTypeJSON,
	}, req.Headers)

	raw, err := c.Do(ctx, req)
	if err != nil {
		return result, err
	}

	// An empty body is truncated input, not a zero value of R.
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return result, ClassifyJSON(err, ectx)
	}
	if err := validation.Struct(result); err != nil && validation.IsValidationError(err) {
		return result, ClassifyJSON(err, ectx).
			WithMessage(fmt.Sprintf("response failed validation: %v", err))
	}
	return result, nil
}

// restContext seeds the diagnostic context for typed calls. Caller fields
// take precedence over the generated ones.
func restContext(c *Client, method, path string, caller errors.Context) errors.Context {
	ectx := errors.Context{
		"server": c.cfg.BaseURL,
		"path":   path,
		"method": method,
	}
	ectx.Merge(caller)
	return ectx
}
