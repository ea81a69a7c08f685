package httpclient

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/kyildiz/restkit/errors"
)

// BuildURL composes a root URL, a relative path, and query parameters into
// one URL. The path is split on "/" with empty segments dropped; query
// pairs are encoded sorted by key so two builds of the same parameter set
// always produce byte-identical URLs.
func BuildURL(root *url.URL, path string, params map[string]string) (*url.URL, *errors.Error) {
	if root == nil || !root.IsAbs() || root.Opaque != "" || root.Host == "" {
		return nil, errors.New(errors.KindInvalidURL).
			WithMessage("cannot build url: root does not support path segments").
			WithDetail("url", fmt.Sprintf("%v", root))
	}

	u := *root
	segments := make([]string, 0, 4)
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			segments = append(segments, part)
		}
	}
	if len(segments) > 0 {
		u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.Join(segments, "/")
		u.RawPath = ""
	}

	if len(params) > 0 {
		values := u.Query()
		for key, value := range params {
			values.Set(key, value)
		}
		// Encode sorts by key.
		u.RawQuery = values.Encode()
	}
	return &u, nil
}
