package httpclient

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/kyildiz/restkit/errors"
	"github.com/kyildiz/restkit/validation"
)

// classifyTransport maps a transport-level failure (the request never
// produced an HTTP status) into the taxonomy: connect and timeout failures
// become KindNetwork, other request-level failures KindRequest, anything
// unrecognized KindUnexpected.
func classifyTransport(err error, ectx errors.Context) *errors.Error {
	kind := errors.KindUnexpected

	var nerr net.Error
	var operr *net.OpError
	var dnserr *net.DNSError
	var uerr *url.Error
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		kind = errors.KindNetwork
	case stderrors.As(err, &nerr) && nerr.Timeout():
		kind = errors.KindNetwork
	case stderrors.As(err, &operr), stderrors.As(err, &dnserr):
		kind = errors.KindNetwork
	case stderrors.As(err, &uerr):
		kind = errors.KindRequest
	}

	return errors.New(kind).WithMessage(err.Error()).WithContext(ectx)
}

// ClassifyStatus maps a non-success HTTP status into its registered kind.
// A JSON-decodable response body is folded into the error details; a plain
// text body becomes the error message. An unmapped status is a contract
// violation and degrades to KindUnexpected rather than panicking.
func ClassifyStatus(status int, body []byte, ectx errors.Context) *errors.Error {
	kind, ok := errors.FromStatus(status)
	if !ok {
		kind = errors.KindUnexpected
	}

	e := errors.New(kind)

	if len(body) > 0 {
		var decoded map[string]any
		if json.Unmarshal(body, &decoded) == nil {
			e.WithContext(errors.Context(decoded))
		} else {
			e.WithMessage(strings.TrimSpace(truncate(string(body), 512)))
		}
	}
	// The execution context merges last: a response body must not clobber
	// the url/method/request_id used for log correlation.
	return e.WithContext(ectx).WithDetail("status", status)
}

// ClassifyJSON maps a serialization or deserialization failure into the
// JSON kind family: malformed input is a syntax error, truncated input an
// EOF error, a value of the wrong shape (including required-field
// violations) a data error, and anything else an I/O error.
func ClassifyJSON(err error, ectx errors.Context) *errors.Error {
	kind := errors.KindJSONIO

	var syn *json.SyntaxError
	var typ *json.UnmarshalTypeError
	var marshalType *json.UnsupportedTypeError
	var marshalValue *json.UnsupportedValueError
	switch {
	case stderrors.As(err, &syn):
		if strings.Contains(syn.Error(), "unexpected end of JSON input") {
			kind = errors.KindJSONEOF
		} else {
			kind = errors.KindJSONSyntax
		}
	case stderrors.Is(err, io.ErrUnexpectedEOF), stderrors.Is(err, io.EOF):
		kind = errors.KindJSONEOF
	case stderrors.As(err, &typ),
		stderrors.As(err, &marshalType),
		stderrors.As(err, &marshalValue),
		validation.IsValidationError(err):
		kind = errors.KindJSONData
	}

	return errors.New(kind).WithMessage(err.Error()).WithContext(ectx)
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
