// Package httpclient provides a resilient HTTP request-execution core:
// URL construction, header merging, pluggable authentication, a retry loop
// with per-attempt error classification, and a typed JSON layer on top.
//
// Every failure is classified into the closed taxonomy of the errors
// package, carrying the request's execution context (url, method, attempt)
// for log correlation.
//
// # Basic Usage
//
//	client, err := httpclient.New("https://api.example.com")
//	if err != nil {
//	    return err
//	}
//	client = client.
//	    WithTimeout(30 * time.Second).
//	    WithMaxAttempts(3).
//	    WithRetryDelay(5 * time.Second)
//
//	body, err := client.Get(ctx, "/users/123")
//
// # Retry behavior
//
// HTTP status failures (4xx/5xx) are presumed transient and retried up to
// the configured attempt count; transport construction and malformed-request
// failures are returned immediately. Specific status kinds can be opted out
// of retry per request:
//
//	body, err := client.Get(ctx, "/users/123",
//	    httpclient.WithNoRetryOn(errors.KindNotFound, errors.KindForbidden))
//
// # Typed requests
//
//	user, err := httpclient.Get[User](client, ctx, "/users/123")
//	created, err := httpclient.Post[User](client, ctx, "/users", newUser)
package httpclient
