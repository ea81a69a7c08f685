package httpclient

import "encoding/base64"

// Authentication is the capability contract any authentication scheme must
// satisfy to be usable by the client. Implementations produce at most one
// header to attach to outgoing requests; Header returning ok=false means
// no header should be attached.
type Authentication interface {
	// Username returns the scheme's username, if it uses one.
	Username() (string, bool)
	// Password returns the scheme's password, if it uses one.
	Password() (string, bool)
	// Header returns the header name and value to attach to the request.
	Header() (name, value string, ok bool)
}

// NoAuth is the explicit no-authentication scheme.
type NoAuth struct{}

func (NoAuth) Username() (string, bool)       { return "", false }
func (NoAuth) Password() (string, bool)       { return "", false }
func (NoAuth) Header() (string, string, bool) { return "", "", false }

// BasicAuth implements HTTP Basic authentication. Credentials travel
// base64-encoded, not encrypted; only use it over TLS.
type BasicAuth struct {
	username string
	password string
}

// NewBasicAuth creates a Basic authentication scheme. The password may be
// empty; the encoded credential is then "username:".
func NewBasicAuth(username, password string) *BasicAuth {
	return &BasicAuth{username: username, password: password}
}

func (a *BasicAuth) Username() (string, bool) { return a.username, true }

func (a *BasicAuth) Password() (string, bool) { return a.password, a.password != "" }

// Header builds the Authorization header: "Basic " followed by
// base64("username:password").
func (a *BasicAuth) Header() (string, string, bool) {
	credential := a.username + ":" + a.password
	return "Authorization", "Basic " + base64.StdEncoding.EncodeToString([]byte(credential)), true
}

// BearerAuth attaches a static bearer token.
type BearerAuth struct {
	token string
}

// NewBearerAuth creates a bearer-token authentication scheme.
func NewBearerAuth(token string) *BearerAuth {
	return &BearerAuth{token: token}
}

func (a *BearerAuth) Username() (string, bool) { return "", false }
func (a *BearerAuth) Password() (string, bool) { return "", false }

func (a *BearerAuth) Header() (string, string, bool) {
	return "Authorization", "Bearer " + a.token, true
}
