package errors

// Context is the execution context accumulated while a request progresses:
// url, method, attempt number, plus any caller-supplied diagnostic fields.
// It is attached to every Error and serialized under "details".
type Context map[string]any

// Set stores a key-value pair and returns the context for chaining.
func (c Context) Set(key string, value any) Context {
	c[key] = value
	return c
}

// Merge copies every entry of other into the context; other wins on conflict.
func (c Context) Merge(other Context) Context {
	for k, v := range other {
		c[k] = v
	}
	return c
}

// Clone returns a shallow snapshot of the context.
func (c Context) Clone() Context {
	if c == nil {
		return Context{}
	}
	out := make(Context, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
