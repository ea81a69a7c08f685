// Package resilience provides the retry engine used by the HTTP client.
//
// Attempts run strictly sequentially with a fixed delay between them. The
// loop carries an explicit last-error accumulator: a RetryIf predicate
// decides whether a failure consumes further attempts, and exhaustion
// returns the error produced by the final attempt.
package resilience
