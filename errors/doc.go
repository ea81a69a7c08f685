// Package errors provides the closed error taxonomy for restkit.
// Every failure surfaced by the HTTP client is classified into a Kind
// (numeric code, stable identifier, human message) and wrapped into an
// Error carrying the request's execution context for log correlation.
package errors
