// Package logger provides structured logging for restkit using zerolog.
//
// The HTTP client logs one event per attempt and one per terminal outcome;
// callers can inject their own configured Logger or rely on the package
// default.
package logger
