// Package http contains the HTTP handlers. Handlers translate requests
// into service calls and render results as JSON (or PDF for the chart
// report), with errors in RFC 7807 problem format.
package http
