// Package api holds the request and response messages of the careshare.v1
// Connect services. Messages travel as JSON; money fields are decimal
// strings with two places and dates are RFC 3339 timestamps.
package api
