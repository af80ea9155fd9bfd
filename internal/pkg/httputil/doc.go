// Package httputil provides shared HTTP response/request utilities for handlers:
// JSON envelopes, request decoding and file downloads.
package httputil
