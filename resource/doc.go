// Package resource names files for downloaded tabular resources from their
// HTTP response headers.
package resource
