// Package output renders command results. The text format reproduces the
// service's classic client line by line; json and yaml emit one document per
// result with the same fields. Member secrets are never rendered, except
// inside share links, which exist to carry them.
package output
