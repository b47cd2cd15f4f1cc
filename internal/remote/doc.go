// Package remote talks to the messaging service. Every call is a JSON request
// over HTTP with Basic auth, built by concatenating a network's endpoint with
// an operation path. Non-2xx responses surface as *StatusError carrying the
// service's body verbatim. There is no retry.
package remote
