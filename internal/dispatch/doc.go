// Package dispatch maps a (component, action) pair to the handler that
// carries it out. Handlers run against an App, the context object built once
// per process that holds configuration, the network registry and the service
// client. Pairs with no handler fail with ErrNotSupported.
package dispatch
