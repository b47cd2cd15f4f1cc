// Package cli defines the Cobra command tree for the tellnet CLI. The
// component and action commands are generated from the dispatcher's routing
// table; each one builds the application context and hands over to
// internal/dispatch. The remaining commands (version, doctor, config) only
// inspect local state.
package cli
