// Package cli provides the interactive todo command-line client.
//
// It wires configuration and the HTTP API client into a small REPL: log in,
// then list, show, add, edit, toggle and delete todos. The REPL is started
// via App.Run(ctx), which blocks until the user exits or input ends.
package cli
