// Package cli provides the interactive terminal client for the electronics
// inventory.
//
// It wires configuration, the local SQLite session store, the API client and
// a REPL whose commands are the inventory screens. The session survives
// restarts, so a logged-in user lands back on their dashboard.
//
// Commands:
//   - login / register / logout
//   - list [query], stats, refresh, retry
//   - add, edit <id>, delete <id>
//   - open <screen>, nav
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
