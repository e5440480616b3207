// Package cli provides the interactive notebook command-line client.
//
// It wires configuration and the HTTP API client into a small REPL:
//   - register / login / whoami / logout
//   - add / list / edit / delete notes
//   - export, which downloads the server-side archive into the export dir
//
// The session token lives only in memory; quitting the REPL logs out.
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
