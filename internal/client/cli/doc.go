// Package cli provides the interactive geomap command-line client.
//
// It wires configuration, the local SQLite cache and the API client into a
// REPL. The session token from register or login is cached locally, so a
// later run starts signed in; logout deletes it.
//
// Commands:
//   - register / login / logout / whoami
//   - list, search <term>, add, delete <id>   (locations)
//   - polygons, events, categories, seed
//
// The REPL is started with App.Run and blocks until the user exits.
package cli
