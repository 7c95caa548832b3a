// Package cli is the interactive terminal front end of the team portfolio.
//
// It wires configuration, the token store, the API session and the
// resource managers into a REPL. On start the stored session is restored,
// a background watcher pings the server to show online/offline in the
// prompt, and then commands are read until "exit".
//
// Key features:
//   - register / login / logout / password reset
//   - profile editing and the team directory
//   - projects and blog posts: browse, create, edit, delete
//   - admin: users, roles, activation and site statistics
//
// Destructive actions ask for confirmation first. Errors are printed inline
// and the REPL keeps going.
package cli
