// Package app contains the core application wiring. It builds the logger,
// the grammar database, the file source and the session from Settings, and
// exposes the operations the command line drives, decoupled from any
// specific entrypoint.
package app
