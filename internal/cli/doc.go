// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It
// translates flags and the optional settings file into app.Settings and
// drives the app package from cobra commands.
package cli
