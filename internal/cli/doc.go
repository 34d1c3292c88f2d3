// Package cli parses command-line arguments, configures logging and runs the
// selected command. It translates flags into regrid jobs and maps failures to
// process exit codes.
package cli
