// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// Failure indicates a runtime error (config, storage, terminal).
	Failure = 1

	// Usage indicates bad arguments: unknown command, empty title, index
	// out of range.
	Usage = 2
)
