// Package cli wires the zen root command: configuration loading, logger
// construction, and registration of the pulse, prune, sweep, and tidy
// subcommands.
package cli
