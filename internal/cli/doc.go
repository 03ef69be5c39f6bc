// Package cli defines the Cobra command tree for nvup. The root command runs
// the update check itself; version and config are subcommands. Commands only
// parse flags, resolve settings and format output; the work is done by the
// updater package.
package cli
