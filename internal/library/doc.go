// Package library persists the transfer ledger: one row per organize run and
// one row per file outcome, so past decisions can be audited from the CLI.
package library
