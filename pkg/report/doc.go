// Package report renders the state of a session for humans and tools.
//
// The desk format is a short coloured summary for terminals. The yaml and json formats
// render the same information for scripts. WriteFile saves a plain-text report of a session.
package report
