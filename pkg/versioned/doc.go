// Package versioned provides an in-memory, single-owner store keeping every version of a dataset.
//
// The store records an append-only sequence of full snapshots:
//
//	Versions:
//	  Version 0 is the snapshot the store was created with. Every Commit appends a new version
//	  and makes it current. Committing after a rollback discards the versions after the current one.
//
//	Checkpoints:
//	  A checkpoint is a name given to a version, analogous to tags in git.
//	  The "initial" checkpoint always points to version 0.
//
//	Lock:
//	  An administrative flag which, when set, makes every rollback fail with status.ErrLocked.
//
// History is never pruned: memory grows with the number of commits. Snapshots implementing
// Sizer let the store report how much memory its history holds.
package versioned
