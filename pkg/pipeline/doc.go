// Package pipeline runs scripted transformations against a session.
//
// A script is a YAML list of steps:
//
//	- op: fill
//	  strategy: auto
//	- op: checkpoint
//	  name: filled
//	- op: replace
//	  column: region
//	  target: N/A
//	  replacement: North
//	- op: rollback
//	  name: filled
//	- op: save
//	  path: out/cleaned.csv
//
// The same steps may be typed in a shell, e.g. "replace region N/A North" (see ParseLine).
package pipeline
