// Package model describes the datasets manipulated by datadesk.
//
// The object model for datadesk is composed of:
//
//	Tables:
//	  A table is a working dataset: named columns and rows of nullable string values.
//	  Tables are the snapshots kept by a session's versioned store, so they know how to copy themselves.
//
//	Transformations:
//	  Null imputation, cleaning (dropping incomplete and duplicate rows) and value replacement.
//	  Transformations never mutate a table: they return a new one.
package model
