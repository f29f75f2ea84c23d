/*
Package datadesk provides CLI tooling to transform tabular datasets with a full version history.

Every transformation of a dataset commits a new version, kept in memory. Versions may be named
with checkpoints, and the dataset rolled back to a previous version or checkpoint, unless an
administrative lock forbids rollbacks.

The versioned store (pkg/versioned) is generic and may hold any snapshot type able to copy itself.
*/
package datadesk
