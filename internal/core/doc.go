// Package core holds the types shared across the wallet manager boundary:
// connection states, account data, the per-node action tables the manager
// pushes through, configuration options that pass through the bridge
// untouched, and the manager's failure policy.
//
// Nothing in this package knows about rendering.
package core
