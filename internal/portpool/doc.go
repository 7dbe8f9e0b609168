// Package portpool allocates non-conflicting service ports from a shared
// pool. The set of allocated ports lives in a Store so that multiple
// orchestrator processes can share one pool; allocation draws random
// candidates and commits the winner under a lock, making the
// check-then-reserve sequence indivisible.
package portpool
