/*
Package session owns the live survey sessions and is the only component that
calls the interpreter's mutating operations.

The Manager keys sessions by ID and guarantees that a single session's events
are processed in arrival order, using reference-counted per-session locks
(plus an optional distributed locker for multi-replica deployments). Sessions
for different IDs share no mutable state and proceed fully in parallel.
*/
package session
