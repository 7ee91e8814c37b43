/*
Package observability provides tools for monitoring outlet placement.

Everything attaches through domain.LifecycleHooks: Prometheus metrics counting
operations, splits and outlets parked from the center, and a structured audit
log of every effective placement event. Combine several hook sets with
domain.ComposeHooks.
*/
package observability
