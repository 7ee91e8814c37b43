/*
Package session serialises access to outlets shared by concurrent callers.

A Session owns one in-memory workspace and its outlets, keyed by random IDs,
and funnels every call through a mutex so HTTP and MCP goroutines behave like
events on a single UI thread. A Manager keeps many sessions, can journal their
events and can take a distributed lock when several processes share a journal.
*/
package session
