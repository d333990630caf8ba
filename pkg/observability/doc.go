/*
Package observability provides tools for monitoring the automata engine.

It includes Prometheus collectors fed by lifecycle hooks, a structured logging
hook set, and a helper that fans one event out to several hook sets.
*/
package observability
