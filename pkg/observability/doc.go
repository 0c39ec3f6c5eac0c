/*
Package observability provides tools for monitoring Strata puzzles.

It turns the puzzle lifecycle hooks into Prometheus metrics and structured log lines,
and merges several hook sets into one so hosts can attach both.
*/
package observability
