/*
Package session hosts concurrent puzzle sessions.

A Puzzle is single-threaded. The Manager hands out per-session mutexes (reference
counted, so idle sessions hold no lock state) and runs every operation on a session
while holding its lock, which lets HTTP handlers, WebSocket loops and dwell timers
share one puzzle safely.
*/
package session
