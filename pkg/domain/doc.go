/*
Package domain contains the core domain models of the Strata puzzle.

It defines the fixed catalogue of pieces and slots, the placement state that says which
piece sits in which slot, and the events emitted when the placement changes. This package
is kept pure and free of I/O, timers and transports; the interaction rules live in the
runtime and are driven by adapters.

# Key Entities

  - Piece: a movable item with a label and a visual asset reference.
  - Slot: one ordered target position (index 0 is the bottom layer).
  - Registry: the immutable catalogue of pieces and slots plus the correct ordering.
  - Placement: the slot-indexed assignment of pieces; unplaced pieces form the pool.
  - Move/Outcome: the canonical operations (place, replace, swap) and their results.
*/
package domain
