package domain

import "errors"

// ErrInvalidRegistry is returned when the piece/slot catalogue is inconsistent.
var ErrInvalidRegistry = errors.New("invalid registry")

// ErrUnknownPiece is returned when an input references a piece outside the registry.
var ErrUnknownPiece = errors.New("unknown piece")

// ErrSlotOutOfRange is returned when a slot index does not address a slot.
var ErrSlotOutOfRange = errors.New("slot out of range")

// ErrStaleOrigin is returned when a move's origin no longer matches the placement.
var ErrStaleOrigin = errors.New("stale move origin")

// ErrNoGesture is returned when a pointer event arrives without an active gesture.
var ErrNoGesture = errors.New("no active gesture")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")
