/*
Package ports defines the driven ports (interfaces) for hosting Strata puzzles.

These interfaces decouple session hosting from concrete implementations, allowing the
HTTP server and the CLI to work with different puzzle catalogues and session stores.

# Key Interfaces

  - PuzzleLoader: Provides raw puzzle definitions by name (e.g., from Memory or a directory).
  - PuzzleStore: Keeps live puzzle sessions by id.
*/
package ports
