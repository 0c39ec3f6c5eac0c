/*
Package strata is an interactive ordering puzzle engine: a fixed set of pieces must be
placed into a vertical stack of slots in the correct bottom-to-top order.

It owns the placement state machine (place, replace, swap), an undo/redo history with
one entry per committed change, pointer drags with a dwell auto-drop, a keyboard
select-then-place mode, and an evaluator. Hosts (the terminal front-end, the HTTP and
WebSocket server, the text runner) feed input events in and render the view model that
comes out.

# Concept

The puzzle core never blocks and never schedules anything itself. When the pointer
enters a slot, PointerMove returns a DwellTicket; the host arms a timer and calls
DwellElapsed with the ticket's token when it fires. Stale tokens are ignored, so a host
never has to cancel a timer precisely.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/strata"
	)

	func main() {
		// The embedded fossil puzzle; use strata.WithConfigFile for your own.
		p, err := strata.New()
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		if _, err := p.Drop(ctx, "p1", 0); err != nil {
			log.Fatal(err)
		}
		fmt.Println(p.Status())          // Placed Fossil A into bottom layer.
		fmt.Println(p.Check(ctx).Message) // Place all pieces before checking.
	}
*/
package strata
