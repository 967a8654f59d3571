// Package timeline plays inline CSS animations on virtual time.
//
// A [Clock] watches the shapes under a root element, decodes their
// animation shorthand, and dispatches animationend events when finite
// animations complete. Pausing through animation-play-state freezes an
// element's progress, and replacing its shorthand restarts it.
//
//	clock := timeline.NewClock(doc.Root)
//	clock.Advance(3 * time.Second)
package timeline
