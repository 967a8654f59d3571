// Package reveal animates SVG shapes by synthesizing CSS keyframes.
//
// Each animated element gets a uniquely named @keyframes rule in a shared
// <style id="svg-animate-keyframes"> element and an initial inline style
// that references it. Rectangles grow, fade in, or trace their outline;
// other shapes draw their stroke, draw then fill, or do both at once.
//
// # Configuration
//
// [Options] holds top-level fields plus per-class override blocks. For every
// field the class block wins over the top level, which wins over the class
// defaults. Malformed values are treated as absent:
//
//	opts := &reveal.Options{
//	    Layer: reveal.Layer{Duration: reveal.Ptr(2.0)},
//	    Rect:  &reveal.Layer{RenderMode: reveal.Ptr(reveal.ModeFadeIn)},
//	}
//	reveal.Animate(doc.Root, opts)
//
// # Playback
//
// [Animator.Control] pauses, resumes, or restarts every shape under a root.
// Restarts clear the animation and restore it after [ResetDelay] on the
// animator's [Scheduler].
package reveal
