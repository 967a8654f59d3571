package reveal

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/svgreveal/pkg/dom"
	"github.com/matzehuels/svgreveal/pkg/geom"
)

// Animator applies reveal animations to SVG elements. It is safe for
// concurrent use on distinct documents.
type Animator struct {
	registry  *Registry
	ids       IDGenerator
	measurer  geom.Measurer
	scheduler Scheduler
	logger    *log.Logger
}

// Option configures an Animator.
type Option func(*Animator)

// WithRegistry sets the keyframe registry.
func WithRegistry(r *Registry) Option {
	return func(a *Animator) {
		if r != nil {
			a.registry = r
		}
	}
}

// WithIDs sets the keyframe identifier source.
func WithIDs(g IDGenerator) Option {
	return func(a *Animator) {
		if g != nil {
			a.ids = g
		}
	}
}

// WithMeasurer sets the geometry provider.
func WithMeasurer(m geom.Measurer) Option {
	return func(a *Animator) {
		if m != nil {
			a.measurer = m
		}
	}
}

// WithScheduler sets where delayed reset work runs.
func WithScheduler(s Scheduler) Option {
	return func(a *Animator) {
		if s != nil {
			a.scheduler = s
		}
	}
}

// WithLogger sets the logger for diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(a *Animator) {
		if l != nil {
			a.logger = l
		}
	}
}

// New creates an Animator with random ids, attribute-based geometry and
// wall-clock scheduling unless overridden by options.
func New(opts ...Option) *Animator {
	a := &Animator{
		ids:       RandomIDs{},
		measurer:  geom.Default,
		scheduler: wallClock{},
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.registry == nil {
		a.registry = NewRegistry(a.logger)
	}
	return a
}

// Registry returns the animator's keyframe registry.
func (a *Animator) Registry() *Registry { return a.registry }

// Default is the process-wide animator behind the package-level functions.
var Default = New()

// Animate animates every shape under root using Default.
func Animate(root *dom.Element, opts *Options) []KeyframeRecord {
	return Default.Animate(root, opts)
}

// AnimateElement animates a single element using Default.
func AnimateElement(el *dom.Element, opts *Options) KeyframeRecord {
	return Default.AnimateElement(el, opts)
}

// Control applies a playback action under root using Default.
func Control(root *dom.Element, action Action) int {
	return Default.Control(root, action)
}
