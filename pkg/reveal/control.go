package reveal

import (
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/svgreveal/pkg/dom"
)

// Action is a playback command.
type Action string

const (
	ActionPlay  Action = "play"
	ActionPause Action = "pause"
	ActionReset Action = "reset"
)

// ParseAction parses a playback action name.
func ParseAction(s string) (Action, error) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionPlay, ActionPause, ActionReset:
		return a, nil
	}
	return "", fmt.Errorf("unknown action %q: want play, pause or reset", s)
}

// ResetDelay is how long a reset leaves the animation cleared before
// restoring it, so the host restarts it from the beginning.
const ResetDelay = 10 * time.Millisecond

// Scheduler runs fn after d.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

type wallClock struct{}

func (wallClock) AfterFunc(d time.Duration, fn func()) { time.AfterFunc(d, fn) }

// Control applies action to every shape under root and returns how many
// elements it touched. Unknown actions and a nil root do nothing.
func (a *Animator) Control(root *dom.Element, action Action) int {
	if root == nil {
		return 0
	}
	els := shapes(root)
	switch action {
	case ActionPlay, ActionPause:
		state := "running"
		if action == ActionPause {
			state = "paused"
		}
		for _, el := range els {
			el.Style().SetProperty(PropAnimationPlayState.String(), state)
		}
	case ActionReset:
		for _, el := range els {
			a.reset(el)
		}
	default:
		return 0
	}
	a.logger.Debug("playback", "action", action, "elements", len(els))
	return len(els)
}

func (a *Animator) reset(el *dom.Element) {
	style := el.Style()
	current := style.GetPropertyValue(PropAnimation.String())
	style.SetProperty(PropAnimation.String(), "none")
	a.scheduler.AfterFunc(ResetDelay, func() {
		el.Style().SetProperty(PropAnimation.String(), current)
	})
}
