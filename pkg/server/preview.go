package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/matzehuels/svgreveal/pkg/dom"
	"github.com/matzehuels/svgreveal/pkg/errors"
	"github.com/matzehuels/svgreveal/pkg/reveal"
	"github.com/matzehuels/svgreveal/pkg/timeline"
)

// maxPreviewStep caps a single advance so a client cannot spin the clock.
const maxPreviewStep = 10 * time.Minute

func (s *Server) newUpgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}
}

// checkOrigin admits requests without an Origin header, same-origin requests
// and origins listed in Config.AllowedOrigins, where "*" admits any origin.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	if strings.EqualFold(u.Host, r.Host) {
		return true
	}
	for _, allowed := range s.cfg.AllowedOrigins {
		allowed = strings.TrimSuffix(strings.TrimSpace(allowed), "/")
		if allowed == "*" || strings.EqualFold(allowed, origin) || strings.EqualFold(allowed, u.Host) {
			return true
		}
	}
	return false
}

// previewCommand is a client message after the document has been sent.
type previewCommand struct {
	Action  string  `json:"action,omitempty"`  // play, pause or reset
	Advance float64 `json:"advance,omitempty"` // seconds of virtual time to step
}

// previewFrame is the server's reply to every message.
type previewFrame struct {
	Time      float64        `json:"time"`      // virtual seconds since the document was animated
	Completed int            `json:"completed"` // finite animations that have ended
	Elements  []previewState `json:"elements"`
	Error     *apiError      `json:"error,omitempty"`
}

type previewState struct {
	Name      string  `json:"name"`
	Iteration int     `json:"iteration"`
	Fraction  float64 `json:"fraction"`
	Paused    bool    `json:"paused"`
	Ended     bool    `json:"ended"`
}

// previewSession is one animated document stepped on a virtual clock.
type previewSession struct {
	doc       *dom.Document
	clock     *timeline.Clock
	animator  *reveal.Animator
	completed int
}

// handlePreview upgrades to a WebSocket. The first text message is the SVG
// document, animated with the options in the query string. Each following
// message is a JSON previewCommand; every message is answered with a frame.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	opts, err := parseOptions(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		s.logger.Debug("preview upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(errors.MaxSVGSize)

	_, data, err := conn.ReadMessage()
	if err != nil {
		return
	}
	sess, err := s.newPreview(data, opts.Reveal)
	if err != nil {
		_ = conn.WriteJSON(errorFrame(err))
		return
	}
	if err := conn.WriteJSON(sess.frame()); err != nil {
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var cmd previewCommand
		if err := json.Unmarshal(data, &cmd); err != nil {
			err = errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid preview command")
			if conn.WriteJSON(errorFrame(err)) != nil {
				return
			}
			continue
		}
		frame := sess.apply(cmd)
		if err := conn.WriteJSON(frame); err != nil {
			return
		}
	}
}

func (s *Server) newPreview(svg []byte, opts *reveal.Options) (*previewSession, error) {
	if err := errors.ValidateSVGInput(svg); err != nil {
		return nil, err
	}
	doc, err := dom.Parse(bytes.NewReader(svg))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSVG, err, "parse document")
	}

	sess := &previewSession{doc: doc, clock: timeline.NewClock(doc.Root)}
	sess.animator = reveal.New(
		reveal.WithIDs(&reveal.SequentialIDs{}),
		reveal.WithScheduler(sess.clock),
		reveal.WithLogger(s.logger),
	)

	var o reveal.Options
	if opts != nil {
		o = *opts
	}
	o.OnComplete = func() { sess.completed++ }
	sess.animator.Animate(doc.Root, &o)
	sess.clock.Advance(0)
	return sess, nil
}

func (p *previewSession) apply(cmd previewCommand) previewFrame {
	if cmd.Action != "" {
		action, err := reveal.ParseAction(cmd.Action)
		if err != nil {
			return p.withError(errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid action"))
		}
		p.animator.Control(p.doc.Root, action)
		if action == reveal.ActionReset {
			// Run the pending restore so the frame shows the restarted animation.
			p.clock.Advance(reveal.ResetDelay)
		} else {
			p.clock.Advance(0)
		}
	}
	if cmd.Advance < 0 {
		return p.withError(errors.New(errors.ErrCodeInvalidInput, "advance must not be negative"))
	}
	if step := time.Duration(cmd.Advance * float64(time.Second)); step > 0 {
		p.clock.Advance(min(step, maxPreviewStep))
	}
	return p.frame()
}

func (p *previewSession) frame() previewFrame {
	f := previewFrame{
		Time:      p.clock.Now().Seconds(),
		Completed: p.completed,
		Elements:  []previewState{},
	}
	for _, el := range p.doc.Root.QueryAll(dom.ShapeTags...) {
		st, ok := p.clock.Progress(el)
		if !ok {
			continue
		}
		f.Elements = append(f.Elements, previewState{
			Name:      st.Name,
			Iteration: st.Iteration,
			Fraction:  st.Fraction,
			Paused:    st.Paused,
			Ended:     st.Ended,
		})
	}
	return f
}

func (p *previewSession) withError(err error) previewFrame {
	f := p.frame()
	e := toAPIError(err)
	f.Error = &e
	return f
}

func errorFrame(err error) previewFrame {
	e := toAPIError(err)
	return previewFrame{Elements: []previewState{}, Error: &e}
}
