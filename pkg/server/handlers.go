package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/matzehuels/svgreveal/pkg/buildinfo"
	"github.com/matzehuels/svgreveal/pkg/errors"
	"github.com/matzehuels/svgreveal/pkg/observability"
	"github.com/matzehuels/svgreveal/pkg/reveal"
)

const contentTypeSVG = "image/svg+xml"

// Response headers describing how the document was produced.
const (
	headerCache    = "X-Cache"
	headerElements = "X-Animated-Elements"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Current()})
}

func (s *Server) handleAnimate(w http.ResponseWriter, r *http.Request) {
	opts, err := parseOptions(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	body, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Animate(r.Context(), body, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypeSVG)
	w.Header().Set(headerElements, strconv.Itoa(len(res.Records)))
	if res.CacheHit {
		w.Header().Set(headerCache, "hit")
	} else {
		w.Header().Set(headerCache, "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.SVG)
}

func (s *Server) handleKeyframes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	class := reveal.ClassGeneric
	switch shape := q.Get("shape"); shape {
	case "", "generic":
	case "rect":
		class = reveal.ClassRect
	default:
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "unknown shape %q: want rect or generic", shape))
		return
	}

	mode := class.DefaultMode()
	if v := q.Get("mode"); v != "" {
		mode = reveal.RenderMode(v)
	}

	length, err := strconv.ParseFloat(q.Get("length"), 64)
	if err != nil || length <= 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "length must be a positive number"))
		return
	}

	id := q.Get("id")
	if id == "" {
		id = "1"
	}
	if err := errors.ValidateKeyframeID(id); err != nil {
		s.writeError(w, r, err)
		return
	}

	rule := reveal.Synthesize(class, mode, length, id)
	if rule == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidMode, "mode %q is not supported for %s shapes", mode, class))
		return
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, rule+"\n")
}

// readBody reads at most errors.MaxSVGSize bytes of the request body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, errors.MaxSVGSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errors.New(errors.ErrCodeTooLarge, "document too large (max %d bytes)", errors.MaxSVGSize)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	return body, nil
}

// apiError is the JSON error body.
type apiError struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func errNotFound(path string) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s", path)
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidSVG, errors.ErrCodeInvalidConfig,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidMode, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeTooLarge:
		return http.StatusRequestEntityTooLarge
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeUnsupported:
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}

func toAPIError(err error) apiError {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return apiError{Code: code, Message: errors.UserMessage(err)}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	body := toAPIError(err)
	status := statusFor(body.Code)
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "code", body.Code, "error", err)
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
