package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/classkit/wordcloud/pkg/cache"
	"github.com/classkit/wordcloud/pkg/errors"
	"github.com/classkit/wordcloud/pkg/httputil"
	"github.com/classkit/wordcloud/pkg/pipeline"
	"github.com/classkit/wordcloud/pkg/store"
)

// artifactMaxAge is the Cache-Control max-age of rendered clouds. Kept
// short because class submissions keep arriving while a session runs.
const artifactMaxAge = 15 * time.Second

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz",
}

// =============================================================================
// Sessions
// =============================================================================

type createSessionRequest struct {
	Title             string `json:"title"`
	MaxPerParticipant int    `json:"max_per_participant,omitempty"`
}

type sessionResponse struct {
	*store.Session
	SubmissionCount int `json:"submission_count"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	sess, err := s.store.CreateSession(r.Context(), req.Title, req.MaxPerParticipant)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{Session: sess})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	subs, err := s.store.ListSubmissions(r.Context(), sess.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Session: sess, SubmissionCount: len(subs)})
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.EndSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Session: sess})
}

// =============================================================================
// Submissions
// =============================================================================

type submissionRequest struct {
	SubmitterID string `json:"submitter_id"`
	Word        string `json:"word"`
}

func (s *Server) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	subs, err := s.store.ListSubmissions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

func (s *Server) handleCreateSubmission(w http.ResponseWriter, r *http.Request) {
	var req submissionRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	sub, err := s.store.CreateSubmission(r.Context(), chi.URLParam(r, "id"), req.SubmitterID, req.Word)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

func (s *Server) handleUpdateSubmission(w http.ResponseWriter, r *http.Request) {
	var req submissionRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	sub, err := s.store.UpdateSubmission(r.Context(),
		chi.URLParam(r, "id"), chi.URLParam(r, "sid"),
		req.SubmitterID, req.Word, isAdmin(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (s *Server) handleDeleteSubmission(w http.ResponseWriter, r *http.Request) {
	err := s.store.DeleteSubmission(r.Context(),
		chi.URLParam(r, "id"), chi.URLParam(r, "sid"),
		r.URL.Query().Get("submitter_id"), isAdmin(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Cloud artifacts
// =============================================================================

// handleCloud renders the session's current submissions in the given
// format. Query parameters override the server's default layout
// options per request.
func (s *Server) handleCloud(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.store.GetSession(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		subs, err := s.store.ListSubmissions(r.Context(), sess.ID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		opts := s.Defaults
		opts.Submissions = store.CloudSubmissions(subs)
		opts.Formats = []string{format}
		if err := applyCloudQuery(r, &opts); err != nil {
			s.writeError(w, r, err)
			return
		}

		result, err := s.runner.Execute(r.Context(), opts)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		data := result.Artifacts[format]
		httputil.WriteCacheable(w, r, contentTypes[format], cache.Hash(data), artifactMaxAge, data)
	}
}

// applyCloudQuery copies recognized query parameters onto opts.
func applyCloudQuery(r *http.Request, opts *pipeline.Options) error {
	q := r.URL.Query()

	if v := q.Get("theme"); v != "" {
		opts.Theme = v
	}
	if v := q.Get("viz"); v != "" {
		opts.VizType = v
	}
	opts.Refresh = q.Get("refresh") == "true" || opts.Refresh
	opts.Tooltips = q.Get("tooltips") == "true" || opts.Tooltips
	opts.ShowCounts = q.Get("show_counts") == "true" || opts.ShowCounts

	floats := map[string]*float64{
		"width":      &opts.Width,
		"height":     &opts.Height,
		"min_font":   &opts.MinFontSize,
		"max_font":   &opts.MaxFontSize,
		"font_scale": &opts.FontScale,
		"curve":      &opts.Curve,
		"png_scale":  &opts.PNGScale,
	}
	for name, dst := range floats {
		v := q.Get(name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", name, v)
		}
		*dst = f
	}

	ints := map[string]*int{"max_words": &opts.MaxWords}
	for name, dst := range ints {
		v := q.Get(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", name, v)
		}
		*dst = n
	}

	if v := q.Get("seed"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "invalid seed: %q", v)
		}
		opts.Seed = n
	}

	return nil
}

// isAdmin reports whether the request claims teacher privileges. There
// is no authentication layer; the flag exists so the classroom frontend
// can separate the teacher view from student views.
func isAdmin(r *http.Request) bool {
	return r.URL.Query().Get("admin") == "true"
}

// decodeBody decodes a JSON request body into v.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}
