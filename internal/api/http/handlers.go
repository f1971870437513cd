package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openassess/openassess/internal/assessment"
	"github.com/openassess/openassess/internal/block"
	"github.com/openassess/openassess/internal/render"
)

// GET /blocks/{usageID}/render -> fragment JSON
func RenderBlockHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := loadBlock(r.Context(), d, chi.URLParam(r, "usageID"), userIDFrom(r))
		if err != nil {
			http.Error(w, "load block: "+err.Error(), http.StatusInternalServerError)
			return
		}
		frag, err := b.Render(r.Context())
		if err != nil {
			http.Error(w, "render: "+err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(frag)
	}
}

// POST /blocks/{usageID}/render/{template} -> HTML partial
func RenderAssessmentHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := loadBlock(r.Context(), d, chi.URLParam(r, "usageID"), userIDFrom(r))
		if err != nil {
			http.Error(w, "load block: "+err.Error(), http.StatusInternalServerError)
			return
		}
		var extra map[string]any
		if body, _ := io.ReadAll(r.Body); len(body) > 0 {
			if err := json.Unmarshal(body, &extra); err != nil {
				http.Error(w, "bad json", http.StatusBadRequest)
				return
			}
		}
		out, err := b.RenderAssessment(r.Context(), chi.URLParam(r, "template"), extra)
		if errors.Is(err, render.ErrTemplateNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "render: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(out)
	}
}

// POST /blocks/{usageID}/submit
func SubmitResponseHandler(d Deps) http.HandlerFunc {
	return invokeHandler(d, assessment.CapabilitySubmission, "submit")
}

// POST /blocks/{usageID}/peer-assess
func PeerAssessHandler(d Deps) http.HandlerFunc {
	return invokeHandler(d, assessment.KindPeer, "assess")
}

// POST /blocks/{usageID}/self-assess
func SelfAssessHandler(d Deps) http.HandlerFunc {
	return invokeHandler(d, assessment.KindSelf, "assess")
}

// invokeHandler dispatches to a composed capability. Learner mistakes come
// back as accepted=false with a reason; an unconfigured stage is a 404.
func invokeHandler(d Deps, capability, op string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := loadBlock(r.Context(), d, chi.URLParam(r, "usageID"), userIDFrom(r))
		if err != nil {
			http.Error(w, "load block: "+err.Error(), http.StatusInternalServerError)
			return
		}
		payload, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "read body", http.StatusBadRequest)
			return
		}
		result, err := b.Invoke(r.Context(), capability, op, payload)
		if err != nil {
			if errors.Is(err, block.ErrCapabilityNotConfigured) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(result)
	}
}
